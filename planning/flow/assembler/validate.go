package assembler

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/flowgraph"
)

// ValidateDemand checks that every day of the horizon has a non-negative
// demand entry for every ordered pair and nothing for airports outside the
// network.
func ValidateDemand(network types.Network, schedule types.DemandSchedule, horizon int) error {
	if len(schedule) < horizon {
		return &types.DataValidationError{Day: types.Day(len(schedule)), Msg: fmt.Sprintf("no demand matrix; %d days supplied for a %d day horizon", len(schedule), horizon)}
	}
	if len(schedule) > horizon {
		glog.Warningf("assembler: ignoring %d demand days beyond the %d day horizon", len(schedule)-horizon, horizon)
	}
	for d := 0; d < horizon; d++ {
		day := types.Day(d)
		demand := schedule[d]
		if demand == nil {
			return &types.DataValidationError{Day: day, Msg: "no demand matrix"}
		}
		for p, v := range demand {
			if !network.Contains(p.Origin) || !network.Contains(p.Destination) || p.Origin == p.Destination {
				return &types.DataValidationError{Day: day, Pair: p, Msg: "not an ordered pair of network airports"}
			}
			if v < 0 {
				return &types.DataValidationError{Day: day, Pair: p, Msg: fmt.Sprintf("negative demand %d", v)}
			}
		}
		for _, p := range network.Pairs() {
			if _, ok := demand[p]; !ok {
				return &types.DataValidationError{Day: day, Pair: p, Msg: "missing demand"}
			}
		}
	}
	return nil
}

// ValidateFares checks that every fare is non-negative and that every
// flight arc of g has a fare for its physical pair.
func ValidateFares(g *flowgraph.Graph, network types.Network, fares types.FareMatrix) error {
	for p, v := range fares {
		if v < 0 {
			return &types.DataValidationError{Pair: p, Msg: fmt.Sprintf("negative fare %d", v)}
		}
	}
	for _, arc := range g.Arcs() {
		o, d, ok := arc.Physical()
		if !ok {
			continue
		}
		p := types.Pair{Origin: o, Destination: d}
		if _, ok := fares[p]; !ok {
			return &types.DataValidationError{Pair: p, Msg: fmt.Sprintf("missing fare for %v", arc)}
		}
	}
	return nil
}
