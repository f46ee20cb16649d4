package costmodel

import (
	"fmt"

	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/flowgraph"
)

// make sure flatCostModeler implements CostModel
var _ CostModel = new(flatCostModeler)

// FlatCosts are charged identically on every flight arc.
type FlatCosts struct {
	Fuel      float64
	Landing   float64
	Departure float64
}

// Note: the flat model charges no per-passenger fee.
type flatCostModeler struct {
	network types.Network
	costs   FlatCosts
}

func NewFlat(network types.Network, costs FlatCosts) (*flatCostModeler, error) {
	if costs.Fuel < 0 || costs.Landing < 0 || costs.Departure < 0 {
		return nil, &types.ConfigurationError{Field: "flat_costs", Msg: "costs must not be negative"}
	}
	return &flatCostModeler{network: network, costs: costs}, nil
}

func (fm *flatCostModeler) Type() CostModelType {
	return CostModelFlat
}

func (fm *flatCostModeler) ArcCost(arc *flowgraph.Arc, day types.Day) (ArcCost, error) {
	if arc.TouchesSink() {
		return ArcCost{}, nil
	}
	if _, _, err := physicalEndpoints(fm.network, arc); err != nil {
		return ArcCost{}, err
	}
	return ArcCost{Fuel: fm.costs.Fuel, Landing: fm.costs.Landing, Departure: fm.costs.Departure}, nil
}

func (fm *flatCostModeler) DebugInfo() string {
	return fmt.Sprintf("flat cost model: fuel=%.2f landing=%.2f departure=%.2f per flight\n",
		fm.costs.Fuel, fm.costs.Landing, fm.costs.Departure)
}
