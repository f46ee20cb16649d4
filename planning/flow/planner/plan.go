package planner

import (
	"math"
	"strconv"

	"github.com/airnet/netplan/pkg/metrics"
	"github.com/airnet/netplan/pkg/store"
	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/assembler"
	"github.com/airnet/netplan/planning/flow/flowgraph"
	"github.com/airnet/netplan/planning/flow/lp"
)

// Plan is a solved program with read accessors keyed by (arc, day) and
// (airport, day). It does no formatting.
type Plan struct {
	Model    *assembler.Model
	Solution *lp.Solution
	Solver   string

	fares types.FareMatrix
}

func (p *Plan) Status() lp.Status {
	return p.Solution.Status
}

func (p *Plan) Objective() float64 {
	return p.Solution.Objective
}

// PassengerFlow is zero for an arc or day outside the program.
func (p *Plan) PassengerFlow(arc *flowgraph.Arc, day types.Day) float64 {
	id, ok := p.Model.Flow(arc, day)
	if !ok {
		return 0
	}
	return p.Solution.Value(id)
}

// FlightCount is rounded to the nearest integer to absorb solver tolerance.
func (p *Plan) FlightCount(arc *flowgraph.Arc, day types.Day) int {
	id, ok := p.Model.Flights(arc, day)
	if !ok {
		return 0
	}
	return int(math.Round(p.Solution.Value(id)))
}

// FleetCount is the number of aircraft at airport a at the start of day.
// Day H is the closing boundary.
func (p *Plan) FleetCount(a types.AirportCode, day types.Day) int {
	id, ok := p.Model.Fleet(a, day)
	if !ok {
		return 0
	}
	return int(math.Round(p.Solution.Value(id)))
}

// TerminalFleet returns the positions after the last day, ready to pin as
// the initial fleet of the next horizon.
func (p *Plan) TerminalFleet() map[types.AirportCode]int {
	return p.Model.Ledger().Terminal(p.Solution.Values)
}

// Profit is revenue net of costs of arc on day.
func (p *Plan) Profit(arc *flowgraph.Arc, day types.Day) float64 {
	return p.Model.Profit(arc, day, p.fares, p.Solution.Values)
}

// Departures counts the flights scheduled on day.
func (p *Plan) Departures(day types.Day) int {
	total := 0
	for _, arc := range p.Model.Graph.Arcs() {
		if !arc.TouchesSink() {
			total += p.FlightCount(arc, day)
		}
	}
	return total
}

func (p *Plan) TotalDepartures() int {
	total := 0
	for d := 0; d < p.Model.Horizon; d++ {
		total += p.Departures(types.Day(d))
	}
	return total
}

// Unserved is the demand discharged from OD nodes straight to the sink.
func (p *Plan) Unserved(day types.Day) float64 {
	total := 0.0
	for _, arc := range p.Model.Graph.Arcs() {
		if arc.SrcNode.IsODDemand() && arc.DstNode.IsSink() {
			total += p.PassengerFlow(arc, day)
		}
	}
	return total
}

// Record converts the plan into its persisted form. Only arcs that carry
// passengers or flights are listed.
func (p *Plan) Record() *store.PlanRecord {
	rec := &store.PlanRecord{
		Program:   p.Model.Program.Name,
		Solver:    p.Solver,
		Status:    p.Status().String(),
		Objective: p.Objective(),
		Horizon:   p.Model.Horizon,
	}
	for d := 0; d < p.Model.Horizon; d++ {
		day := types.Day(d)
		for _, arc := range p.Model.Graph.Arcs() {
			o, dst, ok := arc.Physical()
			if !ok {
				continue
			}
			x, n := p.PassengerFlow(arc, day), p.FlightCount(arc, day)
			if x <= 0 && n == 0 {
				continue
			}
			rec.Legs = append(rec.Legs, store.LegRecord{
				Day:         d,
				Arc:         arc.Name(),
				Kind:        arc.Kind.String(),
				Origin:      o,
				Destination: dst,
				Passengers:  x,
				Flights:     n,
			})
		}
	}
	for d := 0; d <= p.Model.Horizon; d++ {
		for _, a := range p.Model.Network.Airports() {
			rec.Fleet = append(rec.Fleet, store.FleetRecord{Day: d, Airport: a, Aircraft: p.FleetCount(a, types.Day(d))})
		}
	}
	return rec
}

func (p *Plan) record() {
	metrics.PlanObjective.Set(p.Objective())
	for d := 0; d < p.Model.Horizon; d++ {
		label := strconv.Itoa(d)
		metrics.FlightsScheduled.WithLabelValues(label).Set(float64(p.Departures(types.Day(d))))
		metrics.PassengersUnserved.WithLabelValues(label).Set(p.Unserved(types.Day(d)))
	}
}
