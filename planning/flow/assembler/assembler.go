// Copyright 2024 The netplan Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package assembler turns the routing graph, the demand and fare tables and
// a cost model into a mixed-integer program: flow conservation, transfer
// pairing, capacity, profitability and the fleet ledger.
package assembler

import (
	"fmt"
	"math"

	"github.com/golang/glog"

	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/costmodel"
	"github.com/airnet/netplan/planning/flow/fleet"
	"github.com/airnet/netplan/planning/flow/flowgraph"
	"github.com/airnet/netplan/planning/flow/lp"
	"github.com/airnet/netplan/planning/flow/topology"
)

// Constraint families.
const (
	FamilyConservation = "conservation"
	FamilyTransfer     = "transfer"
	FamilyCapacity     = "capacity"
	FamilyProfit       = "profit"
)

const DefaultHorizon = 5

type Options struct {
	// Number of operating days.
	Horizon int
	// Seats per flight.
	Capacity int
	// Upper bound on FlightCount of every flight arc. Zero means unbounded.
	MaxFlightsPerArc int
	// Fixed day 0 aircraft positions. Airports not listed start free.
	InitialFleet map[types.AirportCode]int
	// Upper bound on the total number of aircraft. Zero means unbounded.
	FleetSize int
	// Name of the assembled program.
	Name string
}

func (o Options) validate() error {
	if o.Horizon <= 0 {
		return &types.ConfigurationError{Field: "horizon", Msg: "must be positive"}
	}
	if o.Capacity <= 0 {
		return &types.ConfigurationError{Field: "aircraft.capacity", Msg: "must be positive"}
	}
	if o.MaxFlightsPerArc < 0 {
		return &types.ConfigurationError{Field: "max_flights_per_arc", Msg: "must not be negative"}
	}
	if o.FleetSize < 0 {
		return &types.ConfigurationError{Field: "fleet.size", Msg: "must not be negative"}
	}
	return nil
}

// Model is an assembled program with the variable lookups needed to read
// a solution back.
type Model struct {
	Program *lp.Program
	Graph   *flowgraph.Graph
	Network types.Network
	Horizon int

	flow    VarMapping
	flights VarMapping
	ledger  *fleet.Ledger
	// Per-arc per-day costs the program was assembled with.
	costs map[arcDay]costmodel.ArcCost
}

// Flow returns the PassengerFlow variable of arc on day.
func (m *Model) Flow(arc *flowgraph.Arc, day types.Day) (lp.VarID, bool) {
	return m.flow.Get(arc, day)
}

// Flights returns the FlightCount variable of arc on day.
func (m *Model) Flights(arc *flowgraph.Arc, day types.Day) (lp.VarID, bool) {
	return m.flights.Get(arc, day)
}

// Fleet returns the FleetCount variable of airport at the start of day.
func (m *Model) Fleet(a types.AirportCode, day types.Day) (lp.VarID, bool) {
	return m.ledger.Position(a, day)
}

func (m *Model) Ledger() *fleet.Ledger {
	return m.ledger
}

// Cost returns the cost the arc was priced at on day.
func (m *Model) Cost(arc *flowgraph.Arc, day types.Day) costmodel.ArcCost {
	return m.costs[keyOf(arc, day)]
}

// Assemble builds the program. Every input is checked before the first
// variable is declared; on error nothing is returned.
func Assemble(g *flowgraph.Graph, network types.Network, schedule types.DemandSchedule,
	fares types.FareMatrix, cm costmodel.CostModel, opts Options) (*Model, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := topology.Validate(g, network); err != nil {
		return nil, err
	}
	pairings, err := topology.Transfers(g, network)
	if err != nil {
		return nil, err
	}
	if err := ValidateDemand(network, schedule, opts.Horizon); err != nil {
		return nil, err
	}
	if err := ValidateFares(g, network, fares); err != nil {
		return nil, err
	}
	costs, err := priceArcs(g, cm, opts.Horizon)
	if err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = "netplan"
	}
	m := &Model{
		Program: lp.NewProgram(name, true),
		Graph:   g,
		Network: network,
		Horizon: opts.Horizon,
		flow:    VarMapping{},
		flights: VarMapping{},
		costs:   costs,
	}
	p := m.Program

	for d := 0; d < opts.Horizon; d++ {
		day := types.Day(d)
		for _, arc := range g.Arcs() {
			m.flow.Insert(arc, day, p.AddNonNegative(fmt.Sprintf("x__%s__d%d", arc.Name(), d), lp.Continuous))
			n := p.AddNonNegative(fmt.Sprintf("n__%s__d%d", arc.Name(), d), lp.Integer)
			switch {
			case arc.TouchesSink():
				p.SetUpper(n, 0)
			case opts.MaxFlightsPerArc > 0:
				p.SetUpper(n, float64(opts.MaxFlightsPerArc))
			}
			m.flights.Insert(arc, day, n)
		}
	}
	m.ledger = fleet.NewLedger(p, network, opts.Horizon)

	m.addObjective(fares)
	for d := 0; d < opts.Horizon; d++ {
		day := types.Day(d)
		m.addConservation(day, schedule[d])
		m.addTransfers(day, pairings)
		m.addCapacity(day, opts.Capacity)
		m.addProfitGuard(day, fares)
		if err := m.ledger.AddDay(day, m.movements(day)); err != nil {
			return nil, err
		}
	}
	if len(opts.InitialFleet) > 0 {
		if err := m.ledger.Pin(opts.InitialFleet); err != nil {
			return nil, err
		}
	}
	if opts.FleetSize > 0 {
		if err := m.ledger.CapSize(opts.FleetSize); err != nil {
			return nil, err
		}
	}

	glog.V(1).Infof("assembler: %s: %v", name, p.Stats())
	return m, nil
}

func priceArcs(g *flowgraph.Graph, cm costmodel.CostModel, horizon int) (map[arcDay]costmodel.ArcCost, error) {
	costs := make(map[arcDay]costmodel.ArcCost, g.NumArcs()*horizon)
	for d := 0; d < horizon; d++ {
		for _, arc := range g.Arcs() {
			c, err := cm.ArcCost(arc, types.Day(d))
			if err != nil {
				return nil, fmt.Errorf("pricing %v on day %d: %w", arc, d, err)
			}
			costs[keyOf(arc, types.Day(d))] = c
		}
	}
	return costs, nil
}

// fare returns the ticket price credited per passenger on a flight arc.
// Fares were validated up front.
func fare(arc *flowgraph.Arc, fares types.FareMatrix) float64 {
	o, d, ok := arc.Physical()
	if !ok {
		return 0
	}
	return float64(fares[types.Pair{Origin: o, Destination: d}])
}

// Objective: sum over days and flight arcs of
// (fare - aif) * x - (fuel + landing + departure) * n.
func (m *Model) addObjective(fares types.FareMatrix) {
	obj := lp.Expr{}
	for d := 0; d < m.Horizon; d++ {
		day := types.Day(d)
		for _, arc := range m.Graph.Arcs() {
			if arc.TouchesSink() {
				continue
			}
			c := m.costs[keyOf(arc, day)]
			x, _ := m.flow.Get(arc, day)
			n, _ := m.flights.Get(arc, day)
			obj = obj.Add(x, fare(arc, fares)-c.ImprovementFee).Add(n, -c.PerFlight())
		}
	}
	m.Program.Objective = obj.Normalize()
}

// netDemand is inflow minus outflow required at n.
func netDemand(n *flowgraph.Node, demand types.DemandMatrix) float64 {
	switch n.Type {
	case flowgraph.NodeTypeSink:
		return float64(demand.Total())
	case flowgraph.NodeTypeODDemand:
		return -float64(demand[n.Pair])
	default:
		return 0
	}
}

func (m *Model) addConservation(day types.Day, demand types.DemandMatrix) {
	for _, n := range m.Graph.Nodes() {
		e := lp.Expr{}
		for _, arc := range n.IncomingArcs() {
			x, _ := m.flow.Get(arc, day)
			e = e.Add(x, 1)
		}
		for _, arc := range n.OutgoingArcs() {
			x, _ := m.flow.Get(arc, day)
			e = e.Add(x, -1)
		}
		m.Program.AddConstraint(lp.Constraint{
			Name:   fmt.Sprintf("flow__%s__d%d", n.Name(), day),
			Family: FamilyConservation,
			Expr:   e,
			Sense:  lp.EQ,
			RHS:    netDemand(n, demand),
		})
	}
}

func (m *Model) addTransfers(day types.Day, pairings []topology.TransferPairing) {
	for _, tp := range pairings {
		e := lp.Expr{}
		for _, arc := range tp.Inbound {
			x, _ := m.flow.Get(arc, day)
			e = e.Add(x, 1)
		}
		out, _ := m.flow.Get(tp.Outbound, day)
		e = e.Add(out, -1)
		m.Program.AddConstraint(lp.Constraint{
			Name:   fmt.Sprintf("transfer__%s__d%d", tp.Name(), day),
			Family: FamilyTransfer,
			Expr:   e,
			Sense:  lp.EQ,
			RHS:    0,
		})
	}
}

// x <= capacity * n
func (m *Model) addCapacity(day types.Day, capacity int) {
	for _, arc := range m.Graph.Arcs() {
		if arc.TouchesSink() {
			continue
		}
		x, _ := m.flow.Get(arc, day)
		n, _ := m.flights.Get(arc, day)
		m.Program.AddConstraint(lp.Constraint{
			Name:   fmt.Sprintf("cap__%s__d%d", arc.Name(), day),
			Family: FamilyCapacity,
			Expr:   lp.Expr{}.Add(x, 1).Add(n, -float64(capacity)),
			Sense:  lp.LE,
			RHS:    0,
		})
	}
}

// (fuel + landing + departure) * n + aif * x <= fare * x
func (m *Model) addProfitGuard(day types.Day, fares types.FareMatrix) {
	for _, arc := range m.Graph.Arcs() {
		if arc.TouchesSink() {
			continue
		}
		c := m.costs[keyOf(arc, day)]
		x, _ := m.flow.Get(arc, day)
		n, _ := m.flights.Get(arc, day)
		m.Program.AddConstraint(lp.Constraint{
			Name:   fmt.Sprintf("profit__%s__d%d", arc.Name(), day),
			Family: FamilyProfit,
			Expr:   lp.Expr{}.Add(n, c.PerFlight()).Add(x, c.ImprovementFee-fare(arc, fares)),
			Sense:  lp.LE,
			RHS:    0,
		})
	}
}

// movements lists the day's flight variables by their physical endpoints.
// Legs into and out of a hub buffer count as flights at the hub.
func (m *Model) movements(day types.Day) []fleet.Movement {
	var res []fleet.Movement
	for _, arc := range m.Graph.Arcs() {
		o, d, ok := arc.Physical()
		if !ok {
			continue
		}
		n, _ := m.flights.Get(arc, day)
		res = append(res, fleet.Movement{Origin: o, Destination: d, Flights: n})
	}
	return res
}

// Profit evaluates revenue and costs of one arc on one day for the given
// assignment.
func (m *Model) Profit(arc *flowgraph.Arc, day types.Day, fares types.FareMatrix, values []float64) float64 {
	if arc.TouchesSink() {
		return 0
	}
	c := m.costs[keyOf(arc, day)]
	x, _ := m.flow.Get(arc, day)
	n, _ := m.flights.Get(arc, day)
	return (fare(arc, fares)-c.ImprovementFee)*values[x] - c.PerFlight()*math.Round(values[n])
}
