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

// Package fleet tracks aircraft positions across the planning horizon. It
// declares one integer FleetCount per airport per day boundary and ties them
// together with sufficiency and continuity constraints over flight counts.
package fleet

import (
	"fmt"
	"math"

	"github.com/golang/glog"

	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/lp"
)

const (
	FamilySufficiency = "fleet_sufficiency"
	FamilyContinuity  = "fleet_continuity"
	FamilyFleetSize   = "fleet_size"
)

// Movement is a flight count variable with the airports it departs from
// and arrives at.
type Movement struct {
	Origin      types.AirportCode
	Destination types.AirportCode
	Flights     lp.VarID
}

type positionKey struct {
	airport types.AirportCode
	day     types.Day
}

// Ledger owns the FleetCount variables of one program.
type Ledger struct {
	program  *lp.Program
	network  types.Network
	horizon  int
	position map[positionKey]lp.VarID
	closed   map[types.Day]bool
}

// NewLedger declares FleetCount(a, d) for every airport and d in [0, horizon].
func NewLedger(p *lp.Program, network types.Network, horizon int) *Ledger {
	l := &Ledger{
		program:  p,
		network:  network,
		horizon:  horizon,
		position: make(map[positionKey]lp.VarID),
		closed:   make(map[types.Day]bool),
	}
	for d := 0; d <= horizon; d++ {
		for _, a := range network.Airports() {
			id := p.AddNonNegative(fmt.Sprintf("z_%s_d%d", a, d), lp.Integer)
			l.position[positionKey{a, types.Day(d)}] = id
		}
	}
	return l
}

// Position returns the FleetCount variable of airport a at the start of day d.
func (l *Ledger) Position(a types.AirportCode, d types.Day) (lp.VarID, bool) {
	id, ok := l.position[positionKey{a, d}]
	return id, ok
}

func (l *Ledger) Horizon() int {
	return l.horizon
}

// AddDay adds the sufficiency and continuity rows for one operating day.
// Every movement must depart from and arrive at a network airport.
func (l *Ledger) AddDay(day types.Day, movements []Movement) error {
	if day < 0 || int(day) >= l.horizon {
		return fmt.Errorf("fleet: day %d outside horizon [0, %d)", day, l.horizon)
	}
	if l.closed[day] {
		glog.Fatalf("fleet: day %d already added", day)
	}
	inbound := make(map[types.AirportCode]lp.Expr)
	outbound := make(map[types.AirportCode]lp.Expr)
	for _, m := range movements {
		if !l.network.Contains(m.Origin) || !l.network.Contains(m.Destination) {
			return &types.TopologyError{Msg: fmt.Sprintf("movement %s->%s leaves the network", m.Origin, m.Destination)}
		}
		outbound[m.Origin] = outbound[m.Origin].Add(m.Flights, 1)
		inbound[m.Destination] = inbound[m.Destination].Add(m.Flights, 1)
	}

	for _, a := range l.network.Airports() {
		z := l.position[positionKey{a, day}]
		next := l.position[positionKey{a, day + 1}]

		// z(a,d) - out >= 0
		suff := lp.Expr{}.Add(z, 1).Plus(outbound[a].Scale(-1))
		l.program.AddConstraint(lp.Constraint{
			Name:   fmt.Sprintf("fleet_suff_%s_d%d", a, day),
			Family: FamilySufficiency,
			Expr:   suff,
			Sense:  lp.GE,
			RHS:    0,
		})

		// z(a,d+1) - z(a,d) - in + out = 0
		cont := lp.Expr{}.Add(next, 1).Add(z, -1).Plus(inbound[a].Scale(-1)).Plus(outbound[a])
		l.program.AddConstraint(lp.Constraint{
			Name:   fmt.Sprintf("fleet_cont_%s_d%d", a, day),
			Family: FamilyContinuity,
			Expr:   cont,
			Sense:  lp.EQ,
			RHS:    0,
		})
	}
	l.closed[day] = true
	glog.V(3).Infof("fleet: day %d ledger closed with %d movements", day, len(movements))
	return nil
}

// Pin fixes the day 0 position of each listed airport. Airports not listed
// stay free.
func (l *Ledger) Pin(initial map[types.AirportCode]int) error {
	for a, n := range initial {
		if !l.network.Contains(a) {
			return &types.ConfigurationError{Field: "fleet.initial." + string(a), Msg: "not a network airport"}
		}
		if n < 0 {
			return &types.ConfigurationError{Field: "fleet.initial." + string(a), Msg: "must not be negative"}
		}
	}
	for a, n := range initial {
		id := l.position[positionKey{a, 0}]
		l.program.SetUpper(id, math.Inf(1))
		l.program.SetLower(id, float64(n))
		l.program.SetUpper(id, float64(n))
	}
	return nil
}

// CapSize bounds the total number of aircraft. Continuity conserves the
// total across days, so bounding day 0 bounds every day.
func (l *Ledger) CapSize(size int) error {
	if size < 0 {
		return &types.ConfigurationError{Field: "fleet.size", Msg: "must not be negative"}
	}
	e := lp.Expr{}
	for _, a := range l.network.Airports() {
		e = e.Add(l.position[positionKey{a, 0}], 1)
	}
	l.program.AddConstraint(lp.Constraint{
		Name:   "fleet_size",
		Family: FamilyFleetSize,
		Expr:   e,
		Sense:  lp.LE,
		RHS:    float64(size),
	})
	return nil
}

// Positions reads the rounded positions at the start of day d from values.
func (l *Ledger) Positions(values []float64, d types.Day) map[types.AirportCode]int {
	res := make(map[types.AirportCode]int, 5)
	for _, a := range l.network.Airports() {
		id, ok := l.position[positionKey{a, d}]
		if !ok || int(id) >= len(values) {
			continue
		}
		res[a] = int(math.Round(values[id]))
	}
	return res
}

// Terminal reads the positions at the closing boundary, ready to pin as
// the next horizon's initial positions.
func (l *Ledger) Terminal(values []float64) map[types.AirportCode]int {
	return l.Positions(values, types.Day(l.horizon))
}
