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

// Common type definitions shared by the topology, cost model and assembler.

package types

type (
	AirportCode string
	// Day indexes the planning horizon. Operating days are 0..H-1; the fleet
	// ledger additionally uses H as the closing boundary.
	Day int
)

// Pair is an ordered (origin, destination) airport pair.
type Pair struct {
	Origin      AirportCode
	Destination AirportCode
}

func (p Pair) String() string {
	return string(p.Origin) + "->" + string(p.Destination)
}

// Reverse returns the pair for travel the other way.
func (p Pair) Reverse() Pair {
	return Pair{Origin: p.Destination, Destination: p.Origin}
}

// Airport holds the static per-airport rates used by the cost model.
type Airport struct {
	Code AirportCode
	Name string
	// Fuel price at the departing airport, per unit of fuel burned.
	FuelPrice float64
	// Landing fee charged at the arrival airport, per tonne of aircraft weight.
	LandingFeeRate float64
	// Airport improvement fee charged per departing passenger.
	ImprovementFeeRate float64
	Latitude           float64
	Longitude          float64
}

// Network assigns the fixed routing roles. The far spoke has no direct
// service to the two spokes; travel between them transits a hub.
type Network struct {
	Hubs     [2]AirportCode
	Spokes   [2]AirportCode
	FarSpoke AirportCode
}

// Airports returns every airport of the network: hubs, spokes, far spoke.
func (n Network) Airports() []AirportCode {
	return []AirportCode{n.Hubs[0], n.Hubs[1], n.Spokes[0], n.Spokes[1], n.FarSpoke}
}

func (n Network) IsHub(c AirportCode) bool {
	return c == n.Hubs[0] || c == n.Hubs[1]
}

func (n Network) IsSpoke(c AirportCode) bool {
	return c == n.Spokes[0] || c == n.Spokes[1]
}

func (n Network) IsFarSpoke(c AirportCode) bool {
	return c == n.FarSpoke
}

func (n Network) Contains(c AirportCode) bool {
	return n.IsHub(c) || n.IsSpoke(c) || n.IsFarSpoke(c)
}

// RequiresTransfer reports whether travel on p must connect through the hubs.
func (n Network) RequiresTransfer(p Pair) bool {
	return (n.IsSpoke(p.Origin) && n.IsFarSpoke(p.Destination)) ||
		(n.IsFarSpoke(p.Origin) && n.IsSpoke(p.Destination))
}

// Pairs returns every ordered pair of distinct airports in a stable order.
func (n Network) Pairs() []Pair {
	airports := n.Airports()
	pairs := make([]Pair, 0, len(airports)*(len(airports)-1))
	for _, o := range airports {
		for _, d := range airports {
			if o != d {
				pairs = append(pairs, Pair{Origin: o, Destination: d})
			}
		}
	}
	return pairs
}

// DemandMatrix is one day's passenger demand keyed by ordered pair.
type DemandMatrix map[Pair]int

// Total returns the sum of all entries.
func (m DemandMatrix) Total() int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

// DemandSchedule holds one DemandMatrix per operating day.
type DemandSchedule []DemandMatrix

// FareMatrix is the static ticket revenue keyed by ordered pair.
type FareMatrix map[Pair]int

// Aircraft describes the single aircraft type flown on every leg.
type Aircraft struct {
	Model string
	// Seats per departure.
	Capacity int
	// Maximum take-off weight in kilograms, the basis of landing fees.
	MTOWKg float64
	// Fuel burned per kilometre flown.
	FuelBurnPerKm float64
}
