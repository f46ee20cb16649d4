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

package costmodel

import (
	"fmt"
	"strings"

	"github.com/airnet/netplan/base/units"
	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/pkg/util"
	"github.com/airnet/netplan/planning/flow/flowgraph"
)

// make sure distanceCostModeler implements CostModel
var _ CostModel = new(distanceCostModeler)

// distanceCostModeler prices fuel by great-circle distance and the
// departure airport's fuel price, landing by the arrival airport's rate per
// tonne of MTOW, and improvement fees by the departure airport's rate.
// The tables are copied at construction and never modified.
type distanceCostModeler struct {
	network   types.Network
	airports  map[types.AirportCode]types.Airport
	distances map[types.Pair]float64
	aircraft  types.Aircraft
	// Charge fuel on legs into and out of a hub buffer. Off by default:
	// transfer legs are priced for landing and fees only.
	chargeTransferFuel bool
}

// NewDistance checks that every network airport has a cost entry and a way
// to compute distances before returning the model.
func NewDistance(network types.Network, airports map[types.AirportCode]types.Airport,
	distances map[types.Pair]float64, aircraft types.Aircraft, chargeTransferFuel bool) (*distanceCostModeler, error) {
	if aircraft.MTOWKg <= 0 {
		return nil, &types.ConfigurationError{Field: "aircraft.mtow_kg", Msg: "must be positive"}
	}
	if aircraft.FuelBurnPerKm <= 0 {
		return nil, &types.ConfigurationError{Field: "aircraft.fuel_burn_per_km", Msg: "must be positive"}
	}

	dm := &distanceCostModeler{
		network:            network,
		airports:           make(map[types.AirportCode]types.Airport, len(airports)),
		distances:          make(map[types.Pair]float64, len(distances)),
		aircraft:           aircraft,
		chargeTransferFuel: chargeTransferFuel,
	}
	for code, a := range airports {
		if a.FuelPrice < 0 || a.LandingFeeRate < 0 || a.ImprovementFeeRate < 0 {
			return nil, &types.ConfigurationError{Field: "airports." + string(code), Msg: "rates must not be negative"}
		}
		dm.airports[code] = a
	}
	for p, km := range distances {
		if km <= 0 {
			return nil, &types.ConfigurationError{Field: "distances." + p.String(), Msg: "must be positive"}
		}
		dm.distances[p] = km
	}

	for _, code := range network.Airports() {
		if _, ok := dm.airports[code]; !ok {
			return nil, &types.ConfigurationError{Field: "airports." + string(code), Msg: "no cost table entry"}
		}
	}
	for _, p := range network.Pairs() {
		if _, err := dm.distance(p.Origin, p.Destination); err != nil {
			return nil, err
		}
	}
	return dm, nil
}

func (dm *distanceCostModeler) Type() CostModelType {
	return CostModelDistance
}

func (dm *distanceCostModeler) ArcCost(arc *flowgraph.Arc, day types.Day) (ArcCost, error) {
	if arc.TouchesSink() {
		return ArcCost{}, nil
	}
	o, d, err := physicalEndpoints(dm.network, arc)
	if err != nil {
		return ArcCost{}, err
	}
	origin, ok := dm.airports[o]
	if !ok {
		return ArcCost{}, &types.ConfigurationError{Field: "airports." + string(o), Msg: "no cost table entry"}
	}
	dest, ok := dm.airports[d]
	if !ok {
		return ArcCost{}, &types.ConfigurationError{Field: "airports." + string(d), Msg: "no cost table entry"}
	}

	c := ArcCost{
		Landing:        dest.LandingFeeRate * units.KgToTonnes(dm.aircraft.MTOWKg),
		ImprovementFee: origin.ImprovementFeeRate,
	}
	if !arc.TouchesBuffer() || dm.chargeTransferFuel {
		km, err := dm.distance(o, d)
		if err != nil {
			return ArcCost{}, err
		}
		c.Fuel = km * dm.aircraft.FuelBurnPerKm * origin.FuelPrice
	}
	return c, nil
}

// distance looks the pair up in either direction, then falls back to the
// great-circle distance between the configured coordinates.
func (dm *distanceCostModeler) distance(o, d types.AirportCode) (float64, error) {
	p := types.Pair{Origin: o, Destination: d}
	if km, ok := dm.distances[p]; ok {
		return km, nil
	}
	if km, ok := dm.distances[p.Reverse()]; ok {
		return km, nil
	}
	a, b := dm.airports[o], dm.airports[d]
	if hasPosition(a) && hasPosition(b) {
		return util.GreatCircleKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude), nil
	}
	return 0, &types.ConfigurationError{Field: "distances", Msg: fmt.Sprintf("no distance for %s and no coordinates to compute one", p)}
}

func hasPosition(a types.Airport) bool {
	return a.Latitude != 0 || a.Longitude != 0
}

func (dm *distanceCostModeler) DebugInfo() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "distance cost model: aircraft=%s mtow=%.0fkg burn=%.2f/km transferFuel=%v\n",
		dm.aircraft.Model, dm.aircraft.MTOWKg, dm.aircraft.FuelBurnPerKm, dm.chargeTransferFuel)
	for _, code := range dm.network.Airports() {
		a := dm.airports[code]
		fmt.Fprintf(&sb, "  %s fuel=%.2f landing=%.2f/t aif=%.2f\n", code, a.FuelPrice, a.LandingFeeRate, a.ImprovementFeeRate)
	}
	return sb.String()
}
