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

// Cost model interface implemented by the distance and flat cost models
// and used by the constraint assembler.

package costmodel

import (
	"fmt"

	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/flowgraph"
)

type CostModelType int

//Enum for list of cost models supported
const (
	CostModelDistance CostModelType = iota + 1
	CostModelFlat
)

func (t CostModelType) String() string {
	switch t {
	case CostModelDistance:
		return "distance"
	case CostModelFlat:
		return "flat"
	default:
		return "unknown"
	}
}

// ParseCostModelType maps a configuration string to a cost model type.
func ParseCostModelType(s string) (CostModelType, error) {
	switch s {
	case "", "distance":
		return CostModelDistance, nil
	case "flat":
		return CostModelFlat, nil
	default:
		return 0, &types.ConfigurationError{Field: "cost_model", Msg: fmt.Sprintf("unknown cost model %q", s)}
	}
}

// ArcCost is what one arc incurs on one day. Fuel, Landing and Departure
// are charged per flight; ImprovementFee is charged per passenger.
type ArcCost struct {
	Fuel           float64
	Landing        float64
	Departure      float64
	ImprovementFee float64
}

// PerFlight is the operating cost that scales with the flight count.
func (c ArcCost) PerFlight() float64 {
	return c.Fuel + c.Landing + c.Departure
}

func (c ArcCost) IsZero() bool {
	return c == ArcCost{}
}

type CostModel interface {
	// ArcCost returns the cost of operating the arc on the given day. Arcs
	// into the sink cost nothing. An arc touching an airport outside the
	// network is a TopologyError; a network airport missing from the cost
	// tables is a ConfigurationError.
	ArcCost(arc *flowgraph.Arc, day types.Day) (ArcCost, error)

	Type() CostModelType

	// Handle to pull debug information from cost model; return string.
	DebugInfo() string
}

// physicalEndpoints resolves and checks the airports of a flight arc.
func physicalEndpoints(network types.Network, arc *flowgraph.Arc) (types.AirportCode, types.AirportCode, error) {
	o, d, ok := arc.Physical()
	if !ok {
		return "", "", &types.TopologyError{Msg: fmt.Sprintf("arc %v has no physical endpoints", arc)}
	}
	if !network.Contains(o) {
		return "", "", &types.TopologyError{Msg: fmt.Sprintf("arc %v departs from unknown airport %q", arc, o)}
	}
	if !network.Contains(d) {
		return "", "", &types.TopologyError{Msg: fmt.Sprintf("arc %v arrives at unknown airport %q", arc, d)}
	}
	return o, d, nil
}
