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

package topology

import (
	"fmt"

	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/flowgraph"
)

// TransferPairing ties the legs entering a hub buffer to the single onward
// leg they must leave on. Inbound flow equals outbound flow, per day.
type TransferPairing struct {
	Hub      types.AirportCode
	Inbound  []*flowgraph.Arc
	Outbound *flowgraph.Arc
}

func (tp TransferPairing) Name() string {
	return tp.Outbound.Name()
}

// Transfers lists, per hub, the pairing toward the far spoke followed by one
// pairing per spoke for travel away from it.
func Transfers(g *flowgraph.Graph, network types.Network) ([]TransferPairing, error) {
	var res []TransferPairing
	far := network.FarSpoke
	for _, hub := range network.Hubs {
		buf := g.HubBufferNode(hub)
		if buf == nil {
			return nil, &types.TopologyError{Msg: fmt.Sprintf("no transfer buffer for hub %s", hub)}
		}

		toFar := TransferPairing{Hub: hub, Outbound: g.GetArc(buf, g.AirportNode(far))}
		for _, spoke := range network.Spokes {
			toFar.Inbound = append(toFar.Inbound, g.GetArc(g.ODNode(types.Pair{Origin: spoke, Destination: far}), buf))
		}
		if err := checkPairing(toFar); err != nil {
			return nil, err
		}
		res = append(res, toFar)

		for _, spoke := range network.Spokes {
			fromFar := TransferPairing{
				Hub:      hub,
				Inbound:  []*flowgraph.Arc{g.GetArc(g.ODNode(types.Pair{Origin: far, Destination: spoke}), buf)},
				Outbound: g.GetArc(buf, g.AirportNode(spoke)),
			}
			if err := checkPairing(fromFar); err != nil {
				return nil, err
			}
			res = append(res, fromFar)
		}
	}
	return res, nil
}

func checkPairing(tp TransferPairing) error {
	if tp.Outbound == nil {
		return &types.TopologyError{Msg: fmt.Sprintf("hub %s is missing an onward transfer leg", tp.Hub)}
	}
	for _, arc := range tp.Inbound {
		if arc == nil {
			return &types.TopologyError{Msg: fmt.Sprintf("hub %s is missing an inbound leg for %s", tp.Hub, tp.Outbound.Name())}
		}
	}
	return nil
}
