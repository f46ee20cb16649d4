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

// Package topology builds the expanded routing graph for the fixed
// two-hub network. The far spoke has no direct service to the two spokes,
// so travel between them is routed through a transfer buffer at each hub.
package topology

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/flowgraph"
)

// Build constructs the node and arc sets for one day. It is deterministic:
// the same network always yields the same node ids and arc order.
func Build(network types.Network) (*flowgraph.Graph, error) {
	if err := ValidateNetwork(network); err != nil {
		return nil, err
	}

	g := flowgraph.New()
	airports := network.Airports()
	for _, code := range airports {
		g.AddAirportNode(code)
	}
	for _, hub := range network.Hubs {
		g.AddHubBufferNode(hub)
	}
	sink := g.AddSinkNode()

	// Every airport discharges into the sink.
	for _, code := range airports {
		g.AddArc(g.AirportNode(code), sink, flowgraph.SinkDischarge)
	}

	for _, p := range network.Pairs() {
		od := g.AddODNode(p)
		dst := g.AirportNode(p.Destination)
		if network.RequiresTransfer(p) {
			inKind, outKind := flowgraph.HubInbound, flowgraph.HubOutbound
			if network.IsFarSpoke(p.Origin) {
				inKind, outKind = flowgraph.OriginToBuffer, flowgraph.BufferToDestination
			}
			for _, hub := range network.Hubs {
				buf := g.HubBufferNode(hub)
				g.AddArc(od, buf, inKind)
				// Both spokes share the onward leg to the far spoke.
				if g.GetArc(buf, dst) == nil {
					g.AddArc(buf, dst, outKind)
				}
			}
		} else {
			g.AddArc(od, dst, flowgraph.DirectLeg)
		}
		g.AddArc(od, sink, flowgraph.SinkDischarge)
	}

	glog.V(2).Infof("topology: built %d nodes and %d arcs for hubs %v, far spoke %s",
		g.NumNodes(), g.NumArcs(), network.Hubs, network.FarSpoke)
	return g, nil
}

// ValidateNetwork checks that the network has exactly five distinct,
// non-empty airport codes in the expected roles.
func ValidateNetwork(network types.Network) error {
	seen := make(map[types.AirportCode]bool, 5)
	for _, code := range network.Airports() {
		if code == "" {
			return &types.TopologyError{Msg: "network has an empty airport code"}
		}
		if seen[code] {
			return &types.TopologyError{Msg: fmt.Sprintf("airport %s appears in more than one role", code)}
		}
		seen[code] = true
	}
	return nil
}

// Validate checks a built graph against the network: every OD node can
// discharge into the sink, and every flight arc touches only network airports.
func Validate(g *flowgraph.Graph, network types.Network) error {
	sink := g.Sink()
	if sink == nil {
		return &types.TopologyError{Msg: "graph has no sink node"}
	}
	for _, n := range g.Nodes() {
		if !n.IsODDemand() {
			continue
		}
		if _, ok := g.Reachable(n)[sink.ID]; !ok {
			return &types.TopologyError{Msg: fmt.Sprintf("demand node %s cannot reach the sink", n)}
		}
	}
	for _, arc := range g.Arcs() {
		o, d, ok := arc.Physical()
		if !ok {
			continue
		}
		if !network.Contains(o) || !network.Contains(d) {
			return &types.TopologyError{Msg: fmt.Sprintf("arc %v references an airport outside the network", arc)}
		}
		if o == d {
			return &types.TopologyError{Msg: fmt.Sprintf("arc %v departs and arrives at %s", arc, o)}
		}
	}
	return nil
}
