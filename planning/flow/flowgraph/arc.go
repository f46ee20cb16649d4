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

package flowgraph

import "github.com/airnet/netplan/pkg/types"

//Enum for flow arc type
type ArcKind int

const (
	// Physical flight from an OD node's origin to the destination airport.
	DirectLeg ArcKind = iota + 1
	// Airport or OD node into the sink. Absorbs delivered and unserved demand.
	SinkDischarge
	// Spoke OD node into a hub buffer, toward the far spoke.
	HubInbound
	// Hub buffer onward to the far spoke.
	HubOutbound
	// Far spoke OD node into a hub buffer, toward a spoke.
	OriginToBuffer
	// Hub buffer onward to a spoke.
	BufferToDestination
)

func (k ArcKind) String() string {
	switch k {
	case DirectLeg:
		return "DirectLeg"
	case SinkDischarge:
		return "SinkDischarge"
	case HubInbound:
		return "HubInbound"
	case HubOutbound:
		return "HubOutbound"
	case OriginToBuffer:
		return "OriginToBuffer"
	case BufferToDestination:
		return "BufferToDestination"
	default:
		return "Unknown"
	}
}

// Represents an arc in the routing flow graph. The same arc is reused for
// every day of the horizon; per-day quantities live in the program.
type Arc struct {
	Src     NodeID
	Dst     NodeID
	SrcNode *Node
	DstNode *Node

	Kind ArcKind
}

// Constructor equivalent in go
func NewArc(srcNode, dstNode *Node, kind ArcKind) *Arc {
	return &Arc{
		Src:     srcNode.ID,
		Dst:     dstNode.ID,
		SrcNode: srcNode,
		DstNode: dstNode,
		Kind:    kind,
	}
}

func (a *Arc) TouchesSink() bool {
	return a.SrcNode.IsSink() || a.DstNode.IsSink()
}

func (a *Arc) TouchesBuffer() bool {
	return a.SrcNode.IsHubBuffer() || a.DstNode.IsHubBuffer()
}

// Physical returns the airports a flight on this arc departs from and
// arrives at. ok is false for arcs into the sink, which are not flights.
func (a *Arc) Physical() (origin, destination types.AirportCode, ok bool) {
	if a.TouchesSink() {
		return "", "", false
	}
	switch a.SrcNode.Type {
	case NodeTypeODDemand:
		origin = a.SrcNode.Pair.Origin
	case NodeTypeHubBuffer, NodeTypeAirport:
		origin = a.SrcNode.Airport
	}
	switch a.DstNode.Type {
	case NodeTypeAirport, NodeTypeHubBuffer:
		destination = a.DstNode.Airport
	}
	if origin == "" || destination == "" {
		return "", "", false
	}
	return origin, destination, true
}

// Name is unique per (tail, head) pair.
func (a *Arc) Name() string {
	return a.SrcNode.Name() + "__" + a.DstNode.Name()
}

func (a *Arc) String() string {
	return a.Name() + "(" + a.Kind.String() + ")"
}
