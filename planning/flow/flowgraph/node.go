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

import (
	"github.com/golang/glog"

	"github.com/airnet/netplan/pkg/types"
)

type NodeID uint64

//Enum for flow node type
type NodeType int

const (
	NodeTypeAirport NodeType = iota + 1
	NodeTypeODDemand
	NodeTypeHubBuffer
	NodeTypeSink
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeAirport:
		return "airport"
	case NodeTypeODDemand:
		return "od"
	case NodeTypeHubBuffer:
		return "buffer"
	case NodeTypeSink:
		return "sink"
	default:
		return "unknown"
	}
}

// Represents a node in the expanded routing graph.
type Node struct {
	ID   NodeID
	Type NodeType
	// The airport an airport node stands for, or the hub a buffer node
	// aggregates transfers at. Empty for OD and sink nodes.
	Airport types.AirportCode
	// The ordered pair an OD demand node buckets. Zero for other nodes.
	Pair types.Pair
	// Comment for debugging purposes (used to label special nodes)
	Comment string

	// Outgoing arcs from this node, keyed by destination node
	outgoingArcMap map[NodeID]*Arc
	// Incoming arcs to this node, keyed by source node
	incomingArcMap map[NodeID]*Arc
	// Same arcs in insertion order, so that traversals are deterministic.
	outgoing []*Arc
	incoming []*Arc
}

// True indicates that an insert took place,
// False indicates the key was already present.
func insertIfNotPresent(m map[NodeID]*Arc, k NodeID, val *Arc) bool {
	_, ok := m[k]
	if !ok {
		m[k] = val
	}
	return !ok
}

func (n *Node) addArc(arc *Arc) {
	//Arc must be outgoing from this node
	if arc.Src != n.ID {
		glog.Fatalf("AddArc Error: arc.Src:%v != node:%v", arc.Src, n.ID)
	}
	//Add arc to outgoing arc map from current node, must not already be present
	if !insertIfNotPresent(n.outgoingArcMap, arc.Dst, arc) {
		glog.Fatalf("AddArc Error: arc:%v already present in node:%v outgoingArcMap", arc, n.ID)
	}
	//Add arc to incoming arc map at dst node, must not already be present
	if !insertIfNotPresent(arc.DstNode.incomingArcMap, arc.Src, arc) {
		glog.Fatalf("AddArc Error: arc:%v already present in node:%v incomingArcMap", arc, arc.DstNode.ID)
	}
	n.outgoing = append(n.outgoing, arc)
	arc.DstNode.incoming = append(arc.DstNode.incoming, arc)
}

// OutgoingArcs returns the arcs leaving n in insertion order. The slice
// must not be modified.
func (n *Node) OutgoingArcs() []*Arc {
	return n.outgoing
}

// IncomingArcs returns the arcs entering n in insertion order. The slice
// must not be modified.
func (n *Node) IncomingArcs() []*Arc {
	return n.incoming
}

func (n *Node) IsSink() bool {
	return n.Type == NodeTypeSink
}

func (n *Node) IsHubBuffer() bool {
	return n.Type == NodeTypeHubBuffer
}

func (n *Node) IsODDemand() bool {
	return n.Type == NodeTypeODDemand
}

func (n *Node) IsAirport() bool {
	return n.Type == NodeTypeAirport
}

// Name returns a stable identifier that is safe to embed in solver variable
// and constraint names.
func (n *Node) Name() string {
	switch n.Type {
	case NodeTypeAirport:
		return "apt_" + string(n.Airport)
	case NodeTypeHubBuffer:
		return "buf_" + string(n.Airport)
	case NodeTypeODDemand:
		return "od_" + string(n.Pair.Origin) + "_" + string(n.Pair.Destination)
	case NodeTypeSink:
		return "sink"
	default:
		glog.Fatalf("Unknown node type: %v", n.Type)
	}
	return ""
}

func (n *Node) String() string {
	return n.Name()
}
