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
	"github.com/airnet/netplan/pkg/util/idgenerator"
	"github.com/airnet/netplan/pkg/util/queue"
)

// Graph is the expanded routing graph for one day. Node and arc order is
// insertion order, so two graphs built from the same input compare equal.
type Graph struct {
	ids idgenerator.IDGen
	// Map of nodes keyed by nodeID
	nodeMap map[NodeID]*Node
	nodes   []*Node
	arcs    []*Arc

	sink     *Node
	airports map[types.AirportCode]*Node
	buffers  map[types.AirportCode]*Node
	odNodes  map[types.Pair]*Node
}

func New() *Graph {
	return &Graph{
		ids:      idgenerator.New(),
		nodeMap:  make(map[NodeID]*Node),
		airports: make(map[types.AirportCode]*Node),
		buffers:  make(map[types.AirportCode]*Node),
		odNodes:  make(map[types.Pair]*Node),
	}
}

func (g *Graph) addNode(typ NodeType, comment string) *Node {
	id := NodeID(g.ids.NextID())
	node := &Node{
		ID:             id,
		Type:           typ,
		Comment:        comment,
		incomingArcMap: make(map[NodeID]*Arc),
		outgoingArcMap: make(map[NodeID]*Arc),
	}
	// Insert into nodeMap, must not already be present
	if _, ok := g.nodeMap[id]; ok {
		glog.Fatalf("graph: AddNode error, node with id:%d already present in nodeMap", id)
	}
	g.nodeMap[id] = node
	g.nodes = append(g.nodes, node)
	return node
}

func (g *Graph) AddAirportNode(code types.AirportCode) *Node {
	if _, ok := g.airports[code]; ok {
		glog.Fatalf("graph: airport node %s already present", code)
	}
	n := g.addNode(NodeTypeAirport, "airport "+string(code))
	n.Airport = code
	g.airports[code] = n
	return n
}

func (g *Graph) AddHubBufferNode(hub types.AirportCode) *Node {
	if _, ok := g.buffers[hub]; ok {
		glog.Fatalf("graph: buffer node for hub %s already present", hub)
	}
	n := g.addNode(NodeTypeHubBuffer, "transfer buffer at "+string(hub))
	n.Airport = hub
	g.buffers[hub] = n
	return n
}

func (g *Graph) AddODNode(p types.Pair) *Node {
	if _, ok := g.odNodes[p]; ok {
		glog.Fatalf("graph: OD node %s already present", p)
	}
	n := g.addNode(NodeTypeODDemand, "demand "+p.String())
	n.Pair = p
	g.odNodes[p] = n
	return n
}

func (g *Graph) AddSinkNode() *Node {
	if g.sink != nil {
		glog.Fatalf("graph: sink node already present with id:%d", g.sink.ID)
	}
	g.sink = g.addNode(NodeTypeSink, "sink")
	return g.sink
}

// Adds an arc based on references to the src and dst nodes
func (g *Graph) AddArc(src, dst *Node, kind ArcKind) *Arc {
	srcNode := g.nodeMap[src.ID]
	if srcNode == nil {
		glog.Fatalf("graph: AddArc error, src node with id:%d not found", src.ID)
	}
	dstNode := g.nodeMap[dst.ID]
	if dstNode == nil {
		glog.Fatalf("graph: AddArc error, dst node with id:%d not found", dst.ID)
	}
	arc := NewArc(srcNode, dstNode, kind)
	srcNode.addArc(arc)
	g.arcs = append(g.arcs, arc)
	return arc
}

// Returns nil if arc not found
func (g *Graph) GetArc(src, dst *Node) *Arc {
	if src == nil || dst == nil {
		return nil
	}
	return src.outgoingArcMap[dst.ID]
}

func (g *Graph) Node(id NodeID) *Node {
	return g.nodeMap[id]
}

func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumArcs() int {
	return len(g.arcs)
}

// Nodes returns all nodes in id order. The slice must not be modified.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Arcs returns all arcs in insertion order. The slice must not be modified.
func (g *Graph) Arcs() []*Arc {
	return g.arcs
}

func (g *Graph) Sink() *Node {
	return g.sink
}

func (g *Graph) AirportNode(code types.AirportCode) *Node {
	return g.airports[code]
}

func (g *Graph) HubBufferNode(hub types.AirportCode) *Node {
	return g.buffers[hub]
}

func (g *Graph) ODNode(p types.Pair) *Node {
	return g.odNodes[p]
}

// Reachable returns the ids of every node reachable from start, start included.
func (g *Graph) Reachable(start *Node) map[NodeID]struct{} {
	visited := map[NodeID]struct{}{start.ID: {}}
	toVisit := queue.NewFIFO[*Node]()
	toVisit.Push(start)
	for !toVisit.IsEmpty() {
		n := toVisit.Pop()
		for _, arc := range n.outgoing {
			if _, ok := visited[arc.Dst]; ok {
				continue
			}
			visited[arc.Dst] = struct{}{}
			toVisit.Push(arc.DstNode)
		}
	}
	return visited
}
