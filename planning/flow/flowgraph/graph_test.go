package flowgraph

import (
	"testing"

	"github.com/airnet/netplan/pkg/types"
)

func TestNodeAddArc(t *testing.T) {
	g := New()
	nc := g.NumNodes()

	n0 := g.AddODNode(types.Pair{Origin: "V", Destination: "W"})
	n1 := g.AddAirportNode("W")
	arc := g.AddArc(n0, n1, DirectLeg)

	if g.NumNodes() != nc+2 {
		t.Errorf("number of nodes = %d, want %d", g.NumNodes(), nc+2)
	}
	if g.NumArcs() != 1 {
		t.Errorf("number of arcs = %d, want %d", g.NumArcs(), 1)
	}
	if n0.outgoingArcMap[n1.ID] != arc {
		t.Errorf("n0->n1 = %p, want %p", n0.outgoingArcMap[n1.ID], arc)
	}
	if g.GetArc(n0, n1) != arc {
		t.Errorf("GetArc(n0, n1) = %v, want %v", g.GetArc(n0, n1), arc)
	}
	if g.GetArc(n1, n0) != nil {
		t.Errorf("GetArc(n1, n0) = %v, want nil", g.GetArc(n1, n0))
	}
	if len(n1.IncomingArcs()) != 1 || n1.IncomingArcs()[0] != arc {
		t.Errorf("n1 incoming arcs = %v, want [%v]", n1.IncomingArcs(), arc)
	}
}

func TestArcPhysical(t *testing.T) {
	g := New()
	od := g.AddODNode(types.Pair{Origin: "V", Destination: "H"})
	buf := g.AddHubBufferNode("T")
	far := g.AddAirportNode("H")
	sink := g.AddSinkNode()

	cases := []struct {
		arc          *Arc
		origin, dest types.AirportCode
		ok           bool
	}{
		{g.AddArc(od, buf, HubInbound), "V", "T", true},
		{g.AddArc(buf, far, HubOutbound), "T", "H", true},
		{g.AddArc(od, sink, SinkDischarge), "", "", false},
		{g.AddArc(far, sink, SinkDischarge), "", "", false},
	}
	for _, c := range cases {
		o, d, ok := c.arc.Physical()
		if o != c.origin || d != c.dest || ok != c.ok {
			t.Errorf("%v.Physical() = (%s, %s, %v), want (%s, %s, %v)", c.arc, o, d, ok, c.origin, c.dest, c.ok)
		}
	}
	if name := cases[0].arc.Name(); name != "od_V_H__buf_T" {
		t.Errorf("arc name = %q, want %q", name, "od_V_H__buf_T")
	}
}

func TestReachable(t *testing.T) {
	g := New()
	od := g.AddODNode(types.Pair{Origin: "T", Destination: "M"})
	apt := g.AddAirportNode("M")
	sink := g.AddSinkNode()
	lonely := g.AddAirportNode("X")
	g.AddArc(od, apt, DirectLeg)
	g.AddArc(apt, sink, SinkDischarge)

	r := g.Reachable(od)
	if _, ok := r[sink.ID]; !ok {
		t.Errorf("sink not reachable from %v", od)
	}
	if _, ok := r[lonely.ID]; ok {
		t.Errorf("%v reachable from %v, want unreachable", lonely, od)
	}
}
