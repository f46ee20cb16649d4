package assembler

import (
	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/flowgraph"
	"github.com/airnet/netplan/planning/flow/lp"
)

type arcDay struct {
	src, dst flowgraph.NodeID
	day      types.Day
}

func keyOf(arc *flowgraph.Arc, day types.Day) arcDay {
	return arcDay{src: arc.Src, dst: arc.Dst, day: day}
}

// VarMapping holds one variable per (arc, day).
type VarMapping map[arcDay]lp.VarID

func (vm VarMapping) Insert(arc *flowgraph.Arc, day types.Day, id lp.VarID) {
	vm[keyOf(arc, day)] = id
}

func (vm VarMapping) Get(arc *flowgraph.Arc, day types.Day) (lp.VarID, bool) {
	if arc == nil {
		return 0, false
	}
	id, ok := vm[keyOf(arc, day)]
	return id, ok
}
