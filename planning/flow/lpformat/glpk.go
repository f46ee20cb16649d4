package lpformat

import (
	"math"

	"github.com/lukpank/go-glpk/glpk"

	"github.com/airnet/netplan/planning/flow/lp"
)

// Load builds the GLPK problem for p. Column j+1 holds variable j and row
// i+1 holds constraint i.
//
// GLPK keeps its environment per OS thread: the caller must lock the
// goroutine to its thread and Delete the problem before unlocking.
func Load(p *lp.Program) *glpk.Prob {
	prob := glpk.New()
	prob.SetProbName(p.Name)
	prob.SetObjName("obj")
	if p.Maximize {
		prob.SetObjDir(glpk.MAX)
	} else {
		prob.SetObjDir(glpk.MIN)
	}

	if n := p.NumVars(); n > 0 {
		prob.AddCols(n)
	}
	for _, v := range p.Vars() {
		j := col(v.ID)
		prob.SetColName(j, v.Name)
		if v.Type == lp.Integer {
			prob.SetColKind(j, glpk.IV)
		} else {
			prob.SetColKind(j, glpk.CV)
		}
		typ, lb, ub := bounds(v.Lower, v.Upper)
		prob.SetColBnds(j, typ, lb, ub)
	}
	for _, t := range p.Objective.Normalize() {
		prob.SetObjCoef(col(t.Var), t.Coef)
	}

	if m := p.NumConstraints(); m > 0 {
		prob.AddRows(m)
	}
	for i, c := range p.Constraints() {
		row := i + 1
		prob.SetRowName(row, c.Name)
		switch c.Sense {
		case lp.LE:
			prob.SetRowBnds(row, glpk.UP, 0, c.RHS)
		case lp.GE:
			prob.SetRowBnds(row, glpk.LO, c.RHS, 0)
		case lp.EQ:
			prob.SetRowBnds(row, glpk.FX, c.RHS, c.RHS)
		}
		// GLPK reads both slices from index 1.
		ind := make([]int32, 1, len(c.Expr)+1)
		val := make([]float64, 1, len(c.Expr)+1)
		for _, t := range c.Expr {
			ind = append(ind, int32(col(t.Var)))
			val = append(val, t.Coef)
		}
		prob.SetMatRow(row, ind, val)
	}
	return prob
}

func col(id lp.VarID) int {
	return int(id) + 1
}

func bounds(lower, upper float64) (glpk.BndsType, float64, float64) {
	switch lo, up := !math.IsInf(lower, -1), !math.IsInf(upper, 1); {
	case !lo && !up:
		return glpk.FR, 0, 0
	case !up:
		return glpk.LO, lower, 0
	case !lo:
		return glpk.UP, 0, upper
	case lower == upper:
		return glpk.FX, lower, upper
	default:
		return glpk.DB, lower, upper
	}
}
