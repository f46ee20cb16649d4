package lp

import (
	"fmt"
	"math"
)

type Status int

const (
	NotSolved Status = iota
	Optimal
	Infeasible
	Unbounded
	// A feasible but unproven incumbent, e.g. after a node limit.
	Feasible
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	case Feasible:
		return "feasible"
	default:
		return "not solved"
	}
}

// Solution is the result of solving a Program. Values is indexed by VarID.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
}

func (s *Solution) Value(id VarID) float64 {
	if int(id) >= len(s.Values) {
		return 0
	}
	return s.Values[id]
}

// Violation names one bound, integrality or constraint that an
// assignment breaks.
type Violation struct {
	Name   string
	Detail string
}

func (v Violation) String() string {
	return v.Name + ": " + v.Detail
}

// Check evaluates every bound, integrality requirement and constraint of p
// at values and reports each one that is violated by more than tol.
func (p *Program) Check(values []float64, tol float64) []Violation {
	var res []Violation
	if len(values) != len(p.vars) {
		return []Violation{{Name: p.Name, Detail: fmt.Sprintf("%d values for %d variables", len(values), len(p.vars))}}
	}
	for _, v := range p.vars {
		x := values[v.ID]
		if x < v.Lower-tol {
			res = append(res, Violation{Name: v.Name, Detail: fmt.Sprintf("value %v below lower bound %v", x, v.Lower)})
		}
		if x > v.Upper+tol {
			res = append(res, Violation{Name: v.Name, Detail: fmt.Sprintf("value %v above upper bound %v", x, v.Upper)})
		}
		if v.Type == Integer && math.Abs(x-math.Round(x)) > tol {
			res = append(res, Violation{Name: v.Name, Detail: fmt.Sprintf("value %v is not integral", x)})
		}
	}
	for _, c := range p.constraints {
		lhs := c.Expr.Eval(values)
		ok := true
		switch c.Sense {
		case LE:
			ok = lhs <= c.RHS+tol
		case GE:
			ok = lhs >= c.RHS-tol
		case EQ:
			ok = math.Abs(lhs-c.RHS) <= tol
		}
		if !ok {
			res = append(res, Violation{Name: c.Name, Detail: fmt.Sprintf("%v %s %v does not hold", lhs, c.Sense, c.RHS)})
		}
	}
	return res
}
