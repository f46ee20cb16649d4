package lp

import (
	"fmt"
	"sort"
	"strings"
)

type Term struct {
	Var  VarID
	Coef float64
}

// Expr is a linear expression. A variable may appear in several terms
// until the expression is normalized.
type Expr []Term

// Add appends coef*v and returns the extended expression.
func (e Expr) Add(v VarID, coef float64) Expr {
	return append(e, Term{Var: v, Coef: coef})
}

// Plus appends every term of o.
func (e Expr) Plus(o Expr) Expr {
	return append(e, o...)
}

// Scale returns a copy with every coefficient multiplied by k.
func (e Expr) Scale(k float64) Expr {
	res := make(Expr, len(e))
	for i, t := range e {
		res[i] = Term{Var: t.Var, Coef: t.Coef * k}
	}
	return res
}

// Normalize merges repeated variables, drops zero coefficients and orders
// terms by variable id.
func (e Expr) Normalize() Expr {
	coefs := make(map[VarID]float64, len(e))
	for _, t := range e {
		coefs[t.Var] += t.Coef
	}
	res := make(Expr, 0, len(coefs))
	for v, c := range coefs {
		if c != 0 {
			res = append(res, Term{Var: v, Coef: c})
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Var < res[j].Var })
	return res
}

// Coef returns the total coefficient of v.
func (e Expr) Coef(v VarID) float64 {
	c := 0.0
	for _, t := range e {
		if t.Var == v {
			c += t.Coef
		}
	}
	return c
}

func (e Expr) Eval(values []float64) float64 {
	sum := 0.0
	for _, t := range e {
		sum += t.Coef * values[t.Var]
	}
	return sum
}

// Format renders the expression with variable names from p.
func (e Expr) Format(p *Program) string {
	if len(e) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range e {
		c := t.Coef
		switch {
		case i == 0 && c < 0:
			sb.WriteString("- ")
			c = -c
		case i > 0 && c < 0:
			sb.WriteString(" - ")
			c = -c
		case i > 0:
			sb.WriteString(" + ")
		}
		if c != 1 {
			fmt.Fprintf(&sb, "%s ", formatNumber(c))
		}
		sb.WriteString(p.vars[t.Var].Name)
	}
	return sb.String()
}

func formatNumber(f float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.10g", f), ".0")
}
