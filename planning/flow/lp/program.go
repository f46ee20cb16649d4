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

// Package lp holds a solver-independent mixed-integer linear program:
// bounded variables, linear constraints and a linear objective.
package lp

import (
	"math"
	"strings"

	"github.com/golang/glog"
)

type VarID int

type VarType int

const (
	Continuous VarType = iota
	Integer
)

func (t VarType) String() string {
	if t == Integer {
		return "integer"
	}
	return "continuous"
}

// Var is a decision variable. Upper is +Inf when unbounded.
type Var struct {
	ID    VarID
	Name  string
	Type  VarType
	Lower float64
	Upper float64
}

type Sense int

const (
	LE Sense = iota + 1
	GE
	EQ
)

func (s Sense) String() string {
	switch s {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "?"
	}
}

// Constraint is Expr Sense RHS. Family groups constraints that come from
// the same rule, for statistics and debugging.
type Constraint struct {
	Name   string
	Family string
	Expr   Expr
	Sense  Sense
	RHS    float64
}

type Program struct {
	Name     string
	Maximize bool
	// Objective constant terms are not supported; the objective is Objective.Eval.
	Objective Expr

	vars        []Var
	varIndex    map[string]VarID
	constraints []Constraint
	conIndex    map[string]int
}

func NewProgram(name string, maximize bool) *Program {
	return &Program{
		Name:     name,
		Maximize: maximize,
		varIndex: make(map[string]VarID),
		conIndex: make(map[string]int),
	}
}

// AddVar declares a variable. Names must be unique within the program.
func (p *Program) AddVar(name string, typ VarType, lower, upper float64) VarID {
	if !ValidName(name) {
		glog.Fatalf("lp: %q is not a valid variable name", name)
	}
	if _, ok := p.varIndex[name]; ok {
		glog.Fatalf("lp: variable %s already declared", name)
	}
	if lower > upper {
		glog.Fatalf("lp: variable %s has lower bound %v above upper bound %v", name, lower, upper)
	}
	id := VarID(len(p.vars))
	p.vars = append(p.vars, Var{ID: id, Name: name, Type: typ, Lower: lower, Upper: upper})
	p.varIndex[name] = id
	return id
}

// AddNonNegative declares a variable on [0, +Inf).
func (p *Program) AddNonNegative(name string, typ VarType) VarID {
	return p.AddVar(name, typ, 0, math.Inf(1))
}

func (p *Program) SetUpper(id VarID, upper float64) {
	v := &p.vars[id]
	if upper < v.Lower {
		glog.Fatalf("lp: upper bound %v below lower bound %v on %s", upper, v.Lower, v.Name)
	}
	v.Upper = upper
}

func (p *Program) SetLower(id VarID, lower float64) {
	v := &p.vars[id]
	if lower > v.Upper {
		glog.Fatalf("lp: lower bound %v above upper bound %v on %s", lower, v.Upper, v.Name)
	}
	v.Lower = lower
}

func (p *Program) Var(id VarID) Var {
	return p.vars[id]
}

func (p *Program) VarByName(name string) (VarID, bool) {
	id, ok := p.varIndex[name]
	return id, ok
}

// Vars returns the variables in declaration order. The slice must not be modified.
func (p *Program) Vars() []Var {
	return p.vars
}

func (p *Program) NumVars() int {
	return len(p.vars)
}

// AddConstraint appends a constraint. The expression is normalized so that
// every variable appears at most once.
func (p *Program) AddConstraint(c Constraint) {
	if !ValidName(c.Name) {
		glog.Fatalf("lp: %q is not a valid constraint name", c.Name)
	}
	if _, ok := p.conIndex[c.Name]; ok {
		glog.Fatalf("lp: constraint %s already present", c.Name)
	}
	for _, t := range c.Expr {
		if int(t.Var) >= len(p.vars) || t.Var < 0 {
			glog.Fatalf("lp: constraint %s references undeclared variable %d", c.Name, t.Var)
		}
	}
	c.Expr = c.Expr.Normalize()
	p.conIndex[c.Name] = len(p.constraints)
	p.constraints = append(p.constraints, c)
}

// Constraints returns constraints in insertion order. The slice must not be modified.
func (p *Program) Constraints() []Constraint {
	return p.constraints
}

func (p *Program) NumConstraints() int {
	return len(p.constraints)
}

func (p *Program) ConstraintByName(name string) (Constraint, bool) {
	i, ok := p.conIndex[name]
	if !ok {
		return Constraint{}, false
	}
	return p.constraints[i], true
}

// IsMIP reports whether any variable is integer.
func (p *Program) IsMIP() bool {
	for _, v := range p.vars {
		if v.Type == Integer {
			return true
		}
	}
	return false
}

// Evaluate evaluates the objective at values, indexed by VarID.
func (p *Program) Evaluate(values []float64) float64 {
	return p.Objective.Eval(values)
}

// Symbols allowed in a name besides letters and digits.
const nameSymbols = "!\"#$%&()/,.;?@_`'{}|~"

// ValidName reports whether s can name a row or column in an LP file: one
// to 255 letters, digits or nameSymbols, not starting with a digit or '.'.
func ValidName(s string) bool {
	if s == "" || len(s) > 255 {
		return false
	}
	if c := s[0]; (c >= '0' && c <= '9') || c == '.' {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune(nameSymbols, c):
		default:
			return false
		}
	}
	return true
}
