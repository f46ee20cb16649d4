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

// Package solver hands an assembled program to a MIP solver and reads the
// assigned values back.
package solver

import (
	"context"
	"fmt"

	"github.com/golang/glog"

	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/lp"
)

// Tolerance used to verify returned assignments.
const CheckTolerance = 1e-6

type Solver interface {
	// Solve returns an optimal or feasible solution. Proven infeasibility and
	// unboundedness are returned as types.ModelInfeasibleError and
	// types.ModelUnboundedError.
	Solve(ctx context.Context, p *lp.Program) (*lp.Solution, error)
	Name() string
}

// New returns the solver registered under name.
func New(name string, cfg Config) (Solver, error) {
	switch name {
	case "cbc", "":
		return NewCBC(cfg), nil
	case "glpk":
		return NewGLPK(cfg), nil
	default:
		return nil, &types.ConfigurationError{Field: "solver.name", Msg: fmt.Sprintf("unknown solver %q", name)}
	}
}

// statusError maps a terminal status onto the error kinds callers match on.
func statusError(p *lp.Program, status lp.Status, detail string) error {
	switch status {
	case lp.Infeasible:
		return &types.ModelInfeasibleError{Program: p.Name, Detail: detail}
	case lp.Unbounded:
		return &types.ModelUnboundedError{Program: p.Name, Detail: detail}
	case lp.Optimal, lp.Feasible:
		return nil
	default:
		return fmt.Errorf("solver: %s: no solution: %s", p.Name, detail)
	}
}

// verify logs every constraint the returned assignment breaks. Solvers work
// to their own tolerances, so violations are reported but not fatal.
func verify(p *lp.Program, sol *lp.Solution) int {
	violations := p.Check(sol.Values, CheckTolerance)
	for i, v := range violations {
		if i == 10 {
			glog.Warningf("solver: %s: %d more violations", p.Name, len(violations)-i)
			break
		}
		glog.Warningf("solver: %s: returned assignment violates %v", p.Name, v)
	}
	return len(violations)
}
