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

package solver

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/golang/glog"
	"github.com/lukpank/go-glpk/glpk"

	"github.com/airnet/netplan/planning/flow/lp"
	"github.com/airnet/netplan/planning/flow/lpformat"
)

// glpkSolver solves in process with GLPK: primal simplex on the relaxation,
// then branch and cut when the program has integer variables.
type glpkSolver struct {
	cfg Config
}

func NewGLPK(cfg Config) *glpkSolver {
	return &glpkSolver{cfg: cfg}
}

func (gs *glpkSolver) Name() string {
	return "glpk"
}

type glpkResult struct {
	sol *lp.Solution
	err error
}

// Solve runs GLPK on its own goroutine and returns when it finishes or ctx
// is done. GLPK cannot be interrupted, so an abandoned solve runs to
// completion in the background and then frees its problem.
func (gs *glpkSolver) Solve(ctx context.Context, p *lp.Program) (*lp.Solution, error) {
	if gs.cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gs.cfg.TimeLimit)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("glpk: %w", err)
	}

	start := time.Now()
	done := make(chan glpkResult, 1)
	go func() {
		sol, err := solveGLPK(p)
		done <- glpkResult{sol, err}
	}()

	select {
	case <-ctx.Done():
		glog.Warningf("glpk: %s: abandoned after %v", p.Name, time.Since(start))
		return nil, fmt.Errorf("glpk: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		verify(p, r.sol)
		glog.V(1).Infof("glpk: %s: %s objective %v in %v", p.Name, r.sol.Status, r.sol.Objective, time.Since(start))
		return r.sol, nil
	}
}

func solveGLPK(p *lp.Program) (*lp.Solution, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	prob := lpformat.Load(p)
	defer prob.Delete()

	smcp := glpk.NewSmcp()
	smcp.SetMsgLev(glpk.MSG_OFF)
	if err := prob.Simplex(smcp); err != nil {
		return nil, fmt.Errorf("glpk: %s: simplex: %w", p.Name, err)
	}
	switch st := prob.Status(); st {
	case glpk.OPT:
	case glpk.NOFEAS:
		return nil, statusError(p, lp.Infeasible, "LP relaxation has no feasible solution")
	case glpk.UNBND:
		return nil, statusError(p, lp.Unbounded, "LP relaxation is unbounded")
	default:
		return nil, statusError(p, lp.NotSolved, fmt.Sprintf("simplex ended with status %d", st))
	}

	values := make([]float64, p.NumVars())
	status := lp.Optimal
	if !p.IsMIP() {
		for j := range values {
			values[j] = prob.ColPrim(j + 1)
		}
		return &lp.Solution{Status: status, Values: values, Objective: p.Evaluate(values)}, nil
	}

	// The simplex above leaves an optimal basis, so the MIP presolver is not needed.
	iocp := glpk.NewIocp()
	iocp.SetPresolve(false)
	iocp.SetMsgLev(glpk.MSG_OFF)
	err := prob.Intopt(iocp)
	switch st := prob.MipStatus(); {
	case st == glpk.OPT && err == nil:
	case st == glpk.OPT || st == glpk.FEAS:
		glog.Warningf("glpk: %s: branch and cut stopped early: %v", p.Name, err)
		status = lp.Feasible
	case st == glpk.NOFEAS:
		return nil, statusError(p, lp.Infeasible, "no integer feasible solution")
	case err != nil:
		return nil, fmt.Errorf("glpk: %s: intopt: %w", p.Name, err)
	default:
		return nil, statusError(p, lp.NotSolved, fmt.Sprintf("branch and cut ended with status %d", st))
	}
	for _, v := range p.Vars() {
		x := prob.MipColVal(int(v.ID) + 1)
		if v.Type == lp.Integer {
			x = math.Round(x)
		}
		values[v.ID] = x
	}
	return &lp.Solution{Status: status, Values: values, Objective: p.Evaluate(values)}, nil
}
