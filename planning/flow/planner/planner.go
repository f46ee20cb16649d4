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

// Package planner runs one planning pass: build the network graph, assemble
// the program, hand it to a solver and expose the result keyed by arc, day
// and airport.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/airnet/netplan/pkg/metrics"
	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/assembler"
	"github.com/airnet/netplan/planning/flow/costmodel"
	"github.com/airnet/netplan/planning/flow/solver"
	"github.com/airnet/netplan/planning/flow/topology"
)

type Planner struct {
	network types.Network
	cm      costmodel.CostModel
	solver  solver.Solver
	opts    assembler.Options
}

// New returns a planner. s may be nil for a planner that only assembles.
func New(network types.Network, cm costmodel.CostModel, s solver.Solver, opts assembler.Options) *Planner {
	metrics.RegisterDefault()
	return &Planner{
		network: network,
		cm:      cm,
		solver:  s,
		opts:    opts,
	}
}

// SetInitialFleet pins the day 0 positions of the next run, typically the
// terminal positions of the previous plan.
func (pl *Planner) SetInitialFleet(initial map[types.AirportCode]int) {
	pl.opts.InitialFleet = initial
}

// Assemble builds the graph and program without solving.
func (pl *Planner) Assemble(schedule types.DemandSchedule, fares types.FareMatrix) (*assembler.Model, error) {
	start := time.Now()
	g, err := topology.Build(pl.network)
	if err != nil {
		return nil, fmt.Errorf("planner: build topology: %w", err)
	}
	observe("topology", start)

	start = time.Now()
	m, err := assembler.Assemble(g, pl.network, schedule, fares, pl.cm, pl.opts)
	if err != nil {
		return nil, fmt.Errorf("planner: assemble: %w", err)
	}
	observe("assemble", start)

	s := m.Program.Stats()
	metrics.ProgramSize.WithLabelValues("variables").Set(float64(s.Vars))
	metrics.ProgramSize.WithLabelValues("integer_variables").Set(float64(s.IntegerVars))
	metrics.ProgramSize.WithLabelValues("constraints").Set(float64(s.Constraints))
	glog.Infof("planner: assembled %s over %d days with %s cost model: %v", m.Program.Name, m.Horizon, pl.cm.Type(), s)
	if glog.V(2) {
		glog.Infof("planner: cost model: %s", pl.cm.DebugInfo())
	}
	return m, nil
}

// Plan assembles and solves. Infeasible and unbounded programs come back as
// types.ModelInfeasibleError and types.ModelUnboundedError.
func (pl *Planner) Plan(ctx context.Context, schedule types.DemandSchedule, fares types.FareMatrix) (*Plan, error) {
	if pl.solver == nil {
		return nil, &types.ConfigurationError{Field: "solver.name", Msg: "no solver configured"}
	}
	m, err := pl.Assemble(schedule, fares)
	if err != nil {
		metrics.PlanRuns.WithLabelValues(pl.solver.Name(), "invalid").Inc()
		return nil, err
	}

	start := time.Now()
	sol, err := pl.solver.Solve(ctx, m.Program)
	observe("solve", start)
	if err != nil {
		metrics.PlanRuns.WithLabelValues(pl.solver.Name(), outcome(err)).Inc()
		return nil, fmt.Errorf("planner: %s: %w", pl.solver.Name(), err)
	}
	if len(sol.Values) != m.Program.NumVars() {
		metrics.PlanRuns.WithLabelValues(pl.solver.Name(), "error").Inc()
		return nil, fmt.Errorf("planner: %s returned %d values for %d variables", pl.solver.Name(), len(sol.Values), m.Program.NumVars())
	}
	metrics.PlanRuns.WithLabelValues(pl.solver.Name(), sol.Status.String()).Inc()

	plan := &Plan{Model: m, Solution: sol, Solver: pl.solver.Name(), fares: fares}
	plan.record()
	glog.Infof("planner: %s: %v objective %.2f, %d departures", m.Program.Name, sol.Status, plan.Objective(), plan.TotalDepartures())
	return plan, nil
}

func observe(phase string, start time.Time) {
	metrics.PhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

func outcome(err error) string {
	var infeasible *types.ModelInfeasibleError
	var unbounded *types.ModelUnboundedError
	switch {
	case errors.As(err, &infeasible):
		return "infeasible"
	case errors.As(err, &unbounded):
		return "unbounded"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
