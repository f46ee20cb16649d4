package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/lp"
)

func TestGLPKLP(t *testing.T) {
	p := lp.NewProgram("lp", true)
	x := p.AddVar("x", lp.Continuous, 0, 3)
	y := p.AddNonNegative("y", lp.Continuous)
	p.Objective = lp.Expr{}.Add(x, 3).Add(y, 2)
	p.AddConstraint(lp.Constraint{Name: "c1", Expr: lp.Expr{}.Add(x, 1).Add(y, 1), Sense: lp.LE, RHS: 4})
	p.AddConstraint(lp.Constraint{Name: "c2", Expr: lp.Expr{}.Add(x, 1).Add(y, 3), Sense: lp.LE, RHS: 6})

	sol, err := NewGLPK(Config{}).Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, lp.Optimal, sol.Status)
	assert.InDelta(t, 11, sol.Objective, 1e-6)
	assert.InDelta(t, 3, sol.Value(x), 1e-6)
	assert.InDelta(t, 1, sol.Value(y), 1e-6)
}

func TestGLPKMIP(t *testing.T) {
	p := lp.NewProgram("mip", true)
	x := p.AddNonNegative("x", lp.Integer)
	y := p.AddNonNegative("y", lp.Integer)
	p.Objective = lp.Expr{}.Add(x, 5).Add(y, 4)
	p.AddConstraint(lp.Constraint{Name: "c1", Expr: lp.Expr{}.Add(x, 6).Add(y, 4), Sense: lp.LE, RHS: 24})
	p.AddConstraint(lp.Constraint{Name: "c2", Expr: lp.Expr{}.Add(x, 1).Add(y, 2), Sense: lp.LE, RHS: 6})

	sol, err := NewGLPK(Config{}).Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, lp.Optimal, sol.Status)
	assert.InDelta(t, 20, sol.Objective, 1e-6)
	assert.Equal(t, 4.0, sol.Value(x))
	assert.Equal(t, 0.0, sol.Value(y))
	assert.Empty(t, p.Check(sol.Values, 1e-6))
}

func TestGLPKMinimizeWithEquality(t *testing.T) {
	p := lp.NewProgram("min", false)
	x := p.AddNonNegative("x", lp.Integer)
	y := p.AddNonNegative("y", lp.Integer)
	z := p.AddNonNegative("z", lp.Continuous)
	p.Objective = lp.Expr{}.Add(x, 1).Add(y, 1).Add(z, 1)
	p.AddConstraint(lp.Constraint{Name: "cover", Expr: lp.Expr{}.Add(x, 1).Add(y, 2), Sense: lp.GE, RHS: 3})
	p.AddConstraint(lp.Constraint{Name: "tie", Expr: lp.Expr{}.Add(z, 1).Add(x, -1), Sense: lp.EQ, RHS: 0})

	sol, err := NewGLPK(Config{}).Solve(context.Background(), p)
	require.NoError(t, err)
	// z follows x, so covering with y alone is cheapest.
	assert.InDelta(t, 2, sol.Objective, 1e-6)
	assert.Equal(t, 0.0, sol.Value(x))
	assert.Equal(t, 2.0, sol.Value(y))
	assert.Empty(t, p.Check(sol.Values, 1e-6))
}

func TestGLPKFixedAndUnusedVariables(t *testing.T) {
	p := lp.NewProgram("fixed", true)
	x := p.AddVar("x", lp.Integer, 2, 2)
	y := p.AddNonNegative("y", lp.Continuous)
	idle := p.AddNonNegative("idle", lp.Integer)
	p.Objective = lp.Expr{}.Add(x, 1).Add(y, 1).Add(idle, -1)
	p.AddConstraint(lp.Constraint{Name: "c", Expr: lp.Expr{}.Add(x, 1).Add(y, 1), Sense: lp.LE, RHS: 5})

	sol, err := NewGLPK(Config{}).Solve(context.Background(), p)
	require.NoError(t, err)
	assert.InDelta(t, 5, sol.Objective, 1e-6)
	assert.Equal(t, 2.0, sol.Value(x))
	assert.Equal(t, 0.0, sol.Value(idle))
}

func TestGLPKInfeasible(t *testing.T) {
	p := lp.NewProgram("infeasible", true)
	x := p.AddNonNegative("x", lp.Continuous)
	p.Objective = lp.Expr{}.Add(x, 1)
	p.AddConstraint(lp.Constraint{Name: "lo", Expr: lp.Expr{}.Add(x, 1), Sense: lp.GE, RHS: 5})
	p.AddConstraint(lp.Constraint{Name: "hi", Expr: lp.Expr{}.Add(x, 1), Sense: lp.LE, RHS: 3})

	_, err := NewGLPK(Config{}).Solve(context.Background(), p)
	var ie *types.ModelInfeasibleError
	require.True(t, errors.As(err, &ie), "got %v", err)
	assert.Equal(t, "infeasible", ie.Program)
}

func TestGLPKIntegerInfeasible(t *testing.T) {
	p := lp.NewProgram("parity", true)
	x := p.AddNonNegative("x", lp.Integer)
	p.Objective = lp.Expr{}.Add(x, 1)
	p.AddConstraint(lp.Constraint{Name: "half", Expr: lp.Expr{}.Add(x, 2), Sense: lp.EQ, RHS: 3})

	_, err := NewGLPK(Config{}).Solve(context.Background(), p)
	var ie *types.ModelInfeasibleError
	assert.True(t, errors.As(err, &ie), "got %v", err)
}

func TestGLPKUnbounded(t *testing.T) {
	p := lp.NewProgram("unbounded", true)
	x := p.AddNonNegative("x", lp.Continuous)
	y := p.AddNonNegative("y", lp.Continuous)
	p.Objective = lp.Expr{}.Add(x, 1).Add(y, 1)
	p.AddConstraint(lp.Constraint{Name: "c", Expr: lp.Expr{}.Add(x, 1), Sense: lp.LE, RHS: 2})

	_, err := NewGLPK(Config{}).Solve(context.Background(), p)
	var ue *types.ModelUnboundedError
	assert.True(t, errors.As(err, &ue), "got %v", err)
}

func TestGLPKCancelled(t *testing.T) {
	p := lp.NewProgram("cancel", true)
	p.AddNonNegative("x", lp.Continuous)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGLPK(Config{}).Solve(ctx, p)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSolver(t *testing.T) {
	s, err := New("glpk", Config{})
	require.NoError(t, err)
	assert.Equal(t, "glpk", s.Name())
	s, err = New("", Config{})
	require.NoError(t, err)
	assert.Equal(t, "cbc", s.Name())
	_, err = New("gurobi", Config{})
	var ce *types.ConfigurationError
	assert.True(t, errors.As(err, &ce))
}
