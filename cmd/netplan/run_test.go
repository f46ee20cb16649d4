package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airnet/netplan/pkg/types"
)

const testConfig = `horizon: 1
cost_model: flat
flat_costs:
  fuel: 1000
  landing: 500
  departure: 500
`

func writeInputs(t *testing.T) runOptions {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	var fares strings.Builder
	fares.WriteString("origin,destination,fare\n")
	for _, o := range []string{"T", "M", "V", "W", "H"} {
		for _, d := range []string{"T", "M", "V", "W", "H"} {
			if o != d {
				fares.WriteString(o + "," + d + ",150\n")
			}
		}
	}
	return runOptions{
		ConfigPath: write("netplan.yaml", testConfig),
		DemandPath: write("demand.csv", "day,origin,destination,passengers\n0,V,H,50\n0,T,M,20\n"),
		FaresPath:  write("fares.csv", fares.String()),
		Format:     "csv",
		Solver:     solverNone,
	}
}

func TestRunExportOnly(t *testing.T) {
	o := writeInputs(t)
	o.LPOut = "-"
	o.MetricsTextfile = filepath.Join(t.TempDir(), "netplan.prom")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), o, &out))

	lpText := out.String()
	assert.True(t, strings.HasPrefix(lpText, "\\ vars="), "missing statistics line")
	assert.Contains(t, lpText, "Problem: netplan")
	assert.Contains(t, lpText, "Maximize\n")
	assert.Contains(t, lpText, "flow__buf_T__d0:")
	assert.Contains(t, lpText, "fleet_cont_H_d0:")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lpText), "End"))

	prom, err := os.ReadFile(o.MetricsTextfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "netplan_program_size")
}

func TestRunExportToFile(t *testing.T) {
	o := writeInputs(t)
	o.LPOut = filepath.Join(t.TempDir(), "model.lp")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), o, &out))
	assert.Empty(t, out.String())
	data, err := os.ReadFile(o.LPOut)
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^Generals?$`, string(data))
	assert.Contains(t, string(data), "x__od_V_H__buf_T__d0")
}

func TestRunSolveAndCarryFleet(t *testing.T) {
	o := writeInputs(t)
	o.Solver = "glpk"
	o.DBPath = filepath.Join(t.TempDir(), "plans.db")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), o, &out))
	assert.Contains(t, out.String(), "status optimal")
	assert.Contains(t, out.String(), "solver glpk")
	assert.Contains(t, out.String(), "day 0:")
	assert.Contains(t, out.String(), "terminal fleet:")

	// The second run starts from the positions the first one stored.
	o.CarryFleet = true
	out.Reset()
	require.NoError(t, run(context.Background(), o, &out))
	assert.Contains(t, out.String(), "status optimal")
}

func TestRunCarryFleetFromEmptyStore(t *testing.T) {
	o := writeInputs(t)
	o.DBPath = filepath.Join(t.TempDir(), "plans.db")
	o.CarryFleet = true
	require.NoError(t, run(context.Background(), o, &bytes.Buffer{}))
}

func TestRunErrors(t *testing.T) {
	o := writeInputs(t)
	o.CarryFleet = true
	err := run(context.Background(), o, &bytes.Buffer{})
	var ce *types.ConfigurationError
	assert.True(t, errors.As(err, &ce), "got %v", err)

	o = writeInputs(t)
	o.Solver = "gurobi"
	err = run(context.Background(), o, &bytes.Buffer{})
	assert.True(t, errors.As(err, &ce), "got %v", err)

	o = writeInputs(t)
	o.FaresPath = o.DemandPath
	err = run(context.Background(), o, &bytes.Buffer{})
	assert.Error(t, err)

	o = writeInputs(t)
	o.Format = "xml"
	assert.Error(t, run(context.Background(), o, &bytes.Buffer{}))
}
