package lpformat

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airnet/netplan/planning/flow/lp"
)

func tinyProgram() *lp.Program {
	p := lp.NewProgram("tiny", true)
	x := p.AddNonNegative("x_a", lp.Continuous)
	n := p.AddVar("n_a", lp.Integer, 0, 3)
	z := p.AddNonNegative("z_T_d0", lp.Integer)
	p.SetLower(z, 2)
	p.SetUpper(z, 2)
	p.Objective = lp.Expr{}.Add(x, 150).Add(n, -2000)
	p.AddConstraint(lp.Constraint{Name: "cap_a", Family: "cap", Expr: lp.Expr{}.Add(x, 1).Add(n, -150), Sense: lp.LE, RHS: 0})
	p.AddConstraint(lp.Constraint{Name: "dem", Family: "flow", Expr: lp.Expr{}.Add(x, -1), Sense: lp.EQ, RHS: -40})
	p.AddConstraint(lp.Constraint{Name: "floor", Family: "flow", Expr: lp.Expr{}.Add(z, 1).Add(n, 1), Sense: lp.GE, RHS: 1})
	return p
}

func TestLoad(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	prob := Load(tinyProgram())
	defer prob.Delete()

	assert.Equal(t, "tiny", prob.ProbName())
	assert.Equal(t, glpk.MAX, prob.ObjDir())
	require.Equal(t, 3, prob.NumCols())
	require.Equal(t, 3, prob.NumRows())

	assert.Equal(t, "x_a", prob.ColName(1))
	assert.Equal(t, glpk.CV, prob.ColKind(1))
	assert.Equal(t, glpk.LO, prob.ColType(1))
	assert.Equal(t, glpk.IV, prob.ColKind(2))
	assert.Equal(t, glpk.DB, prob.ColType(2))
	assert.Equal(t, 3.0, prob.ColUB(2))
	assert.Equal(t, glpk.FX, prob.ColType(3))
	assert.Equal(t, 2.0, prob.ColLB(3))
	assert.Equal(t, 150.0, prob.ObjCoef(1))
	assert.Equal(t, -2000.0, prob.ObjCoef(2))

	assert.Equal(t, "cap_a", prob.RowName(1))
	assert.Equal(t, glpk.UP, prob.RowType(1))
	assert.Equal(t, glpk.FX, prob.RowType(2))
	assert.Equal(t, -40.0, prob.RowLB(2))
	assert.Equal(t, glpk.LO, prob.RowType(3))
	assert.Equal(t, 1.0, prob.RowLB(3))

	// Every coefficient lands in the matrix, including the first of each row.
	assert.Equal(t, map[int32]float64{1: 1, 2: -150}, matRow(prob, 1))
	assert.Equal(t, map[int32]float64{1: -1}, matRow(prob, 2))
	assert.Equal(t, map[int32]float64{2: 1, 3: 1}, matRow(prob, 3))
}

func matRow(prob *glpk.Prob, i int) map[int32]float64 {
	ind, val := prob.MatRow(i)
	res := make(map[int32]float64)
	for k := 1; k < len(ind); k++ {
		res[ind[k]] = val[k]
	}
	return res
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(tinyProgram(), &buf))
	out := buf.String()

	assert.Regexp(t, `^\\ vars=3 integer=2 constraints=3 \[cap=1 flow=2\]\n`, out)
	for _, s := range []string{"Problem: tiny", "Maximize", "Subject To", "cap_a:", "dem:", "floor:", "n_a", "z_T_d0", "End"} {
		assert.Contains(t, out, s)
	}
	assert.Regexp(t, `(?m)^Generals?$`, out)
}

func TestExportReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.lp")
	require.NoError(t, WriteFile(tinyProgram(), path))

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	prob := glpk.New()
	defer prob.Delete()
	require.NoError(t, prob.ReadLP(nil, path))
	assert.Equal(t, 3, prob.NumCols())
	assert.Equal(t, 3, prob.NumRows())
	assert.Equal(t, glpk.MAX, prob.ObjDir())
	names := map[string]bool{}
	for j := 1; j <= prob.NumCols(); j++ {
		names[prob.ColName(j)] = true
		if prob.ColName(j) == "n_a" {
			assert.Equal(t, glpk.IV, prob.ColKind(j))
		}
	}
	assert.Equal(t, map[string]bool{"x_a": true, "n_a": true, "z_T_d0": true}, names)
}

func TestExportWideRows(t *testing.T) {
	p := lp.NewProgram("wide", false)
	e := lp.Expr{}
	for i := 0; i < 100; i++ {
		e = e.Add(p.AddNonNegative(fmt.Sprintf("variable_with_a_long_name_%03d", i), lp.Continuous), 1)
	}
	p.Objective = e
	p.AddConstraint(lp.Constraint{Name: "wide", Expr: e, Sense: lp.GE, RHS: 1})

	var buf bytes.Buffer
	require.NoError(t, Export(p, &buf))
	for _, l := range bytes.Split(buf.Bytes(), []byte("\n")) {
		assert.LessOrEqual(t, len(l), 255)
	}
	assert.Contains(t, buf.String(), "variable_with_a_long_name_099")
}

func TestWriteFileBadPath(t *testing.T) {
	dir := t.TempDir()
	err := WriteFile(tinyProgram(), filepath.Join(dir, "missing", "x.lp"))
	var pe *glpk.PathError
	assert.ErrorAs(t, err, &pe)
	_, statErr := os.Stat(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(statErr))
}
