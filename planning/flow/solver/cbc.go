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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/golang/glog"

	"github.com/airnet/netplan/planning/flow/lp"
	"github.com/airnet/netplan/planning/flow/lpformat"
)

// cbcSolver runs the COIN-OR CBC binary as a child process. The program is
// written to a temporary LP file and the values are read back from the
// solution file CBC writes.
type cbcSolver struct {
	cfg Config
}

func NewCBC(cfg Config) *cbcSolver {
	if cfg.Binary == "" {
		cfg.Binary = CBCBinary
	}
	return &cbcSolver{cfg: cfg}
}

func (cs *cbcSolver) Name() string {
	return "cbc"
}

func (cs *cbcSolver) Solve(ctx context.Context, p *lp.Program) (*lp.Solution, error) {
	dir, err := os.MkdirTemp("", "netplan-cbc-")
	if err != nil {
		return nil, err
	}
	if cs.cfg.KeepFiles {
		glog.Infof("cbc: keeping model files in %s", dir)
	} else {
		defer os.RemoveAll(dir)
	}

	modelPath := filepath.Join(dir, "model.lp")
	solPath := filepath.Join(dir, "model.sol")
	if err := writeModel(p, modelPath); err != nil {
		return nil, err
	}

	start := time.Now()
	if err := cs.run(ctx, modelPath, solPath); err != nil {
		return nil, err
	}
	glog.V(1).Infof("cbc: %s solved in %v", p.Name, time.Since(start))

	f, err := os.Open(solPath)
	if err != nil {
		return nil, fmt.Errorf("cbc: reading solution: %w", err)
	}
	defer f.Close()
	sol, detail, err := ReadSolution(p, f)
	if err != nil {
		return nil, err
	}
	if err := statusError(p, sol.Status, detail); err != nil {
		return nil, err
	}
	verify(p, sol)
	return sol, nil
}

func writeModel(p *lp.Program, path string) error {
	if err := lpformat.WriteFile(p, path); err != nil {
		return fmt.Errorf("cbc: writing model: %w", err)
	}
	return nil
}

func (cs *cbcSolver) run(ctx context.Context, modelPath, solPath string) error {
	binaryStr, args := cs.getBinConfig(modelPath, solPath)
	cmd := exec.CommandContext(ctx, binaryStr, args...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("cbc: starting %s: %w", binaryStr, err)
	}

	// Drain the log while the solver runs so a full pipe never blocks it.
	tail := drainLog(out)
	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("cbc: %w", ctx.Err())
		}
		return fmt.Errorf("cbc: %w; last output: %s", err, tail)
	}
	return nil
}

// drainLog copies solver output to the verbose log and returns the last line.
func drainLog(r io.Reader) string {
	last := ""
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		last = scanner.Text()
		glog.V(3).Info("cbc: ", last)
	}
	return last
}

func (cs *cbcSolver) getBinConfig(modelPath, solPath string) (string, []string) {
	args := []string{modelPath}
	if cs.cfg.TimeLimit > 0 {
		args = append(args, "-sec", strconv.Itoa(int(cs.cfg.TimeLimit.Seconds())))
	}
	if cs.cfg.Gap > 0 {
		args = append(args, "-ratio", strconv.FormatFloat(cs.cfg.Gap, 'g', -1, 64))
	}
	args = append(args, "-solve", "-solu", solPath)
	return cs.cfg.Binary, args
}
