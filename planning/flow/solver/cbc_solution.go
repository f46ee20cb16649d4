package solver

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/airnet/netplan/planning/flow/lp"
)

// ReadSolution parses a CBC solution file. The first line carries the
// status, e.g. "Optimal - objective value 6000.00000000"; every other line
// is "INDEX NAME VALUE REDUCED_COST", optionally prefixed with "**" when the
// value is infeasible. Variables that are not listed are zero. The status
// line is returned as detail.
func ReadSolution(p *lp.Program, r io.Reader) (*lp.Solution, string, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("cbc: empty solution file")
	}
	header := strings.TrimSpace(scanner.Text())
	sol := &lp.Solution{
		Status: parseStatus(header),
		Values: make([]float64, p.NumVars()),
	}
	if sol.Status != lp.Optimal && sol.Status != lp.Feasible {
		return sol, header, nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimSpace(strings.TrimPrefix(line, "**"))
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, header, fmt.Errorf("cbc: malformed solution line %q", line)
		}
		id, ok := p.VarByName(fields[1])
		if !ok {
			// Rows are listed in some output modes; skip them.
			continue
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, header, fmt.Errorf("cbc: value of %s: %w", fields[1], err)
		}
		sol.Values[id] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, header, err
	}
	// The reported objective may carry the sign of the internal minimization.
	sol.Objective = p.Evaluate(sol.Values)
	return sol, header, nil
}

func parseStatus(header string) lp.Status {
	h := strings.ToLower(header)
	switch {
	case strings.HasPrefix(h, "optimal"):
		return lp.Optimal
	case strings.Contains(h, "infeasible"):
		return lp.Infeasible
	case strings.Contains(h, "unbounded"):
		return lp.Unbounded
	case strings.HasPrefix(h, "stopped") && strings.Contains(h, "objective value"):
		return lp.Feasible
	default:
		return lp.NotSolved
	}
}
