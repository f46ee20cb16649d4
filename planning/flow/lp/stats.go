package lp

import (
	"fmt"
	"sort"
	"strings"
)

type Stats struct {
	Vars        int
	IntegerVars int
	Constraints int
	// Constraint counts keyed by Constraint.Family.
	Families map[string]int
}

func (p *Program) Stats() Stats {
	s := Stats{
		Vars:        len(p.vars),
		Constraints: len(p.constraints),
		Families:    make(map[string]int),
	}
	for _, v := range p.vars {
		if v.Type == Integer {
			s.IntegerVars++
		}
	}
	for _, c := range p.constraints {
		s.Families[c.Family]++
	}
	return s
}

func (s Stats) String() string {
	families := make([]string, 0, len(s.Families))
	for f := range s.Families {
		families = append(families, f)
	}
	sort.Strings(families)
	parts := make([]string, len(families))
	for i, f := range families {
		parts[i] = fmt.Sprintf("%s=%d", f, s.Families[f])
	}
	return fmt.Sprintf("vars=%d integer=%d constraints=%d [%s]",
		s.Vars, s.IntegerVars, s.Constraints, strings.Join(parts, " "))
}
