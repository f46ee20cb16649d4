// Package lpformat translates an lp.Program into a GLPK problem and writes
// it in CPLEX LP format.
//
// CPLEX LP documentation:
// The LP format is a plain-text representation of a linear or mixed-integer
// program read by CBC, CPLEX, GLPK, HiGHS and most other solvers.
// See https://www.ibm.com/docs/en/icos/22.1.0?topic=cplex-lp-file-format-algebraic-representation
// A file consists of the following sections, in order:
//
// 1. Comment Lines: lines starting with '\' are ignored by solvers
//
// 2. Objective: "Maximize" or "Minimize" followed by " obj: TERMS"
//
// 3. Constraints: "Subject To" followed by one " NAME: TERMS SENSE RHS" per row,
// where SENSE is one of <=, >= or =
//
// 4. Bounds: "Bounds" followed by one line per variable whose bounds differ
// from the default [0, +inf), e.g. "0 <= n <= 3", "z = 4" or "x free"
//
// 5. Integers: "Generals" followed by the names of the integer variables
//
// 6. "End"
//
// The text itself is produced by GLPK's glp_write_lp. Row and column names
// survive only if they pass lp.ValidName, otherwise GLPK substitutes
// positional names.
package lpformat
