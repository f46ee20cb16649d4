package solver

import "time"

var (
	CBCBinary = "cbc"
)

type Config struct {
	// Path of the CBC executable. Defaults to CBCBinary.
	Binary string
	// Wall clock limit handed to the solver. Zero means none.
	TimeLimit time.Duration
	// Relative MIP gap at which CBC may stop. Zero keeps the solver default.
	Gap float64
	// Keep the temporary model and solution files for debugging.
	KeepFiles bool
}
