package fleet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/lp"
)

var testNetwork = types.Network{
	Hubs:     [2]types.AirportCode{"T", "M"},
	Spokes:   [2]types.AirportCode{"V", "W"},
	FarSpoke: "H",
}

// ledgerWithFlights builds a two day ledger with a T->V and a V->T flight
// variable per day.
func ledgerWithFlights(t *testing.T) (*lp.Program, *Ledger, [2][2]lp.VarID) {
	p := lp.NewProgram("fleet", true)
	l := NewLedger(p, testNetwork, 2)
	var n [2][2]lp.VarID
	for d := 0; d < 2; d++ {
		n[d][0] = p.AddNonNegative("n_TV_d"+string(rune('0'+d)), lp.Integer)
		n[d][1] = p.AddNonNegative("n_VT_d"+string(rune('0'+d)), lp.Integer)
		require.NoError(t, l.AddDay(types.Day(d), []Movement{
			{Origin: "T", Destination: "V", Flights: n[d][0]},
			{Origin: "V", Destination: "T", Flights: n[d][1]},
		}))
	}
	return p, l, n
}

func assign(p *lp.Program, l *Ledger, fleet map[types.AirportCode][3]float64, flights map[lp.VarID]float64) []float64 {
	values := make([]float64, p.NumVars())
	for a, days := range fleet {
		for d, v := range days {
			id, _ := l.Position(a, types.Day(d))
			values[id] = v
		}
	}
	for id, v := range flights {
		values[id] = v
	}
	return values
}

func TestLedgerShape(t *testing.T) {
	p, l, _ := ledgerWithFlights(t)
	// 5 airports x 3 boundaries of fleet counts, 4 flight variables.
	assert.Equal(t, 19, p.NumVars())
	s := p.Stats()
	assert.Equal(t, 10, s.Families[FamilySufficiency])
	assert.Equal(t, 10, s.Families[FamilyContinuity])
	_, ok := l.Position("H", 2)
	assert.True(t, ok)
	_, ok = l.Position("H", 3)
	assert.False(t, ok)
}

func TestLedgerContinuity(t *testing.T) {
	p, l, n := ledgerWithFlights(t)

	// Two aircraft at T fly to V on day 0; one returns on day 1.
	values := assign(p, l, map[types.AirportCode][3]float64{
		"T": {2, 0, 1},
		"V": {0, 2, 1},
	}, map[lp.VarID]float64{n[0][0]: 2, n[1][1]: 1})
	assert.Empty(t, p.Check(values, 1e-9))
	assert.Equal(t, map[types.AirportCode]int{"T": 1, "M": 0, "V": 1, "W": 0, "H": 0}, l.Terminal(values))

	// An aircraft appearing from nowhere breaks continuity.
	values = assign(p, l, map[types.AirportCode][3]float64{
		"T": {2, 0, 1},
		"V": {0, 2, 2},
	}, map[lp.VarID]float64{n[0][0]: 2, n[1][1]: 1})
	v := p.Check(values, 1e-9)
	require.Len(t, v, 1)
	assert.Equal(t, "fleet_cont_V_d1", v[0].Name)
}

func TestLedgerSufficiency(t *testing.T) {
	p, l, n := ledgerWithFlights(t)

	// Three departures from T with only two aircraft there.
	values := assign(p, l, map[types.AirportCode][3]float64{
		"T": {2, -1, -1},
		"V": {0, 3, 3},
	}, map[lp.VarID]float64{n[0][0]: 3})
	names := map[string]bool{}
	for _, x := range p.Check(values, 1e-9) {
		names[x.Name] = true
	}
	assert.True(t, names["fleet_suff_T_d0"])
}

func TestLedgerPinAndCap(t *testing.T) {
	p, l, _ := ledgerWithFlights(t)
	require.NoError(t, l.Pin(map[types.AirportCode]int{"T": 3}))
	require.NoError(t, l.CapSize(4))

	id, _ := l.Position("T", 0)
	assert.Equal(t, 3.0, p.Var(id).Lower)
	assert.Equal(t, 3.0, p.Var(id).Upper)

	// Re-pinning replaces the previous value.
	require.NoError(t, l.Pin(map[types.AirportCode]int{"T": 1}))
	assert.Equal(t, 1.0, p.Var(id).Upper)

	c, ok := p.ConstraintByName("fleet_size")
	require.True(t, ok)
	assert.Len(t, c.Expr, 5)

	var ce *types.ConfigurationError
	assert.True(t, errors.As(l.Pin(map[types.AirportCode]int{"X": 1}), &ce))
	assert.True(t, errors.As(l.Pin(map[types.AirportCode]int{"T": -1}), &ce))
	assert.True(t, errors.As(l.CapSize(-1), &ce))
}

func TestLedgerRejectsForeignMovement(t *testing.T) {
	p := lp.NewProgram("fleet", true)
	l := NewLedger(p, testNetwork, 1)
	f := p.AddNonNegative("n", lp.Integer)
	var te *types.TopologyError
	assert.True(t, errors.As(l.AddDay(0, []Movement{{Origin: "T", Destination: "X", Flights: f}}), &te))
	assert.Error(t, l.AddDay(1, nil))
}
