package costmodel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/flowgraph"
	"github.com/airnet/netplan/planning/flow/topology"
)

var testNetwork = types.Network{
	Hubs:     [2]types.AirportCode{"T", "M"},
	Spokes:   [2]types.AirportCode{"V", "W"},
	FarSpoke: "H",
}

var testAircraft = types.Aircraft{Model: "A320", Capacity: 150, MTOWKg: 78000, FuelBurnPerKm: 2.5}

func testAirports() map[types.AirportCode]types.Airport {
	return map[types.AirportCode]types.Airport{
		"T": {Code: "T", FuelPrice: 1.0, LandingFeeRate: 10, ImprovementFeeRate: 25},
		"M": {Code: "M", FuelPrice: 1.1, LandingFeeRate: 8, ImprovementFeeRate: 20},
		"V": {Code: "V", FuelPrice: 1.2, LandingFeeRate: 9, ImprovementFeeRate: 15},
		"W": {Code: "W", FuelPrice: 0.9, LandingFeeRate: 7, ImprovementFeeRate: 10},
		"H": {Code: "H", FuelPrice: 1.5, LandingFeeRate: 12, ImprovementFeeRate: 30},
	}
}

func testDistances() map[types.Pair]float64 {
	d := map[types.Pair]float64{}
	km := 100.0
	for _, p := range testNetwork.Pairs() {
		if _, ok := d[p.Reverse()]; ok {
			continue
		}
		d[p] = km
		km += 50
	}
	return d
}

func arcOfKind(t *testing.T, g *flowgraph.Graph, kind flowgraph.ArcKind) *flowgraph.Arc {
	for _, a := range g.Arcs() {
		if a.Kind == kind {
			return a
		}
	}
	t.Fatalf("no arc of kind %v", kind)
	return nil
}

func TestDistanceDirectLeg(t *testing.T) {
	dists := testDistances()
	cm, err := NewDistance(testNetwork, testAirports(), dists, testAircraft, false)
	require.NoError(t, err)
	g, err := topology.Build(testNetwork)
	require.NoError(t, err)

	arc := g.GetArc(g.ODNode(types.Pair{Origin: "T", Destination: "V"}), g.AirportNode("V"))
	require.NotNil(t, arc)
	c, err := cm.ArcCost(arc, 0)
	require.NoError(t, err)

	km := dists[types.Pair{Origin: "T", Destination: "V"}]
	require.NotZero(t, km)
	assert.InDelta(t, km*2.5*1.0, c.Fuel, 1e-9)
	// 78 tonnes at V's rate of 9 per tonne.
	assert.InDelta(t, 702, c.Landing, 1e-9)
	assert.InDelta(t, 25, c.ImprovementFee, 1e-9)
	assert.Zero(t, c.Departure)
	assert.InDelta(t, c.Fuel+702, c.PerFlight(), 1e-9)
}

func TestDistanceSinkArcIsFree(t *testing.T) {
	cm, err := NewDistance(testNetwork, testAirports(), testDistances(), testAircraft, true)
	require.NoError(t, err)
	g, err := topology.Build(testNetwork)
	require.NoError(t, err)

	for _, a := range g.Arcs() {
		if a.Kind != flowgraph.SinkDischarge {
			continue
		}
		c, err := cm.ArcCost(a, 3)
		require.NoError(t, err)
		assert.True(t, c.IsZero(), "%v", a)
	}
}

func TestDistanceTransferFuel(t *testing.T) {
	g, err := topology.Build(testNetwork)
	require.NoError(t, err)
	in := g.GetArc(g.ODNode(types.Pair{Origin: "V", Destination: "H"}), g.HubBufferNode("T"))
	require.NotNil(t, in)

	off, err := NewDistance(testNetwork, testAirports(), testDistances(), testAircraft, false)
	require.NoError(t, err)
	c, err := off.ArcCost(in, 0)
	require.NoError(t, err)
	assert.Zero(t, c.Fuel)
	// Landing at T and the fee at V are still charged.
	assert.InDelta(t, 780, c.Landing, 1e-9)
	assert.InDelta(t, 15, c.ImprovementFee, 1e-9)

	on, err := NewDistance(testNetwork, testAirports(), testDistances(), testAircraft, true)
	require.NoError(t, err)
	c, err = on.ArcCost(in, 0)
	require.NoError(t, err)
	assert.Greater(t, c.Fuel, 0.0)
}

func TestDistanceFallsBackToCoordinates(t *testing.T) {
	airports := testAirports()
	for code, a := range airports {
		a.Latitude, a.Longitude = 10, float64(len(code))+float64(code[0]-'A')
		airports[code] = a
	}
	cm, err := NewDistance(testNetwork, airports, nil, testAircraft, false)
	require.NoError(t, err)

	g, err := topology.Build(testNetwork)
	require.NoError(t, err)
	c, err := cm.ArcCost(arcOfKind(t, g, flowgraph.DirectLeg), 0)
	require.NoError(t, err)
	assert.Greater(t, c.Fuel, 0.0)
}

func TestDistanceConfigurationErrors(t *testing.T) {
	var ce *types.ConfigurationError

	airports := testAirports()
	delete(airports, "W")
	_, err := NewDistance(testNetwork, airports, testDistances(), testAircraft, false)
	assert.True(t, errors.As(err, &ce), "missing airport: %v", err)

	dists := testDistances()
	delete(dists, types.Pair{Origin: "T", Destination: "M"})
	_, err = NewDistance(testNetwork, testAirports(), dists, testAircraft, false)
	assert.True(t, errors.As(err, &ce), "missing distance: %v", err)

	bad := testAircraft
	bad.MTOWKg = 0
	_, err = NewDistance(testNetwork, testAirports(), testDistances(), bad, false)
	assert.True(t, errors.As(err, &ce), "zero mtow: %v", err)
}

func TestDistanceUnknownAirport(t *testing.T) {
	cm, err := NewDistance(testNetwork, testAirports(), testDistances(), testAircraft, false)
	require.NoError(t, err)

	g := flowgraph.New()
	od := g.AddODNode(types.Pair{Origin: "T", Destination: "X"})
	apt := g.AddAirportNode("X")
	arc := g.AddArc(od, apt, flowgraph.DirectLeg)

	_, err = cm.ArcCost(arc, 0)
	var te *types.TopologyError
	assert.True(t, errors.As(err, &te), "got %v", err)
}
