package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreatCircleKm(t *testing.T) {
	assert.InDelta(t, 0, GreatCircleKm(45.47, -73.74, 45.47, -73.74), 1e-9)
	// Montreal (YUL) to Toronto (YYZ) is roughly 505 km.
	assert.InDelta(t, 505, GreatCircleKm(45.4706, -73.7408, 43.6777, -79.6248), 10)
}

func TestAirportCodeFromString(t *testing.T) {
	code, err := AirportCodeFromString(" yul ")
	require.NoError(t, err)
	assert.EqualValues(t, "YUL", code)

	for _, in := range []string{"", "  ", "T*", "a-b"} {
		_, err := AirportCodeFromString(in)
		assert.Error(t, err, in)
	}
}
