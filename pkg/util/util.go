package util

import (
	"fmt"
	"math"
	"strings"

	"github.com/airnet/netplan/pkg/types"
)

const earthRadiusKm = 6371.0

// GreatCircleKm returns the haversine distance between two coordinates.
func GreatCircleKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// AirportCodeFromString normalizes an airport code read from input files.
func AirportCodeFromString(s string) (types.AirportCode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("empty airport code")
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", fmt.Errorf("invalid airport code %q", s)
		}
	}
	return types.AirportCode(s), nil
}
