package config

import "time"

// Default returns the five-airport Canadian network the planner was first
// built for: Toronto and Montreal hubs, Vancouver and Winnipeg spokes, and
// Halifax as the far spoke, flown with a Boeing 767.
func Default() *Config {
	return &Config{
		Network: NetworkConfig{
			Hubs:     []string{"T", "M"},
			Spokes:   []string{"V", "W"},
			FarSpoke: "H",
		},
		Horizon:   5,
		CostModel: "distance",
		Airports: map[string]AirportConfig{
			"H": {Name: "Halifax", FuelPrice: 1.28, LandingFeeRate: 11.29, ImprovementFeeRate: 28, Latitude: 44.8808, Longitude: -63.5086},
			"M": {Name: "Montreal", FuelPrice: 1.17, LandingFeeRate: 11.64, ImprovementFeeRate: 35, Latitude: 45.4706, Longitude: -73.7408},
			"T": {Name: "Toronto", FuelPrice: 1.29, LandingFeeRate: 18.97, ImprovementFeeRate: 30, Latitude: 43.6777, Longitude: -79.6248},
			"W": {Name: "Winnipeg", FuelPrice: 1.19, LandingFeeRate: 7.50, ImprovementFeeRate: 25, Latitude: 49.9100, Longitude: -97.2399},
			"V": {Name: "Vancouver", FuelPrice: 1.30, LandingFeeRate: 7.98, ImprovementFeeRate: 25, Latitude: 49.1967, Longitude: -123.1815},
		},
		// Halifax to the western spokes is never flown direct and falls
		// back to the great-circle distance.
		Distances: []DistanceConfig{
			{From: "H", To: "M", Distance: 804},
			{From: "H", To: "T", Distance: 1288},
			{From: "M", To: "T", Distance: 507},
			{From: "M", To: "W", Distance: 1818},
			{From: "M", To: "V", Distance: 3682},
			{From: "T", To: "W", Distance: 1504},
			{From: "T", To: "V", Distance: 3345},
			{From: "W", To: "V", Distance: 1864},
		},
		DistanceUnit: "km",
		Aircraft: AircraftConfig{
			Model:         "B767",
			Capacity:      211,
			MTOWKg:        70535,
			FuelBurnPerKm: 2.86,
		},
		FlatCosts: FlatCostConfig{Fuel: 1000, Landing: 500, Departure: 500},
		Solver: SolverConfig{
			Name:      "cbc",
			Binary:    "cbc",
			TimeLimit: 5 * time.Minute,
		},
		MatrixOrder: []string{"H", "M", "T", "W", "V"},
	}
}
