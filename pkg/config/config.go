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

// Package config loads the static planning tables: network roles, airport
// rates, distances, aircraft and solver settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/airnet/netplan/base/units"
	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/pkg/util"
)

type NetworkConfig struct {
	Hubs     []string `yaml:"hubs"`
	Spokes   []string `yaml:"spokes"`
	FarSpoke string   `yaml:"far_spoke"`
}

type AirportConfig struct {
	Name               string  `yaml:"name"`
	FuelPrice          float64 `yaml:"fuel_price"`
	LandingFeeRate     float64 `yaml:"landing_fee_rate"`
	ImprovementFeeRate float64 `yaml:"improvement_fee_rate"`
	Latitude           float64 `yaml:"latitude"`
	Longitude          float64 `yaml:"longitude"`
}

type DistanceConfig struct {
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	Distance float64 `yaml:"distance"`
}

type AircraftConfig struct {
	Model         string  `yaml:"model"`
	Capacity      int     `yaml:"capacity"`
	MTOWKg        float64 `yaml:"mtow_kg"`
	FuelBurnPerKm float64 `yaml:"fuel_burn_per_km"`
}

type FlatCostConfig struct {
	Fuel      float64 `yaml:"fuel"`
	Landing   float64 `yaml:"landing"`
	Departure float64 `yaml:"departure"`
}

type FleetConfig struct {
	// Zero leaves the fleet size free.
	Size    int            `yaml:"size"`
	Initial map[string]int `yaml:"initial"`
}

type SolverConfig struct {
	Name      string        `yaml:"name"`
	Binary    string        `yaml:"binary"`
	TimeLimit time.Duration `yaml:"time_limit"`
	Gap       float64       `yaml:"gap"`
	KeepFiles bool          `yaml:"keep_files"`
}

type Config struct {
	Network   NetworkConfig            `yaml:"network"`
	Horizon   int                      `yaml:"horizon"`
	CostModel string                   `yaml:"cost_model"`
	Airports  map[string]AirportConfig `yaml:"airports"`
	Distances []DistanceConfig         `yaml:"distances"`
	// One of km, mi or nmi.
	DistanceUnit       string         `yaml:"distance_unit"`
	ChargeTransferFuel bool           `yaml:"charge_transfer_fuel"`
	Aircraft           AircraftConfig `yaml:"aircraft"`
	FlatCosts          FlatCostConfig `yaml:"flat_costs"`
	MaxFlightsPerArc   int            `yaml:"max_flights_per_arc"`
	Fleet              FleetConfig    `yaml:"fleet"`
	Solver             SolverConfig   `yaml:"solver"`
	// Airport order of rows and columns in matrix input files.
	MatrixOrder []string `yaml:"matrix_order"`
	DBPath      string   `yaml:"db_path"`
}

// Load reads path over the defaults and applies NETPLAN_* environment
// overrides. An empty path yields the defaults with overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &types.ConfigurationError{Field: path, Msg: err.Error()}
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("NETPLAN_SOLVER"); ok {
		c.Solver.Name = v
	}
	if v, ok := lookup("NETPLAN_CBC_BINARY"); ok {
		c.Solver.Binary = v
	}
	if v, ok := lookup("NETPLAN_COST_MODEL"); ok {
		c.CostModel = v
	}
	if v, ok := lookup("NETPLAN_DB"); ok {
		c.DBPath = v
	}
	if v, ok := lookup("NETPLAN_HORIZON"); ok {
		h, err := strconv.Atoi(v)
		if err != nil {
			return &types.ConfigurationError{Field: "NETPLAN_HORIZON", Msg: err.Error()}
		}
		c.Horizon = h
	}
	if v, ok := lookup("NETPLAN_SOLVER_TIME_LIMIT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &types.ConfigurationError{Field: "NETPLAN_SOLVER_TIME_LIMIT", Msg: err.Error()}
		}
		c.Solver.TimeLimit = d
	}
	return nil
}

// Validate checks codes and shapes; rate completeness is checked by the
// cost model that consumes the tables.
func (c *Config) Validate() error {
	if len(c.Network.Hubs) != 2 {
		return &types.ConfigurationError{Field: "network.hubs", Msg: fmt.Sprintf("need exactly 2 hubs, have %d", len(c.Network.Hubs))}
	}
	if len(c.Network.Spokes) != 2 {
		return &types.ConfigurationError{Field: "network.spokes", Msg: fmt.Sprintf("need exactly 2 spokes, have %d", len(c.Network.Spokes))}
	}
	codes := append(append([]string{}, c.Network.Hubs...), c.Network.Spokes...)
	codes = append(codes, c.Network.FarSpoke)
	for _, s := range codes {
		if _, err := util.AirportCodeFromString(s); err != nil {
			return &types.ConfigurationError{Field: "network", Msg: err.Error()}
		}
	}
	for s := range c.Airports {
		if _, err := util.AirportCodeFromString(s); err != nil {
			return &types.ConfigurationError{Field: "airports", Msg: err.Error()}
		}
	}
	if c.Horizon <= 0 {
		return &types.ConfigurationError{Field: "horizon", Msg: "must be positive"}
	}
	if _, err := c.kmPerUnit(); err != nil {
		return err
	}
	if c.Aircraft.Capacity <= 0 {
		return &types.ConfigurationError{Field: "aircraft.capacity", Msg: "must be positive"}
	}
	if len(c.MatrixOrder) != 0 && len(c.MatrixOrder) != 5 {
		return &types.ConfigurationError{Field: "matrix_order", Msg: "must list all five airports"}
	}
	return nil
}

func (c *Config) kmPerUnit() (float64, error) {
	switch c.DistanceUnit {
	case "", "km":
		return 1, nil
	case "mi":
		return units.KmPerMile, nil
	case "nmi":
		return units.KmPerNauticalMile, nil
	default:
		return 0, &types.ConfigurationError{Field: "distance_unit", Msg: fmt.Sprintf("unknown unit %q", c.DistanceUnit)}
	}
}

func code(s string) types.AirportCode {
	c, _ := util.AirportCodeFromString(s)
	return c
}

// NetworkRoles returns the configured network. Codes were checked by Validate.
func (c *Config) NetworkRoles() types.Network {
	return types.Network{
		Hubs:     [2]types.AirportCode{code(c.Network.Hubs[0]), code(c.Network.Hubs[1])},
		Spokes:   [2]types.AirportCode{code(c.Network.Spokes[0]), code(c.Network.Spokes[1])},
		FarSpoke: code(c.Network.FarSpoke),
	}
}

func (c *Config) AirportTable() map[types.AirportCode]types.Airport {
	res := make(map[types.AirportCode]types.Airport, len(c.Airports))
	for s, a := range c.Airports {
		k := code(s)
		res[k] = types.Airport{
			Code:               k,
			Name:               a.Name,
			FuelPrice:          a.FuelPrice,
			LandingFeeRate:     a.LandingFeeRate,
			ImprovementFeeRate: a.ImprovementFeeRate,
			Latitude:           a.Latitude,
			Longitude:          a.Longitude,
		}
	}
	return res
}

// DistanceTable returns the configured distances in kilometres.
func (c *Config) DistanceTable() (map[types.Pair]float64, error) {
	k, err := c.kmPerUnit()
	if err != nil {
		return nil, err
	}
	res := make(map[types.Pair]float64, len(c.Distances))
	for _, d := range c.Distances {
		from, err := util.AirportCodeFromString(d.From)
		if err != nil {
			return nil, &types.ConfigurationError{Field: "distances", Msg: err.Error()}
		}
		to, err := util.AirportCodeFromString(d.To)
		if err != nil {
			return nil, &types.ConfigurationError{Field: "distances", Msg: err.Error()}
		}
		res[types.Pair{Origin: from, Destination: to}] = d.Distance * k
	}
	return res, nil
}

func (c *Config) AircraftSpec() types.Aircraft {
	return types.Aircraft{
		Model:         c.Aircraft.Model,
		Capacity:      c.Aircraft.Capacity,
		MTOWKg:        c.Aircraft.MTOWKg,
		FuelBurnPerKm: c.Aircraft.FuelBurnPerKm,
	}
}

func (c *Config) InitialFleet() map[types.AirportCode]int {
	if len(c.Fleet.Initial) == 0 {
		return nil
	}
	res := make(map[types.AirportCode]int, len(c.Fleet.Initial))
	for s, n := range c.Fleet.Initial {
		res[code(s)] = n
	}
	return res
}

// Order returns the matrix airport order, defaulting to the network order.
func (c *Config) Order() []types.AirportCode {
	if len(c.MatrixOrder) == 0 {
		return c.NetworkRoles().Airports()
	}
	res := make([]types.AirportCode, len(c.MatrixOrder))
	for i, s := range c.MatrixOrder {
		res[i] = code(s)
	}
	return res
}
