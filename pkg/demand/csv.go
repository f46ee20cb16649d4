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

// Package demand reads the daily demand schedule and the fare table.
package demand

import (
	"fmt"
	"io"
	"os"

	gocsv "github.com/gocarina/gocsv"

	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/pkg/util"
)

// DemandRecord is one row of a long-format demand file.
type DemandRecord struct {
	Day         int    `csv:"day"`
	Origin      string `csv:"origin"`
	Destination string `csv:"destination"`
	Passengers  int    `csv:"passengers"`
}

// FareRecord is one row of a long-format fare file.
type FareRecord struct {
	Origin      string `csv:"origin"`
	Destination string `csv:"destination"`
	Fare        int    `csv:"fare"`
}

func parsePair(network types.Network, origin, destination string) (types.Pair, error) {
	o, err := util.AirportCodeFromString(origin)
	if err != nil {
		return types.Pair{}, err
	}
	d, err := util.AirportCodeFromString(destination)
	if err != nil {
		return types.Pair{}, err
	}
	p := types.Pair{Origin: o, Destination: d}
	if !network.Contains(o) || !network.Contains(d) || o == d {
		return p, fmt.Errorf("%s is not an ordered pair of network airports", p)
	}
	return p, nil
}

// ReadDemandCSV reads a long-format demand file. Days run from 0 to the
// largest day listed; pairs not listed on a day have zero demand.
func ReadDemandCSV(r io.Reader, network types.Network) (types.DemandSchedule, error) {
	var records []*DemandRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("demand: %w", err)
	}

	days := 0
	for _, rec := range records {
		if rec.Day < 0 {
			return nil, &types.DataValidationError{Day: types.Day(rec.Day), Msg: "negative day index"}
		}
		if rec.Day+1 > days {
			days = rec.Day + 1
		}
	}
	schedule := make(types.DemandSchedule, days)
	for d := range schedule {
		schedule[d] = zeroMatrix(network)
	}

	seen := make(map[types.Day]map[types.Pair]bool)
	for _, rec := range records {
		day := types.Day(rec.Day)
		p, err := parsePair(network, rec.Origin, rec.Destination)
		if err != nil {
			return nil, &types.DataValidationError{Day: day, Msg: err.Error()}
		}
		if rec.Passengers < 0 {
			return nil, &types.DataValidationError{Day: day, Pair: p, Msg: fmt.Sprintf("negative demand %d", rec.Passengers)}
		}
		if seen[day] == nil {
			seen[day] = make(map[types.Pair]bool)
		}
		if seen[day][p] {
			return nil, &types.DataValidationError{Day: day, Pair: p, Msg: "listed twice"}
		}
		seen[day][p] = true
		schedule[day][p] = rec.Passengers
	}
	return schedule, nil
}

// ReadFaresCSV reads a long-format fare file. Every ordered pair of the
// network must be listed.
func ReadFaresCSV(r io.Reader, network types.Network) (types.FareMatrix, error) {
	var records []*FareRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("fares: %w", err)
	}
	fares := make(types.FareMatrix, len(records))
	for _, rec := range records {
		p, err := parsePair(network, rec.Origin, rec.Destination)
		if err != nil {
			return nil, &types.DataValidationError{Msg: err.Error()}
		}
		if rec.Fare < 0 {
			return nil, &types.DataValidationError{Pair: p, Msg: fmt.Sprintf("negative fare %d", rec.Fare)}
		}
		if _, ok := fares[p]; ok {
			return nil, &types.DataValidationError{Pair: p, Msg: "fare listed twice"}
		}
		fares[p] = rec.Fare
	}
	for _, p := range network.Pairs() {
		if _, ok := fares[p]; !ok {
			return nil, &types.DataValidationError{Pair: p, Msg: "missing fare"}
		}
	}
	return fares, nil
}

func zeroMatrix(network types.Network) types.DemandMatrix {
	m := make(types.DemandMatrix, 20)
	for _, p := range network.Pairs() {
		m[p] = 0
	}
	return m
}

// Format names an input file layout.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatMatrix Format = "matrix"
)

// Tables reads the demand and fare files at the given paths.
func Tables(format Format, demandPath, faresPath string, network types.Network, order []types.AirportCode) (types.DemandSchedule, types.FareMatrix, error) {
	df, err := os.Open(demandPath)
	if err != nil {
		return nil, nil, err
	}
	defer df.Close()
	ff, err := os.Open(faresPath)
	if err != nil {
		return nil, nil, err
	}
	defer ff.Close()

	switch format {
	case FormatCSV, "":
		schedule, err := ReadDemandCSV(df, network)
		if err != nil {
			return nil, nil, err
		}
		fares, err := ReadFaresCSV(ff, network)
		return schedule, fares, err
	case FormatMatrix:
		schedule, err := ReadDemandMatrix(df, order)
		if err != nil {
			return nil, nil, err
		}
		fares, err := ReadFareMatrix(ff, order)
		return schedule, fares, err
	default:
		return nil, nil, &types.ConfigurationError{Field: "format", Msg: fmt.Sprintf("unknown input format %q", format)}
	}
}
