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

// Command netplan assembles the five-airport network program from demand and
// fare tables, solves it and optionally persists the plan.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/golang/glog"
)

var (
	configPath      string
	demandPath      string
	faresPath       string
	format          string
	solverName      string
	lpOut           string
	dbPath          string
	carryFleet      bool
	metricsTextfile string
)

func init() {
	flag.StringVar(&configPath, "config", "", "YAML config file; built-in defaults when empty")
	flag.StringVar(&demandPath, "demand", "demand.csv", "demand table")
	flag.StringVar(&faresPath, "fares", "fares.csv", "fare table")
	flag.StringVar(&format, "format", "csv", "input format: csv or matrix")
	flag.StringVar(&solverName, "solver", "", "cbc, glpk or none; overrides config")
	flag.StringVar(&lpOut, "lp-out", "", "write the assembled program in LP format to this file, - for stdout")
	flag.StringVar(&dbPath, "db", "", "SQLite plan store; overrides config")
	flag.BoolVar(&carryFleet, "carry-fleet", false, "pin day 0 positions to the terminal fleet of the last stored plan")
	flag.StringVar(&metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after the run")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := runOptions{
		ConfigPath:      configPath,
		DemandPath:      demandPath,
		FaresPath:       faresPath,
		Format:          format,
		Solver:          solverName,
		LPOut:           lpOut,
		DBPath:          dbPath,
		CarryFleet:      carryFleet,
		MetricsTextfile: metricsTextfile,
	}
	if err := run(ctx, opts, os.Stdout); err != nil {
		glog.Errorf("netplan: %v", err)
		fmt.Fprintln(os.Stderr, "netplan:", err)
		glog.Flush()
		os.Exit(1)
	}
}
