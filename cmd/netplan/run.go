package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/golang/glog"

	"github.com/airnet/netplan/pkg/config"
	"github.com/airnet/netplan/pkg/demand"
	"github.com/airnet/netplan/pkg/metrics"
	"github.com/airnet/netplan/pkg/store"
	"github.com/airnet/netplan/pkg/types"
	"github.com/airnet/netplan/planning/flow/assembler"
	"github.com/airnet/netplan/planning/flow/costmodel"
	"github.com/airnet/netplan/planning/flow/lp"
	"github.com/airnet/netplan/planning/flow/lpformat"
	"github.com/airnet/netplan/planning/flow/planner"
	"github.com/airnet/netplan/planning/flow/solver"
)

const solverNone = "none"

type runOptions struct {
	ConfigPath      string
	DemandPath      string
	FaresPath       string
	Format          string
	Solver          string
	LPOut           string
	DBPath          string
	CarryFleet      bool
	MetricsTextfile string
}

func run(ctx context.Context, o runOptions, out io.Writer) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	if o.Solver != "" {
		cfg.Solver.Name = o.Solver
	}
	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
	}
	network := cfg.NetworkRoles()

	schedule, fares, err := demand.Tables(demand.Format(o.Format), o.DemandPath, o.FaresPath, network, cfg.Order())
	if err != nil {
		return err
	}
	if len(schedule) < cfg.Horizon {
		glog.Warningf("netplan: demand covers %d days, shortening the horizon from %d", len(schedule), cfg.Horizon)
		cfg.Horizon = len(schedule)
	}
	cm, err := buildCostModel(cfg, network)
	if err != nil {
		return err
	}
	opts := assembler.Options{
		Horizon:          cfg.Horizon,
		Capacity:         cfg.Aircraft.Capacity,
		MaxFlightsPerArc: cfg.MaxFlightsPerArc,
		InitialFleet:     cfg.InitialFleet(),
		FleetSize:        cfg.Fleet.Size,
		Name:             "netplan",
	}

	var st *store.Store
	if cfg.DBPath != "" {
		st, err = store.NewStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()
	}
	var carried map[types.AirportCode]int
	if o.CarryFleet {
		if st == nil {
			return &types.ConfigurationError{Field: "db_path", Msg: "carrying the fleet needs a plan store"}
		}
		initial, runID, err := st.LatestTerminalFleet(ctx)
		switch {
		case errors.Is(err, store.ErrNoPlans):
			glog.Warningf("netplan: no stored plan, day 0 positions stay free")
		case err != nil:
			return err
		default:
			glog.Infof("netplan: carrying terminal fleet of run %s: %v", runID, initial)
			carried = initial
		}
	}

	var s solver.Solver
	if cfg.Solver.Name != solverNone {
		s, err = solver.New(cfg.Solver.Name, solver.Config{
			Binary:    cfg.Solver.Binary,
			TimeLimit: cfg.Solver.TimeLimit,
			Gap:       cfg.Solver.Gap,
			KeepFiles: cfg.Solver.KeepFiles,
		})
		if err != nil {
			return err
		}
	}
	pl := planner.New(network, cm, s, opts)
	if carried != nil {
		pl.SetInitialFleet(carried)
	}

	if s == nil {
		m, err := pl.Assemble(schedule, fares)
		if err != nil {
			return err
		}
		if err := exportLP(m.Program, o.LPOut, out); err != nil {
			return err
		}
		return writeMetrics(o.MetricsTextfile)
	}

	plan, err := pl.Plan(ctx, schedule, fares)
	if err != nil {
		if werr := writeMetrics(o.MetricsTextfile); werr != nil {
			glog.Warningf("netplan: metrics: %v", werr)
		}
		return err
	}
	if err := exportLP(plan.Model.Program, o.LPOut, out); err != nil {
		return err
	}
	if st != nil {
		rec := plan.Record()
		if err := st.SavePlan(ctx, rec); err != nil {
			return err
		}
		glog.Infof("netplan: saved plan %s", rec.RunID)
	}
	summarize(plan, out)
	return writeMetrics(o.MetricsTextfile)
}

func buildCostModel(cfg *config.Config, network types.Network) (costmodel.CostModel, error) {
	typ, err := costmodel.ParseCostModelType(cfg.CostModel)
	if err != nil {
		return nil, err
	}
	switch typ {
	case costmodel.CostModelFlat:
		return costmodel.NewFlat(network, costmodel.FlatCosts{
			Fuel:      cfg.FlatCosts.Fuel,
			Landing:   cfg.FlatCosts.Landing,
			Departure: cfg.FlatCosts.Departure,
		})
	default:
		distances, err := cfg.DistanceTable()
		if err != nil {
			return nil, err
		}
		return costmodel.NewDistance(network, cfg.AirportTable(), distances, cfg.AircraftSpec(), cfg.ChargeTransferFuel)
	}
}

// exportLP writes p to path; "-" is out, empty skips.
func exportLP(p *lp.Program, path string, out io.Writer) error {
	switch path {
	case "":
		return nil
	case "-":
		return lpformat.Export(p, out)
	}
	if err := lpformat.WriteFile(p, path); err != nil {
		return err
	}
	glog.Infof("netplan: wrote %s to %s", p.Name, path)
	return nil
}

func writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	return metrics.WriteTextfile(path)
}

func summarize(plan *planner.Plan, out io.Writer) {
	fmt.Fprintf(out, "status %v objective %.2f solver %s\n", plan.Status(), plan.Objective(), plan.Solver)
	for d := 0; d < plan.Model.Horizon; d++ {
		day := types.Day(d)
		fmt.Fprintf(out, "day %d: %d departures, %.0f passengers unserved\n", d, plan.Departures(day), plan.Unserved(day))
	}
	terminal := plan.TerminalFleet()
	codes := make([]string, 0, len(terminal))
	for a := range terminal {
		codes = append(codes, string(a))
	}
	sort.Strings(codes)
	fmt.Fprint(out, "terminal fleet:")
	for _, c := range codes {
		fmt.Fprintf(out, " %s=%d", c, terminal[types.AirportCode(c)])
	}
	fmt.Fprintln(out)
}
