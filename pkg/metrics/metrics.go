package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the planner
	Registry = prometheus.NewRegistry()

	// PlanRuns counts planning runs by solver and outcome
	PlanRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "netplan_plan_runs_total", Help: "Planning runs by solver and outcome."},
		[]string{"solver", "outcome"},
	)
	// PhaseDuration records how long each planning phase took
	PhaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "netplan_phase_duration_seconds", Help: "Planning phase duration in seconds.", Buckets: prometheus.ExponentialBuckets(0.001, 4, 10)},
		[]string{"phase"},
	)
	// ProgramSize is the size of the last assembled program
	ProgramSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "netplan_program_size", Help: "Variables and constraints of the last assembled program."},
		[]string{"kind"},
	)
	// PlanObjective is the objective of the last solved plan
	PlanObjective = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "netplan_plan_objective", Help: "Objective value of the last solved plan."},
	)
	// FlightsScheduled is the number of departures per day in the last plan
	FlightsScheduled = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "netplan_flights_scheduled", Help: "Departures scheduled per day in the last plan."},
		[]string{"day"},
	)
	// PassengersUnserved is demand discharged to the sink per day in the last plan
	PassengersUnserved = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "netplan_passengers_unserved", Help: "Demand left unserved per day in the last plan."},
		[]string{"day"},
	)
)

// RegisterDefault registers collectors to the planner registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(PlanRuns)
		Registry.MustRegister(PhaseDuration)
		Registry.MustRegister(ProgramSize)
		Registry.MustRegister(PlanObjective)
		Registry.MustRegister(FlightsScheduled)
		Registry.MustRegister(PassengersUnserved)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once

// WriteTextfile writes the registry in the node exporter textfile format.
func WriteTextfile(path string) error {
	RegisterDefault()
	return prometheus.WriteToTextfile(path, Registry)
}
