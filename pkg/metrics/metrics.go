package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "responsegen"

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the collectors the agents and the API report to. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	parses *prometheus.CounterVec
	tasks  *prometheus.CounterVec
}

// New registers the collectors with reg. Collectors that are already
// registered are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	parses := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_total",
			Help:      "Agent answers parsed, by parser role and outcome.",
		},
		[]string{"role", "outcome"},
	)
	tasks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_total",
			Help:      "Response generation tasks that reached a final state.",
		},
		[]string{"state"},
	)

	var err error
	if parses, err = register(reg, parses); err != nil {
		return nil, err
	}
	if tasks, err = register(reg, tasks); err != nil {
		return nil, err
	}
	return &Metrics{parses: parses, tasks: tasks}, nil
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func (m *Metrics) Parsed(role string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.parses.WithLabelValues(role, outcome).Inc()
}

func (m *Metrics) TaskDone(state string) {
	if m == nil {
		return
	}
	m.tasks.WithLabelValues(state).Inc()
}
