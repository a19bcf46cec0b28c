package handler

import (
	"fmt"
	"github.com/tmc/langchaingo/llms"
	criticHandler "go-responsegen/internal/agents/critic/handler"
	evaluatorHandler "go-responsegen/internal/agents/evaluator/handler"
	solverHandler "go-responsegen/internal/agents/solver/handler"
	"go-responsegen/pkg/config"
	"go-responsegen/pkg/metrics"
	"go-responsegen/pkg/parser"
	"strings"
)

// Deps is everything a coordinator needs to staff a task.
type Deps struct {
	LLM        llms.Model
	Registry   *parser.Registry
	Roles      config.Roles
	Task       config.Task
	Dimensions []string // used when a task names none
	Metrics    *metrics.Metrics
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Team holds one handler per agent role for a single task.
type Team struct {
	Solver     *solverHandler.Handler
	Critic     *criticHandler.Handler
	Evaluator  *evaluatorHandler.Handler
	Dimensions []string
}

// Team builds the role handlers for a task scored on dimensions, falling back
// to the configured dimensions.
func (h *Handler) Team(dimensions []string) (Team, error) {
	if len(dimensions) == 0 {
		dimensions = h.deps.Dimensions
	}
	if err := parser.ValidateDimensions(dimensions); err != nil {
		return Team{}, fmt.Errorf("evaluator: %w", err)
	}
	dims := append([]string(nil), dimensions...)

	solver, err := h.deps.Registry.Build(h.deps.Roles.Solver, parser.Options{})
	if err != nil {
		return Team{}, fmt.Errorf("solver: %w", err)
	}
	critic, err := h.deps.Registry.Build(h.deps.Roles.Critic, parser.Options{})
	if err != nil {
		return Team{}, fmt.Errorf("critic: %w", err)
	}
	evaluator, err := h.deps.Registry.Build(h.deps.Roles.Evaluator, parser.Options{Dimensions: dims})
	if err != nil {
		return Team{}, fmt.Errorf("evaluator: %w", err)
	}

	return Team{
		Solver:     solverHandler.New(h.deps.LLM, solver, h.deps.Metrics),
		Critic:     criticHandler.New(h.deps.LLM, critic, h.deps.Metrics),
		Evaluator:  evaluatorHandler.New(h.deps.LLM, evaluator, dims, h.deps.Metrics),
		Dimensions: dims,
	}, nil
}

func (h *Handler) Limits() config.Task {
	return h.deps.Task
}

func (h *Handler) Critics() int {
	return h.deps.Roles.Critics
}

func (h *Handler) Metrics() *metrics.Metrics {
	return h.deps.Metrics
}

// Feedback lists the reasons of every critic that disagreed.
func Feedback(criticisms []parser.Criticism) string {
	var b strings.Builder
	for _, c := range criticisms {
		if c.Agreed {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(c.Reason)
	}
	return b.String()
}

// Agreed reports whether no critic disagreed.
func Agreed(criticisms []parser.Criticism) bool {
	for _, c := range criticisms {
		if !c.Agreed {
			return false
		}
	}
	return true
}
