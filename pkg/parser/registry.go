package parser

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tmc/langchaingo/schema"
)

// Role keys the parsers are registered under.
const (
	ResponderGPT35 = "responsegen/gpt-3.5"
	ResponderGPT4  = "responsegen/gpt-4"
	SolverKey      = "responsegen-solver"
	EvaluatorKey   = "responsegen-evaluator"
	CriticKey      = "responsegen-critic"
)

var ErrUnknownRole = errors.New("unknown parser role")

// Options configures a parser at build time.
type Options struct {
	Dimensions []string
}

type Factory func(key string, opts Options) schema.OutputParser[any]

// Registry maps role keys to parser factories. It is filled once in
// NewRegistry and only read afterwards.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	finish := func(key string, _ Options) schema.OutputParser[any] { return Erase[Decision](NewFinish(key)) }
	return &Registry{factories: map[string]Factory{
		ResponderGPT35: finish,
		ResponderGPT4:  finish,
		SolverKey: func(key string, _ Options) schema.OutputParser[any] {
			return Erase[Decision](NewPassthrough(key))
		},
		EvaluatorKey: func(key string, opts Options) schema.OutputParser[any] {
			return Erase[Evaluation](NewEvaluator(key, opts.Dimensions))
		},
		CriticKey: func(key string, _ Options) schema.OutputParser[any] {
			return Erase[Criticism](NewCritic(key))
		},
	}}
}

// Build returns the parser registered under key.
func (r *Registry) Build(key string, opts Options) (schema.OutputParser[any], error) {
	f, ok := r.factories[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, key)
	}
	return f(key, opts), nil
}

func (r *Registry) Has(key string) bool {
	_, ok := r.factories[key]
	return ok
}

// Keys lists the registered role keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
