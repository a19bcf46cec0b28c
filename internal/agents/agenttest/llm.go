// Package agenttest provides a scripted language model for agent tests.
package agenttest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// Marker phrases found in the role prompts.
const (
	CriticMarker    = "careful reviewer"
	EvaluatorMarker = "experienced judge"
)

// LLM answers by role: every prompt containing CriticMarker gets the next
// critic answer, EvaluatorMarker the next evaluator answer, anything else the
// next solver answer. The last answer of a role repeats once the script runs
// out. Safe for concurrent use.
type LLM struct {
	mu        sync.Mutex
	solver    []string
	critic    []string
	evaluator []string
	prompts   []string
}

var _ llms.Model = (*LLM)(nil)

func NewLLM(solver, critic, evaluator []string) *LLM {
	return &LLM{solver: solver, critic: critic, evaluator: evaluator}
}

func (l *LLM) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	var b strings.Builder
	for _, m := range messages {
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				b.WriteString(text.Text)
			}
		}
	}
	prompt := b.String()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.prompts = append(l.prompts, prompt)

	var script *[]string
	switch {
	case strings.Contains(prompt, CriticMarker):
		script = &l.critic
	case strings.Contains(prompt, EvaluatorMarker):
		script = &l.evaluator
	default:
		script = &l.solver
	}
	if len(*script) == 0 {
		return nil, errors.New("no scripted answer")
	}
	answer := (*script)[0]
	if len(*script) > 1 {
		*script = (*script)[1:]
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: answer}}}, nil
}

func (l *LLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, l, prompt, options...)
}

// Prompts returns every prompt received so far.
func (l *LLM) Prompts() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.prompts...)
}
