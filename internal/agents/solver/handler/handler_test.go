package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms/fake"
	"github.com/tmc/langchaingo/outputparser"
	"go-responsegen/pkg/messages"
	"go-responsegen/pkg/parser"
)

func build(t *testing.T, key string, answers ...string) *Handler {
	t.Helper()
	p, err := parser.NewRegistry().Build(key, parser.Options{})
	require.NoError(t, err)
	return New(fake.NewFakeLLM(answers), p, nil)
}

func TestSolveDraft(t *testing.T) {
	h := build(t, parser.SolverKey, "A short poem about the sea.")
	hRes := h.Solve(context.Background(), messages.Solve{Task: "Write a poem", Feedback: "rhyme more"})
	require.NoError(t, hRes.Error)
	assert.Contains(t, hRes.Question, "Write a poem")
	assert.Contains(t, hRes.Question, "rhyme more")

	d, ok := hRes.Output.(parser.Continue)
	require.True(t, ok)
	assert.Equal(t, "A short poem about the sea.", d.Text())
}

func TestSolveFinal(t *testing.T) {
	h := build(t, parser.ResponderGPT4, "Final answer.")
	hRes := h.Solve(context.Background(), messages.Solve{Task: "Answer"})
	require.NoError(t, hRes.Error)

	d, ok := hRes.Output.(parser.Done)
	require.True(t, ok)
	assert.Equal(t, "Final answer.", d.Output())
}

func TestSolveLLMError(t *testing.T) {
	h := build(t, parser.SolverKey)
	hRes := h.Solve(context.Background(), messages.Solve{Task: "Answer"})
	require.Error(t, hRes.Error)
	var perr outputparser.ParseError
	assert.False(t, errors.As(hRes.Error, &perr))
}
