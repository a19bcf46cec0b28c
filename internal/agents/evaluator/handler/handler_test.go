package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms/fake"
	"go-responsegen/pkg/messages"
	"go-responsegen/pkg/parser"
)

func TestEvaluate(t *testing.T) {
	dims := []string{"Fluency", "Coherence"}
	p, err := parser.NewRegistry().Build(parser.EvaluatorKey, parser.Options{Dimensions: dims})
	require.NoError(t, err)

	h := New(fake.NewFakeLLM([]string{"1. Fluency: 4\n2. Coherence: 3\n3. Advice: Improve\n\nclarity."}), p, dims, nil)
	hRes := h.Evaluate(context.Background(), messages.Evaluate{Task: "Explain TCP", Response: "TCP is a protocol."})
	require.NoError(t, hRes.Error)
	assert.Contains(t, hRes.Question, "Fluency, Coherence")
	assert.Contains(t, hRes.Question, "1. Fluency: <score>")
	assert.Equal(t, parser.Evaluation{Scores: []int{4, 3}, Advice: "Improve\nclarity."}, hRes.Output)
}

func TestEvaluateBadAnswer(t *testing.T) {
	dims := []string{"Fluency"}
	p, err := parser.NewRegistry().Build(parser.EvaluatorKey, parser.Options{Dimensions: dims})
	require.NoError(t, err)

	h := New(fake.NewFakeLLM([]string{"Fluency: great\nAdvice: none"}), p, dims, nil)
	hRes := h.Evaluate(context.Background(), messages.Evaluate{Task: "t", Response: "r"})
	require.Error(t, hRes.Error)
	assert.Nil(t, hRes.Output)
}
