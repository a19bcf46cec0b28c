package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryKeys(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{CriticKey, EvaluatorKey, SolverKey, ResponderGPT35, ResponderGPT4}, r.Keys())
	assert.True(t, r.Has(CriticKey))
	assert.False(t, r.Has("responsegen-judge"))
}

func TestRegistryBuild(t *testing.T) {
	r := NewRegistry()

	p, err := r.Build(ResponderGPT35, Options{})
	require.NoError(t, err)
	assert.Equal(t, ResponderGPT35, p.Type())
	out, err := p.Parse("final")
	require.NoError(t, err)
	assert.IsType(t, Done{}, out)

	p, err = r.Build(SolverKey, Options{})
	require.NoError(t, err)
	out, err = p.Parse("draft")
	require.NoError(t, err)
	assert.IsType(t, Continue{}, out)

	p, err = r.Build(EvaluatorKey, Options{Dimensions: []string{"Fluency"}})
	require.NoError(t, err)
	out, err = p.Parse("Fluency: 5\nAdvice: more detail")
	require.NoError(t, err)
	assert.Equal(t, Evaluation{Scores: []int{5}, Advice: "more detail"}, out)

	p, err = r.Build(CriticKey, Options{})
	require.NoError(t, err)
	out, err = p.ParseWithPrompt("Action: Agree", nil)
	require.NoError(t, err)
	assert.Equal(t, Criticism{Agreed: true}, out)

	_, err = r.Build("unknown", Options{})
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestErasedKeepsParseError(t *testing.T) {
	p, err := NewRegistry().Build(CriticKey, Options{})
	require.NoError(t, err)
	out, err := p.Parse("nope")
	assert.Nil(t, out)
	requireParseError(t, err, "nope")
}
