package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	langChainPrompts "github.com/tmc/langchaingo/prompts"
)

func TestSolverRendersFeedbackOnlyWhenPresent(t *testing.T) {
	p := langChainPrompts.NewPromptTemplate(Solver, SolverInputs)

	first, err := p.Format(map[string]any{"Task": "Say hi", "Draft": "", "Feedback": "", "FormatInstructions": "FMT"})
	require.NoError(t, err)
	assert.Contains(t, first, "Say hi")
	assert.NotContains(t, first, "last time")
	assert.NotContains(t, first, "feedback")

	again, err := p.Format(map[string]any{"Task": "Say hi", "Draft": "hey", "Feedback": "be polite", "FormatInstructions": "FMT"})
	require.NoError(t, err)
	assert.Contains(t, again, "hey")
	assert.Contains(t, again, "be polite")
	assert.Contains(t, again, "FMT")
}

func TestCriticAndEvaluatorRender(t *testing.T) {
	values := map[string]any{"Task": "T", "Response": "R", "Dimensions": "Fluency, Coherence", "FormatInstructions": "F"}

	c, err := langChainPrompts.NewPromptTemplate(Critic, CriticInputs).Format(values)
	require.NoError(t, err)
	assert.Contains(t, c, "R")

	e, err := langChainPrompts.NewPromptTemplate(Evaluator, EvaluatorInputs).Format(values)
	require.NoError(t, err)
	assert.Contains(t, e, "Fluency, Coherence")
}
