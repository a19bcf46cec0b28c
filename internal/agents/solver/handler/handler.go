package handler

import (
	"context"
	"errors"
	"fmt"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/outputparser"
	langChainPrompts "github.com/tmc/langchaingo/prompts"
	"github.com/tmc/langchaingo/schema"
	"go-responsegen/pkg/messages"
	"go-responsegen/pkg/metrics"
	"go-responsegen/pkg/models"
	"go-responsegen/pkg/parser"
	"go-responsegen/pkg/prompts"
)

var SolvePrompt = langChainPrompts.NewPromptTemplate(prompts.Solver, prompts.SolverInputs)

type Handler struct {
	chain   *chains.LLMChain
	parser  schema.OutputParser[any]
	metrics *metrics.Metrics
}

// New builds a solver handler. p decides whether the answer is a draft for
// the critics (parser.Continue) or the final response (parser.Done).
func New(llm llms.Model, p schema.OutputParser[any], m *metrics.Metrics) *Handler {
	chain := chains.NewLLMChain(llm, SolvePrompt)
	chain.OutputParser = p
	return &Handler{chain: chain, parser: p, metrics: m}
}

func (h *Handler) Solve(ctx context.Context, msg messages.Solve) models.HandlerResult {
	values := map[string]any{
		"Task":               msg.Task,
		"Draft":              msg.Draft,
		"Feedback":           msg.Feedback,
		"FormatInstructions": h.parser.GetFormatInstructions(),
	}
	question, err := h.chain.Prompt.FormatPrompt(values)
	if err != nil {
		return models.HandlerResult{Error: fmt.Errorf("execute: %w", err)}
	}

	completion, err := chains.Call(ctx, h.chain, values)
	var perr outputparser.ParseError
	if err == nil || errors.As(err, &perr) {
		h.metrics.Parsed(h.parser.Type(), err)
	}
	if err != nil {
		return models.HandlerResult{Question: question.String(), Error: fmt.Errorf("call: %w", err)}
	}

	decision, ok := completion[h.chain.OutputKey].(parser.Decision)
	if !ok {
		return models.HandlerResult{Question: question.String(), Error: fmt.Errorf("unexpected solver output %T", completion[h.chain.OutputKey])}
	}
	return models.HandlerResult{Question: question.String(), Output: decision}
}
