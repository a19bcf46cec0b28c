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
	"strings"
)

var EvaluatePrompt = langChainPrompts.NewPromptTemplate(prompts.Evaluator, prompts.EvaluatorInputs)

type Handler struct {
	chain      *chains.LLMChain
	parser     schema.OutputParser[any]
	dimensions []string
	metrics    *metrics.Metrics
}

// New builds an evaluator handler. p must have been built with the same
// dimensions, in the same order.
func New(llm llms.Model, p schema.OutputParser[any], dimensions []string, m *metrics.Metrics) *Handler {
	chain := chains.NewLLMChain(llm, EvaluatePrompt)
	chain.OutputParser = p
	return &Handler{chain: chain, parser: p, dimensions: dimensions, metrics: m}
}

func (h *Handler) Evaluate(ctx context.Context, msg messages.Evaluate) models.HandlerResult {
	values := map[string]any{
		"Task":               msg.Task,
		"Response":           msg.Response,
		"Dimensions":         strings.Join(h.dimensions, ", "),
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

	evaluation, ok := completion[h.chain.OutputKey].(parser.Evaluation)
	if !ok {
		return models.HandlerResult{Question: question.String(), Error: fmt.Errorf("unexpected evaluator output %T", completion[h.chain.OutputKey])}
	}
	return models.HandlerResult{Question: question.String(), Output: evaluation}
}
