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

var ReviewPrompt = langChainPrompts.NewPromptTemplate(prompts.Critic, prompts.CriticInputs)

type Handler struct {
	chain   *chains.LLMChain
	parser  schema.OutputParser[any]
	metrics *metrics.Metrics
}

func New(llm llms.Model, p schema.OutputParser[any], m *metrics.Metrics) *Handler {
	chain := chains.NewLLMChain(llm, ReviewPrompt)
	chain.OutputParser = p
	return &Handler{chain: chain, parser: p, metrics: m}
}

func (h *Handler) Review(ctx context.Context, msg messages.Review) models.HandlerResult {
	values := map[string]any{
		"Task":               msg.Task,
		"Response":           msg.Response,
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

	criticism, ok := completion[h.chain.OutputKey].(parser.Criticism)
	if !ok {
		return models.HandlerResult{Question: question.String(), Error: fmt.Errorf("unexpected critic output %T", completion[h.chain.OutputKey])}
	}
	return models.HandlerResult{Question: question.String(), Output: criticism}
}
