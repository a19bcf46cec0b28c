package parser

import (
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// Finish wraps the whole answer as the final result.
type Finish struct {
	key string
}

var _ schema.OutputParser[Decision] = Finish{}

func NewFinish(key string) Finish { return Finish{key: key} }

func (p Finish) Parse(text string) (Decision, error) {
	return Done{schema.AgentFinish{
		ReturnValues: map[string]any{outputKey: text},
		Log:          text,
	}}, nil
}

func (p Finish) ParseWithPrompt(text string, _ llms.PromptValue) (Decision, error) {
	return p.Parse(text)
}

func (p Finish) GetFormatInstructions() string {
	return "Reply with the final response only."
}

func (p Finish) Type() string { return p.key }

// Passthrough hands the answer on unchanged as a draft.
type Passthrough struct {
	key string
}

var _ schema.OutputParser[Decision] = Passthrough{}

func NewPassthrough(key string) Passthrough { return Passthrough{key: key} }

func (p Passthrough) Parse(text string) (Decision, error) {
	return Continue{schema.AgentAction{Log: text}}, nil
}

func (p Passthrough) ParseWithPrompt(text string, _ llms.PromptValue) (Decision, error) {
	return p.Parse(text)
}

func (p Passthrough) GetFormatInstructions() string {
	return "Reply with your response only, without any preamble."
}

func (p Passthrough) Type() string { return p.key }
