// Package parser turns free-text answers from the response generation agents
// into the structured values the coordinator acts on. Every parser satisfies
// langchaingo's schema.OutputParser so it can be plugged into an LLMChain.
package parser

import (
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/outputparser"
	"github.com/tmc/langchaingo/schema"
)

const outputKey = "output"

// Decision is the result of a solver or responder turn: either Continue with
// the content or Done with a final answer.
type Decision interface {
	Text() string
	decision()
}

// Continue means the content is a draft that the rest of the task acts on.
type Continue struct {
	schema.AgentAction
}

func (c Continue) Text() string { return c.Log }
func (Continue) decision() {}

// Done means the content is the final answer.
type Done struct {
	schema.AgentFinish
}

func (d Done) Text() string { return d.Log }
func (Done) decision() {}

// Output returns the "output" return value.
func (d Done) Output() string {
	out, _ := d.ReturnValues[outputKey].(string)
	return out
}

// Evaluation holds one score per configured dimension, in order, and the
// evaluator's advice.
type Evaluation struct {
	Scores []int  `json:"scores"`
	Advice string `json:"advice"`
}

// Passed reports whether every score reaches the threshold.
func (e Evaluation) Passed(threshold int) bool {
	for _, s := range e.Scores {
		if s < threshold {
			return false
		}
	}
	return true
}

// Criticism is a critic's verdict. Reason is empty when Agreed.
type Criticism struct {
	Agreed bool   `json:"agreed"`
	Reason string `json:"reason,omitempty"`
}

func parseError(text, reason string) error {
	return outputparser.ParseError{Text: text, Reason: reason}
}

// erased adapts a typed parser to schema.OutputParser[any], the type
// chains.LLMChain expects.
type erased[T any] struct {
	p schema.OutputParser[T]
}

// Erase hides the result type of p.
func Erase[T any](p schema.OutputParser[T]) schema.OutputParser[any] {
	return erased[T]{p: p}
}

func (e erased[T]) Parse(text string) (any, error) {
	out, err := e.p.Parse(text)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e erased[T]) ParseWithPrompt(text string, prompt llms.PromptValue) (any, error) {
	out, err := e.p.ParseWithPrompt(text, prompt)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e erased[T]) GetFormatInstructions() string { return e.p.GetFormatInstructions() }
func (e erased[T]) Type() string { return e.p.Type() }
