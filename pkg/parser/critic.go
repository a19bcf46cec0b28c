package parser

import (
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go-responsegen/pkg/data"
)

// DefaultDisagreement is the reason used when a critic disagrees without
// giving one.
const DefaultDisagreement = "I think the solution is not correct. Please think carefully and correct it."

const (
	actionPrefix   = "Action:"
	actionAgree    = "Action: Agree"
	actionDisagree = "Action: Disagree"
)

var actionInputPattern = regexp.MustCompile(`Action Input: ([\S\n ]+)`)

// Critic reads an agree or disagree verdict from the first line of the
// answer, and the reason for a disagreement from an "Action Input:" line.
type Critic struct {
	key string
}

var _ schema.OutputParser[Criticism] = Critic{}

func NewCritic(key string) Critic { return Critic{key: key} }

func (p Critic) Parse(text string) (Criticism, error) {
	normalized := data.Normalize(text)
	first, _, _ := strings.Cut(normalized, "\n")
	if !strings.HasPrefix(first, actionPrefix) {
		return Criticism{}, parseError(text, "first line is not an action")
	}

	switch strings.Trim(first, ". ") {
	case actionAgree:
		return Criticism{Agreed: true}, nil
	case actionDisagree:
		reason := DefaultDisagreement
		if m := actionInputPattern.FindStringSubmatch(normalized); m != nil {
			if r := strings.TrimSpace(m[1]); r != "" {
				reason = r
			}
		}
		return Criticism{Reason: reason}, nil
	default:
		return Criticism{}, parseError(text, "unknown action "+first)
	}
}

func (p Critic) ParseWithPrompt(text string, _ llms.PromptValue) (Criticism, error) {
	return p.Parse(text)
}

func (p Critic) GetFormatInstructions() string {
	return "If the response is correct, answer with the single line:\n" +
		actionAgree + "\n" +
		"Otherwise answer with:\n" +
		actionDisagree + "\n" +
		"Action Input: <why the response is wrong and how to fix it>"
}

func (p Critic) Type() string { return p.key }
