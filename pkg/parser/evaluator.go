package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go-responsegen/pkg/data"
)

const advicePrefix = "Advice:"

var advicePattern = regexp.MustCompile(`(?s)(?:\d\.\s*)?Advice:\s*(.+)`)

// ErrBlankDimension is returned for a dimension name that is empty after
// trimming; its pattern would match any "<n>: <digit>".
var ErrBlankDimension = errors.New("blank dimension name")

// ValidateDimensions rejects blank dimension names.
func ValidateDimensions(dimensions []string) error {
	for i, d := range dimensions {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("dimension %d: %w", i+1, ErrBlankDimension)
		}
	}
	return nil
}

// Evaluator reads one single-digit score per dimension, one dimension per
// line in the configured order, followed by a free-text advice.
type Evaluator struct {
	key        string
	dimensions []string
	patterns   []*regexp.Regexp
}

var _ schema.OutputParser[Evaluation] = Evaluator{}

func NewEvaluator(key string, dimensions []string) Evaluator {
	dims := make([]string, len(dimensions))
	copy(dims, dimensions)
	patterns := make([]*regexp.Regexp, len(dims))
	for i, d := range dims {
		patterns[i] = regexp.MustCompile(`(?:\d\.\s*)?` + regexp.QuoteMeta(d) + `:\s*(\d)`)
	}
	return Evaluator{key: key, dimensions: dims, patterns: patterns}
}

// Dimensions returns a copy of the configured dimension names.
func (p Evaluator) Dimensions() []string {
	return append([]string(nil), p.dimensions...)
}

func (p Evaluator) Parse(text string) (Evaluation, error) {
	lines := data.Lines(text)

	// advice may span several lines; fold them back into the last one
	var advice string
	for i := len(lines) - 1; i >= 0; i-- {
		if advice == "" {
			advice = lines[i]
		} else {
			advice = lines[i] + "\n" + advice
		}
		if strings.HasPrefix(lines[i], advicePrefix) {
			break
		}
	}
	lines[len(lines)-1] = advice

	// the last line holds the advice, so scores are only read above it
	scores := make([]int, len(p.patterns))
	for i, pattern := range p.patterns {
		if i >= len(lines)-1 {
			return Evaluation{}, parseError(text, fmt.Sprintf("missing score line for %s", p.dimensions[i]))
		}
		m := pattern.FindStringSubmatch(lines[i])
		if m == nil {
			return Evaluation{}, parseError(text, fmt.Sprintf("no score for %s on line %d", p.dimensions[i], i+1))
		}
		score, err := strconv.Atoi(m[1])
		if err != nil {
			return Evaluation{}, parseError(text, fmt.Sprintf("score for %s: %v", p.dimensions[i], err))
		}
		scores[i] = score
	}

	m := advicePattern.FindStringSubmatch(lines[len(lines)-1])
	if m == nil {
		return Evaluation{}, parseError(text, "no advice found")
	}
	return Evaluation{Scores: scores, Advice: m[1]}, nil
}

func (p Evaluator) ParseWithPrompt(text string, _ llms.PromptValue) (Evaluation, error) {
	return p.Parse(text)
}

func (p Evaluator) GetFormatInstructions() string {
	var b strings.Builder
	b.WriteString("Give every score as a single digit from 0 to 9, one per line, in exactly this format:\n")
	for i, d := range p.dimensions {
		fmt.Fprintf(&b, "%d. %s: <score>\n", i+1, d)
	}
	fmt.Fprintf(&b, "%d. %s <your advice on how to improve the response>", len(p.dimensions)+1, advicePrefix)
	return b.String()
}

func (p Evaluator) Type() string { return p.key }
