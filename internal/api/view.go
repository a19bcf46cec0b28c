package api

import (
	"go-responsegen/pkg/parser"
)

// parseResult is the JSON shape of a parsed answer. Kind tells which fields
// are set.
type parseResult struct {
	Kind   string `json:"kind"`
	Text   string `json:"text,omitempty"`
	Output string `json:"output,omitempty"`
	Scores []int  `json:"scores,omitempty"`
	Advice string `json:"advice,omitempty"`
	Agreed *bool  `json:"agreed,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func view(out any) parseResult {
	switch v := out.(type) {
	case parser.Continue:
		return parseResult{Kind: "continue", Text: v.Text()}
	case parser.Done:
		return parseResult{Kind: "done", Text: v.Text(), Output: v.Output()}
	case parser.Evaluation:
		return parseResult{Kind: "evaluation", Scores: v.Scores, Advice: v.Advice}
	case parser.Criticism:
		agreed := v.Agreed
		return parseResult{Kind: "criticism", Agreed: &agreed, Reason: v.Reason}
	default:
		return parseResult{Kind: "unknown"}
	}
}
