package messages

import (
	"github.com/google/uuid"
	"go-responsegen/pkg/models"
	"go-responsegen/pkg/parser"
)

type NewTask struct {
	RequestID  uuid.UUID
	Task       string
	Dimensions []string
}

// Solve asks the solver for a (revised) response. Draft and Feedback are
// empty on the first attempt.
type Solve struct {
	RequestID uuid.UUID
	Task      string
	Draft     string
	Feedback  string
}

type SolverResult struct {
	Question string
	Decision parser.Decision
}

type Review struct {
	RequestID uuid.UUID
	Index     int
	Task      string
	Response  string
}

type CriticResult struct {
	Index     int
	Question  string
	Criticism parser.Criticism
}

type Evaluate struct {
	RequestID uuid.UUID
	Task      string
	Response  string
}

type EvaluationResult struct {
	Question   string
	Evaluation parser.Evaluation
}

type GetStatus struct{}

type ReportError struct {
	Error models.Error
}
