package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-responsegen/internal/agents/agenttest"
	"go-responsegen/internal/agents/coordinator/handler"
	"go-responsegen/pkg/config"
	"go-responsegen/pkg/models"
	"go-responsegen/pkg/parser"
)

func newTestServer(llm *agenttest.LLM) *Server {
	deps := handler.Deps{
		LLM:      llm,
		Registry: parser.NewRegistry(),
		Roles: config.Roles{
			Solver:    parser.SolverKey,
			Critic:    parser.CriticKey,
			Evaluator: parser.EvaluatorKey,
			Critics:   1,
		},
		Task:       config.Task{MaxRounds: 2, MaxTurns: 1, PassScore: 5, CallTimeout: 5 * time.Second},
		Dimensions: []string{"Fluency", "Coherence"},
	}
	return New(actor.NewActorSystem().Root, 0, deps)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestParseEndpoint(t *testing.T) {
	s := newTestServer(agenttest.NewLLM(nil, nil, nil))

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		want   parseResult
	}{
		{
			name:   "responder",
			path:   "/parse/responsegen/gpt-4",
			body:   `{"text": "All done."}`,
			status: http.StatusOK,
			want:   parseResult{Kind: "done", Text: "All done.", Output: "All done."},
		},
		{
			name:   "solver",
			path:   "/parse/responsegen-solver",
			body:   `{"text": "a draft"}`,
			status: http.StatusOK,
			want:   parseResult{Kind: "continue", Text: "a draft"},
		},
		{
			name:   "evaluator with default dimensions",
			path:   "/parse/responsegen-evaluator",
			body:   `{"text": "1. Fluency: 4\n2. Coherence: 3\nAdvice: Improve transitions."}`,
			status: http.StatusOK,
			want:   parseResult{Kind: "evaluation", Scores: []int{4, 3}, Advice: "Improve transitions."},
		},
		{
			name:   "evaluator with request dimensions",
			path:   "/parse/responsegen-evaluator",
			body:   `{"text": "Humor: 7\nAdvice: More puns.", "dimensions": ["Humor"]}`,
			status: http.StatusOK,
			want:   parseResult{Kind: "evaluation", Scores: []int{7}, Advice: "More puns."},
		},
		{
			name:   "critic",
			path:   "/parse/responsegen-critic",
			body:   `{"text": "Action: Disagree.\nAction Input: The logic in step 2 is wrong."}`,
			status: http.StatusOK,
			want:   parseResult{Kind: "criticism", Agreed: new(bool), Reason: "The logic in step 2 is wrong."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.path, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			var res parseResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.Equal(t, strings.TrimPrefix(tt.path, "/parse/"), res.Role)
			assert.Equal(t, tt.want, res.Result)
		})
	}
}

func TestParseEndpointErrors(t *testing.T) {
	s := newTestServer(agenttest.NewLLM(nil, nil, nil))

	rec := do(t, s, http.MethodPost, "/parse/responsegen-critic", `{"text": "I am not sure."}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var res errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "I am not sure.", res.Text)

	rec = do(t, s, http.MethodPost, "/parse/responsegen-judge", `{"text": "x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/parse/responsegen-critic", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/parse/responsegen-evaluator", `{"text": "Tone: 5\nAdvice: ok", "dimensions": ["Tone", " "]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), parser.ErrBlankDimension.Error())
}

func TestRoles(t *testing.T) {
	s := newTestServer(agenttest.NewLLM(nil, nil, nil))
	rec := do(t, s, http.MethodGet, "/roles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), parser.EvaluatorKey)
}

func TestNewAndStatus(t *testing.T) {
	s := newTestServer(agenttest.NewLLM(
		[]string{"Hello there."},
		[]string{"Action: Agree."},
		[]string{"Fluency: 6\nCoherence: 7\nAdvice: Warmer tone."},
	))

	rec := do(t, s, http.MethodPost, "/new", `{"task": "Greet the user"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		Id string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Id)

	var status getStatus
	require.Eventually(t, func() bool {
		rec := do(t, s, http.MethodGet, "/status/"+created.Id, "")
		if rec.Code != http.StatusOK {
			return false
		}
		status = getStatus{}
		if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
			return false
		}
		return status.Status.Task.State.Done()
	}, 10*time.Second, 20*time.Millisecond)

	task := status.Status.Task
	assert.Equal(t, models.Finished, task.State)
	assert.Equal(t, "Hello there.", task.Response)
	require.Len(t, task.History, 1)
	require.NotNil(t, task.History[0].Evaluation)
	assert.Equal(t, "Warmer tone.", task.History[0].Evaluation.Advice)
}

func TestNewAndStatusErrors(t *testing.T) {
	s := newTestServer(agenttest.NewLLM(nil, nil, nil))

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/new", `{"task": " "}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/new", `{"task": "Greet", "dimensions": [""]}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/status/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/status/6f1c2d1e-7c55-4c53-9a55-3f1b6a0c9e21", "").Code)
}
