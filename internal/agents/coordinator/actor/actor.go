package actor

import (
	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go-responsegen/internal/agents/coordinator/handler"
	criticActor "go-responsegen/internal/agents/critic/actor"
	evaluatorActor "go-responsegen/internal/agents/evaluator/actor"
	solverActor "go-responsegen/internal/agents/solver/actor"
	"go-responsegen/pkg/logger"
	"go-responsegen/pkg/memory/buffer"
	"go-responsegen/pkg/messages"
	"go-responsegen/pkg/models"
	"go-responsegen/pkg/parser"
)

// Coordinator runs one response generation task: the solver drafts, the
// critics review the draft until they agree or the rounds run out, then the
// evaluator scores it. A failing evaluation starts a new turn with the
// evaluator's advice as feedback.
type Coordinator struct {
	handler *handler.Handler
	team    handler.Team
	id      uuid.UUID
	task    string
	state   models.State
	err     *models.Error

	turn       int
	round      int
	response   string
	final      bool
	pending    int
	criticisms []parser.Criticism

	history []models.Step
	memory  buffer.Memories
}

func New(h *handler.Handler) func() actor.Actor {
	return func() actor.Actor {
		return &Coordinator{
			handler: h,
			id:      uuid.Nil,
			state:   models.Init,
			history: make([]models.Step, 0),
			memory:  buffer.Memories{Items: make([]buffer.Memory, 0)},
		}
	}
}

func (agent *Coordinator) Receive(ac actor.Context) {
	l := logger.ForAgent(ac.Self().GetId(), "coordinator")
	switch msg := ac.Message().(type) {
	case *actor.Started:
		l.Debug().Msg("starting actor")
	case *actor.Stopping:
		l.Debug().Msg("stopping actor")
	case *actor.Stopped:
		l.Debug().Msg("stopped actor and its children")
	case *actor.Restarting:
		l.Debug().Msg("restarting actor")
	case *actor.Terminated:
		l.Debug().Msg("child actor terminated")
	case messages.GetStatus:
		l.Debug().Msg("GetStatus message received from user")
		ac.Respond(agent.status())
	case messages.NewTask:
		l.Debug().Str(logger.RequestTaskID, msg.RequestID.String()).Msgf("NewTask received from user: %v", msg.Task)
		agent.id = msg.RequestID
		agent.task = msg.Task

		team, err := agent.handler.Team(msg.Dimensions)
		if err != nil {
			agent.fail(l, models.NewError(err, msg))
			return
		}
		agent.team = team
		agent.turn, agent.round = 1, 1
		agent.solve(ac, l, "")
	case messages.SolverResult:
		if agent.state.Done() {
			return
		}
		agent.memory.Add(buffer.Memory{Agent: "solver", Question: msg.Question, Answer: msg.Decision.Text()})
		agent.response = msg.Decision.Text()
		step := models.Step{Turn: agent.turn, Round: agent.round, Response: agent.response}

		switch msg.Decision.(type) {
		case parser.Done:
			step.Final = true
			agent.final = true
			agent.history = append(agent.history, step)
			l.Info().Str(logger.RequestTaskID, agent.id.String()).Msg("solver gave a final response, evaluating...")
			agent.evaluate(ac, l)
		case parser.Continue:
			agent.history = append(agent.history, step)
			if agent.handler.Critics() == 0 {
				agent.evaluate(ac, l)
				return
			}
			agent.review(ac, l)
		}
	case messages.CriticResult:
		if agent.state != models.Reviewing || msg.Index < 0 || msg.Index >= len(agent.criticisms) {
			l.Warn().Str(logger.RequestTaskID, agent.id.String()).Msgf("unexpected critic result %d", msg.Index)
			return
		}
		agent.memory.Add(buffer.Memory{Agent: "critic", Question: msg.Question, Answer: msg.Criticism})
		agent.criticisms[msg.Index] = msg.Criticism
		agent.pending--
		if agent.pending > 0 {
			return
		}

		agent.lastStep().Criticisms = append([]parser.Criticism(nil), agent.criticisms...)
		if handler.Agreed(agent.criticisms) {
			l.Info().Str(logger.RequestTaskID, agent.id.String()).Int(logger.RoundField, agent.round).Msg("critics agree, evaluating...")
			agent.evaluate(ac, l)
			return
		}
		if agent.round >= agent.handler.Limits().MaxRounds {
			l.Info().Str(logger.RequestTaskID, agent.id.String()).Int(logger.RoundField, agent.round).Msg("out of review rounds, evaluating...")
			agent.evaluate(ac, l)
			return
		}
		agent.round++
		agent.solve(ac, l, handler.Feedback(agent.criticisms))
	case messages.EvaluationResult:
		if agent.state != models.Evaluating {
			return
		}
		agent.memory.Add(buffer.Memory{Agent: "evaluator", Question: msg.Question, Answer: msg.Evaluation})
		evaluation := msg.Evaluation
		agent.lastStep().Evaluation = &evaluation

		limits := agent.handler.Limits()
		if agent.final || evaluation.Passed(limits.PassScore) || agent.turn >= limits.MaxTurns {
			agent.finish(l)
			return
		}
		agent.turn++
		agent.round = 1
		l.Info().Str(logger.RequestTaskID, agent.id.String()).Int(logger.TurnField, agent.turn).Msg("evaluation below the pass score, revising...")
		agent.solve(ac, l, evaluation.Advice)
	case messages.ReportError:
		l.Debug().Str(logger.RequestTaskID, agent.id.String()).Msgf("ReportError received from child agent: %v", msg)
		agent.fail(l, msg.Error)
	default:
		l.Warn().Str(logger.RequestTaskID, agent.id.String()).Msgf("unknown message: %v", msg)
	}
}

func (agent *Coordinator) solve(ac actor.Context, l zerolog.Logger, feedback string) {
	agent.state = models.Thinking
	l.Info().Str(logger.RequestTaskID, agent.id.String()).Int(logger.TurnField, agent.turn).Int(logger.RoundField, agent.round).
		Msg("asking the solver for a response...")
	child := ac.Spawn(actor.PropsFromProducer(solverActor.New(agent.team.Solver, agent.handler.Limits().CallTimeout)))
	ac.Send(child, messages.Solve{RequestID: agent.id, Task: agent.task, Draft: agent.response, Feedback: feedback})
}

func (agent *Coordinator) review(ac actor.Context, l zerolog.Logger) {
	agent.state = models.Reviewing
	n := agent.handler.Critics()
	agent.criticisms = make([]parser.Criticism, n)
	agent.pending = n
	l.Info().Str(logger.RequestTaskID, agent.id.String()).Int(logger.RoundField, agent.round).Msgf("sending the response to %d critics...", n)
	for i := 0; i < n; i++ {
		child := ac.Spawn(actor.PropsFromProducer(criticActor.New(agent.team.Critic, agent.handler.Limits().CallTimeout)))
		ac.Send(child, messages.Review{RequestID: agent.id, Index: i, Task: agent.task, Response: agent.response})
	}
}

func (agent *Coordinator) evaluate(ac actor.Context, l zerolog.Logger) {
	agent.state = models.Evaluating
	l.Info().Str(logger.RequestTaskID, agent.id.String()).Int(logger.TurnField, agent.turn).Msg("sending the response to the evaluator...")
	child := ac.Spawn(actor.PropsFromProducer(evaluatorActor.New(agent.team.Evaluator, agent.handler.Limits().CallTimeout)))
	ac.Send(child, messages.Evaluate{RequestID: agent.id, Task: agent.task, Response: agent.response})
}

func (agent *Coordinator) finish(l zerolog.Logger) {
	agent.state = models.Finished
	agent.handler.Metrics().TaskDone(string(models.Finished))
	l.Info().Str(logger.RequestTaskID, agent.id.String()).Msg("Work complete!")
}

func (agent *Coordinator) fail(l zerolog.Logger, err models.Error) {
	if agent.state.Done() {
		return
	}
	agent.state = models.Failed
	agent.err = &err
	agent.handler.Metrics().TaskDone(string(models.Failed))
	l.Error().Err(err).Str(logger.RequestTaskID, agent.id.String()).Msg("task failed")
}

func (agent *Coordinator) lastStep() *models.Step {
	return &agent.history[len(agent.history)-1]
}

func (agent *Coordinator) status() models.Status {
	return models.Status{
		Task: models.Task{
			State:      agent.state,
			Task:       agent.task,
			Dimensions: agent.team.Dimensions,
			Response:   agent.response,
			History:    append(make([]models.Step, 0, len(agent.history)), agent.history...),
			Transcript: agent.memory.Snapshot(),
			Errs:       agent.err,
		},
	}
}
