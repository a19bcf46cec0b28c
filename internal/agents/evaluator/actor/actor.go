package actor

import (
	"context"
	"github.com/asynkron/protoactor-go/actor"
	"github.com/rs/zerolog/log"
	"go-responsegen/internal/agents/evaluator/handler"
	"go-responsegen/pkg/logger"
	"go-responsegen/pkg/messages"
	"go-responsegen/pkg/models"
	"go-responsegen/pkg/parser"
	"time"
)

type Evaluator struct {
	handler *handler.Handler
	timeout time.Duration
	state   models.State
}

func New(h *handler.Handler, timeout time.Duration) func() actor.Actor {
	return func() actor.Actor {
		return &Evaluator{
			handler: h,
			timeout: timeout,
			state:   models.Init,
		}
	}
}

func (agent *Evaluator) Receive(ac actor.Context) {
	l := logger.ForAgent(ac.Self().GetId(), "evaluator")
	switch msg := ac.Message().(type) {
	case *actor.Started:
		l.Debug().Msg("starting actor")
	case *actor.Stopping:
		l.Debug().Msg("stopping actor")
	case *actor.Stopped:
		l.Debug().Msg("stopped actor and its children")
	case *actor.Restarting:
		l.Debug().Msg("restarting actor")
	case messages.Evaluate:
		l.Debug().Str(logger.RequestTaskID, msg.RequestID.String()).Msg("Evaluate received from coordinator")
		agent.state = models.Thinking

		ctx, cancel := context.WithTimeout(context.Background(), agent.timeout)
		defer cancel()
		hRes := agent.handler.Evaluate(ctx, msg)
		if hRes.Error != nil {
			l.Error().Err(hRes.Error).Msg("bad response from evaluator")
			agent.reportErrorToParent(ac, models.NewError(hRes.Error, msg))
			return
		}

		evaluation := hRes.Output.(parser.Evaluation)
		l.Info().Str(logger.RequestTaskID, msg.RequestID.String()).Ints("scores", evaluation.Scores).
			Msgf("evaluator gave the following advice:\n%s", evaluation.Advice)
		agent.state = models.Finished
		ac.Send(ac.Parent(), messages.EvaluationResult{Question: hRes.Question, Evaluation: evaluation})
		ac.Stop(ac.Self())
	default:
		l.Warn().Msgf("unknown message: %v", msg)
	}
}

func (agent *Evaluator) reportErrorToParent(ac actor.Context, err models.Error) {
	agent.state = models.Failed
	log.Error().Err(err.Err).Msg("reporting error to parent...")
	ac.Send(ac.Parent(), messages.ReportError{Error: err})
	ac.Stop(ac.Self())
}
