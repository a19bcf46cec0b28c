package actor

import (
	"context"
	"github.com/asynkron/protoactor-go/actor"
	"github.com/rs/zerolog/log"
	"go-responsegen/internal/agents/solver/handler"
	"go-responsegen/pkg/logger"
	"go-responsegen/pkg/messages"
	"go-responsegen/pkg/models"
	"go-responsegen/pkg/parser"
	"time"
)

type Solver struct {
	handler *handler.Handler
	timeout time.Duration
	state   models.State
}

func New(h *handler.Handler, timeout time.Duration) func() actor.Actor {
	return func() actor.Actor {
		return &Solver{
			handler: h,
			timeout: timeout,
			state:   models.Init,
		}
	}
}

func (agent *Solver) Receive(ac actor.Context) {
	l := logger.ForAgent(ac.Self().GetId(), "solver")
	switch msg := ac.Message().(type) {
	case *actor.Started:
		l.Debug().Msg("starting actor")
	case *actor.Stopping:
		l.Debug().Msg("stopping actor")
	case *actor.Stopped:
		l.Debug().Msg("stopped actor and its children")
	case *actor.Restarting:
		l.Debug().Msg("restarting actor")
	case messages.Solve:
		l.Debug().Str(logger.RequestTaskID, msg.RequestID.String()).Msg("Solve received from coordinator")
		agent.state = models.Thinking

		ctx, cancel := context.WithTimeout(context.Background(), agent.timeout)
		defer cancel()
		l.Info().Str(logger.RequestTaskID, msg.RequestID.String()).Msg("writing a response...")
		hRes := agent.handler.Solve(ctx, msg)
		if hRes.Error != nil {
			agent.reportErrorToParent(ac, models.NewError(hRes.Error, msg))
			return
		}

		agent.state = models.Finished
		ac.Send(ac.Parent(), messages.SolverResult{Question: hRes.Question, Decision: hRes.Output.(parser.Decision)})
		ac.Stop(ac.Self())
	default:
		l.Warn().Msgf("unknown message: %v", msg)
	}
}

func (agent *Solver) reportErrorToParent(ac actor.Context, err models.Error) {
	agent.state = models.Failed
	log.Error().Err(err.Err).Msg("reporting error to parent...")
	ac.Send(ac.Parent(), messages.ReportError{Error: err})
	ac.Stop(ac.Self())
}
