package actor

import (
	"context"
	"github.com/asynkron/protoactor-go/actor"
	"github.com/rs/zerolog/log"
	"go-responsegen/internal/agents/critic/handler"
	"go-responsegen/pkg/logger"
	"go-responsegen/pkg/messages"
	"go-responsegen/pkg/models"
	"go-responsegen/pkg/parser"
	"time"
)

type Critic struct {
	handler *handler.Handler
	timeout time.Duration
	state   models.State
}

func New(h *handler.Handler, timeout time.Duration) func() actor.Actor {
	return func() actor.Actor {
		return &Critic{
			handler: h,
			timeout: timeout,
			state:   models.Init,
		}
	}
}

func (agent *Critic) Receive(ac actor.Context) {
	l := logger.ForAgent(ac.Self().GetId(), "critic")
	switch msg := ac.Message().(type) {
	case *actor.Started:
		l.Debug().Msg("starting actor")
	case *actor.Stopping:
		l.Debug().Msg("stopping actor")
	case *actor.Stopped:
		l.Debug().Msg("stopped actor and its children")
	case *actor.Restarting:
		l.Debug().Msg("restarting actor")
	case messages.Review:
		l.Debug().Str(logger.RequestTaskID, msg.RequestID.String()).Msgf("Review %d received from coordinator", msg.Index)
		agent.state = models.Thinking

		ctx, cancel := context.WithTimeout(context.Background(), agent.timeout)
		defer cancel()
		hRes := agent.handler.Review(ctx, msg)
		if hRes.Error != nil {
			agent.reportErrorToParent(ac, models.NewError(hRes.Error, msg))
			return
		}

		criticism := hRes.Output.(parser.Criticism)
		if criticism.Agreed {
			l.Info().Str(logger.RequestTaskID, msg.RequestID.String()).Msg("critic agrees with the response")
		} else {
			l.Info().Str(logger.RequestTaskID, msg.RequestID.String()).Msgf("critic disagrees: %s", criticism.Reason)
		}
		agent.state = models.Finished
		ac.Send(ac.Parent(), messages.CriticResult{Index: msg.Index, Question: hRes.Question, Criticism: criticism})
		ac.Stop(ac.Self())
	default:
		l.Warn().Msgf("unknown message: %v", msg)
	}
}

func (agent *Critic) reportErrorToParent(ac actor.Context, err models.Error) {
	agent.state = models.Failed
	log.Error().Err(err.Err).Msg("reporting error to parent...")
	ac.Send(ac.Parent(), messages.ReportError{Error: err})
	ac.Stop(ac.Self())
}
