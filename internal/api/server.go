package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/asynkron/protoactor-go/actor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/outputparser"
	coordinator "go-responsegen/internal/agents/coordinator/actor"
	"go-responsegen/internal/agents/coordinator/handler"
	"go-responsegen/pkg/logger"
	"go-responsegen/pkg/messages"
	"go-responsegen/pkg/models"
	"go-responsegen/pkg/parser"
	"io"
	"net/http"
	"strings"
	"time"
)

type command struct {
	Task       string   `json:"task"`
	Dimensions []string `json:"dimensions"`
}

type getStatus struct {
	Status models.Status `json:"status"`
}

type parseRequest struct {
	Text       string   `json:"text"`
	Dimensions []string `json:"dimensions"`
}

type parseResponse struct {
	Role   string      `json:"role"`
	Result parseResult `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
	Text  string `json:"text,omitempty"`
}

type Server struct {
	ac     *actor.RootContext
	server *http.Server
	state  *requestsCache
}

func New(ac *actor.RootContext, port int, deps handler.Deps) *Server {
	r := chi.NewRouter()
	r.Use(logMiddleware())
	requests := newRequestsCache()
	coordinatorHandler := handler.New(deps)

	r.Get("/status/{id}", func(w http.ResponseWriter, r *http.Request) {
		log.Debug().Msg("status request")
		idParam := chi.URLParam(r, "id")
		id, err := uuid.Parse(idParam)
		if err != nil {
			log.Debug().Msg("cannot parse id")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Error: "unable to parse id"})
			return
		}
		pid, ok := requests.get(id)
		if !ok {
			log.Debug().Str(logger.RequestTaskID, idParam).Msg("cannot find id")
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, errorResponse{Error: "unknown id"})
			return
		}

		future := ac.RequestFuture(pid, messages.GetStatus{}, time.Minute) // blocking
		res, err := future.Result()
		if err != nil {
			requests.remove(id)
			log.Error().Str(logger.RequestTaskID, idParam).Err(err).Msg("unable to get status from actor")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		if status, ok := res.(models.Status); ok {
			render.JSON(w, r, getStatus{status})
		} else {
			log.Error().Str(logger.RequestTaskID, idParam).Msgf("unknown status from actor: %T", res)
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	r.Post("/new", func(w http.ResponseWriter, r *http.Request) {
		log.Debug().Msg("new request")
		cmd := command{}
		err := unmarshalRequestBody(r, &cmd)
		if err != nil || strings.TrimSpace(cmd.Task) == "" {
			log.Debug().Msg("cannot parse body")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Error: "unable to parse body"})
			return
		}
		if err := parser.ValidateDimensions(cmd.Dimensions); err != nil {
			log.Debug().Err(err).Msg("invalid dimensions")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Error: err.Error()})
			return
		}

		decider := func(reason interface{}) actor.Directive {
			log.Error().Msgf("handling failure for child. reason: %v", reason)
			return actor.RestartDirective
		}

		strategy := actor.NewOneForOneStrategy(3, 10000, decider)

		props := actor.PropsFromProducer(coordinator.New(coordinatorHandler), actor.WithSupervisor(strategy))
		pid := ac.Spawn(props)

		id := uuid.New()
		ac.Send(pid, messages.NewTask{RequestID: id, Task: cmd.Task, Dimensions: cmd.Dimensions})
		requests.add(id, pid)

		log.Debug().Str(logger.RequestTaskID, id.String()).Msg("response generation task has been started")
		render.JSON(w, r, struct {
			Id string `json:"id"`
		}{id.String()})
	})

	r.Get("/roles", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, struct {
			Roles []string `json:"roles"`
		}{deps.Registry.Keys()})
	})

	r.Post("/parse/*", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		req := parseRequest{}
		if err := unmarshalRequestBody(r, &req); err != nil {
			log.Debug().Str(logger.RoleField, key).Msg("cannot parse body")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Error: "unable to parse body"})
			return
		}
		if err := parser.ValidateDimensions(req.Dimensions); err != nil {
			log.Debug().Str(logger.RoleField, key).Err(err).Msg("invalid dimensions")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Error: err.Error()})
			return
		}
		if len(req.Dimensions) == 0 {
			req.Dimensions = deps.Dimensions
		}

		p, err := deps.Registry.Build(key, parser.Options{Dimensions: req.Dimensions})
		if err != nil {
			log.Debug().Str(logger.RoleField, key).Msg("unknown role")
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, errorResponse{Error: err.Error()})
			return
		}

		out, err := p.Parse(req.Text)
		deps.Metrics.Parsed(key, err)
		var perr outputparser.ParseError
		if errors.As(err, &perr) {
			log.Info().Str(logger.RoleField, key).Str("reason", perr.Reason).Msg("unparseable answer")
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, errorResponse{Error: perr.Reason, Text: perr.Text})
			return
		}
		if err != nil {
			log.Error().Str(logger.RoleField, key).Err(err).Msg("parse failed")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, parseResponse{Role: key, Result: view(out)})
	})

	r.Handle("/metrics", promhttp.Handler())

	return &Server{
		ac:    ac,
		state: requests,
		server: &http.Server{
			Addr:    fmt.Sprint(":", port),
			Handler: r,
		},
	}
}

func (s *Server) Start() error {
	log.Info().Str("addr", s.server.Addr).Msg("http server starting")
	err := s.server.ListenAndServe()
	if err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	return nil
}

func logMiddleware() func(http.Handler) http.Handler {
	c := alice.New()
	c = c.Append(hlog.NewHandler(log.Logger))
	c = c.Append(hlog.RemoteAddrHandler("ip"))
	c = c.Append(hlog.UserAgentHandler("agent"))
	c = c.Append(hlog.RefererHandler("referer"))
	c = c.Append(hlog.RequestIDHandler("req_id", "Request-Id"))
	c = c.Append(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("verb", r.Method).
			Stringer("url", r.URL).
			Int("size", size).
			Int("status", status).
			Int64("duration", duration.Milliseconds()).
			Msg("REQ")
	}))

	return c.Then
}

func unmarshalRequestBody(req *http.Request, output interface{}) error {
	if req.Body == nil {
		return errors.New("invalid body in request")
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	if err = req.Body.Close(); err != nil {
		return err
	}
	if err = json.Unmarshal(body, &output); err != nil {
		return err
	}

	return nil
}
