package models

import (
	"go-responsegen/pkg/memory/buffer"
	"go-responsegen/pkg/parser"
	"time"
)

type Error struct {
	Err        error       `json:"-"`
	ErrMessage string      `json:"error,omitempty"`
	Message    interface{} `json:"message,omitempty"`
	Time       *time.Time  `json:"time,omitempty"`
}

func NewError(err error, msg interface{}) Error {
	t := time.Now()
	return Error{Err: err, ErrMessage: err.Error(), Message: msg, Time: &t}
}

func (e Error) Error() string {
	return e.ErrMessage
}

func (e Error) Unwrap() error {
	return e.Err
}

// HandlerResult is what an agent handler returns for one LLM exchange.
type HandlerResult struct {
	Question string
	Output   interface{}
	Error    error
}

// Step records one solver draft and what the critics made of it.
type Step struct {
	Turn       int                `json:"turn"`
	Round      int                `json:"round"`
	Response   string             `json:"response"`
	Final      bool               `json:"final,omitempty"`
	Criticisms []parser.Criticism `json:"criticisms,omitempty"`
	Evaluation *parser.Evaluation `json:"evaluation,omitempty"`
}

type Task struct {
	State      State           `json:"state"`
	Task       string          `json:"task"`
	Dimensions []string        `json:"dimensions"`
	Response   string          `json:"response,omitempty"`
	History    []Step          `json:"history"`
	Transcript []buffer.Memory `json:"transcript,omitempty"`
	Errs       *Error          `json:"error,omitempty"`
}

type Status struct {
	Task Task `json:"task"`
}
