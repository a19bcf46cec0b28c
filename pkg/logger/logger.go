package logger

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"os"
)

const (
	AgentNameField = "agent"
	ActorIDField   = "actor"
	RequestTaskID  = "task"
	RoleField      = "role"
	RoundField     = "round"
	TurnField      = "turn"
)

func NewGlobal(level string, pretty bool) error {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(l)

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}

// ForAgent returns the global logger tagged with an actor id and agent name.
func ForAgent(actorID, agent string) zerolog.Logger {
	return log.With().Fields(map[string]interface{}{ActorIDField: actorID, AgentNameField: agent}).Logger()
}
