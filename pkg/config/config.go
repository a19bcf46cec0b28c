package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go-responsegen/pkg/parser"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort        = 8080
	defaultLogLevel    = "info"
	defaultModel       = "gpt-4"
	defaultMaxRounds   = 3
	defaultMaxTurns    = 2
	defaultPassScore   = 8
	defaultCritics     = 2
	defaultCallTimeout = 2 * time.Minute

	envAPIKey   = "OPENAI_API_KEY"
	envModel    = "OPENAI_MODEL"
	envBaseURL  = "OPENAI_BASE_URL"
	envPort     = "RESPONSEGEN_PORT"
	envLogLevel = "RESPONSEGEN_LOG_LEVEL"
)

var defaultDimensions = []string{"Fluency", "Coherence", "Relevance", "Correctness"}

type Config struct {
	Server     Server   `yaml:"server"`
	Log        Log      `yaml:"log"`
	LLM        LLM      `yaml:"llm"`
	Task       Task     `yaml:"task"`
	Roles      Roles    `yaml:"roles"`
	Dimensions []string `yaml:"dimensions"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Log struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type LLM struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// Task bounds one response generation run.
type Task struct {
	MaxRounds   int           `yaml:"max_rounds"` // critic rounds per turn
	MaxTurns    int           `yaml:"max_turns"`  // evaluation turns
	PassScore   int           `yaml:"pass_score"`
	CallTimeout time.Duration `yaml:"-"`

	callTimeoutRaw string
}

// Roles selects the parser key each agent uses and how many critics run.
type Roles struct {
	Solver    string `yaml:"solver"`
	Critic    string `yaml:"critic"`
	Evaluator string `yaml:"evaluator"`
	Critics   int    `yaml:"critics"`
}

// Load reads the YAML file at path. An empty path yields the defaults with
// environment overrides applied.
func Load(path string) (*Config, error) {
	LoadDotenvOnce()
	if path == "" {
		return FromReader(strings.NewReader(""))
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()
	return FromReader(file)
}

func FromReader(r io.Reader) (*Config, error) {
	var raw struct {
		Server Server `yaml:"server"`
		Log    struct {
			Level  string `yaml:"level"`
			Pretty *bool  `yaml:"pretty"`
		} `yaml:"log"`
		LLM  LLM `yaml:"llm"`
		Task struct {
			MaxRounds   int    `yaml:"max_rounds"`
			MaxTurns    int    `yaml:"max_turns"`
			PassScore   *int   `yaml:"pass_score"`
			CallTimeout string `yaml:"call_timeout"`
		} `yaml:"task"`
		Roles struct {
			Solver    string `yaml:"solver"`
			Critic    string `yaml:"critic"`
			Evaluator string `yaml:"evaluator"`
			Critics   *int   `yaml:"critics"`
		} `yaml:"roles"`
		Dimensions []string `yaml:"dimensions"`
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg := Config{
		Server:     raw.Server,
		Log:        Log{Level: raw.Log.Level, Pretty: true},
		LLM:        raw.LLM,
		Dimensions: raw.Dimensions,
		Task: Task{
			MaxRounds:      raw.Task.MaxRounds,
			MaxTurns:       raw.Task.MaxTurns,
			PassScore:      defaultPassScore,
			callTimeoutRaw: raw.Task.CallTimeout,
		},
		Roles: Roles{
			Solver:    raw.Roles.Solver,
			Critic:    raw.Roles.Critic,
			Evaluator: raw.Roles.Evaluator,
			Critics:   defaultCritics,
		},
	}
	if raw.Log.Pretty != nil {
		cfg.Log.Pretty = *raw.Log.Pretty
	}
	if raw.Task.PassScore != nil {
		cfg.Task.PassScore = *raw.Task.PassScore
	}
	if raw.Roles.Critics != nil {
		cfg.Roles.Critics = *raw.Roles.Critics
	}

	cfg.applyDefaults()
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.parseTimeout(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModel
	}
	if c.Task.MaxRounds == 0 {
		c.Task.MaxRounds = defaultMaxRounds
	}
	if c.Task.MaxTurns == 0 {
		c.Task.MaxTurns = defaultMaxTurns
	}
	if c.Roles.Solver == "" {
		c.Roles.Solver = parser.SolverKey
	}
	if c.Roles.Critic == "" {
		c.Roles.Critic = parser.CriticKey
	}
	if c.Roles.Evaluator == "" {
		c.Roles.Evaluator = parser.EvaluatorKey
	}
	if len(c.Dimensions) == 0 {
		c.Dimensions = append([]string(nil), defaultDimensions...)
	}
}

func (c *Config) applyEnvOverrides() error {
	if v := strings.TrimSpace(os.Getenv(envAPIKey)); v != "" {
		c.LLM.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(envModel)); v != "" {
		c.LLM.Model = v
	}
	if v := strings.TrimSpace(os.Getenv(envBaseURL)); v != "" {
		c.LLM.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(envPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", envPort, err)
		}
		c.Server.Port = port
	}
	return nil
}

func (c *Config) parseTimeout() error {
	if c.Task.callTimeoutRaw == "" {
		c.Task.CallTimeout = defaultCallTimeout
		return nil
	}
	d, err := time.ParseDuration(c.Task.callTimeoutRaw)
	if err != nil {
		return fmt.Errorf("parse call_timeout: %w", err)
	}
	c.Task.CallTimeout = d
	return nil
}

// Validate checks limits and that every role key is known to reg.
func (c *Config) Validate(reg *parser.Registry) error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Server.Port)
	}
	if c.Task.MaxRounds < 1 {
		return errors.New("config: max_rounds must be at least 1")
	}
	if c.Task.MaxTurns < 1 {
		return errors.New("config: max_turns must be at least 1")
	}
	if c.Task.PassScore < 0 || c.Task.PassScore > 9 {
		return fmt.Errorf("config: pass_score %d out of range 0-9", c.Task.PassScore)
	}
	if c.Task.CallTimeout <= 0 {
		return errors.New("config: call_timeout must be positive")
	}
	if c.Roles.Critics < 0 {
		return errors.New("config: critics cannot be negative")
	}
	for _, key := range []string{c.Roles.Solver, c.Roles.Critic, c.Roles.Evaluator} {
		if !reg.Has(key) {
			return fmt.Errorf("config: %w: %q", parser.ErrUnknownRole, key)
		}
	}
	if len(c.Dimensions) == 0 {
		return errors.New("config: evaluator needs at least one dimension")
	}
	if err := parser.ValidateDimensions(c.Dimensions); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
