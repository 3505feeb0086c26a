package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Quiz sources.
const (
	SourceBuiltin  = "builtin"
	SourceFiles    = "files"
	SourcePostgres = "postgres"
)

type Config struct {
	Storage struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
	} `yaml:"storage"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	History struct {
		Key   string `yaml:"key"`
		Limit int    `yaml:"limit"`
	} `yaml:"history"`
	Quiz struct {
		Source             string `yaml:"source"`
		Dir                string `yaml:"dir"`
		RandomizeQuestions bool   `yaml:"randomizeQuestions"`
		RandomizeAnswers   bool   `yaml:"randomizeAnswers"`
		Timer              string `yaml:"timer"`
	} `yaml:"quiz"`
}

// Default is the configuration used when no file exists.
func Default() Config {
	cfg := Config{}
	cfg.Storage.Backend = BackendSQLite
	cfg.Storage.Path = "history.db"
	cfg.Redis.Prefix = "personality-quiz:"
	cfg.History.Key = "quizHistoryKey"
	cfg.Quiz.Source = SourceBuiltin
	cfg.Quiz.Dir = "quizzes"
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects unknown backend or source names and unparseable timers.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendSQLite, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Quiz.Source {
	case SourceBuiltin, SourceFiles, SourcePostgres:
	default:
		return fmt.Errorf("unknown quiz source %q", c.Quiz.Source)
	}
	if c.Storage.Backend == BackendRedis && c.Redis.Addr == "" {
		return fmt.Errorf("redis backend needs redis.addr")
	}
	if (c.Storage.Backend == BackendPostgres || c.Quiz.Source == SourcePostgres) && c.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if _, err := ParseTimer(c.Quiz.Timer); err != nil {
		return fmt.Errorf("quiz.timer: %w", err)
	}
	return nil
}

// ParseTimer parses a per-question time limit. Empty means no timer.
func ParseTimer(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid timer %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timer %q: negative limit", raw)
	}
	return d, nil
}
