// Package config gathers the interpreter's settings from the environment.
// Variables may also come from a .env file; variables already set in the
// process environment win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"cell/eval"
)

const (
	EnvLogLevel = "CELL_LOG_LEVEL"
	EnvMaxDepth = "CELL_MAX_DEPTH"
	EnvPrologue = "CELL_PROLOGUE"
	EnvHistory  = "CELL_HISTORY"
)

type Config struct {
	LogLevel slog.Level
	MaxDepth int    // 0 disables the call depth limit
	Prologue bool   // load the Cell standard library before user code
	History  string // REPL history file; empty disables history
}

func Default() *Config {
	return &Config{
		LogLevel: slog.LevelWarn,
		MaxDepth: eval.DefaultMaxDepth,
		Prologue: true,
	}
}

// Load reads the given .env files, if they exist, and then the CELL_*
// variables. With no files it looks for ".env" in the working directory.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", file, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from variables found by lookup.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	if v, ok := lookup(EnvMaxDepth); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s: expected a non-negative integer, got %q", EnvMaxDepth, v)
		}
		cfg.MaxDepth = n
	}
	if v, ok := lookup(EnvPrologue); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvPrologue, err)
		}
		cfg.Prologue = b
	}
	if v, ok := lookup(EnvHistory); ok {
		cfg.History = v
	}
	return cfg, nil
}

// Logger returns a text logger on stderr at the configured level.
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}

// EvalOptions turns the settings into evaluator options.
func (c *Config) EvalOptions(logger *slog.Logger) []eval.Option {
	return []eval.Option{
		eval.WithMaxDepth(c.MaxDepth),
		eval.WithLogger(logger),
		eval.WithPrologue(c.Prologue),
	}
}
