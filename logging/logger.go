package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

//Config represents logger configuration
type Config struct {
	//Level is one of trace, debug, info, warn, error, disabled
	Level  string `yaml:"level,omitempty" env:"DBIO_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty,omitempty" env:"DBIO_LOG_PRETTY"`
	//Output defaults to os.Stderr, stdout is reserved for command results
	Output io.Writer `yaml:"-"`
}

//DefaultConfig returns default logger configuration
func DefaultConfig() Config {
	return Config{Level: "warn", Output: os.Stderr}
}

//New creates zerolog logger
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

//NewWithComponent creates logger with component field
func NewWithComponent(cfg Config, component string) zerolog.Logger {
	return New(cfg).With().Str("component", component).Logger()
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
