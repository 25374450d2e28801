// Package config loads client configuration from YAML stored at any afs supported URL,
// with DBIO_* environment variables taking precedence.
package config

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/logging"
	"github.com/viant/dbio/option"
	"gopkg.in/yaml.v3"
)

//Config represents client configuration
type Config struct {
	Connection       connector.Config `yaml:"connection"`
	Logging          logging.Config   `yaml:"logging,omitempty"`
	BatchSize        int              `yaml:"batchSize,omitempty" env:"DBIO_BATCH_SIZE"`
	VerbatimLiterals bool             `yaml:"verbatimLiterals,omitempty" env:"DBIO_VERBATIM_LITERALS"`
}

//Options returns executor options
func (c *Config) Options() []option.Option {
	var result []option.Option
	if c.BatchSize > 0 {
		result = append(result, option.BatchSize(c.BatchSize))
	}
	if c.VerbatimLiterals {
		result = append(result, option.VerbatimLiterals(true))
	}
	return result
}

//Load loads config from URL, empty URL loads config from environment only
func Load(ctx context.Context, URL string) (*Config, error) {
	cfg := &Config{Logging: logging.DefaultConfig()}
	if URL != "" {
		data, err := afs.New().DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to download config: %v, %w", URL, err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %v, %w", URL, err)
		}
	}
	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
