// Package cli implements the dbio command line interface.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/dbio"
	"github.com/viant/dbio/config"
	"github.com/viant/dbio/dataset"
	"github.com/viant/dbio/logging"
	"github.com/viant/dbio/option"
	"gopkg.in/yaml.v3"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

type flags struct {
	configURL string
	logLevel  string
	pretty    bool
	format    string
}

//NewRootCmd creates dbio root command
func NewRootCmd() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:   "dbio",
		Short: "dbio - generic tabular CRUD over a relational database",
		Long: `Insert, upsert and read tabular datasets and execute SQL against a configured database.

Connection settings are loaded from a YAML config (--config, any afs URL) and DBIO_* environment variables.
Datasets are YAML or JSON documents: {columns: [id, name], rows: [[1, a], [2, b]]}.

Examples:
  dbio --config dbio.yaml exec "DELETE FROM foo WHERE id = 1"
  dbio --config dbio.yaml read foo --format json
  dbio --config dbio.yaml query "SELECT * FROM foo WHERE id > 10"
  dbio --config dbio.yaml insert foo rows.yaml
  dbio --config dbio.yaml upsert foo rows.yaml --keys id --literal`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.configURL, "config", "c", "", "config URL")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&flags.pretty, "pretty", false, "human readable logs")
	cmd.PersistentFlags().StringVarP(&flags.format, "format", "f", formatYAML, "output format: yaml or json")

	cmd.AddCommand(newExecCmd(flags))
	cmd.AddCommand(newReadCmd(flags))
	cmd.AddCommand(newQueryCmd(flags))
	cmd.AddCommand(newInsertCmd(flags))
	cmd.AddCommand(newUpsertCmd(flags))
	return cmd
}

//Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func (f *flags) client(ctx context.Context, cmd *cobra.Command) (*dbio.Client, error) {
	cfg, err := config.Load(ctx, f.configURL)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.pretty {
		cfg.Logging.Pretty = true
	}
	cfg.Logging.Output = cmd.ErrOrStderr()
	logger := logging.NewWithComponent(cfg.Logging, "dbio")
	options := append(cfg.Options(), option.Logger(logger))
	return dbio.New(&cfg.Connection, options...)
}

func (f *flags) write(w io.Writer, value interface{}) error {
	switch strings.ToLower(f.format) {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	case formatYAML, "":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("unsupported format: %v", f.format)
}

//loadDataset loads dataset document from URL
func loadDataset(ctx context.Context, URL string) (*dataset.Dataset, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %v, %w", URL, err)
	}
	ds := &dataset.Dataset{}
	if err = yaml.Unmarshal(data, ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %v, %w", URL, err)
	}
	return ds, nil
}

type affected struct {
	Affected int64 `yaml:"affected" json:"affected"`
}
