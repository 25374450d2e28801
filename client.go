// Package dbio provides generic tabular CRUD over a single relational database:
// parameterized and literal inserts, MERGE based upserts, reads into datasets and raw SQL execution.
//
// Every operation acquires its own connection and releases it before returning.
// Database products are registered by importing their package, i.e.
//
//	import _ "github.com/viant/dbio/metadata/product/sqlserver"
package dbio

import (
	"context"

	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/dataset"
	"github.com/viant/dbio/io/builder"
	"github.com/viant/dbio/io/exec"
	"github.com/viant/dbio/io/insert"
	"github.com/viant/dbio/io/read"
	"github.com/viant/dbio/io/upsert"
	"github.com/viant/dbio/option"
)

//Client bundles all operations for one connection config, it is safe for concurrent use
type Client struct {
	provider *connector.Provider
	inserter *insert.Service
	upserter *upsert.Service
	reader   *read.Service
	executor *exec.Service
}

//New creates a client, supported options: option.BatchSize, option.VerbatimLiterals, *zerolog.Logger, *info.Dialect
func New(config *connector.Config, options ...option.Option) (*Client, error) {
	provider, err := connector.New(config, options...)
	if err != nil {
		return nil, err
	}
	cache := builder.NewCache()
	return &Client{
		provider: provider,
		inserter: insert.New(provider, cache, options...),
		upserter: upsert.New(provider, cache, options...),
		reader:   read.New(provider, options...),
		executor: exec.New(provider, options...),
	}, nil
}

//Provider returns connection provider
func (c *Client) Provider() *connector.Provider {
	return c.provider
}

//Insert inserts dataset rows in one transaction
func (c *Client) Insert(ctx context.Context, table string, ds *dataset.Dataset, options ...option.Option) (int64, error) {
	return c.inserter.Insert(ctx, table, ds, options...)
}

//InsertLiteral inserts dataset rows one by one, each row in its own transaction
func (c *Client) InsertLiteral(ctx context.Context, table string, ds *dataset.Dataset, options ...option.Option) (int64, error) {
	return c.inserter.InsertLiteral(ctx, table, ds, options...)
}

//Upsert merges dataset rows by keys in one transaction
func (c *Client) Upsert(ctx context.Context, table string, keys []string, ds *dataset.Dataset, options ...option.Option) (int64, error) {
	return c.upserter.Upsert(ctx, table, keys, ds, options...)
}

//UpsertLiteral merges dataset rows one by one with literal statements, committed rows stay committed on failure
func (c *Client) UpsertLiteral(ctx context.Context, table string, keys []string, ds *dataset.Dataset, options ...option.Option) (int64, error) {
	return c.upserter.UpsertLiteral(ctx, table, keys, ds, options...)
}

//Read reads the whole table
func (c *Client) Read(ctx context.Context, table string) (*dataset.Dataset, error) {
	return c.reader.Read(ctx, table)
}

//ReadQuery reads query result
func (c *Client) ReadQuery(ctx context.Context, SQL string, args ...interface{}) (*dataset.Dataset, error) {
	return c.reader.ReadQuery(ctx, SQL, args...)
}

//Execute runs SQL in a transaction of a cursor connection
func (c *Client) Execute(ctx context.Context, SQL string, args ...interface{}) (int64, error) {
	return c.executor.Execute(ctx, SQL, args...)
}

//ExecuteScoped runs SQL in a scoped transaction of a transactional connection
func (c *Client) ExecuteScoped(ctx context.Context, SQL string, args ...interface{}) (int64, error) {
	return c.executor.ExecuteScoped(ctx, SQL, args...)
}
