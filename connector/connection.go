package connector

import (
	"context"
	"database/sql"
	"github.com/rs/zerolog"
	"github.com/viant/dbio/io"
	"github.com/viant/dbio/metadata/info"
	"sync"
)

//Connection represents a session owned by a single operation
type Connection struct {
	db       *sql.DB
	flavor   Flavor
	dialect  *info.Dialect
	logger   zerolog.Logger
	once     sync.Once
	closeErr error
}

//DB returns underlying handle
func (c *Connection) DB() *sql.DB {
	return c.db
}

//Flavor returns connection flavor
func (c *Connection) Flavor() Flavor {
	return c.flavor
}

//Dialect returns dialect resolved for the connected product version
func (c *Connection) Dialect() *info.Dialect {
	return c.dialect
}

//Begin starts explicit transaction
func (c *Connection) Begin(ctx context.Context) (*io.Transaction, error) {
	return io.Begin(ctx, c.db)
}

//InTransaction runs fn in scoped transaction, commits on success, rolls back on error
func (c *Connection) InTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return io.Run(ctx, c.db, fn)
}

//Release closes the connection, subsequent calls are no-op
func (c *Connection) Release() error {
	c.once.Do(func() {
		c.closeErr = c.db.Close()
		c.logger.Debug().Str("flavor", c.flavor.String()).Err(c.closeErr).Msg("connection released")
	})
	return c.closeErr
}
