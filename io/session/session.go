// Package session runs a single executor operation over a dedicated connection:
// acquire, run in transactions, release exactly once.
package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/io"
	"github.com/viant/dbio/io/errx"
	"github.com/viant/dbio/metadata/info"
	"github.com/viant/dbio/option"
)

//Session represents an operation bound connection
type Session struct {
	ID      string
	Op      string
	Table   string
	conn    *connector.Connection
	logger  zerolog.Logger
	started time.Time
}

//Open acquires a connection of the supplied flavor for the operation
func Open(ctx context.Context, provider *connector.Provider, flavor connector.Flavor, op, table string, options option.Options) (*Session, error) {
	ID := options.OperationID()
	if ID == "" {
		ID = uuid.New().String()
	}
	logger := options.Logger().With().Str("op", op).Str("operation_id", ID).Str("table", table).Logger()
	conn, err := provider.Acquire(ctx, flavor)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to acquire connection")
		return nil, errx.Annotate(err, op, table)
	}
	return &Session{ID: ID, Op: op, Table: table, conn: conn, logger: logger, started: time.Now()}, nil
}

//DB returns session database handle
func (s *Session) DB() *sql.DB {
	return s.conn.DB()
}

//Dialect returns connection dialect
func (s *Session) Dialect() *info.Dialect {
	return s.conn.Dialect()
}

//Logger returns operation logger
func (s *Session) Logger() *zerolog.Logger {
	return &s.logger
}

//Close releases connection, it has to be called on every path
func (s *Session) Close(err error) error {
	if rErr := s.conn.Release(); rErr != nil {
		s.logger.Warn().Err(rErr).Msg("failed to release connection")
	}
	event := s.logger.Debug()
	if err != nil {
		event = s.logger.Warn().Err(err)
		switch {
		case errx.IsDuplicateKey(err):
			event = event.Str("violation", "duplicate_key")
		case errx.IsConstraint(err):
			event = event.Str("violation", "constraint")
		}
	}
	event.Dur("elapsed", time.Since(s.started)).Msg("operation completed")
	return err
}

//Tx runs fn in a transaction, commits on success, otherwise rolls back and returns execution error
func (s *Session) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if err := io.Run(ctx, s.conn.DB(), fn); err != nil {
		return errx.Execution(s.Op, s.Table, err)
	}
	return nil
}

//EachRow runs fn for every row in its own transaction; it stops at the first failing row,
//already committed rows stay committed and are reported with partial error
func (s *Session) EachRow(ctx context.Context, rows int, fn func(tx *sql.Tx, row int) error) (int, error) {
	committed := 0
	for i := 0; i < rows; i++ {
		err := io.Run(ctx, s.conn.DB(), func(tx *sql.Tx) error {
			return fn(tx, i)
		})
		if err != nil {
			if committed == 0 {
				return 0, &errx.Error{Kind: errx.ErrExecution, Op: s.Op, Table: s.Table, Row: i + 1, Cause: err}
			}
			s.logger.Warn().Int("committed", committed).Int("row", i+1).Err(err).Msg("per row execution stopped")
			return committed, errx.Partial(s.Op, s.Table, committed, i+1, err)
		}
		committed++
	}
	return committed, nil
}
