package insert

import (
	"context"
	"database/sql"

	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/dataset"
	"github.com/viant/dbio/io"
	"github.com/viant/dbio/io/builder"
	"github.com/viant/dbio/io/errx"
	"github.com/viant/dbio/io/session"
	"github.com/viant/dbio/option"
)

const (
	opInsert        = "insert"
	opInsertLiteral = "insert_literal"
)

//Service represents generic dataset inserter
type Service struct {
	provider *connector.Provider
	cache    *builder.Cache
	options  option.Options
}

//New creates an insert service, supported options: option.BatchSize, option.VerbatimLiterals, *zerolog.Logger
func New(provider *connector.Provider, cache *builder.Cache, options ...option.Option) *Service {
	if cache == nil {
		cache = builder.NewCache()
	}
	return &Service{provider: provider, cache: cache, options: options}
}

//Insert inserts all dataset rows with a prepared parameterized statement in one transaction, returns affected rows.
//Without option.BatchSize rows per statement are limited only by dialect MaxParams and MaxRows.
func (s *Service) Insert(ctx context.Context, table string, ds *dataset.Dataset, options ...option.Option) (affected int64, err error) {
	if err = ds.Validate(); err != nil {
		return 0, errx.Annotate(err, opInsert, table)
	}
	if ds.Len() == 0 {
		return 0, nil
	}
	opts := s.options.With(options...)
	sess, err := session.Open(ctx, s.provider, connector.Cursor, opInsert, table, opts)
	if err != nil {
		return 0, err
	}
	defer func() { err = sess.Close(err) }()
	batchSize, ok := opts.ExplicitBatchSize()
	if !ok {
		batchSize = sess.Dialect().BatchRows(ds.Len(), ds.Width())
	}
	if batchSize > ds.Len() {
		batchSize = ds.Len()
	}
	stmt, err := s.cache.Insert(table, ds.Columns, sess.Dialect(), batchSize)
	if err != nil {
		return 0, errx.Annotate(err, opInsert, table)
	}
	err = sess.Tx(ctx, func(tx *sql.Tx) (txErr error) {
		affected, txErr = execBatches(ctx, tx, stmt, ds)
		return txErr
	})
	if err != nil {
		return 0, err
	}
	sess.Logger().Debug().Int("rows", ds.Len()).Int64("affected", affected).Msg("inserted")
	return affected, nil
}

//InsertLiteral inserts dataset rows one by one with literal rendered statements, each row in its own transaction
func (s *Service) InsertLiteral(ctx context.Context, table string, ds *dataset.Dataset, options ...option.Option) (committed int64, err error) {
	if err = ds.Validate(); err != nil {
		return 0, errx.Annotate(err, opInsertLiteral, table)
	}
	if ds.Len() == 0 {
		return 0, nil
	}
	opts := s.options.With(options...)
	sess, err := session.Open(ctx, s.provider, connector.Transactional, opInsertLiteral, table, opts)
	if err != nil {
		return 0, err
	}
	defer func() { err = sess.Close(err) }()
	stmt, err := s.cache.Insert(table, ds.Columns, sess.Dialect(), 1)
	if err != nil {
		return 0, errx.Annotate(err, opInsertLiteral, table)
	}
	SQLs, err := builder.LiteralRows(stmt, builder.NewLiteralPolicy(sess.Dialect(), opts.VerbatimLiterals()), ds.Rows)
	if err != nil {
		return 0, errx.Annotate(err, opInsertLiteral, table)
	}
	count, err := sess.EachRow(ctx, len(SQLs), func(tx *sql.Tx, row int) error {
		_, err := tx.ExecContext(ctx, SQLs[row])
		return err
	})
	return int64(count), err
}

//execBatches executes statement for full batches and a limited statement for the remainder
func execBatches(ctx context.Context, tx *sql.Tx, stmt *builder.Statement, ds *dataset.Dataset) (affected int64, err error) {
	batchSize := stmt.Rows()
	prepared, err := tx.PrepareContext(ctx, stmt.SQL())
	if err != nil {
		return 0, err
	}
	defer io.CloseWithError(prepared, &err)
	total := ds.Len()
	for offset := 0; offset < total; offset += batchSize {
		current := stmt
		stmtRows := batchSize
		if offset+batchSize > total {
			stmtRows = total - offset
			current = stmt.Limit(stmtRows)
		}
		rows := make([][]interface{}, stmtRows)
		for i := range rows {
			rows[i] = ds.Row(offset + i)
		}
		var result sql.Result
		if current == stmt {
			result, err = prepared.ExecContext(ctx, stmt.Args(rows...)...)
		} else {
			result, err = tx.ExecContext(ctx, current.SQL(), current.Args(rows...)...)
		}
		if err != nil {
			return 0, err
		}
		if count, cErr := result.RowsAffected(); cErr == nil {
			affected += count
		}
	}
	return affected, nil
}
