package upsert

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
	opUpsert        = "upsert"
	opUpsertLiteral = "upsert_literal"
)

//Service represents generic dataset upserter
type Service struct {
	provider *connector.Provider
	cache    *builder.Cache
	options  option.Options
}

//New creates an upsert service
func New(provider *connector.Provider, cache *builder.Cache, options ...option.Option) *Service {
	if cache == nil {
		cache = builder.NewCache()
	}
	return &Service{provider: provider, cache: cache, options: options}
}

//Upsert merges dataset rows by keys in one transaction, returns affected rows
func (s *Service) Upsert(ctx context.Context, table string, keys []string, ds *dataset.Dataset, options ...option.Option) (affected int64, err error) {
	if err = validate(opUpsert, table, keys, ds); err != nil || ds.Len() == 0 {
		return 0, err
	}
	opts := s.options.With(options...)
	sess, err := session.Open(ctx, s.provider, connector.Cursor, opUpsert, table, opts)
	if err != nil {
		return 0, err
	}
	defer func() { err = sess.Close(err) }()
	batchSize := opts.BatchSize()
	if batchSize > ds.Len() {
		batchSize = ds.Len()
	}
	plan, err := s.cache.Upsert(table, keys, ds.Columns, sess.Dialect(), batchSize)
	if err != nil {
		return 0, errx.Annotate(err, opUpsert, table)
	}
	err = sess.Tx(ctx, func(tx *sql.Tx) (txErr error) {
		if plan.IsMerge() {
			affected, txErr = s.merge(ctx, tx, plan, table, keys, ds)
			return txErr
		}
		affected, txErr = updateOrInsert(ctx, tx, plan, ds)
		return txErr
	})
	if err != nil {
		return 0, err
	}
	sess.Logger().Debug().Int("rows", ds.Len()).Bool("merge", plan.IsMerge()).Int64("affected", affected).Msg("upserted")
	return affected, nil
}

//UpsertLiteral renders every row as a literal statement and runs each row in its own transaction.
//Execution stops at the first failing row, rows committed before stay committed and partial error is returned.
func (s *Service) UpsertLiteral(ctx context.Context, table string, keys []string, ds *dataset.Dataset, options ...option.Option) (committed int64, err error) {
	if err = validate(opUpsertLiteral, table, keys, ds); err != nil || ds.Len() == 0 {
		return 0, err
	}
	opts := s.options.With(options...)
	sess, err := session.Open(ctx, s.provider, connector.Transactional, opUpsertLiteral, table, opts)
	if err != nil {
		return 0, err
	}
	defer func() { err = sess.Close(err) }()
	plan, err := s.cache.Upsert(table, keys, ds.Columns, sess.Dialect(), 1)
	if err != nil {
		return 0, errx.Annotate(err, opUpsertLiteral, table)
	}
	policy := builder.NewLiteralPolicy(sess.Dialect(), opts.VerbatimLiterals())
	var run func(ctx context.Context, tx *sql.Tx, row int) error
	if plan.IsMerge() {
		merges, err := builder.LiteralRows(plan.Merge, policy, ds.Rows)
		if err != nil {
			return 0, errx.Annotate(err, opUpsertLiteral, table)
		}
		run = func(ctx context.Context, tx *sql.Tx, row int) error {
			_, err := tx.ExecContext(ctx, merges[row])
			return err
		}
	} else {
		updates, err := builder.LiteralRows(plan.Update, policy, ds.Rows)
		if err != nil {
			return 0, errx.Annotate(err, opUpsertLiteral, table)
		}
		inserts, err := builder.LiteralRows(plan.Insert, policy, ds.Rows)
		if err != nil {
			return 0, errx.Annotate(err, opUpsertLiteral, table)
		}
		run = func(ctx context.Context, tx *sql.Tx, row int) error {
			result, err := tx.ExecContext(ctx, updates[row])
			if err != nil {
				return err
			}
			_, err = insertIfNotUpdated(ctx, tx, result, inserts[row])
			return err
		}
	}
	count, err := sess.EachRow(ctx, ds.Len(), func(tx *sql.Tx, row int) error {
		return run(ctx, tx, row)
	})
	return int64(count), err
}

func validate(op, table string, keys []string, ds *dataset.Dataset) error {
	if err := ds.Validate(); err != nil {
		return errx.Annotate(err, op, table)
	}
	if err := builder.ValidateKeys(keys, ds.Columns); err != nil {
		return errx.InvalidKeySpec(op, table, keys, err)
	}
	return nil
}

func (s *Service) merge(ctx context.Context, tx *sql.Tx, plan *builder.Plan, table string, keys []string, ds *dataset.Dataset) (affected int64, err error) {
	batchSize := plan.Rows()
	prepared, err := tx.PrepareContext(ctx, plan.Merge.SQL())
	if err != nil {
		return 0, err
	}
	defer io.CloseWithError(prepared, &err)
	total := ds.Len()
	for offset := 0; offset < total; offset += batchSize {
		stmtRows := batchSize
		if offset+batchSize > total {
			stmtRows = total - offset
		}
		rows := make([][]interface{}, stmtRows)
		for i := range rows {
			rows[i] = ds.Row(offset + i)
		}
		var result sql.Result
		if stmtRows == batchSize {
			result, err = prepared.ExecContext(ctx, plan.Merge.Args(rows...)...)
		} else {
			remainder, pErr := s.cache.Upsert(table, keys, ds.Columns, plan.Merge.Dialect(), stmtRows)
			if pErr != nil {
				return 0, pErr
			}
			result, err = tx.ExecContext(ctx, remainder.Merge.SQL(), remainder.Merge.Args(rows...)...)
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

//updateOrInsert runs UPDATE by keys for every row followed by INSERT when no row was updated
func updateOrInsert(ctx context.Context, tx *sql.Tx, plan *builder.Plan, ds *dataset.Dataset) (affected int64, err error) {
	update, err := tx.PrepareContext(ctx, plan.Update.SQL())
	if err != nil {
		return 0, err
	}
	defer io.CloseWithError(update, &err)
	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		result, err := update.ExecContext(ctx, plan.Update.Args(row)...)
		if err != nil {
			return 0, err
		}
		count, err := insertIfNotUpdated(ctx, tx, result, plan.Insert.SQL(), plan.Insert.Args(row)...)
		if err != nil {
			return 0, err
		}
		affected += count
	}
	return affected, nil
}

func insertIfNotUpdated(ctx context.Context, tx *sql.Tx, updated sql.Result, insertSQL string, args ...interface{}) (int64, error) {
	count, err := updated.RowsAffected()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return count, nil
	}
	result, err := tx.ExecContext(ctx, insertSQL, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
