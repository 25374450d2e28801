package exec

import (
	"context"
	"database/sql"

	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/io/session"
	"github.com/viant/dbio/option"
)

const (
	opExecute       = "execute"
	opExecuteScoped = "execute_scoped"
)

//Service represents raw SQL executor
type Service struct {
	provider *connector.Provider
	options  option.Options
}

//New creates an exec service
func New(provider *connector.Provider, options ...option.Option) *Service {
	return &Service{provider: provider, options: options}
}

//Execute runs SQL over a cursor connection in a transaction, returns affected rows
func (s *Service) Execute(ctx context.Context, SQL string, args ...interface{}) (int64, error) {
	return s.execute(ctx, connector.Cursor, opExecute, SQL, args...)
}

//ExecuteScoped runs SQL in a scoped transaction of the transactional connection
func (s *Service) ExecuteScoped(ctx context.Context, SQL string, args ...interface{}) (int64, error) {
	return s.execute(ctx, connector.Transactional, opExecuteScoped, SQL, args...)
}

func (s *Service) execute(ctx context.Context, flavor connector.Flavor, op, SQL string, args ...interface{}) (affected int64, err error) {
	sess, err := session.Open(ctx, s.provider, flavor, op, "", s.options)
	if err != nil {
		return 0, err
	}
	defer func() { err = sess.Close(err) }()
	if len(args) > 0 {
		SQL = sess.Dialect().EnsurePlaceholders(SQL)
	}
	err = sess.Tx(ctx, func(tx *sql.Tx) error {
		result, execErr := tx.ExecContext(ctx, SQL, args...)
		if execErr != nil {
			return execErr
		}
		if affected, execErr = result.RowsAffected(); execErr != nil {
			//some drivers do not report affected rows for DDL
			affected = 0
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	sess.Logger().Debug().Int64("affected", affected).Msg("executed")
	return affected, nil
}
