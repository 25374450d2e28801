package read

import (
	"context"

	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/dataset"
	"github.com/viant/dbio/io/errx"
	"github.com/viant/dbio/io/session"
	"github.com/viant/dbio/option"
)

const (
	opRead      = "read"
	opReadQuery = "read_query"
)

//Service represents dataset reader, the whole result is materialised in memory
type Service struct {
	provider *connector.Provider
	options  option.Options
}

//New creates a read service
func New(provider *connector.Provider, options ...option.Option) *Service {
	return &Service{provider: provider, options: options}
}

//Read reads all table rows
func (s *Service) Read(ctx context.Context, table string) (*dataset.Dataset, error) {
	return s.read(ctx, opRead, table, "SELECT * FROM "+table)
}

//ReadQuery reads caller supplied query, with args '?' placeholders are converted to the dialect style
func (s *Service) ReadQuery(ctx context.Context, SQL string, args ...interface{}) (*dataset.Dataset, error) {
	return s.read(ctx, opReadQuery, "", SQL, args...)
}

func (s *Service) read(ctx context.Context, op, table, SQL string, args ...interface{}) (ds *dataset.Dataset, err error) {
	sess, err := session.Open(ctx, s.provider, connector.Transactional, op, table, s.options)
	if err != nil {
		return nil, err
	}
	defer func() { err = sess.Close(err) }()
	if len(args) > 0 {
		SQL = sess.Dialect().EnsurePlaceholders(SQL)
	}
	rows, err := sess.DB().QueryContext(ctx, SQL, args...)
	if err != nil {
		return nil, errx.Execution(op, table, err)
	}
	defer rows.Close()
	if ds, err = dataset.FromRows(rows); err != nil {
		return nil, errx.Execution(op, table, err)
	}
	sess.Logger().Debug().Int("rows", ds.Len()).Msg("read")
	return ds, nil
}
