package connector

import (
	"context"
	"database/sql"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/viant/dbio/io/errx"
	"github.com/viant/dbio/metadata"
	"github.com/viant/dbio/metadata/info"
	"github.com/viant/dbio/option"
)

//Provider supplies per-operation connections for a static config
type Provider struct {
	config   *Config
	product  *Product
	dialect  *info.Dialect
	metadata *metadata.Service
	logger   zerolog.Logger
}

//Config returns provider config
func (p *Provider) Config() *Config {
	return p.config
}

//Product returns product definition
func (p *Provider) Product() *Product {
	return p.product
}

//Cursor acquires row-cursor connection
func (p *Provider) Cursor(ctx context.Context) (*Connection, error) {
	return p.Acquire(ctx, Cursor)
}

//Transactional acquires transactional connection
func (p *Provider) Transactional(ctx context.Context) (*Connection, error) {
	return p.Acquire(ctx, Transactional)
}

//Acquire opens a dedicated connection for a single operation, caller has to Release it
func (p *Provider) Acquire(ctx context.Context, flavor Flavor) (*Connection, error) {
	driver := p.product.Driver(flavor)
	dsn, err := driver.DSN(p.config)
	if err != nil {
		return nil, errx.Connection("acquire", errors.Wrapf(err, "failed to build %v dsn for %v", flavor, p.config))
	}
	db, err := sql.Open(driver.Name, dsn)
	if err != nil {
		return nil, errx.Connection("acquire", errors.Wrapf(err, "failed to open %v connection: %v", driver.Name, p.config))
	}
	db.SetMaxOpenConns(1)
	if err = db.PingContext(ctx); err != nil {
		return nil, p.abort(db, errors.Wrapf(err, "failed to connect: %v", p.config))
	}
	dialect := p.dialect
	product, err := p.metadata.DetectVersion(ctx, db, driver.Name, p.product.VersionQuery)
	if err != nil {
		return nil, p.abort(db, err)
	}
	if product != nil {
		dialect = dialect.ForVersion(product)
	}
	p.logger.Debug().Str("flavor", flavor.String()).Str("driver", driver.Name).Str("dialect", dialect.Name).Msg("connection acquired")
	return &Connection{db: db, flavor: flavor, dialect: dialect, logger: p.logger}, nil
}

func (p *Provider) abort(db *sql.DB, err error) error {
	if cErr := db.Close(); cErr != nil {
		p.logger.Warn().Err(cErr).Msg("failed to close connection")
	}
	return errx.Connection("acquire", err)
}

//New creates a provider, supported options: *zerolog.Logger, *info.Dialect
func New(config *Config, options ...option.Option) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, errx.Connection("configure", err)
	}
	product, err := Lookup(config.DialectName())
	if err != nil {
		return nil, errx.Connection("configure", err)
	}
	opts := option.Options(options)
	dialect := product.Dialect
	if override := opts.Dialect(); override != nil {
		dialect = override
	}
	return &Provider{
		config:   config,
		product:  product,
		dialect:  dialect,
		metadata: metadata.New(),
		logger:   opts.Logger(),
	}, nil
}
