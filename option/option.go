package option

import (
	"github.com/rs/zerolog"
	"github.com/viant/dbio/metadata/info"
)

//Option represents generic option
type Option interface{}

//Options represents generic options
type Options []Option

//BatchSize represents number of rows rendered into a single INSERT statement
type BatchSize int

//VerbatimLiterals disables escaping of embedded single quotes in per-row literal rendering
type VerbatimLiterals bool

//OperationID sets the operation id used in log events
type OperationID string

//Logger returns logger option
func Logger(logger zerolog.Logger) *zerolog.Logger {
	return &logger
}

//With returns options extended with supplied ones, later options take precedence
func (o Options) With(options ...Option) Options {
	if len(options) == 0 {
		return o
	}
	result := make(Options, 0, len(o)+len(options))
	result = append(result, options...)
	return append(result, o...)
}

//Dialect returns dialect override or nil
func (o Options) Dialect() *info.Dialect {
	if len(o) == 0 {
		return nil
	}
	for _, candidate := range o {
		if dialect, ok := candidate.(*info.Dialect); ok {
			return dialect
		}
	}
	return nil
}

//BatchSize returns batch size option, default 1
func (o Options) BatchSize() int {
	if size, ok := o.ExplicitBatchSize(); ok {
		return size
	}
	return 1
}

//ExplicitBatchSize returns batch size option and true if it was supplied
func (o Options) ExplicitBatchSize() (int, bool) {
	for _, candidate := range o {
		if actual, ok := candidate.(BatchSize); ok {
			if actual < 1 {
				return 1, true
			}
			return int(actual), true
		}
	}
	return 0, false
}

//VerbatimLiterals returns true if literals are rendered without quote escaping
func (o Options) VerbatimLiterals() bool {
	for _, candidate := range o {
		if actual, ok := candidate.(VerbatimLiterals); ok {
			return bool(actual)
		}
	}
	return false
}

//OperationID returns operation id or empty string
func (o Options) OperationID() string {
	var id OperationID
	Assign(o, &id)
	return string(id)
}

//Logger returns logger, default no-op logger
func (o Options) Logger() zerolog.Logger {
	for _, candidate := range o {
		if logger, ok := candidate.(*zerolog.Logger); ok && logger != nil {
			return *logger
		}
	}
	return zerolog.Nop()
}
