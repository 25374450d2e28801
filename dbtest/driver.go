// Package dbtest provides a recording database/sql driver for executor tests:
// it counts opened and closed connections, transaction outcomes and fails statements on demand.
package dbtest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/metadata/info"
	"github.com/viant/dbio/metadata/info/dialect"
)

var sequence uint32

//Recorder records driver activity
type Recorder struct {
	mux        sync.Mutex
	Name       string
	FailOn     string
	Affected   int64
	opened     int
	closed     int
	commits    int
	rollbacks  int
	statements []string
}

//Opened returns number of opened connections
func (r *Recorder) Opened() int {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.opened
}

//Closed returns number of closed connections
func (r *Recorder) Closed() int {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.closed
}

//Commits returns number of committed transactions
func (r *Recorder) Commits() int {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.commits
}

//Rollbacks returns number of rolled back transactions
func (r *Recorder) Rollbacks() int {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.rollbacks
}

//Statements returns executed statements
func (r *Recorder) Statements() []string {
	r.mux.Lock()
	defer r.mux.Unlock()
	return append([]string{}, r.statements...)
}

func (r *Recorder) update(fn func()) {
	r.mux.Lock()
	defer r.mux.Unlock()
	fn()
}

//Register registers recording driver and product, failOn fails every statement containing the fragment
func Register(aDialect *info.Dialect, failOn string) (*Recorder, *connector.Config) {
	name := fmt.Sprintf("dbtest%d", atomic.AddUint32(&sequence, 1))
	recorder := &Recorder{Name: name, FailOn: failOn, Affected: 1}
	sql.Register(name, &fakeDriver{recorder: recorder})
	if aDialect == nil {
		aDialect = &info.Dialect{Placeholder: "?", Insert: dialect.InsertWithMultiValues, Upsert: dialect.UpsertMerge | dialect.UpsertMergeByTarget, Terminator: ";"}
	}
	productDialect := *aDialect
	productDialect.Name = name
	driver := connector.Driver{Name: name, DSN: connector.FileDSN}
	connector.Register(&connector.Product{Name: name, Cursor: driver, Transactional: driver, Dialect: &productDialect})
	return recorder, &connector.Config{Dialect: name, Driver: name, Server: "localhost", Database: name, Username: "test", Password: "test"}
}

type fakeDriver struct {
	recorder *Recorder
}

func (d *fakeDriver) Open(name string) (driver.Conn, error) {
	d.recorder.update(func() { d.recorder.opened++ })
	return &conn{recorder: d.recorder}, nil
}

type conn struct {
	recorder *Recorder
}

func (c *conn) Prepare(query string) (driver.Stmt, error) {
	return &stmt{conn: c, query: query}, nil
}

func (c *conn) Close() error {
	c.recorder.update(func() { c.recorder.closed++ })
	return nil
}

func (c *conn) Begin() (driver.Tx, error) {
	return &tx{recorder: c.recorder}, nil
}

func (c *conn) exec(query string) (driver.Result, error) {
	r := c.recorder
	if r.FailOn != "" && strings.Contains(query, r.FailOn) {
		return nil, fmt.Errorf("dbtest: forced failure on %v", r.FailOn)
	}
	r.update(func() { r.statements = append(r.statements, query) })
	return driver.RowsAffected(r.Affected), nil
}

func (c *conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	return c.exec(query)
}

type tx struct {
	recorder *Recorder
}

func (t *tx) Commit() error {
	t.recorder.update(func() { t.recorder.commits++ })
	return nil
}

func (t *tx) Rollback() error {
	t.recorder.update(func() { t.recorder.rollbacks++ })
	return nil
}

type stmt struct {
	conn  *conn
	query string
}

func (s *stmt) Close() error {
	return nil
}

func (s *stmt) NumInput() int {
	return -1
}

func (s *stmt) Exec(args []driver.Value) (driver.Result, error) {
	return s.conn.exec(s.query)
}

func (s *stmt) Query(args []driver.Value) (driver.Rows, error) {
	if _, err := s.conn.exec(s.query); err != nil {
		return nil, err
	}
	return &rows{}, nil
}

type rows struct{}

func (r *rows) Columns() []string {
	return []string{}
}

func (r *rows) Close() error {
	return nil
}

func (r *rows) Next(dest []driver.Value) error {
	return io.EOF
}
