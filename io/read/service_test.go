package read_test

import (
	"context"
	"database/sql"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/assertly"
	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/dataset"
	"github.com/viant/dbio/dbtest"
	"github.com/viant/dbio/io/errx"
	"github.com/viant/dbio/io/read"
	_ "github.com/viant/dbio/metadata/product/sqlite"
)

func asMap(ds *dataset.Dataset) map[string]interface{} {
	return map[string]interface{}{"columns": ds.Columns, "rows": ds.Rows}
}

func TestService_Read(t *testing.T) {
	dbLocation := path.Join(t.TempDir(), "read.db")
	db, err := sql.Open("sqlite3", dbLocation)
	require.Nil(t, err)
	defer db.Close()
	for _, SQL := range []string{
		"CREATE TABLE foo (id INTEGER PRIMARY KEY, name TEXT, active BOOLEAN)",
		"INSERT INTO foo VALUES (1, 'a', 1), (2, 'b', 0), (3, NULL, 1)",
	} {
		_, err = db.Exec(SQL)
		require.Nil(t, err)
	}
	provider, err := connector.New(&connector.Config{Dialect: "sqlite3", Driver: "sqlite3", Server: "localhost", Database: dbLocation, Username: "test", Password: "test"})
	require.Nil(t, err)
	service := read.New(provider)

	var useCases = []struct {
		description string
		table       string
		SQL         string
		args        []interface{}
		expect      string
	}{
		{
			description: "read table",
			table:       "foo",
			expect:      `{"columns":["id","name","active"],"rows":[[1,"a",true],[2,"b",false],[3,null,true]]}`,
		},
		{
			description: "read query",
			SQL:         "SELECT name, id FROM foo WHERE id > ? ORDER BY id",
			args:        []interface{}{1},
			expect:      `{"columns":["name","id"],"rows":[["b",2],[null,3]]}`,
		},
		{
			description: "empty result",
			SQL:         "SELECT id FROM foo WHERE 1 = 0",
			expect:      `{"columns":["id"],"rows":[]}`,
		},
	}

	for _, useCase := range useCases {
		if useCase.table != "" {
			actual, err := service.Read(context.Background(), useCase.table)
			if assert.Nil(t, err, useCase.description) {
				assertly.AssertValues(t, useCase.expect, asMap(actual), useCase.description)
			}
			continue
		}
		actual, err := service.ReadQuery(context.Background(), useCase.SQL, useCase.args...)
		if assert.Nil(t, err, useCase.description) {
			assertly.AssertValues(t, useCase.expect, asMap(actual), useCase.description)
		}
	}

	_, err = service.ReadQuery(context.Background(), "SELECT * FROM missing")
	assert.True(t, errx.IsExecution(err))
}

func TestService_Read_ConnectionError(t *testing.T) {
	provider, err := connector.New(&connector.Config{Dialect: "sqlite3", Driver: "sqlite3", Server: "localhost", Database: path.Join(t.TempDir(), "missing", "dir", "read.db"), Username: "test", Password: "test"})
	require.Nil(t, err)
	_, err = read.New(provider).Read(context.Background(), "foo")
	assert.True(t, errx.IsConnection(err))
	assert.False(t, errx.IsExecution(err))
}

func TestService_Read_ReleaseOnFailure(t *testing.T) {
	var useCases = []struct {
		description string
		read        func(service *read.Service) error
	}{
		{
			description: "read",
			read: func(service *read.Service) error {
				_, err := service.Read(context.Background(), "foo")
				return err
			},
		},
		{
			description: "read query",
			read: func(service *read.Service) error {
				_, err := service.ReadQuery(context.Background(), "SELECT id FROM foo WHERE id = ?", 1)
				return err
			},
		},
	}
	for _, useCase := range useCases {
		recorder, config := dbtest.Register(nil, "SELECT")
		provider, err := connector.New(config)
		require.Nil(t, err, useCase.description)
		err = useCase.read(read.New(provider))
		assert.True(t, errx.IsExecution(err), useCase.description)
		assert.Equal(t, 1, recorder.Opened(), useCase.description)
		assert.Equal(t, 1, recorder.Closed(), useCase.description)
	}
}
