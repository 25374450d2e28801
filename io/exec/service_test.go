package exec_test

import (
	"context"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/dbtest"
	"github.com/viant/dbio/io/errx"
	"github.com/viant/dbio/io/exec"
	"github.com/viant/dbio/io/read"
	"github.com/viant/dbio/metadata/info"
	"github.com/viant/dbio/metadata/info/placeholder"
	_ "github.com/viant/dbio/metadata/product/sqlite"
)

func TestService_Execute(t *testing.T) {
	provider, err := connector.New(&connector.Config{Dialect: "sqlite", Driver: "sqlite3", Server: "localhost", Database: path.Join(t.TempDir(), "exec.db"), Username: "test", Password: "test"})
	require.Nil(t, err)
	service := exec.New(provider)
	ctx := context.Background()

	var useCases = []struct {
		description string
		SQL         string
		args        []interface{}
		scoped      bool
		affected    int64
	}{
		{description: "ddl", SQL: "CREATE TABLE foo (id INTEGER PRIMARY KEY, name TEXT)"},
		{description: "insert with args", SQL: "INSERT INTO foo (id, name) VALUES (?, ?), (?, ?)", args: []interface{}{1, "a", 2, "b"}, affected: 2},
		{description: "scoped update", SQL: "UPDATE foo SET name = 'z' WHERE id = ?", args: []interface{}{2}, scoped: true, affected: 1},
	}
	for _, useCase := range useCases {
		var affected int64
		if useCase.scoped {
			affected, err = service.ExecuteScoped(ctx, useCase.SQL, useCase.args...)
		} else {
			affected, err = service.Execute(ctx, useCase.SQL, useCase.args...)
		}
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		assert.EqualValues(t, useCase.affected, affected, useCase.description)
	}
	ds, err := read.New(provider).ReadQuery(ctx, "SELECT name FROM foo ORDER BY id")
	require.Nil(t, err)
	assert.EqualValues(t, [][]interface{}{{"a"}, {"z"}}, ds.Rows)

	_, err = service.Execute(ctx, "INSERT INTO foo (id, name) VALUES (1, 'dup')")
	assert.True(t, errx.IsExecution(err))
}

func TestService_Execute_ReleaseOnFailure(t *testing.T) {
	recorder, config := dbtest.Register(nil, "DELETE")
	provider, err := connector.New(config)
	require.Nil(t, err)
	service := exec.New(provider)
	_, err = service.Execute(context.Background(), "DELETE FROM foo")
	assert.True(t, errx.IsExecution(err))
	_, err = service.ExecuteScoped(context.Background(), "UPDATE foo SET x = 1")
	assert.Nil(t, err)
	assert.Equal(t, 1, recorder.Rollbacks())
	assert.Equal(t, 1, recorder.Commits())
	assert.Equal(t, 2, recorder.Opened())
	assert.Equal(t, recorder.Opened(), recorder.Closed())
	assert.EqualValues(t, []string{"UPDATE foo SET x = 1"}, recorder.Statements())
}

func TestService_Execute_NumberedPlaceholders(t *testing.T) {
	recorder, config := dbtest.Register(&info.Dialect{Placeholder: "$", PlaceholderResolver: &placeholder.NumberedGenerator{Prefix: "$"}}, "")
	provider, err := connector.New(config)
	require.Nil(t, err)
	service := exec.New(provider)
	ctx := context.Background()

	var useCases = []struct {
		description string
		SQL         string
		args        []interface{}
		expect      string
	}{
		{
			description: "no args keeps sql intact",
			SQL:         "UPDATE foo SET note = 'why?' WHERE data ? 'key'",
			expect:      "UPDATE foo SET note = 'why?' WHERE data ? 'key'",
		},
		{
			description: "args rewrite unquoted placeholders",
			SQL:         "UPDATE foo SET note = 'why?' WHERE id = ? AND name = ?",
			args:        []interface{}{1, "a"},
			expect:      "UPDATE foo SET note = 'why?' WHERE id = $1 AND name = $2",
		},
	}
	for i, useCase := range useCases {
		_, err = service.Execute(ctx, useCase.SQL, useCase.args...)
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		statements := recorder.Statements()
		if assert.Len(t, statements, i+1, useCase.description) {
			assert.Equal(t, useCase.expect, statements[i], useCase.description)
		}
	}

	_, err = read.New(provider).ReadQuery(ctx, "SELECT '?' FROM foo")
	assert.Nil(t, err)
	statements := recorder.Statements()
	assert.Equal(t, "SELECT '?' FROM foo", statements[len(statements)-1])
}
