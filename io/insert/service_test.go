package insert_test

import (
	"context"
	"database/sql"
	"math"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/dataset"
	"github.com/viant/dbio/dbtest"
	"github.com/viant/dbio/io/builder"
	"github.com/viant/dbio/io/errx"
	"github.com/viant/dbio/io/insert"
	"github.com/viant/dbio/metadata/info"
	"github.com/viant/dbio/metadata/info/dialect"
	_ "github.com/viant/dbio/metadata/product/sqlite"
	"github.com/viant/dbio/option"
)

func sqliteProvider(t *testing.T, initSQL ...string) (*connector.Provider, *sql.DB) {
	dbLocation := path.Join(t.TempDir(), "insert.db")
	db, err := sql.Open("sqlite3", dbLocation)
	require.Nil(t, err)
	t.Cleanup(func() { _ = db.Close() })
	for _, SQL := range initSQL {
		_, err = db.Exec(SQL)
		require.Nil(t, err, SQL)
	}
	provider, err := connector.New(&connector.Config{Dialect: "sqlite3", Driver: "sqlite3", Server: "localhost", Database: dbLocation, Username: "test", Password: "test"})
	require.Nil(t, err)
	return provider, db
}

func TestService_Insert(t *testing.T) {
	var useCases = []struct {
		description string
		ds          *dataset.Dataset
		options     []option.Option
		literal     bool
		affected    int64
	}{
		{
			description: "single row",
			ds:          dataset.New([]string{"id", "name", "score"}, []interface{}{1, "a", 1.5}),
			affected:    1,
		},
		{
			description: "multi rows",
			ds: dataset.New([]string{"id", "name", "score"},
				[]interface{}{1, "a", 1.5}, []interface{}{2, "b", 2.5}, []interface{}{3, "c", 0.0}),
			affected: 3,
		},
		{
			description: "batch with remainder",
			ds: dataset.New([]string{"id", "name", "score"},
				[]interface{}{1, "a", 1.5}, []interface{}{2, "b", 2.5}, []interface{}{3, "c", 3.5},
				[]interface{}{4, "d", 4.5}, []interface{}{5, "e", 5.5}),
			options:  []option.Option{option.BatchSize(2)},
			affected: 5,
		},
		{
			description: "literal rows",
			ds: dataset.New([]string{"id", "name", "score"},
				[]interface{}{1, "it's", 1.5}, []interface{}{2, "42", 2.5}),
			literal:  true,
			affected: 2,
		},
	}

	for _, useCase := range useCases {
		provider, db := sqliteProvider(t, "CREATE TABLE foo (id INTEGER PRIMARY KEY, name TEXT, score REAL)")
		service := insert.New(provider, builder.NewCache())
		var affected int64
		var err error
		if useCase.literal {
			affected, err = service.InsertLiteral(context.Background(), "foo", useCase.ds, useCase.options...)
		} else {
			affected, err = service.Insert(context.Background(), "foo", useCase.ds, useCase.options...)
		}
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		assert.EqualValues(t, useCase.affected, affected, useCase.description)
		rows, err := db.Query("SELECT id, name, score FROM foo")
		require.Nil(t, err)
		actual, err := dataset.FromRows(rows)
		_ = rows.Close()
		require.Nil(t, err)
		assert.True(t, useCase.ds.SameRows(actual), useCase.description)
	}
}

func TestService_Insert_Null(t *testing.T) {
	provider, db := sqliteProvider(t, "CREATE TABLE foo (id INTEGER PRIMARY KEY, name TEXT, score REAL)")
	service := insert.New(provider, nil)
	var name *string
	ds := dataset.New([]string{"id", "name", "score"}, []interface{}{1, name, math.NaN()}, []interface{}{2, nil, nil})
	_, err := service.Insert(context.Background(), "foo", ds)
	require.Nil(t, err)
	_, err = service.InsertLiteral(context.Background(), "foo", dataset.New([]string{"id", "name", "score"}, []interface{}{3, nil, math.NaN()}))
	require.Nil(t, err)

	var nulls int
	err = db.QueryRow("SELECT COUNT(*) FROM foo WHERE name IS NULL AND score IS NULL").Scan(&nulls)
	assert.Nil(t, err)
	assert.Equal(t, 3, nulls)
	var sentinels int
	err = db.QueryRow("SELECT COUNT(*) FROM foo WHERE name IN ('None', 'NaN', '<nil>')").Scan(&sentinels)
	assert.Nil(t, err)
	assert.Equal(t, 0, sentinels)
}

func TestService_Insert_Failure(t *testing.T) {
	provider, db := sqliteProvider(t, "CREATE TABLE foo (id INTEGER PRIMARY KEY, name TEXT)")
	service := insert.New(provider, nil)
	ds := dataset.New([]string{"id", "name"}, []interface{}{1, "a"}, []interface{}{1, "b"})
	_, err := service.Insert(context.Background(), "foo", ds)
	assert.True(t, errx.IsExecution(err))
	assert.True(t, errx.IsDuplicateKey(err))
	var count int
	require.Nil(t, db.QueryRow("SELECT COUNT(*) FROM foo").Scan(&count))
	assert.Equal(t, 0, count)

	_, err = service.Insert(context.Background(), "foo", dataset.New([]string{"id", "id"}, []interface{}{1, 2}))
	assert.True(t, errx.IsInvalidDataset(err))

	committed, err := service.InsertLiteral(context.Background(), "foo", ds)
	assert.True(t, errx.IsPartial(err))
	assert.EqualValues(t, 1, committed)
}

func TestService_Insert_ReleaseOnFailure(t *testing.T) {
	recorder, config := dbtest.Register(nil, "INSERT INTO")
	provider, err := connector.New(config)
	require.Nil(t, err)
	service := insert.New(provider, nil)
	_, err = service.Insert(context.Background(), "bar", dataset.New([]string{"id"}, []interface{}{1}))
	assert.True(t, errx.IsExecution(err))
	assert.Equal(t, 1, recorder.Rollbacks())
	assert.Equal(t, recorder.Opened(), recorder.Closed())

	affected, err := service.Insert(context.Background(), "bar", dataset.New([]string{"id"}))
	assert.Nil(t, err)
	assert.EqualValues(t, 0, affected)
}

func TestService_Insert_Batching(t *testing.T) {
	rows := [][]interface{}{{1, "a"}, {2, "b"}, {3, "c"}, {4, "d"}, {5, "e"}}
	var useCases = []struct {
		description string
		dialect     *info.Dialect
		options     []option.Option
		expect      []string
	}{
		{
			description: "all rows in one statement",
			dialect:     &info.Dialect{Insert: dialect.InsertWithMultiValues},
			expect:      []string{"INSERT INTO foo(id,name) VALUES (?,?),(?,?),(?,?),(?,?),(?,?)"},
		},
		{
			description: "parameter limit",
			dialect:     &info.Dialect{Insert: dialect.InsertWithMultiValues, MaxParams: 4},
			expect: []string{
				"INSERT INTO foo(id,name) VALUES (?,?),(?,?)",
				"INSERT INTO foo(id,name) VALUES (?,?),(?,?)",
				"INSERT INTO foo(id,name) VALUES (?,?)",
			},
		},
		{
			description: "row limit",
			dialect:     &info.Dialect{Insert: dialect.InsertWithMultiValues, MaxRows: 3},
			expect: []string{
				"INSERT INTO foo(id,name) VALUES (?,?),(?,?),(?,?)",
				"INSERT INTO foo(id,name) VALUES (?,?),(?,?)",
			},
		},
		{
			description: "explicit batch size wins",
			dialect:     &info.Dialect{Insert: dialect.InsertWithMultiValues},
			options:     []option.Option{option.BatchSize(4)},
			expect: []string{
				"INSERT INTO foo(id,name) VALUES (?,?),(?,?),(?,?),(?,?)",
				"INSERT INTO foo(id,name) VALUES (?,?)",
			},
		},
		{
			description: "single values dialect",
			dialect:     &info.Dialect{},
			expect: []string{
				"INSERT INTO foo(id,name) VALUES (?,?)",
				"INSERT INTO foo(id,name) VALUES (?,?)",
				"INSERT INTO foo(id,name) VALUES (?,?)",
				"INSERT INTO foo(id,name) VALUES (?,?)",
				"INSERT INTO foo(id,name) VALUES (?,?)",
			},
		},
	}
	for _, useCase := range useCases {
		recorder, config := dbtest.Register(useCase.dialect, "")
		provider, err := connector.New(config)
		require.Nil(t, err, useCase.description)
		_, err = insert.New(provider, nil).Insert(context.Background(), "foo", dataset.New([]string{"id", "name"}, rows...), useCase.options...)
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		assert.EqualValues(t, useCase.expect, recorder.Statements(), useCase.description)
		assert.Equal(t, 1, recorder.Commits(), useCase.description)
	}
}
