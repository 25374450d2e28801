package cli

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/dbio/dataset"
	_ "github.com/viant/dbio/metadata/product/sqlite"
	"gopkg.in/yaml.v3"
)

func run(args ...string) (string, error) {
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	baseDir := t.TempDir()
	configURL := path.Join(baseDir, "dbio.yaml")
	require.Nil(t, os.WriteFile(configURL, []byte(fmt.Sprintf(`connection:
  dialect: sqlite
  driver: sqlite3
  server: localhost
  database: %v
  username: test
  password: test
`, path.Join(baseDir, "cli.db"))), 0644))
	rowsURL := path.Join(baseDir, "rows.yaml")
	require.Nil(t, os.WriteFile(rowsURL, []byte("columns: [id, name]\nrows:\n  - [1, a]\n  - [2, b]\n"), 0644))
	updatesURL := path.Join(baseDir, "updates.yaml")
	require.Nil(t, os.WriteFile(updatesURL, []byte("columns: [id, name]\nrows:\n  - [1, a2]\n  - [3, c]\n"), 0644))

	var useCases = []struct {
		description string
		args        []string
		expect      string
	}{
		{description: "create table", args: []string{"-c", configURL, "exec", "CREATE TABLE foo (id INTEGER PRIMARY KEY, name TEXT)"}, expect: "affected: 0"},
		{description: "insert", args: []string{"-c", configURL, "insert", "foo", rowsURL}, expect: "affected: 2"},
		{description: "upsert", args: []string{"-c", configURL, "upsert", "foo", updatesURL, "--keys", "id"}, expect: "affected: 2"},
		{description: "literal upsert", args: []string{"-c", configURL, "upsert", "foo", updatesURL, "--keys", "id", "--literal"}, expect: "affected: 2"},
		{description: "query json", args: []string{"-c", configURL, "-f", "json", "query", "SELECT name FROM foo WHERE id = ?", "3"}, expect: `"c"`},
	}
	for _, useCase := range useCases {
		output, err := run(useCase.args...)
		if !assert.Nil(t, err, useCase.description) {
			continue
		}
		assert.Contains(t, output, useCase.expect, useCase.description)
	}

	output, err := run("-c", configURL, "read", "foo")
	require.Nil(t, err)
	actual := &dataset.Dataset{}
	require.Nil(t, yaml.Unmarshal([]byte(output), actual))
	expect := dataset.New([]string{"id", "name"}, []interface{}{1, "a2"}, []interface{}{2, "b"}, []interface{}{3, "c"})
	assert.True(t, expect.SameRows(actual))

	_, err = run("-c", configURL, "upsert", "foo", updatesURL)
	assert.NotNil(t, err)
	_, err = run("-c", configURL, "-f", "xml", "read", "foo")
	assert.NotNil(t, err)
}
