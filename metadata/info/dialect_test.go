package info

import (
	"github.com/stretchr/testify/assert"
	"github.com/viant/dbio/metadata/database"
	"github.com/viant/dbio/metadata/info/dialect"
	"github.com/viant/dbio/metadata/info/placeholder"
	"testing"
)

func TestDialect_EnsurePlaceholders(t *testing.T) {
	var testCases = []struct {
		dialect     Dialect
		description string
		sQL         string
		expect      string
	}{
		{
			description: "original placeholders",
			dialect: Dialect{
				Placeholder: "?",
			},
			sQL:    "SELECT COUNT(1) FROM foo WHERE Kind=? AND Active=? AND year > ? ",
			expect: "SELECT COUNT(1) FROM foo WHERE Kind=? AND Active=? AND year > ? ",
		},
		{
			description: "numbered placeholders",
			dialect: Dialect{
				PlaceholderResolver: &placeholder.NumberedGenerator{Prefix: "$"},
			},
			sQL:    "SELECT COUNT(1) FROM foo WHERE Kind=? AND Active=?",
			expect: "SELECT COUNT(1) FROM foo WHERE Kind=$1 AND Active=$2",
		},
		{
			description: "no placeholders",
			dialect: Dialect{
				PlaceholderResolver: &placeholder.NumberedGenerator{Prefix: "$"},
			},
			sQL:    "SELECT 1",
			expect: "SELECT 1",
		},
		{
			description: "quoted question marks",
			dialect: Dialect{
				PlaceholderResolver: &placeholder.NumberedGenerator{Prefix: "$"},
			},
			sQL:    "UPDATE foo SET note = 'why?', \"a?\" = 'it''s ?' WHERE id = ?",
			expect: "UPDATE foo SET note = 'why?', \"a?\" = 'it''s ?' WHERE id = $1",
		},
		{
			description: "only quoted question marks",
			dialect: Dialect{
				PlaceholderResolver: &placeholder.NumberedGenerator{Prefix: "$"},
			},
			sQL:    "SELECT '?'",
			expect: "SELECT '?'",
		},
	}

	for _, testCase := range testCases {
		actual := testCase.dialect.EnsurePlaceholders(testCase.sQL)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestDialect_ForVersion(t *testing.T) {
	pg := &Dialect{Name: "merge15", Upsert: dialect.UpsertMerge | dialect.UpsertUpdateOrInsert, MergeSince: 15}
	assert.True(t, pg.ForVersion(&database.Product{Major: 16}).CanMerge())
	assert.False(t, pg.ForVersion(&database.Product{Major: 14, Minor: 9}).CanMerge())
	assert.True(t, pg.ForVersion(nil).CanMerge())
	assert.True(t, pg.CanMerge(), "original dialect must not be modified")

	mssql := &Dialect{Name: "mssql", Upsert: dialect.UpsertMerge | dialect.UpsertMergeByTarget, MergeSince: 10}
	downgraded := mssql.ForVersion(&database.Product{Major: 9})
	assert.False(t, downgraded.CanMerge())
	assert.False(t, downgraded.Upsert.ByTarget())
	assert.True(t, mssql.ForVersion(&database.Product{Major: 15}).Upsert.ByTarget())
}

func TestDialect_Literals(t *testing.T) {
	aDialect := &Dialect{}
	assert.Equal(t, "NULL", aDialect.Null())
	assert.Equal(t, "1", aDialect.Bool(true))
	assert.Equal(t, "0", aDialect.Bool(false))
	aDialect = &Dialect{TrueLiteral: "TRUE", FalseLiteral: "FALSE"}
	assert.Equal(t, "TRUE", aDialect.Bool(true))
	assert.Equal(t, "?", aDialect.PlaceholderStyle())
}

func TestDialect_BatchRows(t *testing.T) {
	var testCases = []struct {
		description string
		dialect     Dialect
		rows        int
		columns     int
		expect      int
	}{
		{description: "unlimited", dialect: Dialect{Insert: dialect.InsertWithMultiValues}, rows: 5000, columns: 3, expect: 5000},
		{description: "parameter limit", dialect: Dialect{Insert: dialect.InsertWithMultiValues, MaxParams: 2100}, rows: 5000, columns: 3, expect: 700},
		{description: "row limit", dialect: Dialect{Insert: dialect.InsertWithMultiValues, MaxParams: 2100, MaxRows: 1000}, rows: 5000, columns: 2, expect: 1000},
		{description: "fewer rows than limits", dialect: Dialect{Insert: dialect.InsertWithMultiValues, MaxParams: 2100, MaxRows: 1000}, rows: 3, columns: 2, expect: 3},
		{description: "wide row", dialect: Dialect{Insert: dialect.InsertWithMultiValues, MaxParams: 10}, rows: 4, columns: 20, expect: 1},
		{description: "single values", dialect: Dialect{}, rows: 10, columns: 2, expect: 1},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.dialect.BatchRows(testCase.rows, testCase.columns), testCase.description)
	}
}
