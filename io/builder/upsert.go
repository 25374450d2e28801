package builder

import (
	"fmt"

	"github.com/viant/dbio/io/errx"
	"github.com/viant/dbio/metadata/info"
)

//Plan represents upsert execution plan, either a single MERGE or UPDATE followed by INSERT when no row was updated
type Plan struct {
	Keys   []string
	Merge  *Statement
	Update *Statement
	Insert *Statement
}

//IsMerge returns true if plan uses MERGE statement
func (p *Plan) IsMerge() bool {
	return p.Merge != nil
}

//Rows returns number of dataset rows consumed by one execution
func (p *Plan) Rows() int {
	if p.Merge != nil {
		return p.Merge.Rows()
	}
	return 1
}

//Upsert builds upsert plan for a single source row
func Upsert(table string, keys, columns []string, dialect *info.Dialect) (*Plan, error) {
	return UpsertBatch(table, keys, columns, dialect, 1)
}

//UpsertBatch builds upsert plan, MERGE source holds rows number of dataset rows, UPDATE/INSERT plans always take one row
func UpsertBatch(table string, keys, columns []string, dialect *info.Dialect, rows int) (*Plan, error) {
	if len(columns) == 0 {
		return nil, errx.EmptyDataset("build upsert", table)
	}
	keyIndexes, err := indexKeys(keys, columns)
	if err != nil {
		return nil, errx.InvalidKeySpec("build upsert", table, keys, err)
	}
	if rows < 1 {
		rows = 1
	}
	keys = append([]string{}, keys...)
	columns = append([]string{}, columns...)
	if dialect.CanMerge() {
		return &Plan{Keys: keys, Merge: merge(table, keyIndexes, columns, dialect, rows)}, nil
	}
	insert, err := Insert(table, columns, dialect)
	if err != nil {
		return nil, err
	}
	return &Plan{Keys: keys, Update: update(table, keyIndexes, columns, dialect), Insert: insert}, nil
}

//ValidateKeys checks that keys are non empty and every key is one of columns
func ValidateKeys(keys, columns []string) error {
	_, err := indexKeys(keys, columns)
	return err
}

func indexKeys(keys, columns []string) ([]int, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("keys were empty")
	}
	var result = make([]int, 0, len(keys))
	seen := map[string]bool{}
	for _, key := range keys {
		if seen[key] {
			return nil, fmt.Errorf("duplicate key: %v", key)
		}
		seen[key] = true
		index := -1
		for i, column := range columns {
			if column == key {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, fmt.Errorf("key %v is not a dataset column", key)
		}
		result = append(result, index)
	}
	return result, nil
}

func merge(table string, keys []int, columns []string, dialect *info.Dialect, rows int) *Statement {
	stmt := &Statement{dialect: dialect, columns: columns, rows: rows}
	stmt.text("MERGE INTO " + table + " AS Target USING ")
	if dialect.Upsert.SelectSource() {
		selectSource(stmt, columns, rows)
	} else {
		valuesSource(stmt, columns, rows)
	}
	stmt.text(" ON ")
	for i, key := range keys {
		if i > 0 {
			stmt.text(" AND ")
		}
		stmt.text("Target." + columns[key] + "=Source." + columns[key])
	}
	if dialect.Upsert.MatchedFirst() {
		mergeMatched(stmt, columns)
		mergeNotMatched(stmt, columns, dialect)
	} else {
		mergeNotMatched(stmt, columns, dialect)
		mergeMatched(stmt, columns)
	}
	if dialect.Terminator != "" {
		stmt.text(dialect.Terminator)
	}
	return stmt.build()
}

func valuesSource(stmt *Statement, columns []string, rows int) {
	stmt.text("(VALUES ")
	for i := 0; i < rows; i++ {
		if i > 0 {
			stmt.text(",")
		}
		stmt.text("(")
		for j := range columns {
			if j > 0 {
				stmt.text(",")
			}
			stmt.value(i, j)
		}
		stmt.text(")")
	}
	stmt.text(") AS Source(")
	for j, column := range columns {
		if j > 0 {
			stmt.text(",")
		}
		stmt.text(column)
	}
	stmt.text(")")
}

func selectSource(stmt *Statement, columns []string, rows int) {
	stmt.text("(")
	for i := 0; i < rows; i++ {
		if i > 0 {
			stmt.text(" UNION ALL ")
		}
		stmt.text("SELECT ")
		for j, column := range columns {
			if j > 0 {
				stmt.text(", ")
			}
			stmt.value(i, j)
			if i == 0 {
				stmt.text(" AS " + column)
			}
		}
	}
	stmt.text(") AS Source")
}

func mergeNotMatched(stmt *Statement, columns []string, dialect *info.Dialect) {
	stmt.text(" WHEN NOT MATCHED ")
	if dialect.Upsert.ByTarget() {
		stmt.text("BY TARGET ")
	}
	stmt.text("THEN INSERT (")
	for j, column := range columns {
		if j > 0 {
			stmt.text(",")
		}
		stmt.text(column)
	}
	stmt.text(") VALUES (")
	for j, column := range columns {
		if j > 0 {
			stmt.text(",")
		}
		stmt.text("Source." + column)
	}
	stmt.text(")")
}

func mergeMatched(stmt *Statement, columns []string) {
	stmt.text(" WHEN MATCHED THEN UPDATE SET ")
	for j, column := range columns {
		if j > 0 {
			stmt.text(",")
		}
		stmt.text(column + "=Source." + column)
	}
}

//update builds UPDATE <table> SET <c>=<p>,... WHERE <k>=<p> AND ...
func update(table string, keys []int, columns []string, dialect *info.Dialect) *Statement {
	stmt := &Statement{dialect: dialect, columns: columns, rows: 1}
	stmt.text("UPDATE " + table + " SET ")
	for j, column := range columns {
		if j > 0 {
			stmt.text(",")
		}
		stmt.text(column + "=")
		stmt.value(0, j)
	}
	stmt.text(" WHERE ")
	for i, key := range keys {
		if i > 0 {
			stmt.text(" AND ")
		}
		stmt.text(columns[key] + "=")
		stmt.value(0, key)
	}
	return stmt.build()
}
