package builder

import (
	"strings"

	"github.com/viant/dbio/io/errx"
	"github.com/viant/dbio/metadata/info"
)

const insertIntoFragment = "INSERT INTO "

//Insert builds single row INSERT INTO <table>(<columns>) VALUES (<placeholders>)
func Insert(table string, columns []string, dialect *info.Dialect) (*Statement, error) {
	return InsertBatch(table, columns, dialect, 1)
}

//InsertBatch builds multi values INSERT for rows number of dataset rows, use Statement.Limit for a smaller batch
func InsertBatch(table string, columns []string, dialect *info.Dialect, rows int) (*Statement, error) {
	if len(columns) == 0 {
		return nil, errx.EmptyDataset("build insert", table)
	}
	if rows < 1 || !dialect.Insert.MultiValues() {
		rows = 1
	}
	columns = append([]string{}, columns...)
	stmt := &Statement{dialect: dialect, columns: columns, rows: rows}
	stmt.text(insertIntoFragment + table + "(" + strings.Join(columns, ",") + ") VALUES ")
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
		stmt.markRow()
	}
	return stmt.build(), nil
}
