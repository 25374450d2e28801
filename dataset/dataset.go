// Package dataset defines the tabular payload written to and read from a database:
// an ordered list of uniquely named columns and rows of scalar values.
package dataset

import (
	"fmt"
	"github.com/viant/dbio/io/errx"
	"strings"
)

//Dataset represents ordered named columns with row values; column names are used verbatim as SQL identifiers
type Dataset struct {
	Columns []string        `yaml:"columns" json:"columns"`
	Rows    [][]interface{} `yaml:"rows" json:"rows"`
}

//New creates a dataset
func New(columns []string, rows ...[]interface{}) *Dataset {
	return &Dataset{Columns: columns, Rows: rows}
}

//Len returns number of rows
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

//Width returns number of columns
func (d *Dataset) Width() int {
	if d == nil {
		return 0
	}
	return len(d.Columns)
}

//Index returns column position or -1
func (d *Dataset) Index(column string) int {
	for i, candidate := range d.Columns {
		if candidate == column {
			return i
		}
	}
	return -1
}

//Has returns true if dataset has all supplied columns
func (d *Dataset) Has(columns ...string) bool {
	for _, column := range columns {
		if d.Index(column) == -1 {
			return false
		}
	}
	return true
}

//Append appends a row
func (d *Dataset) Append(values ...interface{}) {
	d.Rows = append(d.Rows, values)
}

//Row returns row values with NULL normalisation applied
func (d *Dataset) Row(i int) []interface{} {
	source := d.Rows[i]
	result := make([]interface{}, len(source))
	for j, value := range source {
		result[j] = Normalize(value)
	}
	return result
}

//Value returns normalised value for row and column name
func (d *Dataset) Value(row int, column string) (interface{}, bool) {
	index := d.Index(column)
	if index == -1 || row < 0 || row >= len(d.Rows) {
		return nil, false
	}
	return Normalize(d.Rows[row][index]), true
}

//Validate checks dataset structural invariants
func (d *Dataset) Validate() error {
	if d.Width() == 0 {
		return errx.EmptyDataset("", "")
	}
	seen := make(map[string]bool, len(d.Columns))
	for i, column := range d.Columns {
		if strings.TrimSpace(column) == "" {
			return errx.InvalidDataset("", "", fmt.Errorf("blank column name at %v", i))
		}
		if seen[column] {
			return errx.InvalidDataset("", "", fmt.Errorf("duplicate column: %v", column))
		}
		seen[column] = true
	}
	for i, row := range d.Rows {
		if len(row) != len(d.Columns) {
			return errx.InvalidDataset("", "", fmt.Errorf("row %v has %v values, expected %v", i+1, len(row), len(d.Columns)))
		}
	}
	return nil
}
