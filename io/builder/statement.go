// Package builder renders dataset driven DML: INSERT and MERGE or UPDATE/INSERT upserts.
// Statements are kept as fragments of SQL text and value slots, so the same statement can be
// rendered with dialect placeholders or with literal values.
package builder

import (
	"strings"

	"github.com/viant/dbio/io/errx"
	"github.com/viant/dbio/metadata/info"
)

type (
	//slot references a source value by batch row and dataset column index
	slot struct {
		row    int
		column int
	}

	fragment struct {
		text string
		slot *slot
	}

	//Statement represents parameterized DML
	Statement struct {
		dialect   *info.Dialect
		columns   []string
		fragments []fragment
		rows      int
		//offsets holds fragments count after each batch row, set only when rows are trailing
		offsets []int
		sql     string
		slots   int
	}
)

func (s *Statement) text(text string) {
	if size := len(s.fragments); size > s.sealed() && s.fragments[size-1].slot == nil {
		s.fragments[size-1].text += text
		return
	}
	s.fragments = append(s.fragments, fragment{text: text})
}

func (s *Statement) value(row, column int) {
	s.fragments = append(s.fragments, fragment{slot: &slot{row: row, column: column}})
	s.slots++
}

//sealed returns number of fragments that can no longer be merged
func (s *Statement) sealed() int {
	if len(s.offsets) == 0 {
		return 0
	}
	return s.offsets[len(s.offsets)-1]
}

func (s *Statement) markRow() {
	s.offsets = append(s.offsets, len(s.fragments))
}

func (s *Statement) build() *Statement {
	getPlaceholder := s.dialect.PlaceholderGetter()
	builder := strings.Builder{}
	for _, item := range s.fragments {
		if item.slot == nil {
			builder.WriteString(item.text)
			continue
		}
		builder.WriteString(getPlaceholder())
	}
	s.sql = builder.String()
	return s
}

//SQL returns statement with dialect placeholders
func (s *Statement) SQL() string {
	return s.sql
}

//PlaceholderStyle returns dialect placeholder style, i.e. '?' or '$N'
func (s *Statement) PlaceholderStyle() string {
	return s.dialect.PlaceholderStyle()
}

//Placeholders returns number of value slots
func (s *Statement) Placeholders() int {
	return s.slots
}

//Rows returns number of dataset rows consumed by one execution
func (s *Statement) Rows() int {
	return s.rows
}

//Columns returns source columns
func (s *Statement) Columns() []string {
	return s.columns
}

//Limit returns statement consuming only the first n batch rows
func (s *Statement) Limit(n int) *Statement {
	if n >= s.rows || len(s.offsets) < s.rows || n < 1 {
		return s
	}
	result := &Statement{dialect: s.dialect, columns: s.columns, rows: n, offsets: s.offsets[:n]}
	result.fragments = s.fragments[:s.offsets[n-1]]
	for _, item := range result.fragments {
		if item.slot != nil {
			result.slots++
		}
	}
	return result.build()
}

//Args returns parameters in slot order for supplied rows, values are NULL normalised by the caller
func (s *Statement) Args(rows ...[]interface{}) []interface{} {
	result := make([]interface{}, 0, s.slots)
	for _, item := range s.fragments {
		if item.slot == nil {
			continue
		}
		result = append(result, rows[item.slot.row][item.slot.column])
	}
	return result
}

//Literal renders statement with slot values substituted by literals
func (s *Statement) Literal(policy *LiteralPolicy, rows ...[]interface{}) (string, error) {
	builder := strings.Builder{}
	builder.Grow(len(s.sql) + 8*s.slots)
	for _, item := range s.fragments {
		if item.slot == nil {
			builder.WriteString(item.text)
			continue
		}
		literal, err := policy.Render(rows[item.slot.row][item.slot.column])
		if err != nil {
			return "", errx.LiteralRender("", "", s.columns[item.slot.column], 0, err)
		}
		builder.WriteString(literal)
	}
	return builder.String(), nil
}

//Dialect returns statement dialect
func (s *Statement) Dialect() *info.Dialect {
	return s.dialect
}
