package dataset

import (
	"fmt"
	"sort"
	"strings"
)

//SameRows returns true if both datasets have the same columns and the same multiset of rows.
//Values are compared by their normalised textual form, so int(1) and int64(1) match.
func (d *Dataset) SameRows(other *Dataset) bool {
	if d.Width() != other.Width() || d.Len() != other.Len() {
		return false
	}
	for i, column := range d.Columns {
		if other.Columns[i] != column {
			return false
		}
	}
	expect := d.rowKeys()
	actual := other.rowKeys()
	for i := range expect {
		if expect[i] != actual[i] {
			return false
		}
	}
	return true
}

func (d *Dataset) rowKeys() []string {
	var result = make([]string, len(d.Rows))
	for i := range d.Rows {
		row := d.Row(i)
		values := make([]string, len(row))
		for j, value := range row {
			if value == nil {
				values[j] = "<nil>"
				continue
			}
			if raw, ok := value.([]byte); ok {
				value = string(raw)
			}
			values[j] = fmt.Sprintf("%v", value)
		}
		result[i] = strings.Join(values, "\x1f")
	}
	sort.Strings(result)
	return result
}
