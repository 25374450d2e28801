package info

import (
	"github.com/viant/dbio/metadata/database"
	"github.com/viant/dbio/metadata/info/dialect"
	"github.com/viant/dbio/metadata/info/placeholder"
)

//Dialect represents dialect
type Dialect struct {
	Name                string
	Product             database.Product
	Placeholder         string // prepare statement placeholder, default '?', postgres uses '$N'
	PlaceholderResolver placeholder.Generator
	Insert              dialect.InsertFeatures
	Upsert              dialect.UpsertFeatures
	// MergeSince is the minimum product major version supporting MERGE, 0 for any version
	MergeSince int
	// NullLiteral is rendered for NULL values in literal statements, default NULL
	NullLiteral string
	// TrueLiteral and FalseLiteral are rendered for booleans, default 1 and 0
	TrueLiteral  string
	FalseLiteral string
	// Terminator is appended to MERGE statements, SQL Server requires ';'
	Terminator string
	// MaxParams is the bound parameter limit of a single statement, 0 for unlimited
	MaxParams int
	// MaxRows is the row limit of a single VALUES list, 0 for unlimited
	MaxRows int
}

//BatchRows returns number of rows a single INSERT can carry for the supplied row and column counts
func (d *Dialect) BatchRows(rows, columns int) int {
	if !d.Insert.MultiValues() || rows < 1 {
		return 1
	}
	result := rows
	if d.MaxParams > 0 && columns > 0 && d.MaxParams/columns < result {
		result = d.MaxParams / columns
	}
	if d.MaxRows > 0 && d.MaxRows < result {
		result = d.MaxRows
	}
	if result < 1 {
		return 1
	}
	return result
}

//PlaceholderGetter returns PlaceholderResolver if not nil, otherwise returns function that returns Placeholder
func (d *Dialect) PlaceholderGetter() func() string {
	if d.PlaceholderResolver != nil {
		return d.PlaceholderResolver.Resolver()
	}
	if d.Placeholder != "" && d.Placeholder != placeholder.Default {
		value := d.Placeholder
		return func() string { return value }
	}
	return (&placeholder.DefaultGenerator{}).Resolver()
}

//PlaceholderStyle returns placeholder style name i.e. '?' or '$N'
func (d *Dialect) PlaceholderStyle() string {
	if d.PlaceholderResolver != nil {
		return d.PlaceholderResolver.Style()
	}
	if d.Placeholder == "" {
		return placeholder.Default
	}
	return d.Placeholder
}

//CanMerge returns true if dialect can run MERGE statement
func (d *Dialect) CanMerge() bool {
	return d.Upsert.Merge()
}

//ForVersion returns dialect adjusted to detected product version
func (d *Dialect) ForVersion(product *database.Product) *Dialect {
	result := *d
	if product == nil {
		return &result
	}
	result.Product = *product
	if d.Upsert.Merge() && d.MergeSince > 0 && product.Major > 0 && product.Major < d.MergeSince {
		result.Upsert = d.Upsert &^ dialect.UpsertMergeFeatures
	}
	return &result
}

//Null returns NULL literal
func (d *Dialect) Null() string {
	if d.NullLiteral == "" {
		return "NULL"
	}
	return d.NullLiteral
}

//Bool returns boolean literal
func (d *Dialect) Bool(value bool) string {
	if value {
		if d.TrueLiteral == "" {
			return "1"
		}
		return d.TrueLiteral
	}
	if d.FalseLiteral == "" {
		return "0"
	}
	return d.FalseLiteral
}

//EnsurePlaceholders converts '?' to specific dialect placeholders if needed, quoted sections are left intact
func (d *Dialect) EnsurePlaceholders(SQL string) string {
	if d.PlaceholderResolver == nil {
		return SQL
	}
	placeholders := indexPlaceholders(SQL)
	placeholderLen := len(placeholders)
	if placeholderLen == 0 {
		return SQL
	}
	var result = make([]byte, len(SQL)-placeholderLen+d.PlaceholderResolver.Len(0, placeholderLen))
	sqlPos := 0
	resultPos := 0
	getPlaceholder := d.PlaceholderGetter()
	for _, pos := range placeholders {
		fragment := SQL[sqlPos:pos]
		sqlPos = pos + 1
		resultPos += copy(result[resultPos:], fragment)
		aPlaceholder := getPlaceholder()
		resultPos += copy(result[resultPos:], aPlaceholder)
	}
	if sqlPos < len(SQL) {
		resultPos += copy(result[resultPos:], SQL[sqlPos:])
	}
	return string(result[:resultPos])
}

//indexPlaceholders returns positions of '?' outside quoted literals and identifiers
func indexPlaceholders(SQL string) []int {
	var indexes []int
	var quote byte
	for i := 0; i < len(SQL); i++ {
		c := SQL[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == placeholder.Default[0]:
			indexes = append(indexes, i)
		}
	}
	return indexes
}
