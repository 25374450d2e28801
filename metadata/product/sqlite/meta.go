package sqlite

import (
	_ "github.com/mattn/go-sqlite3"
	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/metadata/info"
	"github.com/viant/dbio/metadata/info/dialect"
)

const product = "sqlite3"

var sqLite3 = &info.Dialect{
	Name:        product,
	Placeholder: "?",
	Insert:      dialect.InsertWithMultiValues,
	Upsert:      dialect.UpsertUpdateOrInsert,
	MaxParams:   32766,
}

//Dialect returns SQLite dialect
func Dialect() *info.Dialect {
	return sqLite3
}

func init() {
	driver := connector.Driver{Name: "sqlite3", DSN: connector.FileDSN}
	connector.Register(&connector.Product{
		Name:          product,
		Aliases:       []string{"sqlite"},
		Cursor:        driver,
		Transactional: driver,
		VersionQuery:  "SELECT 'SQLite - ' || sqlite_version()",
		Dialect:       sqLite3,
	})
}
