package vertica

import (
	_ "github.com/vertica/vertica-sql-go"
	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/metadata/info"
	"github.com/viant/dbio/metadata/info/dialect"
)

const product = "vertica"

var vertica = &info.Dialect{
	Name:         product,
	Placeholder:  "?",
	Insert:       dialect.InsertWithMultiValues,
	Upsert:       dialect.UpsertMerge | dialect.UpsertMergeMatchedFirst | dialect.UpsertMergeSelectSource,
	TrueLiteral:  "TRUE",
	FalseLiteral: "FALSE",
}

//Dialect returns Vertica dialect
func Dialect() *info.Dialect {
	return vertica
}

func init() {
	driver := connector.Driver{Name: "vertica", DSN: connector.PathDatabaseDSN("vertica", nil)}
	connector.Register(&connector.Product{
		Name:          product,
		Cursor:        driver,
		Transactional: driver,
		VersionQuery:  "SELECT version()",
		Dialect:       vertica,
	})
}
