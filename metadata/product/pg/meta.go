package pg

import (
	_ "github.com/lib/pq"
	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/metadata/info"
	"github.com/viant/dbio/metadata/info/dialect"
	"github.com/viant/dbio/metadata/info/placeholder"
	"net/url"
)

const product = "postgres"

var pgSQL = &info.Dialect{
	Name:                product,
	Placeholder:         "$",
	PlaceholderResolver: &placeholder.NumberedGenerator{Prefix: "$"},
	Insert:              dialect.InsertWithMultiValues,
	//parameters in a MERGE source resolve to text, UPDATE then INSERT keeps column types
	Upsert:              dialect.UpsertUpdateOrInsert,
	MaxParams:           65535,
	TrueLiteral:         "TRUE",
	FalseLiteral:        "FALSE",
}

//Dialect returns PostgreSQL dialect
func Dialect() *info.Dialect {
	return pgSQL
}

func init() {
	driver := connector.Driver{Name: "postgres", DSN: connector.PathDatabaseDSN("postgres", url.Values{"sslmode": []string{"prefer"}})}
	connector.Register(&connector.Product{
		Name:          product,
		Aliases:       []string{"pg", "postgresql"},
		Cursor:        driver,
		Transactional: driver,
		VersionQuery:  "SELECT version()",
		Dialect:       pgSQL,
	})
}
