package sqlserver

import (
	_ "github.com/alexbrainman/odbc"
	_ "github.com/denisenkom/go-mssqldb"
	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/metadata/info"
	"github.com/viant/dbio/metadata/info/dialect"
)

const product = "mssql"

var sqlServer = &info.Dialect{
	Name:        product,
	Placeholder: "?",
	Insert:      dialect.InsertWithMultiValues,
	Upsert:      dialect.UpsertMerge | dialect.UpsertMergeByTarget | dialect.UpsertUpdateOrInsert,
	MergeSince:  10, //SQL Server 2008
	MaxParams:   2100,
	MaxRows:     1000,
	Terminator:  ";",
}

//Dialect returns SQL Server dialect
func Dialect() *info.Dialect {
	return sqlServer
}

func init() {
	connector.Register(&connector.Product{
		Name:    product,
		Aliases: []string{"sqlserver", "mssql+pyodbc"},
		Cursor:  connector.Driver{Name: "odbc", DSN: connector.ConnectionStringDSN},
		//mssql driver name keeps positional '?' placeholders
		Transactional: connector.Driver{Name: "mssql", DSN: connector.QueryDatabaseDSN("sqlserver", "database")},
		VersionQuery:  "SELECT CAST(SERVERPROPERTY('ProductVersion') AS VARCHAR(128))",
		Dialect:       sqlServer,
	})
}
