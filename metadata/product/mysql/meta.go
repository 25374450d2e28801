package mysql

import (
	"github.com/go-sql-driver/mysql"
	"github.com/viant/dbio/connector"
	"github.com/viant/dbio/metadata/info"
	"github.com/viant/dbio/metadata/info/dialect"
)

const product = "mysql"

var mySQL = &info.Dialect{
	Name:        product,
	Placeholder: "?",
	Insert:      dialect.InsertWithMultiValues,
	Upsert:      dialect.UpsertUpdateOrInsert,
	MaxParams:   65535,
}

//Dialect returns MySQL dialect
func Dialect() *info.Dialect {
	return mySQL
}

//DSN returns go-sql-driver data source name, matched rows are reported as affected
//so that UPDATE of an unchanged row is not followed by INSERT
func DSN(config *connector.Config) (string, error) {
	cfg := mysql.NewConfig()
	cfg.User = config.Username
	cfg.Passwd = config.Password
	cfg.Net = "tcp"
	cfg.Addr = config.Host()
	cfg.DBName = config.Database
	cfg.ClientFoundRows = true
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

func init() {
	driver := connector.Driver{Name: "mysql", DSN: DSN}
	connector.Register(&connector.Product{
		Name:          product,
		Aliases:       []string{"mariadb"},
		Cursor:        driver,
		Transactional: driver,
		VersionQuery:  "SELECT VERSION()",
		Dialect:       mySQL,
	})
}
