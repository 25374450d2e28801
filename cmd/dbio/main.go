package main

import (
	"fmt"
	"os"

	"github.com/viant/dbio/internal/cli"
	_ "github.com/viant/dbio/metadata/product/mysql"
	_ "github.com/viant/dbio/metadata/product/pg"
	_ "github.com/viant/dbio/metadata/product/sqlite"
	_ "github.com/viant/dbio/metadata/product/sqlserver"
	_ "github.com/viant/dbio/metadata/product/vertica"
)

func main() {
	if err := cli.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
