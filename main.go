package main

import (
	"context"
	"fmt"
	"os"

	"fjacquet/mes-comptes/cmd/add"
	"fjacquet/mes-comptes/cmd/categories"
	"fjacquet/mes-comptes/cmd/export"
	"fjacquet/mes-comptes/cmd/importer"
	"fjacquet/mes-comptes/cmd/migrate"
	"fjacquet/mes-comptes/cmd/root"
	"fjacquet/mes-comptes/cmd/show"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(show.Cmd)
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(importer.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(migrate.Cmd)
}

func main() {
	err := root.Cmd.ExecuteContext(context.Background())
	root.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
