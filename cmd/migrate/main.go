package main

import (
	"fmt"

	"github.com/QuangTung97/eventstore/config"
	"github.com/QuangTung97/eventstore/pkg/migration"
)

func main() {
	conf := config.Load()
	dialect, err := conf.Database.Dialect()
	if err != nil {
		fmt.Println("[ERROR]", err)
		return
	}

	cmd := migration.MigrateCommand(dialect, conf.Database.MigrateURL())
	err = cmd.Execute()
	if err != nil {
		fmt.Println("[ERROR]", err)
	}
}
