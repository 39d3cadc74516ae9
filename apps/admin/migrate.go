package main

import (
	"github.com/trezcool/goose"

	"github.com/trezcool/studysync/apps"
	appfs "github.com/trezcool/studysync/fs"
)

var gooseRunFunc = goose.RunFS // mockable

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return apps.NewArgumentError("migrate needs the postgres store")
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.db, appfs.FS, appfs.MigrationsDir, arguments...)
}
