package main

import (
	"context"
	"log"
	"os"

	"github.com/trezcool/studysync/apps/shared"
	"github.com/trezcool/studysync/core"
	appfs "github.com/trezcool/studysync/fs"
	emailsvc "github.com/trezcool/studysync/services/email"
	logsvc "github.com/trezcool/studysync/services/logger"
	"github.com/trezcool/studysync/storage/database"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	// set up store; postgres is opened without migrating so that `migrate` stays in control
	var store *shared.Store
	var err error
	if conf.Store == core.StorePostgres {
		db, oErr := database.Open(conf)
		if oErr != nil {
			logger.Fatal(oErr.Error(), oErr)
		}
		if err = database.StatusCheck(context.Background(), db); err != nil {
			logger.Fatal(err.Error(), err)
		}
		store = shared.NewPostgresStore(db)
	} else if store, err = shared.OpenStore(context.Background(), conf); err != nil {
		logger.Fatal(err.Error(), err)
	}

	var mailer core.EmailService
	if conf.Debug || conf.SendgridAPIKey == "" {
		mailer = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailer = emailsvc.NewSendgridService(conf, logger)
	}
	if err = core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, false); err != nil {
		logger.Fatal(err.Error(), err)
	}

	// start CLI
	cli := commandLine{
		conf:   conf,
		db:     store.DB,
		store:  store,
		svcs:   shared.NewServices(store, mailer, conf.Digest.Days),
		mailer: mailer,
		out:    os.Stdout,
	}
	err = cli.run(os.Args)
	_ = store.Close()
	logger.Close()
	if err != nil {
		if err != errHelp {
			log.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
