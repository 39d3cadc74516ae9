package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // register the /debug/pprof handlers
	"os"

	"github.com/robfig/cron/v3"

	echoapi "github.com/trezcool/studysync/apps/api/echo"
	"github.com/trezcool/studysync/apps/shared"
	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/assignment"
	"github.com/trezcool/studysync/core/digest"
	appfs "github.com/trezcool/studysync/fs"
	emailsvc "github.com/trezcool/studysync/services/email"
	logsvc "github.com/trezcool/studysync/services/logger"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	defer logger.Close()

	// set up store
	store, err := shared.OpenStore(context.Background(), conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up %s store: %v", conf.Store, err), err)
	}
	defer func() {
		if err = store.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing store: %v", err), err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug || conf.SendgridAPIKey == "" {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	svcs := shared.NewServices(store, mailSvc, conf.Digest.Days)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q, store %q", conf.Build, store.Kind))
	defer logger.Info("Application stopped")

	translator := core.NewTranslator()
	validate := core.NewValidator(translator)
	assignment.InitValidators(validate, translator)

	if err = core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, conf.TestMode); err != nil {
		logger.Fatal(fmt.Sprintf("parsing email templates: %v", err), err)
	}

	// =========================================================================
	// Start Digest Job

	if conf.Digest.Schedule != "" {
		scheduler := cron.New()
		job := digest.Job{Service: svcs.Digest, Recipients: conf.Digest.Recipients, Logger: logger}
		if _, err = scheduler.AddJob(conf.Digest.Schedule, job); err != nil {
			logger.Fatal(fmt.Sprintf("scheduling digest %q: %v", conf.Digest.Schedule, err), err)
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("store").Set(store.Kind)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			Validate:      validate,
			Translator:    translator,
			CourseSvc:     svcs.Course,
			AssignmentSvc: svcs.Assignment,
			GradeSvc:      svcs.Grade,
			NoteSvc:       svcs.Note,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
