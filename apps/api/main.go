package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/fineduca/backend/apps/api/echo"
	"github.com/fineduca/backend/core"
	"github.com/fineduca/backend/core/chat"
	"github.com/fineduca/backend/core/course"
	"github.com/fineduca/backend/core/goal"
	"github.com/fineduca/backend/core/ledger"
	"github.com/fineduca/backend/core/profile"
	"github.com/fineduca/backend/core/progress"
	"github.com/fineduca/backend/core/session"
	"github.com/fineduca/backend/core/userdata"
	dummysvc "github.com/fineduca/backend/services/content/dummy"
	geminisvc "github.com/fineduca/backend/services/content/gemini"
	logsvc "github.com/fineduca/backend/services/logger"
	"github.com/fineduca/backend/storage/database"
	sqlxrepos "github.com/fineduca/backend/storage/database/sqlx"
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
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up services
	var (
		generator course.Generator
		imgGen    profile.ImageGenerator
		assistant chat.Assistant
	)
	if conf.Gemini.APIKey != "" {
		svc := geminisvc.NewService(conf, logger)
		generator, imgGen, assistant = svc, svc, svc
	} else {
		logger.Warn("no content API key configured; using canned content")
		svc := dummysvc.NewService()
		generator, imgGen, assistant = svc, svc, svc
	}

	profileSvc := profile.NewService(sqlxrepos.NewProfileRepository(db), imgGen, logger)
	pointsSvc := ledger.NewService(sqlxrepos.NewPointsRepository(db))
	catalog := course.NewCatalog(sqlxrepos.NewCourseRepository(db), generator)
	progressRepo := sqlxrepos.NewProgressRepository(db)

	sync := userdata.NewSynchronizer(userdata.Deps{
		Profiles:     profileSvc,
		Catalog:      catalog,
		ProgressRepo: progressRepo,
		Points:       pointsSvc,
		Goals:        goal.NewTracker(sqlxrepos.NewGoalRepository(db), pointsSvc, logger),
		Evaluator:    progress.NewEvaluator(progressRepo, pointsSvc, logger),
		Logger:       logger,
	})
	chatSvc := chat.NewService(assistant, logger)

	sessions := session.NewManager(conf.SecretKey)
	sessions.Subscribe(sync.HandleSessionEvent)
	sessions.Subscribe(func(evt session.Event, sess session.Session) {
		if evt == session.SignedOut {
			chatSvc.Reset(sess.UserID)
		}
	})

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:     conf,
		Logger:   logger,
		Sessions: sessions,
		Sync:     sync,
		Chat:     chatSvc,
		Profiles: profileSvc,
	})

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}

		// let background image backfills drain
		sync.Wait()
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
