package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	echoapi "github.com/ewanblake/aihub/apps/api/echo"
	"github.com/ewanblake/aihub/core"
	"github.com/ewanblake/aihub/core/content"
	"github.com/ewanblake/aihub/core/quiz"
	"github.com/ewanblake/aihub/core/suggestion"
	emailsvc "github.com/ewanblake/aihub/services/email"
	logsvc "github.com/ewanblake/aihub/services/logger"
	"github.com/ewanblake/aihub/storage/database"
	sqlxrepos "github.com/ewanblake/aihub/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := newLogger("API : ", conf)
	dbLogger := newLogger("DB : ", conf)

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
	mailSvc := newMailService(conf, logger)
	quizSvc := quiz.NewService(quiz.DefaultQuiz(), quiz.NewSessionStore())
	suggestionSvc := suggestion.NewService(conf, mailSvc, logger)
	contentSvc := content.NewService(sqlxrepos.NewContentRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()
	suggestion.InitValidators(validate, translator)
	content.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		conf.Server.Addr(),
		&echoapi.Deps{
			Conf:          conf,
			Logger:        logger,
			QuizSvc:       quizSvc,
			SuggestionSvc: suggestionSvc,
			ContentSvc:    contentSvc,
			Validate:      validate,
			Translator:    translator,
		},
	)

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
	}
}

func newLogger(prefix string, conf *core.Config) core.Logger {
	std := log.New(os.Stdout, prefix, log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if conf.Debug || conf.RollbarToken == "" {
		return logsvc.NewStdLogger(std)
	}
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)
	return logger
}

// newMailService picks the dispatch transport. Suggestions go out over plain
// SMTP by default; Sendgrid is opt-in and the console backend is used in
// development so no real mail leaves the machine.
func newMailService(conf *core.Config, logger core.Logger) core.EmailService {
	switch conf.MailBackend {
	case "smtp":
		return emailsvc.NewSMTPService(conf, logger)
	case "sendgrid":
		return emailsvc.NewSendgridService(conf, logger)
	case "console":
		return emailsvc.NewConsoleService(conf)
	}
	if conf.Debug {
		return emailsvc.NewConsoleService(conf)
	}
	return emailsvc.NewSMTPService(conf, logger)
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
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
