package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ewanblake/aihub/core"
	"github.com/ewanblake/aihub/core/content"
	"github.com/ewanblake/aihub/core/quiz"
	"github.com/ewanblake/aihub/core/suggestion"
)

type (
	Deps struct {
		Conf          *core.Config
		Logger        core.Logger
		QuizSvc       *quiz.Service
		SuggestionSvc *suggestion.Service
		ContentSvc    *content.Service
		Validate      *validator.Validate
		Translator    ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		addr       string
		deps       *Deps
		app        *echo.Echo
		errCh      chan error
		shutdownCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(addr string, deps *Deps) Server {
	s := &server{
		addr:       addr,
		deps:       deps,
		app:        echo.New(),
		errCh:      make(chan error, 1),
		shutdownCh: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig(conf))

	registerQuizAPI(v1, s.deps.QuizSvc)
	registerSuggestionAPI(v1, s.deps.SuggestionSvc, s.deps.Validate)
	registerContentAPI(v1, jwt, s.deps.ContentSvc, s.deps.Validate)
	registerAuthAPI(v1, conf, s.deps.Validate)
}

func (s *server) Start() {
	signal.Notify(s.shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	s.errCh <- s.app.Start(s.addr)
}

func (s *server) Errors() <-chan error            { return s.errCh }
func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdownCh }

func (s *server) signalShutdown() {
	s.shutdownCh <- syscall.SIGTERM
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to AIHub API!")
}
