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

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/academics"
	"github.com/darasahq/darasa/core/account"
	"github.com/darasahq/darasa/core/assignment"
	"github.com/darasahq/darasa/core/board"
	"github.com/darasahq/darasa/core/exams"
	"github.com/darasahq/darasa/core/fees"
	"github.com/darasahq/darasa/core/history"
	"github.com/darasahq/darasa/core/student"
)

type (
	ServerDeps struct {
		Conf   *core.Config
		Logger core.Logger

		AccountSvc    *account.Service
		StudentSvc    *student.Service
		FeeSvc        *fees.Service
		AssignmentSvc *assignment.Service
		AcademicsSvc  *academics.Service
		BoardSvc      *board.Service
		ExamSvc       *exams.Service
		HistorySvc    *history.Service

		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
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

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := configureAuth(conf)

	registerAccountAPI(v1, jwt, s.deps.AccountSvc, s.deps.Validate)
	registerStudentAPI(v1, jwt, s.deps.StudentSvc, s.deps.FeeSvc, s.deps.Validate)
	registerFeesAPI(v1, jwt, s.deps.FeeSvc, s.deps.Validate)
	registerAssignmentAPI(v1, jwt, s.deps.AssignmentSvc, s.deps.Validate)
	registerAcademicsAPI(v1, jwt, s.deps.AcademicsSvc, s.deps.Validate)
	registerBoardAPI(v1, jwt, s.deps.BoardSvc, s.deps.Validate)
	registerExamsAPI(v1, jwt, s.deps.ExamSvc, s.deps.Validate)
	registerHistoryAPI(v1, jwt, s.deps.HistorySvc)
}

func (s *Server) Start() {
	s.errs <- s.app.Start(s.deps.Conf.Server.Addr)
}

func (s *Server) Errors() <-chan error {
	return s.errs
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Darasa API!")
}
