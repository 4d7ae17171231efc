package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/assignment"
	"github.com/trezcool/langcenter/core/attendance"
	"github.com/trezcool/langcenter/core/certificate"
	"github.com/trezcool/langcenter/core/class"
	"github.com/trezcool/langcenter/core/course"
	"github.com/trezcool/langcenter/core/finance"
	"github.com/trezcool/langcenter/core/material"
	"github.com/trezcool/langcenter/core/schedule"
	"github.com/trezcool/langcenter/core/user"
	"github.com/trezcool/langcenter/services/spreadsheet"
)

type (
	Deps struct {
		Conf           *core.Config
		Logger         core.Logger
		Translator     ut.Translator
		UserSvc        *user.Service
		CourseSvc      *course.Service
		ClassSvc       *class.Service
		FinanceSvc     *finance.Service
		ScheduleSvc    *schedule.Service
		CertificateSvc *certificate.Service
		AssignmentSvc  *assignment.Service
		AttendanceSvc  *attendance.Service
		MaterialSvc    *material.Service
		Importer       *spreadsheet.UserImporter
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps     Deps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps Deps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	registerUserAPI(v1, s.deps.UserSvc, s.deps.Importer)
	registerCourseAPI(v1, s.deps.CourseSvc)
	registerClassAPI(v1, s.deps.ClassSvc)
	registerFinanceAPI(v1, s.deps.FinanceSvc)
	registerScheduleAPI(v1, s.deps.ScheduleSvc)
	registerCertificateAPI(v1, s.deps.CertificateSvc)
	registerAssignmentAPI(v1, s.deps.AssignmentSvc)
	registerAttendanceAPI(v1, s.deps.AttendanceSvc)
	registerMaterialAPI(v1, s.deps.MaterialSvc)
	registerPortalAPI(v1, s.deps)
	registerDashboardAPI(v1, s.deps)
}

// Start listens until the server is shut down. It also relays SIGINT and SIGTERM to ShutdownSignal.
func (s *server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}
