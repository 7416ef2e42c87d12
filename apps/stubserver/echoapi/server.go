// Package echoapi is a development stand-in for the campus backend. It
// serves the same routes and the same {"detail": ...} error envelope on top
// of the in-memory store, so the client can be exercised without the real
// deployment.
package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/gateway/inmem"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Store          *inmem.Store
		Conf           *core.Config
		Logger         core.Logger
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	if !s.opts.Conf.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.opts.Logger)
	s.app.Debug = s.opts.Conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/api/v1")
	registerAuthAPI(v1, s.opts)
	registerAPI(v1, s.opts)
}

func home(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Start blocks until the server stops. A graceful Stop surfaces as a
// shutdown error so the caller can tell it apart from a serve failure.
func (s *server) Start() error {
	if err := s.app.Start(s.opts.Address); err != http.ErrServerClosed {
		return errors.Wrap(err, "stub server")
	}
	return core.NewShutdownError("stub server closed")
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
