package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JaimeStill/printmg/internal/config"
	"github.com/JaimeStill/printmg/internal/sandbox"
	"github.com/JaimeStill/printmg/internal/server"
	"github.com/JaimeStill/printmg/pkg/logging"
)

// Server coordinates the lifecycle of the sandbox subsystems.
type Server struct {
	runtime *Runtime
	http    server.System
}

// NewServer creates the sandbox application and its HTTP server.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg.Logging.Level != logging.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	rt, err := NewRuntime(cfg)
	if err != nil {
		return nil, err
	}

	app, err := sandbox.New(&cfg.Sandbox, &cfg.Upload, rt.Storage, rt.Logger)
	if err != nil {
		return nil, err
	}

	rt.Logger.Info(
		"sandbox initialized",
		"addr", cfg.Sandbox.Addr(),
		"routes", len(app.Routes()),
		"admin", sandbox.AdminEmail,
		"user", sandbox.UserEmail,
	)
	for _, route := range app.Routes() {
		rt.Logger.Debug("route registered", "route", route)
	}

	return &Server{
		runtime: rt,
		http:    server.New(&cfg.Sandbox, app.Handler(), rt.Logger),
	}, nil
}

// Start begins all subsystems and returns once the listener is bound.
func (s *Server) Start() error {
	s.runtime.Logger.Info("starting sandbox")

	if err := s.runtime.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.runtime.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.runtime.Lifecycle.WaitForStartup()
		s.runtime.Logger.Info("all subsystems ready", "addr", s.http.Addr())
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.runtime.Logger.Info("initiating shutdown")
	return s.runtime.Lifecycle.Shutdown(timeout)
}
