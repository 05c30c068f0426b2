// Package server assembles the HTTP surface of the bot.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/chatme-bot/chatme/internal/profile"
	"github.com/chatme-bot/chatme/plugin/ai"
	"github.com/chatme-bot/chatme/plugin/ai/router"
	apiv1 "github.com/chatme-bot/chatme/server/router/api/v1"
	reminderservice "github.com/chatme-bot/chatme/server/service/reminder"
	"github.com/chatme-bot/chatme/store"
)

type Server struct {
	e *echo.Echo

	Profile *profile.Profile
	Store   *store.Store
}

// NewServer builds the echo server and mounts the API.
func NewServer(_ context.Context, profile *profile.Profile, st *store.Store, reminder *reminderservice.Service, routerService router.RouterService, llm ai.LLMService) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(requestLogger)

	s := &Server{
		e:       e,
		Profile: profile,
		Store:   st,
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": profile.Version,
		})
	})

	apiv1.NewAPIV1Service(profile, st, reminder, routerService, llm).Register(e)

	return s, nil
}

// Start begins serving and blocks until the listener fails or the context
// is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server listening", "addr", addr, "mode", s.Profile.Mode)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "server failed")
		}
		return nil
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.e.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "failed to shut down server")
	}
	slog.Info("server stopped")
	return nil
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		slog.Info("http request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"latency", time.Since(start),
		)
		return err
	}
}
