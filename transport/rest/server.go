package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/chessball-backend/internal/entity"
)

type matchUseCase interface {
	GetMatchByID(ctx context.Context, matchID string) (*entity.Match, error)
}

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
}

func New(logger *slog.Logger, matches matchUseCase) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 10 * time.Second
	e.Server.IdleTimeout = 30 * time.Second

	ping := NewPingHandler()
	match := NewMatchHandler(logger, matches)

	e.GET("/ping", ping.Ping)
	e.GET("/matches/:id", match.GetMatch)

	return &Server{
		logger: logger.With("component", "rest"),
		echo:   e,
	}
}

// Handler - the routed HTTP handler, exposed for tests.
func (that *Server) Handler() http.Handler {
	return that.echo
}

// Start - serves HTTP on port until Shutdown is called.
func (that *Server) Start(port string) error {
	if err := that.echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
