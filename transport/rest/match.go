package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/chessball-backend/internal/repository"
)

type MatchHandler interface {
	GetMatch(ctx echo.Context) error
}

type matchHandler struct {
	logger  *slog.Logger
	matches matchUseCase
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewMatchHandler(logger *slog.Logger, matches matchUseCase) MatchHandler {
	return &matchHandler{
		logger:  logger,
		matches: matches,
	}
}

// GetMatch - returns the stored snapshot of a match.
func (that *matchHandler) GetMatch(ctx echo.Context) error {
	log := that.logger.With("method", "GetMatch")

	matchID := ctx.Param("id")

	match, err := that.matches.GetMatchByID(ctx.Request().Context(), matchID)
	if errors.Is(err, repository.ErrMatchNotFound) {
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: "match not found"})
	}

	if err != nil {
		log.Error("failed to get match", "matchID", matchID, "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}

	return ctx.JSON(http.StatusOK, match)
}
