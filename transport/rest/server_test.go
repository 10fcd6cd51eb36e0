package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/chessball-backend/internal/entity"
	"github.com/rocketscienceinc/chessball-backend/internal/repository"
)

type stubMatches map[string]*entity.Match

func (that stubMatches) GetMatchByID(_ context.Context, matchID string) (*entity.Match, error) {
	if matchID == "broken" {
		return nil, errors.New("redis down")
	}

	match, ok := that[matchID]
	if !ok {
		return nil, fmt.Errorf("failed to get match: %w", repository.ErrMatchNotFound)
	}

	return match, nil
}

func newTestServer() *Server {
	matches := stubMatches{
		"M1": {ID: "M1", PlayerID: "p1", State: entity.NewMatchState(3)},
	}

	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), matches)
}

func TestServer_Ping(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestServer_GetMatch(t *testing.T) {
	t.Run("Existing match", func(t *testing.T) {
		// Given: a stored match
		server := newTestServer()

		// When: requesting it by id
		req := httptest.NewRequest(http.MethodGet, "/matches/M1", nil)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		// Then: the snapshot is returned as JSON
		require.Equal(t, http.StatusOK, rec.Code)

		var match entity.Match
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &match))
		assert.Equal(t, "M1", match.ID)
		assert.Equal(t, entity.InitialBoard(), match.State.Board)
		assert.Equal(t, entity.TeamA, match.State.CurrentTeam)
	})

	t.Run("Unknown match", func(t *testing.T) {
		server := newTestServer()

		req := httptest.NewRequest(http.MethodGet, "/matches/nope", nil)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"match not found"}`, rec.Body.String())
	})

	t.Run("Storage failure", func(t *testing.T) {
		server := newTestServer()

		req := httptest.NewRequest(http.MethodGet, "/matches/broken", nil)
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
