package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/chessball-backend/internal/apperror"
	"github.com/rocketscienceinc/chessball-backend/internal/chessball"
	"github.com/rocketscienceinc/chessball-backend/internal/entity"
	"github.com/rocketscienceinc/chessball-backend/internal/pkg"
	"github.com/rocketscienceinc/chessball-backend/internal/repository"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

// MatchManager - runs rule engine actions against persisted matches.
// Every action is load, apply, save under one lock, so two messages for
// the same match never interleave.
type MatchManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	matchRepo  matchRepo
	random     chessball.RandomSource

	mu sync.Mutex
}

func NewMatchManager(logger *slog.Logger, playerRepo playerRepo, matchRepo matchRepo, random chessball.RandomSource) *MatchManager {
	return &MatchManager{
		logger: logger.With("component", "match_manager"),

		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		random:     random,
	}
}

// GetOrCreatePlayer - returns the player with id, or a new one if id is empty.
func (that *MatchManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// StartMatch - starts a fresh match for the player, dropping any previous one.
func (that *MatchManager) StartMatch(ctx context.Context, playerID string, goalTarget int) (*entity.Match, error) {
	log := that.logger.With("method", "StartMatch", "playerID", playerID)

	that.mu.Lock()
	defer that.mu.Unlock()

	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	controller := chessball.NewController(that.random)
	if _, err = controller.StartMatch(goalTarget); err != nil {
		return nil, err
	}

	if player.MatchID != "" {
		that.deleteMatch(ctx, player.MatchID)
	}

	match := &entity.Match{
		ID:       pkg.GenerateMatchID(),
		PlayerID: player.ID,
		State:    controller.State(),
		Turn:     controller.Turn(),
	}

	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	player.MatchID = match.ID
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	log.Info("match started", "matchID", match.ID, "goalTarget", goalTarget)

	return match, nil
}

// GetMatch - returns the player's current match.
func (that *MatchManager) GetMatch(ctx context.Context, playerID string) (*entity.Match, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.loadMatch(ctx, playerID)
}

// GetMatchByID - returns a match by its own id.
func (that *MatchManager) GetMatchByID(ctx context.Context, matchID string) (*entity.Match, error) {
	match, err := that.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

func (that *MatchManager) Select(ctx context.Context, playerID string, coord entity.Coord) (*entity.Match, error) {
	return that.apply(ctx, playerID, "Select", func(controller *chessball.Controller) error {
		_, err := controller.Select(coord)
		return err
	})
}

func (that *MatchManager) SetActionMode(ctx context.Context, playerID string, mode entity.ActionMode) (*entity.Match, error) {
	return that.apply(ctx, playerID, "SetActionMode", func(controller *chessball.Controller) error {
		return controller.SetActionMode(mode)
	})
}

func (that *MatchManager) Deselect(ctx context.Context, playerID string) (*entity.Match, error) {
	return that.apply(ctx, playerID, "Deselect", func(controller *chessball.Controller) error {
		return controller.Deselect()
	})
}

// LegalDestinations - squares the current selection may be committed to.
func (that *MatchManager) LegalDestinations(ctx context.Context, playerID string) ([]entity.Coord, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	match, err := that.loadMatch(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return chessball.Restore(match.State, match.Turn, that.random).LegalDestinations(), nil
}

// Commit - commits the selection to coord and reports what happened.
func (that *MatchManager) Commit(ctx context.Context, playerID string, coord entity.Coord) (*entity.Match, chessball.CommitResult, error) {
	var result chessball.CommitResult

	match, err := that.apply(ctx, playerID, "Commit", func(controller *chessball.Controller) error {
		var commitErr error
		result, commitErr = controller.Commit(coord)
		return commitErr
	})
	if err != nil {
		return match, chessball.CommitResult{}, err
	}

	if result.Goal {
		that.logger.Info("goal scored",
			"matchID", match.ID,
			"scoreA", match.State.ScoreA,
			"scoreB", match.State.ScoreB,
			"status", match.State.Status,
		)
	}

	return match, result, nil
}

func (that *MatchManager) ResetAfterGoal(ctx context.Context, playerID string) (*entity.Match, error) {
	return that.apply(ctx, playerID, "ResetAfterGoal", func(controller *chessball.Controller) error {
		_, err := controller.ResetAfterGoal()
		return err
	})
}

// EndMatch - finishes the match early, e.g. when the host's clock runs out.
func (that *MatchManager) EndMatch(ctx context.Context, playerID string) (*entity.Match, error) {
	return that.apply(ctx, playerID, "EndMatch", func(controller *chessball.Controller) error {
		_, err := controller.EndMatch()
		return err
	})
}

// apply - restores the player's match, runs action on it and saves the
// result. A failed action leaves the stored match untouched.
func (that *MatchManager) apply(
	ctx context.Context,
	playerID, method string,
	action func(controller *chessball.Controller) error,
) (*entity.Match, error) {
	log := that.logger.With("method", method, "playerID", playerID)

	that.mu.Lock()
	defer that.mu.Unlock()

	match, err := that.loadMatch(ctx, playerID)
	if err != nil {
		return nil, err
	}

	controller := chessball.Restore(match.State, match.Turn, that.random)
	if err = action(controller); err != nil {
		log.Debug("action rejected", "matchID", match.ID, "error", err)
		return match, err
	}

	match.State = controller.State()
	match.Turn = controller.Turn()

	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	return match, nil
}

func (that *MatchManager) loadMatch(ctx context.Context, playerID string) (*entity.Match, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if player.MatchID == "" {
		return nil, fmt.Errorf("%w: player %s", apperror.ErrNoActiveMatch, playerID)
	}

	match, err := that.matchRepo.GetByID(ctx, player.MatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

func (that *MatchManager) deleteMatch(ctx context.Context, matchID string) {
	log := that.logger.With("method", "deleteMatch", "matchID", matchID)

	err := that.matchRepo.DeleteByID(ctx, matchID)
	if err != nil && !errors.Is(err, repository.ErrMatchNotFound) {
		log.Error("failed to delete match", "error", err)
		return
	}

	log.Info("previous match deleted")
}

func (that *MatchManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}
