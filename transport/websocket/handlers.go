package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/chessball-backend/internal/entity"
)

const (
	actionConnect  = "connect"
	actionStart    = "match:start"
	actionState    = "match:state"
	actionSelect   = "match:select"
	actionMode     = "match:mode"
	actionDeselect = "match:deselect"
	actionCommit   = "match:commit"
	actionEnd      = "match:end"
	actionReset    = "match:reset"
)

const (
	errConnectFirst   = "connect first"
	errCoordRequired  = "coord is required"
	errModeRequired   = "mode is required"
	errInvalidMessage = "invalid message"
)

func (that *Server) handleConnect(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return conn.sendError(msg.Action, err.Error())
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.matches.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return conn.sendError(msg.Action, "failed to create a new player")
	}

	conn.bind(player.ID)

	payloadResp := Payload{Player: player}

	if player.MatchID != "" {
		match, matchErr := that.matches.GetMatch(ctx, player.ID)
		if matchErr != nil {
			log.Warn("failed to restore match", "playerID", player.ID, "error", matchErr)
		} else {
			payloadResp.Match = match
		}
	}

	log.Info("successfully connected player", "playerID", player.ID)

	if err = conn.send(msg.Action, payloadResp); err != nil {
		return err
	}

	that.resumeReset(ctx, conn, payloadResp.Match)

	return nil
}

func (that *Server) handleStart(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleStart")

	playerID, payloadReq, ok := that.requirePlayer(conn, msg)
	if !ok {
		return nil
	}

	goalTarget := that.options.GoalTarget
	if payloadReq.GoalTarget != 0 {
		goalTarget = payloadReq.GoalTarget
	}

	match, err := that.matches.StartMatch(ctx, playerID, goalTarget)
	if err != nil {
		log.Error("failed to start match", "playerID", playerID, "error", err)
		return conn.sendError(msg.Action, errorText(err))
	}

	return conn.send(msg.Action, Payload{Match: match})
}

func (that *Server) handleState(ctx context.Context, conn *connection, msg *Message) error {
	playerID, _, ok := that.requirePlayer(conn, msg)
	if !ok {
		return nil
	}

	match, err := that.matches.GetMatch(ctx, playerID)
	if err != nil {
		return conn.sendError(msg.Action, errorText(err))
	}

	destinations, err := that.matches.LegalDestinations(ctx, playerID)
	if err != nil {
		return conn.sendError(msg.Action, errorText(err))
	}

	if err = conn.send(msg.Action, Payload{Match: match, Destinations: destinations}); err != nil {
		return err
	}

	that.resumeReset(ctx, conn, match)

	return nil
}

func (that *Server) handleSelect(ctx context.Context, conn *connection, msg *Message) error {
	playerID, payloadReq, ok := that.requirePlayer(conn, msg)
	if !ok {
		return nil
	}

	if payloadReq.Coord == nil {
		return conn.sendError(msg.Action, errCoordRequired)
	}

	match, err := that.matches.Select(ctx, playerID, *payloadReq.Coord)
	if err != nil {
		return conn.sendError(msg.Action, errorText(err))
	}

	return that.sendWithDestinations(ctx, conn, msg.Action, playerID, match)
}

func (that *Server) handleMode(ctx context.Context, conn *connection, msg *Message) error {
	playerID, payloadReq, ok := that.requirePlayer(conn, msg)
	if !ok {
		return nil
	}

	if payloadReq.Mode == nil {
		return conn.sendError(msg.Action, errModeRequired)
	}

	match, err := that.matches.SetActionMode(ctx, playerID, *payloadReq.Mode)
	if err != nil {
		return conn.sendError(msg.Action, errorText(err))
	}

	return that.sendWithDestinations(ctx, conn, msg.Action, playerID, match)
}

func (that *Server) handleDeselect(ctx context.Context, conn *connection, msg *Message) error {
	playerID, _, ok := that.requirePlayer(conn, msg)
	if !ok {
		return nil
	}

	match, err := that.matches.Deselect(ctx, playerID)
	if err != nil {
		return conn.sendError(msg.Action, errorText(err))
	}

	return conn.send(msg.Action, Payload{Match: match})
}

func (that *Server) handleCommit(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleCommit")

	playerID, payloadReq, ok := that.requirePlayer(conn, msg)
	if !ok {
		return nil
	}

	if payloadReq.Coord == nil {
		return conn.sendError(msg.Action, errCoordRequired)
	}

	match, result, err := that.matches.Commit(ctx, playerID, *payloadReq.Coord)
	if err != nil {
		return conn.sendError(msg.Action, errorText(err))
	}

	payloadResp := Payload{Match: match, Result: newOutcome(result)}
	if result.ExtraMove {
		destinations, destErr := that.matches.LegalDestinations(ctx, playerID)
		if destErr != nil {
			return conn.sendError(msg.Action, errorText(destErr))
		}

		payloadResp.Destinations = destinations
	}

	if err = conn.send(msg.Action, payloadResp); err != nil {
		return err
	}

	if result.Goal {
		log.Info("goal, scheduling reset", "matchID", match.ID, "delay", that.options.ResetDelay)
		that.scheduleReset(ctx, conn, playerID)
	}

	return nil
}

func (that *Server) handleEnd(ctx context.Context, conn *connection, msg *Message) error {
	playerID, _, ok := that.requirePlayer(conn, msg)
	if !ok {
		return nil
	}

	match, err := that.matches.EndMatch(ctx, playerID)
	if err != nil {
		return conn.sendError(msg.Action, errorText(err))
	}

	return conn.send(msg.Action, Payload{Match: match})
}

// scheduleReset - pushes the restored formation once the settling delay is over.
// One reset is pending per player; scheduling again only retargets the push
// to the newest connection.
func (that *Server) scheduleReset(ctx context.Context, conn *connection, playerID string) {
	log := that.logger.With("method", "scheduleReset", "playerID", playerID)

	that.resetsMu.Lock()
	_, pending := that.resets[playerID]
	that.resets[playerID] = conn
	that.resetsMu.Unlock()

	if pending {
		return
	}

	time.AfterFunc(that.options.ResetDelay, func() {
		that.resetsMu.Lock()
		target := that.resets[playerID]
		delete(that.resets, playerID)
		that.resetsMu.Unlock()

		if ctx.Err() != nil {
			return
		}

		match, err := that.matches.ResetAfterGoal(ctx, playerID)
		if err != nil {
			log.Warn("failed to reset after goal", "error", err)
			return
		}

		if err = target.send(actionReset, Payload{Match: match}); err != nil {
			log.Error("failed to push reset", "error", err)
		}
	})
}

// resumeReset - a goal saved before a restart or disconnect still waits for
// its reset; schedule it again for the reconnected player.
func (that *Server) resumeReset(ctx context.Context, conn *connection, match *entity.Match) {
	if match == nil || !match.State.ResetPending {
		return
	}

	that.scheduleReset(ctx, conn, match.PlayerID)
}

func (that *Server) sendWithDestinations(
	ctx context.Context,
	conn *connection,
	action, playerID string,
	match *entity.Match,
) error {
	destinations, err := that.matches.LegalDestinations(ctx, playerID)
	if err != nil {
		return conn.sendError(action, errorText(err))
	}

	return conn.send(action, Payload{Match: match, Destinations: destinations})
}

// requirePlayer - decodes the payload of a match action and returns the
// player bound to the connection. On failure the client has been answered.
func (that *Server) requirePlayer(conn *connection, msg *Message) (string, Payload, bool) {
	log := that.logger.With("method", "requirePlayer")

	playerID := conn.player()
	if playerID == "" {
		if err := conn.sendError(msg.Action, errConnectFirst); err != nil {
			log.Error("failed to send error", "error", err)
		}

		return "", Payload{}, false
	}

	payloadReq, err := decodePayload(msg)
	if err != nil {
		if sendErr := conn.sendError(msg.Action, err.Error()); sendErr != nil {
			log.Error("failed to send error", "error", sendErr)
		}

		return "", Payload{}, false
	}

	return playerID, payloadReq, true
}

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return Payload{}, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}
