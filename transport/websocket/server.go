package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/chessball-backend/internal/chessball"
	"github.com/rocketscienceinc/chessball-backend/internal/entity"
)

type matchUseCase interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)

	StartMatch(ctx context.Context, playerID string, goalTarget int) (*entity.Match, error)
	GetMatch(ctx context.Context, playerID string) (*entity.Match, error)

	Select(ctx context.Context, playerID string, coord entity.Coord) (*entity.Match, error)
	SetActionMode(ctx context.Context, playerID string, mode entity.ActionMode) (*entity.Match, error)
	Deselect(ctx context.Context, playerID string) (*entity.Match, error)
	LegalDestinations(ctx context.Context, playerID string) ([]entity.Coord, error)
	Commit(ctx context.Context, playerID string, coord entity.Coord) (*entity.Match, chessball.CommitResult, error)

	ResetAfterGoal(ctx context.Context, playerID string) (*entity.Match, error)
	EndMatch(ctx context.Context, playerID string) (*entity.Match, error)
}

// Options - match settings the transport applies on behalf of clients.
type Options struct {
	GoalTarget int
	ResetDelay time.Duration
}

type handlerFunc func(ctx context.Context, conn *connection, message *Message) error

type Server struct {
	logger  *slog.Logger
	matches matchUseCase
	options Options

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc

	// resetsMu guards resets: player id -> connection the reset is pushed to.
	resetsMu sync.Mutex
	resets   map[string]*connection
}

func New(logger *slog.Logger, matches matchUseCase, options Options) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		matches: matches,
		options: options,
		resets:  make(map[string]*connection),

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handlerFunc{
		actionConnect:  server.handleConnect,
		actionStart:    server.handleStart,
		actionState:    server.handleState,
		actionSelect:   server.handleSelect,
		actionMode:     server.handleMode,
		actionDeselect: server.handleDeselect,
		actionCommit:   server.handleCommit,
		actionEnd:      server.handleEnd,
	}

	return server
}

// Handler - the /ws route, exposed for tests.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it once ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	that.handleMessages(ctx, &connection{conn: conn})
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := conn.conn.ReadJSON(&message); err != nil {
			if isMalformed(err) {
				log.Warn("failed to unmarshal message", "error", err)

				if sendErr := conn.sendError(message.Action, errInvalidMessage); sendErr != nil {
					log.Error("failed to send error", "error", sendErr)
				}

				continue
			}

			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("connection closed", "playerID", conn.player(), "error", err)
			}

			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err := conn.sendError(message.Action, "unknown action"); err != nil {
				log.Error("failed to send error", "error", err)
			}

			continue
		}

		if err := handler(ctx, conn, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// isMalformed - the frame was read but its JSON is broken or mistyped;
// the connection itself is still usable.
func isMalformed(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
