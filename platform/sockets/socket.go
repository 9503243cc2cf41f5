package socket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/DedS3t/flarepoly-backend/app/models"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

var ErrNoGame = errors.New("game_id not passed")

// Lookup returns the current snapshot of a live game.
type Lookup func(ctx context.Context, gameID string) (models.Snapshot, error)

// Server pushes game snapshots to socket.io rooms named after the game id.
type Server struct {
	io     *socketio.Server
	lookup Lookup
	log    *logrus.Entry
}

type roomRequest struct {
	GameId string `json:"game_id"`
}

func parseRoom(jsonStr string) (string, error) {
	var req roomRequest
	if err := json.Unmarshal([]byte(jsonStr), &req); err != nil {
		return "", err
	}
	if req.GameId == "" {
		return "", ErrNoGame
	}
	return req.GameId, nil
}

func CreateSocketIOServer(lookup Lookup) (*Server, error) {
	server, err := socketio.NewServer(nil)
	if err != nil {
		return nil, err
	}
	s := &Server{io: server, lookup: lookup, log: logrus.WithField("component", "socket")}

	server.OnConnect("/", func(c socketio.Conn) error {
		c.SetContext("")
		return nil
	})

	server.OnEvent("/", "join-game", func(c socketio.Conn, jsonStr string) {
		id, err := parseRoom(jsonStr)
		if err != nil {
			c.Emit("error-message", err.Error())
			c.Emit("failed")
			return
		}
		snap, err := s.lookup(context.Background(), id)
		if err != nil {
			c.Emit("error-message", "Invalid game")
			c.Emit("failed")
			return
		}

		server.BroadcastToRoom("/", id, "player-join")
		c.Join(id)
		c.Emit("joined-game", strconv.Itoa(server.RoomLen("/", id)))
		s.emitState(c, snap)
		s.log.WithFields(logrus.Fields{"conn": c.ID(), "game": id}).Debug("joined room")
	})

	server.OnEvent("/", "leave-game", func(c socketio.Conn, jsonStr string) {
		id, err := parseRoom(jsonStr)
		if err != nil {
			return
		}
		c.Leave(id)
		server.BroadcastToRoom("/", id, "player-left")
	})

	server.OnEvent("/", "state", func(c socketio.Conn, jsonStr string) {
		id, err := parseRoom(jsonStr)
		if err != nil {
			c.Emit("error-message", err.Error())
			return
		}
		snap, err := s.lookup(context.Background(), id)
		if err != nil {
			c.Emit("error-message", "Invalid game")
			return
		}
		s.emitState(c, snap)
	})

	server.OnError("/", func(c socketio.Conn, e error) {
		s.log.WithError(e).Warn("socket error")
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		for _, room := range c.Rooms() {
			server.BroadcastToRoom("/", room, "player-left")
		}
		c.LeaveAll()
	})

	return s, nil
}

func (s *Server) emitState(c socketio.Conn, snap models.Snapshot) {
	raw, err := json.Marshal(snap)
	if err != nil {
		s.log.WithError(err).Error("encoding snapshot")
		return
	}
	c.Emit("state", string(raw))
}

// Publish broadcasts snap to everyone in the game's room.
func (s *Server) Publish(_ context.Context, snap models.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	s.io.BroadcastToRoom("/", snap.GameId, "state", string(raw))
	if snap.GameOver {
		s.io.BroadcastToRoom("/", snap.GameId, "game-over")
	}
	return nil
}

func (s *Server) Handler(origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
	})
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", s.io)
	return c.Handler(mux)
}

// ListenAndServe blocks serving socket.io on addr.
func (s *Server) ListenAndServe(addr string, origins []string) error {
	go s.io.Serve()
	defer s.io.Close()
	return http.ListenAndServe(addr, s.Handler(origins))
}

func (s *Server) Close() error {
	return s.io.Close()
}
