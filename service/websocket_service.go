package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tieubaoca/mindmap-be/types"
)

const (
	wsReadLimit  = 512 * 1024
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
	wsWriteWait  = 10 * time.Second
)

// WebSocketService runs node chat over a websocket. Every chat frame is one
// SendMessage turn; the reply frame carries the ChatTurnResponse.
type WebSocketService struct {
	chat     ChatService
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewWebSocketService(chat ChatService, logger *slog.Logger) *WebSocketService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketService{
		chat: chat,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

func (s *WebSocketService) HandleNodeChat(w http.ResponseWriter, r *http.Request, nodeID string) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "node_id", nodeID, "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	ctx := r.Context()
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", "node_id", nodeID, "error", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsPongWait))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.writeError(conn, "invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketChat:
			if req.Payload == nil {
				s.writeError(conn, "missing payload")
				continue
			}
			useKnowledge := true
			if req.Payload.UseKnowledge != nil {
				useKnowledge = *req.Payload.UseKnowledge
			}
			turn, err := s.chat.SendMessage(ctx, nodeID, req.Payload.Message, useKnowledge)
			if err != nil {
				msg := "error processing message"
				if errors.Is(err, types.ErrInvalidInput) || errors.Is(err, types.ErrNotFound) {
					msg = err.Error()
				} else {
					s.logger.Error("node chat failed", "node_id", nodeID, "error", err)
				}
				s.writeError(conn, msg)
				continue
			}
			s.write(conn, types.WebSocketResponse{Type: types.TypeWebsocketChat, Payload: turn})
		case types.TypeWebsocketPing:
			s.write(conn, types.WebSocketResponse{Type: types.TypeWebsocketPong})
		default:
			s.writeError(conn, "invalid message type")
		}
	}
}

func (s *WebSocketService) write(conn *websocket.Conn, res types.WebSocketResponse) {
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(res); err != nil {
		s.logger.Warn("websocket write error", "error", err)
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	s.write(conn, types.WebSocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebSocketErrorResponse{Message: message},
	})
}
