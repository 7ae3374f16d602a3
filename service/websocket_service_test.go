package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/mindmap-be/types"
)

type wsFrame struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

func dialNodeChat(t *testing.T, ws *WebSocketService, nodeID string) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.HandleNodeChat(w, r, nodeID)
	}))
	t.Cleanup(server.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketService_PingAndChat(t *testing.T) {
	_, chat, node := newChatFixture(t, nil)
	conn := dialNodeChat(t, NewWebSocketService(chat, nil), node.ID)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": types.TypeWebsocketPing}))
	var frame wsFrame
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, types.TypeWebsocketPong, frame.Type)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":    types.TypeWebsocketChat,
		"payload": map[string]any{"message": "break it down", "use_knowledge": false},
	}))
	frame = wsFrame{}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, types.TypeWebsocketChat, frame.Type)

	ai := frame.Payload["ai_response"].(map[string]any)
	assert.Equal(t, breakdownTemplate, ai["message"])
	metadata := frame.Payload["metadata"].(map[string]any)
	assert.Equal(t, false, metadata["knowledge_used"])
}

func TestWebSocketService_Errors(t *testing.T) {
	_, chat, _ := newChatFixture(t, nil)
	conn := dialNodeChat(t, NewWebSocketService(chat, nil), "missing")

	for _, msg := range []string{
		`not json`,
		`{"type":"dance"}`,
		`{"type":"chat"}`,
		`{"type":"chat","payload":{"message":"hello"}}`,
	} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
		var frame wsFrame
		require.NoError(t, conn.ReadJSON(&frame))
		assert.Equal(t, types.TypeWebsocketError, frame.Type, msg)
		assert.NotEmpty(t, frame.Payload["message"], msg)
	}
}
