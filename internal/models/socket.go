package models

import (
	"encoding/json"

	"github.com/gorilla/websocket"
)

type SocketClient struct {
	Conn   *websocket.Conn
	UserId uint
}

// SocketWhiteboardHub groups the sockets of this instance by whiteboard.
type SocketWhiteboardHub struct {
	Whiteboards map[uint][]*SocketClient
}

// WhiteboardSocketEvent travels over redis and is forwarded unchanged to
// every socket watching WhiteboardID.
type WhiteboardSocketEvent struct {
	Event        string          `json:"event"`
	WhiteboardID uint            `json:"whiteboard_id"`
	Payload      json.RawMessage `json:"payload"`
}

type NodeUpdatedPayload struct {
	RunID string `json:"run_id"`
	Node  Node   `json:"node"`
}

type ExecutionStartedPayload struct {
	RunID       string `json:"run_id"`
	StartNodeID string `json:"start_node_id"`
}
