package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"nodeBoard/internal/enums"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/models"
	"nodeBoard/internal/msgs"
	"nodeBoard/internal/services"
	"nodeBoard/internal/utils"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

const socketWriteTimeout = 10 * time.Second

// SocketWhiteboardHandler streams whiteboard events to the owner's open
// sockets. Events arrive through redis so any instance can publish them.
type SocketWhiteboardHandler struct {
	mu                sync.Mutex
	upgrader          websocket.Upgrader
	hub               *models.SocketWhiteboardHub
	redis             *redis.Client
	whiteboardService *services.WhiteboardService
	jwtKey            []byte
}

func NewSocketWhiteboardHandler(redis *redis.Client, whiteboardService *services.WhiteboardService, jwtKey []byte) *SocketWhiteboardHandler {
	return &SocketWhiteboardHandler{
		redis:             redis,
		whiteboardService: whiteboardService,
		jwtKey:            jwtKey,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		hub: &models.SocketWhiteboardHub{
			Whiteboards: make(map[uint][]*models.SocketClient),
		},
	}
}

func (swh *SocketWhiteboardHandler) HandleSocketWhiteboardRoute(ctx *gin.Context) {
	userInfo, err := swh.authorize(ctx)
	if err != nil {
		abortWithStatus(ctx, http.StatusUnauthorized, msgs.MsgYouMustLoginFirst, errs.ErrUnauthorized)
		return
	}

	whiteboardId, err := swh.getWhiteboardIdFromQuery(ctx)
	if err != nil {
		abortWithErrors(ctx, errs.ErrInvalidWhiteboardId)
		return
	}

	if _, err := swh.whiteboardService.GetWhiteboard(userInfo.ID, whiteboardId); err != nil {
		abortWithErrors(ctx, err)
		return
	}

	swh.HandleConnections(ctx, userInfo, whiteboardId)
}

// authorize accepts the token from the Authorization header or, for
// browsers that cannot set headers on websockets, the token query param.
func (swh *SocketWhiteboardHandler) authorize(ctx *gin.Context) (*models.Claims, error) {
	jwtToken := utils.ExtractBearerToken(ctx.GetHeader("Authorization"))
	if jwtToken == "" {
		jwtToken = ctx.Query("token")
	}
	if jwtToken == "" {
		return nil, errs.ErrUnauthorized
	}
	userInfo, err := utils.VerifyToken(jwtToken, swh.jwtKey)
	if err != nil || userInfo.ID == 0 {
		return nil, errs.ErrUnauthorized
	}
	return userInfo, nil
}

func (swh *SocketWhiteboardHandler) getWhiteboardIdFromQuery(ctx *gin.Context) (uint, error) {
	whiteboardId, err := strconv.ParseUint(ctx.Query("whiteboardId"), 10, 64)
	if err != nil || whiteboardId == 0 {
		return 0, errs.ErrInvalidWhiteboardId
	}
	return uint(whiteboardId), nil
}

func (swh *SocketWhiteboardHandler) HandleConnections(ctx *gin.Context, userInfo *models.Claims, whiteboardId uint) {
	ws, err := swh.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		slog.Warn("failed to upgrade websocket", "error", err)
		return
	}

	client := &models.SocketClient{Conn: ws, UserId: userInfo.ID}
	swh.addClient(whiteboardId, client)
	defer func() {
		swh.removeClient(whiteboardId, client)
		if err := ws.Close(); err != nil {
			slog.Debug("error closing websocket", "error", err)
		}
	}()

	// Clients only listen; reading keeps control frames flowing and tells
	// us when the socket goes away.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("websocket closed unexpectedly", "whiteboard_id", whiteboardId, "user_id", userInfo.ID, "error", err)
			}
			return
		}
	}
}

func (swh *SocketWhiteboardHandler) addClient(whiteboardId uint, client *models.SocketClient) {
	swh.mu.Lock()
	defer swh.mu.Unlock()
	swh.hub.Whiteboards[whiteboardId] = append(swh.hub.Whiteboards[whiteboardId], client)
	slog.Debug("websocket joined", "whiteboard_id", whiteboardId, "user_id", client.UserId, "clients", len(swh.hub.Whiteboards[whiteboardId]))
}

func (swh *SocketWhiteboardHandler) removeClient(whiteboardId uint, client *models.SocketClient) {
	swh.mu.Lock()
	defer swh.mu.Unlock()
	swh.removeClientLocked(whiteboardId, client)
}

func (swh *SocketWhiteboardHandler) removeClientLocked(whiteboardId uint, client *models.SocketClient) {
	clients := swh.hub.Whiteboards[whiteboardId]
	for i, c := range clients {
		if c == client {
			swh.hub.Whiteboards[whiteboardId] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(swh.hub.Whiteboards[whiteboardId]) == 0 {
		delete(swh.hub.Whiteboards, whiteboardId)
	}
}

func (swh *SocketWhiteboardHandler) ClientCount(whiteboardId uint) int {
	swh.mu.Lock()
	defer swh.mu.Unlock()
	return len(swh.hub.Whiteboards[whiteboardId])
}

// HandleRedisMessages forwards every published whiteboard event to the
// local sockets until ctx is done.
func (swh *SocketWhiteboardHandler) HandleRedisMessages(ctx context.Context) error {
	pubsub := swh.redis.Subscribe(ctx, enums.REDIS_CHANNEL_WHITEBOARD)
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := swh.Dispatch([]byte(msg.Payload)); err != nil {
				slog.Warn("dropping malformed whiteboard event", "error", err)
			}
		}
	}
}

// Dispatch writes an encoded event to every socket of its whiteboard.
// Sockets that fail to write are closed and dropped.
func (swh *SocketWhiteboardHandler) Dispatch(message []byte) error {
	var event models.WhiteboardSocketEvent
	if err := json.Unmarshal(message, &event); err != nil {
		return err
	}

	swh.mu.Lock()
	defer swh.mu.Unlock()

	var failed []*models.SocketClient
	for _, client := range swh.hub.Whiteboards[event.WhiteboardID] {
		client.Conn.SetWriteDeadline(time.Now().Add(socketWriteTimeout))
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			slog.Warn("failed to write to websocket", "whiteboard_id", event.WhiteboardID, "user_id", client.UserId, "error", err)
			failed = append(failed, client)
		}
	}
	for _, client := range failed {
		client.Conn.Close()
		swh.removeClientLocked(event.WhiteboardID, client)
	}
	return nil
}

// CloseAll closes every socket; used on shutdown.
func (swh *SocketWhiteboardHandler) CloseAll() {
	swh.mu.Lock()
	defer swh.mu.Unlock()
	for whiteboardId, clients := range swh.hub.Whiteboards {
		for _, client := range clients {
			client.Conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second))
			client.Conn.Close()
		}
		delete(swh.hub.Whiteboards, whiteboardId)
	}
}
