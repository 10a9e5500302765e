package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"nodeBoard/internal/handlers"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 15 * time.Second

type HttpServer struct {
	addr                    string
	router                  *gin.Engine
	restHandler             *handlers.RestHandler
	socketWhiteboardHandler *handlers.SocketWhiteboardHandler
}

func NewHttpServer(
	addr string,
	restHandler *handlers.RestHandler,
	socketWhiteboardHandler *handlers.SocketWhiteboardHandler,
) *HttpServer {
	hs := &HttpServer{
		addr:                    addr,
		restHandler:             restHandler,
		socketWhiteboardHandler: socketWhiteboardHandler,
	}
	hs.initializeGin()
	hs.setupRestfulRoutes()
	hs.setupWebSocketRoutes()
	return hs
}

// Router exposes the configured engine, mainly for tests.
func (hs *HttpServer) Router() *gin.Engine {
	return hs.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (hs *HttpServer) Run(ctx context.Context) error {
	if hs.socketWhiteboardHandler != nil {
		go func() {
			if err := hs.socketWhiteboardHandler.HandleRedisMessages(ctx); err != nil {
				slog.Error("whiteboard event subscription stopped", "error", err)
			}
		}()
	}

	server := &http.Server{
		Addr:              hs.addr,
		Handler:           hs.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server started", "addr", hs.addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	return hs.shutdown(server)
}

func (hs *HttpServer) initializeGin() {
	hs.router = gin.New()
	hs.router.Use(gin.Recovery(), handlers.RequestLogger())
}

func (hs *HttpServer) setupRestfulRoutes() {
	rh := hs.restHandler

	hs.router.GET("/health", rh.Health)
	hs.router.POST("/register", rh.Register)
	hs.router.POST("/login", rh.Login)
	hs.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authenticated := hs.router.Group("/", rh.MustAuthenticateMiddleware())
	{
		authenticated.GET("/me", rh.Me)

		authenticated.POST("/whiteboards", rh.CreateWhiteboard)
		authenticated.GET("/whiteboards", rh.GetWhiteboards)
		authenticated.GET("/whiteboards/:id", rh.GetWhiteboard)
		authenticated.PUT("/whiteboards/:id", rh.UpdateWhiteboard)
		authenticated.DELETE("/whiteboards/:id", rh.DeleteWhiteboard)
		authenticated.GET("/whiteboards/:id/assets", rh.GetWhiteboardAssets)
		authenticated.POST("/whiteboards/:id/execute", rh.RateLimitMiddleware("execute"), rh.ExecuteWhiteboard)

		authenticated.GET("/credits", rh.GetCredits)
		authenticated.GET("/credits/transactions", rh.GetCreditTransactions)

		authenticated.GET("/subscription", rh.GetSubscription)
		authenticated.POST("/subscription/sync", rh.SyncSubscription)
	}
}

func (hs *HttpServer) setupWebSocketRoutes() {
	if hs.socketWhiteboardHandler == nil {
		return
	}
	hs.router.GET("/ws/whiteboard", hs.socketWhiteboardHandler.HandleSocketWhiteboardRoute)
}

func (hs *HttpServer) shutdown(server *http.Server) error {
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown.
	if hs.socketWhiteboardHandler != nil {
		hs.socketWhiteboardHandler.CloseAll()
	}
	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	slog.Info("server exiting")
	return nil
}
