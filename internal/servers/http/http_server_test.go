package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nodeBoard/configs"
	"nodeBoard/internal/execution"
	"nodeBoard/internal/handlers"
	"nodeBoard/internal/repositories"
	"nodeBoard/internal/services"
	"nodeBoard/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHttpServer(t *testing.T) *HttpServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.SetupTestDB(t)
	config, err := configs.Load("")
	require.NoError(t, err)

	authRepo := repositories.NewAuthenticationRepository(db)
	boardRepo := repositories.NewWhiteboardRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	credits := services.NewCreditService(repositories.NewCreditRepository(db))
	whiteboards := services.NewWhiteboardService(boardRepo, assetRepo, services.NewFileManagerService(nil, assetRepo), nil)

	restHandler := handlers.NewRestHandler(
		services.NewAuthenticationService(authRepo, credits, config),
		whiteboards,
		services.NewExecutionService(boardRepo, execution.NewEngine(nil, credits), time.Minute),
		credits,
		services.NewSubscriptionService(repositories.NewSubscriptionRepository(db), authRepo, nil, config),
		nil,
		config.JwtKey(),
	)
	sockets := handlers.NewSocketWhiteboardHandler(nil, whiteboards, config.JwtKey())
	return NewHttpServer(":0", restHandler, sockets)
}

func TestHttpServer_Routes(t *testing.T) {
	hs := newTestHttpServer(t)

	registered := map[string]bool{}
	for _, route := range hs.Router().Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, route := range []string{
		"GET /health",
		"POST /register",
		"POST /login",
		"GET /me",
		"GET /whiteboards",
		"POST /whiteboards",
		"GET /whiteboards/:id",
		"PUT /whiteboards/:id",
		"DELETE /whiteboards/:id",
		"GET /whiteboards/:id/assets",
		"POST /whiteboards/:id/execute",
		"GET /credits",
		"GET /credits/transactions",
		"GET /subscription",
		"POST /subscription/sync",
		"GET /ws/whiteboard",
		"GET /swagger/*any",
	} {
		assert.True(t, registered[route], route)
	}
}

func TestHttpServer_HealthAndAuth(t *testing.T) {
	hs := newTestHttpServer(t)

	rec := httptest.NewRecorder()
	hs.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = httptest.NewRecorder()
	hs.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whiteboards", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
