package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"nodeBoard/configs"
	"nodeBoard/internal/enums"
	"nodeBoard/internal/execution"
	"nodeBoard/internal/interfaces"
	"nodeBoard/internal/models"
	"nodeBoard/internal/repositories"
	"nodeBoard/internal/services"
	"nodeBoard/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	config      *configs.Config
	router      *gin.Engine
	handler     *RestHandler
	whiteboards *services.WhiteboardService
	credits     *services.CreditService
	limiter     *fakeLimiter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.SetupTestDB(t)
	config, err := configs.Load("")
	require.NoError(t, err)

	authRepo := repositories.NewAuthenticationRepository(db)
	boardRepo := repositories.NewWhiteboardRepository(db)
	assetRepo := repositories.NewAssetRepository(db)

	credits := services.NewCreditService(repositories.NewCreditRepository(db))
	auth := services.NewAuthenticationService(authRepo, credits, config)
	files := services.NewFileManagerService(nopFileManager{}, assetRepo)
	whiteboards := services.NewWhiteboardService(boardRepo, assetRepo, files, nil)
	subscriptions := services.NewSubscriptionService(repositories.NewSubscriptionRepository(db), authRepo, nil, config)
	engine := execution.NewEngine([]execution.Executor{rewriteExecutor{}}, credits)
	executions := services.NewExecutionService(boardRepo, engine, time.Minute)

	limiter := &fakeLimiter{allowed: true}
	handler := NewRestHandler(auth, whiteboards, executions, credits, subscriptions, limiter, config.JwtKey())

	router := gin.New()
	router.POST("/register", handler.Register)
	router.POST("/login", handler.Login)
	authenticated := router.Group("/", handler.MustAuthenticateMiddleware())
	authenticated.GET("/me", handler.Me)
	authenticated.POST("/whiteboards", handler.CreateWhiteboard)
	authenticated.GET("/whiteboards", handler.GetWhiteboards)
	authenticated.GET("/whiteboards/:id", handler.GetWhiteboard)
	authenticated.PUT("/whiteboards/:id", handler.UpdateWhiteboard)
	authenticated.DELETE("/whiteboards/:id", handler.DeleteWhiteboard)
	authenticated.GET("/whiteboards/:id/assets", handler.GetWhiteboardAssets)
	authenticated.POST("/whiteboards/:id/execute", handler.RateLimitMiddleware("execute"), handler.ExecuteWhiteboard)
	authenticated.GET("/credits", handler.GetCredits)
	authenticated.GET("/credits/transactions", handler.GetCreditTransactions)
	authenticated.GET("/subscription", handler.GetSubscription)
	authenticated.POST("/subscription/sync", handler.SyncSubscription)

	return &testServer{
		config:      config,
		router:      router,
		handler:     handler,
		whiteboards: whiteboards,
		credits:     credits,
		limiter:     limiter,
	}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var response apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response), rec.Body.String())
	return rec, response
}

// login registers email and returns the user id and a bearer token.
func (ts *testServer) login(t *testing.T, email string) (uint, string) {
	t.Helper()
	rec, _ := ts.do(t, http.MethodPost, "/register", "", gin.H{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      email,
		"password":   "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, response := ts.do(t, http.MethodPost, "/login", "", gin.H{"email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(response.Data, &login))
	return login.User.ID, login.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func sampleGraph() (models.Nodes, models.Edges) {
	return models.Nodes{
			{ID: "i1", Type: enums.NODE_TYPE_INSTRUCTION, Data: models.NodeData{Text: "shout"}},
			{ID: "t1", Type: enums.NODE_TYPE_TEXT, Data: models.NodeData{Text: "hello"}},
		}, models.Edges{
			{Source: "i1", Target: "t1"},
		}
}

// rewriteExecutor prefixes a text node that has an instruction input.
type rewriteExecutor struct{}

func (rewriteExecutor) Name() string       { return "rewrite" }
func (rewriteExecutor) CreditType() string { return enums.CREDIT_TYPE_TEXT }

func (rewriteExecutor) CanExecute(node *models.Node, inputs execution.Inputs) bool {
	return node.Type == enums.NODE_TYPE_TEXT && len(inputs.Instructions) > 0
}

func (rewriteExecutor) Execute(ctx context.Context, job *execution.Job) error {
	job.Node.Data.Text = "REWRITTEN: " + job.Node.Data.Text
	return nil
}

type nopFileManager struct{}

func (nopFileManager) UploadFile(ctx context.Context, fileName string, file io.Reader, fileSize int64, contentType string) (string, error) {
	return fmt.Sprintf("http://files.local/%s", fileName), nil
}

func (nopFileManager) DeleteFile(ctx context.Context, fileName string) error {
	return nil
}

type fakeLimiter struct {
	mu         sync.Mutex
	allowed    bool
	retryAfter time.Duration
	err        error
	keys       []string
}

var _ interfaces.RateLimiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
	return l.allowed, l.retryAfter, l.err
}
