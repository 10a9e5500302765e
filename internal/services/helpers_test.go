package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"nodeBoard/configs"
	"nodeBoard/internal/models"
	"nodeBoard/internal/repositories"
	"nodeBoard/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	config      *configs.Config
	authRepo    *repositories.AuthenticationRepository
	boardRepo   *repositories.WhiteboardRepository
	assetRepo   *repositories.AssetRepository
	creditRepo  *repositories.CreditRepository
	credits     *CreditService
	auth        *AuthenticationService
	files       *memoryFileManager
	fileService *FileManagerService
	publisher   *recordingPublisher
	whiteboards *WhiteboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	config, err := configs.Load("")
	require.NoError(t, err)

	env := &testEnv{
		db:         db,
		config:     config,
		authRepo:   repositories.NewAuthenticationRepository(db),
		boardRepo:  repositories.NewWhiteboardRepository(db),
		assetRepo:  repositories.NewAssetRepository(db),
		creditRepo: repositories.NewCreditRepository(db),
		files:      newMemoryFileManager(),
		publisher:  &recordingPublisher{},
	}
	env.credits = NewCreditService(env.creditRepo)
	env.auth = NewAuthenticationService(env.authRepo, env.credits, config)
	env.fileService = NewFileManagerService(env.files, env.assetRepo)
	env.whiteboards = NewWhiteboardService(env.boardRepo, env.assetRepo, env.fileService, env.publisher)
	return env
}

func (env *testEnv) register(t *testing.T, email string) *models.User {
	t.Helper()
	user, errs := env.auth.Register(&models.User{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     email,
		Password:  "password123",
	})
	require.Empty(t, errs)
	return user
}

type memoryFileManager struct {
	mu        sync.Mutex
	files     map[string][]byte
	failOn    map[string]bool
	uploadErr error
}

func newMemoryFileManager() *memoryFileManager {
	return &memoryFileManager{files: map[string][]byte{}, failOn: map[string]bool{}}
}

func (m *memoryFileManager) UploadFile(ctx context.Context, fileName string, file io.Reader, fileSize int64, contentType string) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[fileName] = data
	return fmt.Sprintf("http://files.local/%s", fileName), nil
}

func (m *memoryFileManager) DeleteFile(ctx context.Context, fileName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn[fileName] {
		return errors.New("storage unavailable")
	}
	delete(m.files, fileName)
	return nil
}

func (m *memoryFileManager) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) PublishWhiteboardEvent(ctx context.Context, whiteboardID uint, event string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, fmt.Sprintf("%d:%s", whiteboardID, event))
	return nil
}
