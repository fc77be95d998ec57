//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deskhive/deskhive/internal/api/handlers"
	"github.com/deskhive/deskhive/internal/domain"
	"github.com/deskhive/deskhive/internal/recommend"
	"github.com/deskhive/deskhive/internal/repository"
	"github.com/deskhive/deskhive/internal/server"
	"github.com/deskhive/deskhive/internal/service"
	"github.com/deskhive/deskhive/internal/testutil"
	"github.com/deskhive/deskhive/internal/text"
)

// DemoPassword is the password every e2e account is created with.
const DemoPassword = "password123"

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	PostgresC    *testutil.PostgresContainer
	Pool         *pgxpool.Pool
	ServerURL    string
	ServerCloser func()
	BinaryDir    string
	HTTPClient   *http.Client
}

// SetupE2EEnv creates a full E2E test environment with a database container and server
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	serverURL, serverCloser := startServer(t, pool, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		PostgresC:    pgC,
		Pool:         pool,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
	if e.BinaryDir != "" {
		os.RemoveAll(e.BinaryDir)
	}
}

// CreateUser inserts an account with the given role and returns it.
func (e *E2ETestEnv) CreateUser(role domain.Role) *domain.User {
	userRepo := repository.NewUserRepository(e.Pool)

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        fmt.Sprintf("%s-%s@example.com", role, uuid.NewString()[:8]),
		PasswordHash: service.HashPassword(DemoPassword),
		FullName:     "Тестовый Пользователь",
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := userRepo.Create(e.Ctx, user); err != nil {
		e.T.Fatalf("failed to create %s user: %v", role, err)
	}
	return user
}

// SeedKnowledge inserts a knowledge base item directly into the database.
func (e *E2ETestEnv) SeedKnowledge(problem, solution string, frequency int) *domain.KnowledgeItem {
	knowledgeRepo := repository.NewKnowledgeRepository(e.Pool)

	item := &domain.KnowledgeItem{
		ID:        uuid.NewString(),
		Problem:   problem,
		Solution:  solution,
		Frequency: frequency,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := knowledgeRepo.Insert(e.Ctx, item); err != nil {
		e.T.Fatalf("failed to seed knowledge item: %v", err)
	}
	return item
}

// BuildBinaries builds the deskhive and deskhived binaries
func (e *E2ETestEnv) BuildBinaries() {
	tmpDir, err := os.MkdirTemp("", "deskhive-e2e-*")
	if err != nil {
		e.T.Fatalf("failed to create temp dir: %v", err)
	}
	e.BinaryDir = tmpDir

	cmd := exec.Command("go", "build", "-o", filepath.Join(tmpDir, "deskhived"), "./cmd/deskhived")
	cmd.Dir = "../.."
	if out, err := cmd.CombinedOutput(); err != nil {
		e.T.Fatalf("failed to build deskhived: %v\n%s", err, out)
	}

	cmd = exec.Command("go", "build", "-o", filepath.Join(tmpDir, "deskhive"), "./cmd/deskhive")
	cmd.Dir = "../.."
	if out, err := cmd.CombinedOutput(); err != nil {
		e.T.Fatalf("failed to build deskhive: %v\n%s", err, out)
	}
}

// RunDeskhive runs the deskhive CLI as the given user
func (e *E2ETestEnv) RunDeskhive(userID string, args ...string) (string, error) {
	cmd := exec.Command(filepath.Join(e.BinaryDir, "deskhive"), args...)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("DESKHIVE_USER_ID=%s", userID),
		fmt.Sprintf("DESKHIVE_API_URL=%s", e.ServerURL),
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// APIResponse represents a standard API response
type APIResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}

// Get performs a GET request as the given user
func (e *E2ETestEnv) Get(path, userID string) (*APIResponse, error) {
	return e.doRequest("GET", path, nil, userID)
}

// Post performs a POST request as the given user
func (e *E2ETestEnv) Post(path string, body interface{}, userID string) (*APIResponse, error) {
	return e.doRequest("POST", path, body, userID)
}

// Put performs a PUT request as the given user
func (e *E2ETestEnv) Put(path string, body interface{}, userID string) (*APIResponse, error) {
	return e.doRequest("PUT", path, body, userID)
}

func (e *E2ETestEnv) doRequest(method, path string, body interface{}, userID string) (*APIResponse, error) {
	url := e.ServerURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, apiResp.Error)
	}

	return &apiResp, nil
}

// startServer starts the HTTP server with the full service wiring
func startServer(t *testing.T, pool *pgxpool.Pool, port int) (string, func()) {
	ticketRepo := repository.NewTicketRepository(pool)
	knowledgeRepo := repository.NewKnowledgeRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	normalizer := text.NewNormalizer(
		text.StopWords(text.LanguageRussian),
		text.NewSnowballLemmatizer(text.LanguageRussian),
	)
	ranker := recommend.NewRanker(normalizer)

	ticketSvc := service.NewTicketService(ticketRepo, knowledgeRepo, txRunner, ranker, 100)
	knowledgeSvc := service.NewKnowledgeService(knowledgeRepo)
	authSvc := service.NewAuthService(userRepo)
	statsSvc := service.NewStatsService(ticketRepo, knowledgeRepo)

	cfg := server.RouterConfig{
		ActorResolver:    authSvc,
		AuthHandler:      handlers.NewAuthHandler(authSvc),
		TicketHandler:    handlers.NewTicketHandler(ticketSvc),
		KnowledgeHandler: handlers.NewKnowledgeHandler(knowledgeSvc),
		StatsHandler:     handlers.NewStatsHandler(statsSvc),
	}

	router := server.NewRouter(cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
