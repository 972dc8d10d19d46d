package integration__test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/geocoder89/todohub/internal/auth"
	"github.com/geocoder89/todohub/internal/config"
	"github.com/geocoder89/todohub/internal/db"
	"github.com/geocoder89/todohub/internal/domain/todo"
	apphttp "github.com/geocoder89/todohub/internal/http"
	"github.com/geocoder89/todohub/internal/observability"
	"github.com/geocoder89/todohub/internal/repo/postgres"
	"github.com/geocoder89/todohub/internal/security"
	"github.com/geocoder89/todohub/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *pgxpool.Pool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping postgres integration test")
	}

	ctx := context.Background()
	if err := db.Migrate(ctx, dsn, "up"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pool, err := db.NewPool(dsn, 4)
	if err != nil {
		t.Fatalf("Failed to create pgx pool: %v", err)
	}
	t.Cleanup(pool.Close)

	resetDB(t, pool)

	cfg := config.Config{
		Env:          "test",
		JWTSecret:    "test-secret-key",
		JWTAccessTTL: 15 * time.Minute,
		MaxBodyBytes: 1 << 20,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	prom := observability.NewProm(prometheus.NewRegistry())

	users := postgres.NewUsersRepo(pool, prom)
	todos := postgres.NewTodosRepo(pool, prom)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTAccessTTL)

	router := apphttp.NewRouter(logger, cfg, apphttp.Deps{
		Auth:    services.NewAuthService(users, security.NewHasher(bcrypt.MinCost), tokens, prom),
		Users:   services.NewUserService(users),
		Todos:   services.NewTodoService(todos),
		Tokens:  tokens,
		Store:   users,
		Metrics: prom,
	})

	return router, pool
}

func resetDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		TRUNCATE todos, users
		RESTART IDENTITY CASCADE
	`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: got status %d, body=%s", w.Code, w.Body.String())
	}

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &tok); err != nil {
		t.Fatalf("unmarshal token: %v", err)
	}
	return tok.AccessToken
}

func TestPostgres_EndToEnd(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/signup", "", `{"email":"a@b.com","password":"Pw123456"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: got status %d, want %d, body=%s", w.Code, http.StatusCreated, w.Body.String())
	}

	token := login(t, r, "a@b.com", "Pw123456")

	w = doJSON(t, r, http.MethodPost, "/todos/", token, `{"title":"t1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got status %d, body=%s", w.Code, w.Body.String())
	}
	var created todo.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("id = %d, want 1", created.ID)
	}

	w = doJSON(t, r, http.MethodPatch, "/todos/1", token, `{"status":"completed"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"completed"`) {
		t.Fatalf("edit: got status %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"title":"t1"`) {
		t.Fatalf("edit dropped title: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/todos/1", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: got status %d, body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/todos/", token, "")
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("list after delete = %s", w.Body.String())
	}
}

func TestPostgres_ConcurrentSignupSameEmail(t *testing.T) {
	r, pool := setupTestRouter(t)

	const n = 8
	codes := make([]int, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := doJSON(t, r, http.MethodPost, "/auth/signup", "", `{"email":"race@b.com","password":"pw"}`)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, c := range codes {
		switch c {
		case http.StatusCreated:
			created++
		case http.StatusForbidden:
		default:
			t.Fatalf("unexpected status %d", c)
		}
	}
	if created != 1 {
		t.Fatalf("created = %d, want exactly 1", created)
	}

	var rows int
	if err := pool.QueryRow(context.Background(), `SELECT count(*) FROM users WHERE email = $1`, "race@b.com").Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows = %d, want 1", rows)
	}
}

func TestPostgres_ForeignTodoIsHidden(t *testing.T) {
	r, _ := setupTestRouter(t)

	for _, email := range []string{"alice@b.com", "bob@b.com"} {
		w := doJSON(t, r, http.MethodPost, "/auth/signup", "", `{"email":"`+email+`","password":"pw"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("signup %s: %d %s", email, w.Code, w.Body.String())
		}
	}
	alice := login(t, r, "alice@b.com", "pw")
	bob := login(t, r, "bob@b.com", "pw")

	w := doJSON(t, r, http.MethodPost, "/todos/", alice, `{"title":"secret"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}

	if w := doJSON(t, r, http.MethodGet, "/todos/1", bob, ""); strings.TrimSpace(w.Body.String()) != "null" {
		t.Fatalf("foreign read = %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodDelete, "/todos/1", bob, ""); w.Code != http.StatusForbidden {
		t.Fatalf("foreign delete = %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/todos/1", alice, ""); !strings.Contains(w.Body.String(), `"title":"secret"`) {
		t.Fatalf("owner read = %s", w.Body.String())
	}
}
