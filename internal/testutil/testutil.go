// Package testutil builds fixture-seeded stores and HTTP apps for tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurant-hub/internal/audit"
	"restaurant-hub/internal/auth"
	"restaurant-hub/internal/config"
	"restaurant-hub/internal/database"
	"restaurant-hub/internal/logger"
	"restaurant-hub/internal/server"
	"restaurant-hub/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const JWTSecret = "test-secret-key-that-is-long-enough-123"

// Config returns a configuration pointing at a database private to one test.
func Config(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		HTTPPort:       "0",
		DatabaseDSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		JWTSecret:      JWTSecret,
		JWTTTL:         time.Hour,
		CORSOrigins:    "*",
		LoginErrorMode: config.LoginErrorGeneric,
		BcryptCost:     bcrypt.MinCost,
		LogLevel:       "error",
		LogFormat:      "text",
	}
}

// OpenDB opens a fresh fixture-seeded database and closes it when t ends.
func OpenDB(t *testing.T, cfg *config.Config) *gorm.DB {
	t.Helper()
	db, err := database.Open(cfg, logger.Discard())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func NewStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(OpenDB(t, Config(t)))
}

// App is an HTTP app over its own fixture store.
type App struct {
	*fiber.App
	Store  *store.Store
	Config *config.Config
	Tokens *auth.Tokens
	Audit  *audit.Service
}

func NewApp(t *testing.T) *App {
	t.Helper()
	return NewAppWithConfig(t, Config(t))
}

func NewAppWithConfig(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	db := OpenDB(t, cfg)
	a := &App{
		Store:  store.New(db),
		Config: cfg,
		Tokens: auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL),
		Audit:  audit.NewService(db),
	}
	a.App = server.New(server.Deps{
		Config: cfg,
		Store:  a.Store,
		Tokens: a.Tokens,
		Audit:  a.Audit,
		Log:    logger.Discard(),
	})
	return a
}

// Do sends a JSON request. token may be empty.
func (a *App) Do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.Send(t, req)
}

// Send runs a prepared request through the app.
func (a *App) Send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := a.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// Login signs in through the API and returns the bearer token.
func (a *App) Login(t *testing.T, code, email, password string) string {
	t.Helper()
	status, raw := a.Do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"restaurantCode": code,
		"email":          email,
		"password":       password,
	})
	require.Equal(t, http.StatusOK, status, string(raw))

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

// LoginItalian signs in as the Bella Italia owner.
func (a *App) LoginItalian(t *testing.T) string {
	return a.Login(t, "ITALIA123", "italian@example.com", "password123")
}

// LoginSushi signs in as the Sushi Paradise owner.
func (a *App) LoginSushi(t *testing.T) string {
	return a.Login(t, "SUSHI456", "sushi@example.com", "password123")
}

// Decode unmarshals raw into v.
func Decode(t *testing.T, raw []byte, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(strings.NewReader(string(raw))).Decode(v), string(raw))
}
