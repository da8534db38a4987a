package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/recordkeeper/internal/logging"
	"github.com/dmitrijs2005/recordkeeper/internal/server/config"
	"github.com/dmitrijs2005/recordkeeper/internal/server/core"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recordkeeper/internal/server/services"
)

const testSecret = "test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newTestHandler() http.Handler {
	cfg := &config.Config{
		SecretKey:                    testSecret,
		AccessTokenValidityDuration:  15 * time.Minute,
		RefreshTokenValidityDuration: 24 * time.Hour,
	}
	m := repomanager.NewInMemoryRepositoryManager()
	svc := core.NewService(
		services.NewAccountService(m, cfg),
		services.NewRecordService(m.Records(m.Conn())),
	)
	srv := NewServer(":0", logging.NewJSONLogger(io.Discard), svc, testSecret)
	return srv.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func registerAndLogin(t *testing.T, h http.Handler) string {
	t.Helper()

	w, _ := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "alice", "email": "alice@example.com", "password": "Sup3r$ecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "alice", "password": "Sup3r$ecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	return tokens.AccessToken
}

func TestPing(t *testing.T) {
	h := newTestHandler()

	w, env := doJSON(t, h, http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestRegister_StatusCodes(t *testing.T) {
	h := newTestHandler()

	w, env := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "alice", "email": "alice@example.com", "password": "Sup3r$ecret",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	// duplicate username
	w, env = doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "alice", "email": "other@example.com", "password": "Sup3r$ecret",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	// invalid input
	w, _ = doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "ab", "email": "ab@example.com", "password": "Sup3r$ecret",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_MalformedBody(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_WrongCredentials(t *testing.T) {
	h := newTestHandler()
	registerAndLogin(t, h)

	w, env := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)

	w, _ = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "nobody", "password": "Sup3r$ecret",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired(t *testing.T) {
	h := newTestHandler()

	// no token at all
	w, _ := doJSON(t, h, http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// garbage token
	w, _ = doJSON(t, h, http.MethodGet, "/api/users", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecordCRUD(t *testing.T) {
	h := newTestHandler()
	token := registerAndLogin(t, h)

	w, env := doJSON(t, h, http.MethodPost, "/api/users", token, map[string]any{
		"name": "Kim", "email": "kim@example.com", "age": 25,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var rec struct {
		ID  int64 `json:"id"`
		Age int   `json:"age"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	require.Equal(t, int64(1), rec.ID)

	w, env = doJSON(t, h, http.MethodGet, "/api/users/1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, env = doJSON(t, h, http.MethodPut, "/api/users/1", token, map[string]any{"age": 26})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, 26, rec.Age)

	w, _ = doJSON(t, h, http.MethodDelete, "/api/users/1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, h, http.MethodGet, "/api/users/1", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordValidation(t *testing.T) {
	h := newTestHandler()
	token := registerAndLogin(t, h)

	w, _ := doJSON(t, h, http.MethodPost, "/api/users", token, map[string]any{
		"name": "Kim", "email": "kim@example.com", "age": 150,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/users/abc", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchAndStats(t *testing.T) {
	h := newTestHandler()
	token := registerAndLogin(t, h)

	for _, rec := range []map[string]any{
		{"name": "Kim Lee", "email": "kim@example.com", "age": 25},
		{"name": "Bob", "email": "bob@example.com", "age": 30},
		{"name": "Akim", "email": "akim@example.com", "age": 28},
	} {
		w, _ := doJSON(t, h, http.MethodPost, "/api/users", token, rec)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := doJSON(t, h, http.MethodGet, "/api/users/search/kim", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var found []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &found))
	assert.Len(t, found, 2)

	w, env = doJSON(t, h, http.MethodGet, "/api/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		Count      int     `json:"count"`
		AverageAge float64 `json:"average_age"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 27.7, stats.AverageAge)
}

func TestChangePasswordAndDeleteAccount(t *testing.T) {
	h := newTestHandler()
	token := registerAndLogin(t, h)

	w, _ := doJSON(t, h, http.MethodPost, "/api/auth/password", token, map[string]any{
		"old_password": "wrong", "new_password": "N3w$ecret!",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := doJSON(t, h, http.MethodPost, "/api/auth/password", token, map[string]any{
		"old_password": "Sup3r$ecret", "new_password": "N3w$ecret!",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "alice", "password": "N3w$ecret!",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, h, http.MethodDelete, "/api/auth/account", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "alice", "password": "N3w$ecret!",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
