package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandlerLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthHandler(t *testing.T, users *fakeUserService, jwt *fakeJWTService) *AuthHandler {
	t.Helper()
	h, err := NewAuthHandler(users, jwt, testHandlerLogger())
	require.NoError(t, err)
	return h
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates account and returns token pair", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserService()
		h := newAuthHandler(t, users, &fakeJWTService{})

		w := postJSON(t, h.Register, "/api/auth/register", RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "correct horse battery",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, "access-alice", resp.AccessToken)
		assert.Equal(t, "refresh-alice", resp.RefreshToken)
		assert.Contains(t, users.users, "alice")
	})

	t.Run("rejects duplicate username with 409", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserService()
		h := newAuthHandler(t, users, &fakeJWTService{})

		first := postJSON(t, h.Register, "/api/auth/register", RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "correct horse battery",
		})
		require.Equal(t, http.StatusCreated, first.Code)

		second := postJSON(t, h.Register, "/api/auth/register", RegisterRequest{
			Username: "alice",
			Email:    "other@example.com",
			Password: "correct horse battery",
		})
		assert.Equal(t, http.StatusConflict, second.Code)
	})

	t.Run("rejects invalid payload with 400", func(t *testing.T) {
		t.Parallel()
		h := newAuthHandler(t, newFakeUserService(), &fakeJWTService{})

		w := postJSON(t, h.Register, "/api/auth/register", RegisterRequest{
			Username: "alice",
			Email:    "not-an-email",
			Password: "correct horse battery",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects short password with 400", func(t *testing.T) {
		t.Parallel()
		h := newAuthHandler(t, newFakeUserService(), &fakeJWTService{})

		w := postJSON(t, h.Register, "/api/auth/register", RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed JSON with 400", func(t *testing.T) {
		t.Parallel()
		h := newAuthHandler(t, newFakeUserService(), &fakeJWTService{})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		h.Register(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	registered := func(t *testing.T) *fakeUserService {
		t.Helper()
		users := newFakeUserService()
		h := newAuthHandler(t, users, &fakeJWTService{})
		w := postJSON(t, h.Register, "/api/auth/register", RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "correct horse battery",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		return users
	}

	t.Run("returns token pair and records login", func(t *testing.T) {
		t.Parallel()
		users := registered(t)
		h := newAuthHandler(t, users, &fakeJWTService{})

		w := postJSON(t, h.Login, "/api/auth/login", LoginRequest{
			Username: "alice",
			Password: "correct horse battery",
		})

		require.Equal(t, http.StatusOK, w.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "access-alice", resp.AccessToken)
		assert.Equal(t, []string{"alice"}, users.logins, "successful login must be recorded")
	})

	t.Run("rejects wrong password with 401 and no login record", func(t *testing.T) {
		t.Parallel()
		users := registered(t)
		h := newAuthHandler(t, users, &fakeJWTService{})

		w := postJSON(t, h.Login, "/api/auth/login", LoginRequest{
			Username: "alice",
			Password: "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, users.logins)
	})

	t.Run("rejects unknown user with the same 401", func(t *testing.T) {
		t.Parallel()
		users := registered(t)
		h := newAuthHandler(t, users, &fakeJWTService{})

		wrongPass := postJSON(t, h.Login, "/api/auth/login", LoginRequest{
			Username: "alice", Password: "wrong",
		})
		unknown := postJSON(t, h.Login, "/api/auth/login", LoginRequest{
			Username: "nobody", Password: "whatever",
		})

		assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)

		var a, b ErrorResponseBody
		require.NoError(t, json.Unmarshal(wrongPass.Body.Bytes(), &a))
		require.NoError(t, json.Unmarshal(unknown.Body.Bytes(), &b))
		assert.Equal(t, a.Error, b.Error, "responses must not reveal whether the account exists")
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("exchanges a refresh token for a new pair", func(t *testing.T) {
		t.Parallel()
		h := newAuthHandler(t, newFakeUserService(), &fakeJWTService{})

		w := postJSON(t, h.RefreshToken, "/api/auth/refresh", RefreshTokenRequest{
			RefreshToken: "refresh-alice",
		})

		require.Equal(t, http.StatusOK, w.Code)
		var resp RefreshTokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "access-alice", resp.AccessToken)
		assert.Equal(t, "refresh-alice", resp.RefreshToken)
	})

	t.Run("rejects an invalid refresh token with 401", func(t *testing.T) {
		t.Parallel()
		h := newAuthHandler(t, newFakeUserService(), &fakeJWTService{})

		w := postJSON(t, h.RefreshToken, "/api/auth/refresh", RefreshTokenRequest{
			RefreshToken: "garbage",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// ErrorResponseBody mirrors the error payload for assertions.
type ErrorResponseBody struct {
	Error string `json:"error"`
}
