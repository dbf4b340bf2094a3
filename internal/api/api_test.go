package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamehub/internal/api"
	"github.com/mcoot/gamehub/internal/api/apierr"
	"github.com/mcoot/gamehub/internal/api/handler"
	"github.com/mcoot/gamehub/internal/api/response"
	"github.com/mcoot/gamehub/internal/factory"
	"github.com/mcoot/gamehub/internal/services/launcher"
	"github.com/mcoot/gamehub/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	backend *testutil.FakeBackend
	cookies map[string]*http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := testutil.NopLogger()
	backend := testutil.NewFakeBackend(t)
	app := factory.NewTestApp(backend.URL(), logger)

	router := api.NewRouter(api.RouterConfig{
		Logger:    logger,
		Stores:    app.Stores,
		Storage:   app.Storage,
		SubmitTTL: 30 * time.Second,
	})

	return &testServer{
		t:       t,
		handler: router,
		app:     app,
		backend: backend,
		cookies: make(map[string]*http.Cookie),
	}
}

func (ts *testServer) request(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, c := range ts.cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(ts.cookies, c.Name)
		} else {
			ts.cookies[c.Name] = c
		}
	}
	return rr
}

func (ts *testServer) login(username string) {
	ts.t.Helper()
	email := username + "@example.com"
	ts.backend.AddUser(username, email, "secret1")
	rr := ts.request(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": email, "password": "secret1"})
	require.Equal(ts.t, http.StatusOK, rr.Code)
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Zero(t, ts.backend.RequestCount(http.MethodGet, "/api/games"))
}

func TestStateSignedOut(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/state", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.State
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Nil(t, resp.User)
	assert.Equal(t, "live", resp.Catalog)
	require.Len(t, resp.Games, 4)
	assert.Equal(t, "Snake Classic", resp.Games[0].Title)
}

func TestStateFallback(t *testing.T) {
	ts := newTestServer(t)
	ts.backend.Fail(http.MethodGet, "/api/games", http.StatusServiceUnavailable)

	var resp response.State
	rr := ts.request(http.MethodGet, "/api/v1/state", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "fallback", resp.Catalog)
	assert.Len(t, resp.Games, 4)
}

func TestLoginAndMe(t *testing.T) {
	ts := newTestServer(t)
	ts.login("alice")

	rr := ts.request(http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var user response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "alice", user.Username)
}

func TestMeWithoutSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeAuthRequired, decodeError(t, rr).Code)
}

func TestLoginInvalidBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
}

func TestLoginBadCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.backend.AddUser("alice", "alice@example.com", "secret1")

	rr := ts.request(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "alice@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	apiErr := decodeError(t, rr)
	assert.Equal(t, apierr.CodeAuthFailed, apiErr.Code)
	assert.Equal(t, "Invalid email or password!", apiErr.Message)
}

func TestLoginSuccessWithoutUserIsBadGateway(t *testing.T) {
	ts := newTestServer(t)
	ts.backend.Fail(http.MethodPost, "/api/auth/login", http.StatusOK)

	rr := ts.request(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "alice@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadGateway, rr.Code)

	apiErr := decodeError(t, rr)
	assert.Equal(t, apierr.CodeAuthFailed, apiErr.Code)
	assert.Equal(t, "Login failed", apiErr.Message)
}

func TestSignupValidation(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "bob", "email": "bob@example.com", "password": "abc", "confirm_password": "abc"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/signup", body)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	apiErr := decodeError(t, rr)
	assert.Equal(t, apierr.CodeValidationFailed, apiErr.Code)
	assert.Equal(t, "Password must be at least 6 characters", apiErr.Message)
	assert.Zero(t, ts.backend.RequestCount(http.MethodPost, "/api/auth/signup"))
}

func TestSignupCreated(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "bob", "email": "bob@example.com", "password": "secret1", "confirm_password": "secret1"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/signup", body)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "bob", resp.User.Username)
}

func TestSubmitTokenInFlight(t *testing.T) {
	ts := newTestServer(t)
	ok, err := ts.app.Storage.AcquireSubmit(t.Context(), "busy", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	rr := ts.request(http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "a@x.io", "password": "secret1"},
		handler.SubmitTokenHeader, "busy")

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeSubmitInFlight, decodeError(t, rr).Code)
	assert.Zero(t, ts.backend.RequestCount(http.MethodPost, "/api/auth/login"))
}

func TestPlayRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games/game1/play", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeAuthRequired, decodeError(t, rr).Code)
	assert.Empty(t, ts.backend.Plays())
}

func TestPlayReturnsLaunchURL(t *testing.T) {
	ts := newTestServer(t)
	ts.login("alice")

	rr := ts.request(http.MethodPost, "/api/v1/games/game3/play", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Launch
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "game3", resp.GameID)
	assert.Equal(t, launcher.TicTacToeURL, resp.URL)
	assert.NotEmpty(t, resp.SessionID)
}

func TestPlayRegistrationFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.login("alice")
	ts.backend.Fail(http.MethodPost, "/api/games/game1/play", http.StatusInternalServerError)

	rr := ts.request(http.MethodPost, "/api/v1/games/game1/play", nil)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, apierr.CodePlayRegistrationFailed, decodeError(t, rr).Code)
}

func TestPlayUnknownGame(t *testing.T) {
	ts := newTestServer(t)
	ts.login("alice")

	rr := ts.request(http.MethodPost, "/api/v1/games/nope/play", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, decodeError(t, rr).Code)
}

func TestLogoutClearsCookies(t *testing.T) {
	ts := newTestServer(t)
	ts.login("alice")
	require.Contains(t, ts.cookies, testutil.SessionCookie)

	rr := ts.request(http.MethodPost, "/api/v1/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.NotContains(t, ts.cookies, testutil.SessionCookie)

	rr = ts.request(http.MethodPost, "/api/v1/games/game1/play", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLoginEmptyBody(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/auth/login", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	apiErr := decodeError(t, rr)
	assert.Equal(t, apierr.CodeInvalidRequest, apiErr.Code)
	assert.Equal(t, "Request body is required", apiErr.Message)
}

func TestResponsesAreNotCached(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/state", nil)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}
