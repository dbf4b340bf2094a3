package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookieNamed(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCredentialsSeedsJarWithoutFlash(t *testing.T) {
	h := Credentials(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookies := GetJar(r.Context()).Cookies(nil)
		require.Len(t, cookies, 1)
		assert.Equal(t, "user_id", cookies[0].Name)
		assert.Equal(t, "u1", cookies[0].Value)
	}))

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.AddCookie(&http.Cookie{Name: "user_id", Value: "u1"})
	req.AddCookie(&http.Cookie{Name: FlashCookieName, Value: "info:hi"})
	h.ServeHTTP(httptest.NewRecorder(), req)
}

func TestCredentialsRelaysBackendCookies(t *testing.T) {
	h := Credentials(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		GetJar(r.Context()).SetCookies(nil, []*http.Cookie{
			{Name: "user_id", Value: "u7", Path: "/api", Domain: "backend.example", MaxAge: 3600},
		})
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))

	c := cookieNamed(rec.Result().Cookies(), "user_id")
	require.NotNil(t, c)
	assert.Equal(t, "u7", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Empty(t, c.Domain)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, 3600, c.MaxAge)
}

func TestCredentialsRelaysDeletion(t *testing.T) {
	h := Credentials(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		GetJar(r.Context()).SetCookies(nil, []*http.Cookie{{Name: "user_id", MaxAge: -1}})
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "user_id", Value: "u1"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	c := cookieNamed(rec.Result().Cookies(), "user_id")
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)
}

func TestCredentialsNoChangesNoCookies(t *testing.T) {
	h := Credentials(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.AddCookie(&http.Cookie{Name: "user_id", Value: "u1"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Result().Cookies())
}

func TestFlashRoundTrip(t *testing.T) {
	setter := httptest.NewRecorder()
	SetFlash(setter, "success", "Welcome back, alice!")
	cookie := cookieNamed(setter.Result().Cookies(), FlashCookieName)
	require.NotNil(t, cookie)

	h := Flash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flash := GetFlash(r.Context())
		require.NotNil(t, flash)
		assert.Equal(t, "success", flash.Type)
		assert.Equal(t, "Welcome back, alice!", flash.Message)
	}))

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.AddCookie(&http.Cookie{Name: FlashCookieName, Value: cookie.Value})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	cleared := cookieNamed(rec.Result().Cookies(), FlashCookieName)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestParseFlashWithoutType(t *testing.T) {
	flash := parseFlash("plain message")
	assert.Equal(t, "info", flash.Type)
	assert.Equal(t, "plain message", flash.Message)
}
