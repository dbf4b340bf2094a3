package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echo struct {
	Value string `json:"value"`
}

func TestDoDecodesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "/api/thing", r.URL.Path)
		_, _ = w.Write([]byte(`{"value":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	var out echo
	require.NoError(t, c.Get(context.Background(), "/api/thing", &out))
	assert.Equal(t, "ok", out.Value)
}

func TestDoReturnsStatusErrorWithMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Email already registered!"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.Post(context.Background(), "/api/auth/signup", map[string]string{"a": "b"}, nil)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusConflict, statusErr.Status)
	assert.Equal(t, "Email already registered!", statusErr.Message)
}

func TestDoStatusErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.Get(context.Background(), "/", nil)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Empty(t, statusErr.Message)
	assert.Equal(t, "HTTP 502", statusErr.Error())
}

func TestDoTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, 50*time.Millisecond)
	err := c.Get(context.Background(), "/slow", nil)

	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second)
	err := c.Get(context.Background(), "/", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestWithJarSendsAndStoresCookies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("user_id")
		if assert.NoError(t, err) {
			assert.Equal(t, "u1", cookie.Value)
		}
		http.SetCookie(w, &http.Cookie{Name: "user_id", Value: "u2", Path: "/", MaxAge: 60})
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	jar := NewRelayJar([]*http.Cookie{{Name: "user_id", Value: "u1"}})
	base := NewClient(srv.URL, time.Second)
	c := base.WithJar(jar)

	require.NoError(t, c.Get(context.Background(), "/", nil))

	changes := jar.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, "u2", changes[0].Value)
	assert.Equal(t, 60, changes[0].MaxAge)

	// the original client is untouched
	assert.Nil(t, base.httpClient.Jar)
}

func TestDoRejectsOversizedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"value":"` + strings.Repeat("x", maxResponseBytes) + `"}`))
	}))
	defer srv.Close()

	var out echo
	err := NewClient(srv.URL, time.Second).Get(context.Background(), "/", &out)

	require.ErrorIs(t, err, ErrResponseTooLarge)
	assert.Empty(t, out.Value)
}

func TestDoRefusesCrossHostRedirect(t *testing.T) {
	var hits atomic.Int32
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer other.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, other.URL+"/steal", http.StatusFound)
	}))
	defer srv.Close()

	jar := NewRelayJar([]*http.Cookie{{Name: "user_id", Value: "u1"}})
	err := NewClient(srv.URL, time.Second).WithJar(jar).Get(context.Background(), "/", nil)

	require.ErrorIs(t, err, ErrCrossHostRedirect)
	assert.Zero(t, hits.Load())
}

func TestDoFollowsSameHostRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusFound)
			return
		}
		_, _ = w.Write([]byte(`{"value":"moved"}`))
	}))
	defer srv.Close()

	var out echo
	require.NoError(t, NewClient(srv.URL, time.Second).Get(context.Background(), "/old", &out))
	assert.Equal(t, "moved", out.Value)
}
