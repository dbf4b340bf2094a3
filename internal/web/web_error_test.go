package web_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownRouteIsNotFound(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/lobby/ABC123")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPlayRequiresPost(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/games/game1/play")
	assert.NotEqual(t, http.StatusOK, rr.Code)
	assert.Empty(t, ts.backend.Plays())
}

func TestBackendDownStillRendersCatalog(t *testing.T) {
	ts := newWebTestServer(t)
	ts.backend.Server.Close()

	rr := ts.get("/app")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, 4, doc.Find(".game-card").Length())
	assertContainsText(t, doc, "nav", "Sign In")
}

func TestFlashClearedAfterDisplay(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signIn("alice")

	doc := parseHTML(ts.get("/app").Body)
	assertContainsText(t, doc, ".flash", "Welcome back")

	doc = parseHTML(ts.get("/app").Body)
	assertNotContainsElement(t, doc, ".flash")
}

func TestRequestIDHeader(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}
