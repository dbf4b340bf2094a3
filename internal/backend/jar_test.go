package backend

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayJarSeedIsSent(t *testing.T) {
	jar := NewRelayJar([]*http.Cookie{{Name: "b", Value: "2"}, {Name: "a", Value: "1"}})

	cookies := jar.Cookies(nil)
	require.Len(t, cookies, 2)
	assert.Equal(t, "a", cookies[0].Name)
	assert.Equal(t, "b", cookies[1].Name)
	assert.Empty(t, jar.Changes())
}

func TestRelayJarDeletion(t *testing.T) {
	jar := NewRelayJar([]*http.Cookie{{Name: "user_id", Value: "u1"}})

	jar.SetCookies(nil, []*http.Cookie{{Name: "user_id", Value: "", MaxAge: -1}})

	assert.Empty(t, jar.Cookies(nil))
	changes := jar.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, -1, changes[0].MaxAge)
}

func TestRelayJarExpiredCookieIsDeletion(t *testing.T) {
	jar := NewRelayJar([]*http.Cookie{{Name: "user_id", Value: "u1"}})

	jar.SetCookies(nil, []*http.Cookie{{Name: "user_id", Expires: time.Unix(0, 0)}})

	assert.Empty(t, jar.Cookies(nil))
}

func TestRelayJarLaterSetWins(t *testing.T) {
	jar := NewRelayJar(nil)

	jar.SetCookies(nil, []*http.Cookie{{Name: "user_id", Value: "u1"}})
	jar.SetCookies(nil, []*http.Cookie{{Name: "user_id", Value: "u2"}})

	cookies := jar.Cookies(nil)
	require.Len(t, cookies, 1)
	assert.Equal(t, "u2", cookies[0].Value)
	require.Len(t, jar.Changes(), 1)
}

func TestRelayJarClear(t *testing.T) {
	jar := NewRelayJar([]*http.Cookie{{Name: "user_id", Value: "u1"}, {Name: "theme", Value: "dark"}})
	jar.Clear()

	assert.Empty(t, jar.Cookies(nil))
	changes := jar.Changes()
	require.Len(t, changes, 2)
	for _, c := range changes {
		assert.Equal(t, -1, c.MaxAge)
	}
}

func TestScopedJarOnlyServesBackendHost(t *testing.T) {
	jar := NewRelayJar([]*http.Cookie{{Name: "user_id", Value: "u1"}})
	base, err := url.Parse("http://backend.internal:8080")
	require.NoError(t, err)
	scoped := scopeJar(jar, base)

	backendURL, _ := url.Parse("http://backend.internal:8080/api/auth/me")
	otherURL, _ := url.Parse("https://evil.example.com/collect")

	assert.Len(t, scoped.Cookies(backendURL), 1)
	assert.Nil(t, scoped.Cookies(otherURL))

	scoped.SetCookies(otherURL, []*http.Cookie{{Name: "user_id", Value: "hijacked"}})
	assert.Empty(t, jar.Changes())
	assert.Equal(t, "u1", jar.Cookies(nil)[0].Value)

	scoped.SetCookies(backendURL, []*http.Cookie{{Name: "user_id", Value: "u2"}})
	require.Len(t, jar.Changes(), 1)
	assert.Equal(t, "u2", jar.Changes()[0].Value)
}
