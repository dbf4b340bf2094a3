package backend

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// RelayJar is a cookie jar for a single visitor of the web front-end.
// It is seeded with the cookies the browser sent and records every cookie the
// backend sets, so the changes can be re-issued to the browser.
// RelayJar itself ignores request URLs; Client.WithJar scopes it to the backend host.
type RelayJar struct {
	mu      sync.Mutex
	current map[string]*http.Cookie
	changed map[string]*http.Cookie
}

var _ http.CookieJar = (*RelayJar)(nil)

// NewRelayJar creates a jar holding the given cookies
func NewRelayJar(seed []*http.Cookie) *RelayJar {
	j := &RelayJar{
		current: make(map[string]*http.Cookie),
		changed: make(map[string]*http.Cookie),
	}
	for _, c := range seed {
		j.current[c.Name] = &http.Cookie{Name: c.Name, Value: c.Value}
	}
	return j
}

// SetCookies records cookies set by a backend response
func (j *RelayJar) SetCookies(_ *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()
	for _, c := range cookies {
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(now)) {
			delete(j.current, c.Name)
		} else {
			j.current[c.Name] = c
		}
		j.changed[c.Name] = c
	}
}

// Cookies returns the cookies to send with a backend request
func (j *RelayJar) Cookies(_ *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]*http.Cookie, 0, len(j.current))
	for _, c := range j.current {
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

// Changes returns the cookies the backend set since the jar was created,
// ordered by name. Deletions have a negative MaxAge or an expiry in the past.
func (j *RelayJar) Changes() []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]*http.Cookie, 0, len(j.changed))
	for _, c := range j.changed {
		out = append(out, c)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

// Clear forgets every cookie and records each as a deletion
func (j *RelayJar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()

	for name := range j.current {
		j.changed[name] = &http.Cookie{Name: name, MaxAge: -1}
	}
	clear(j.current)
}

// hostJar restricts a jar to a single host. Requests to any other host carry
// no cookies and their Set-Cookie headers are dropped.
type hostJar struct {
	host string
	jar  http.CookieJar
}

func scopeJar(jar http.CookieJar, base *url.URL) http.CookieJar {
	return &hostJar{host: strings.ToLower(base.Host), jar: jar}
}

func (h *hostJar) allowed(u *url.URL) bool {
	return u != nil && strings.EqualFold(u.Host, h.host)
}

func (h *hostJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if h.allowed(u) {
		h.jar.SetCookies(u, cookies)
	}
}

func (h *hostJar) Cookies(u *url.URL) []*http.Cookie {
	if !h.allowed(u) {
		return nil
	}
	return h.jar.Cookies(u)
}
