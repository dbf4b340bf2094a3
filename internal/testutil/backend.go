package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamehub/internal/model"
)

// SessionCookie is the cookie name the fake backend issues
const SessionCookie = "user_id"

// FakeBackend is an in-process stand-in for the external auth and catalog services.
// It speaks the same JSON shapes and cookie protocol as the real backend.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	users    map[string]*fakeUser // by email
	games    []model.Game
	failures map[string]int // "METHOD path" -> status
	requests []string
	plays    []model.GameID
	nextID   int
}

type fakeUser struct {
	user     model.User
	password string
}

// NewFakeBackend starts a fake backend serving the standard four games.
// The server is closed when the test finishes.
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()

	b := &FakeBackend{
		users:    make(map[string]*fakeUser),
		failures: make(map[string]int),
		games: []model.Game{
			{ID: "game1", Title: "Snake Classic", Description: "Eat and grow.", ImageURL: "/img/snake.png", Difficulty: model.DifficultyEasy},
			{ID: "game2", Title: "Memory Match", Description: "Match the pairs.", ImageURL: "/img/memory.png", Difficulty: model.DifficultyMedium},
			{ID: "game3", Title: "Space Shooter", Description: "Defend Earth.", ImageURL: "/img/space.png", Difficulty: model.DifficultyHard},
			{ID: "game4", Title: "Puzzle Master", Description: "Slide the tiles.", ImageURL: "/img/puzzle.png", Difficulty: model.DifficultyMedium},
		},
	}

	r := mux.NewRouter()
	r.Use(b.record)
	r.HandleFunc("/api/auth/signup", b.signup).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", b.login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", b.logout).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/me", b.me).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/current-user", b.me).Methods(http.MethodGet)
	r.HandleFunc("/api/games", b.listGames).Methods(http.MethodGet)
	r.HandleFunc("/api/games/{id}/play", b.play).Methods(http.MethodPost)

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the base URL of the fake backend
func (b *FakeBackend) URL() string {
	return b.Server.URL
}

// AddUser registers a user directly, bypassing signup
func (b *FakeBackend) AddUser(username, email, password string) model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUserLocked(username, email, password)
}

// SessionCookieFor returns a valid session cookie for the user
func (b *FakeBackend) SessionCookieFor(u model.User) *http.Cookie {
	return &http.Cookie{Name: SessionCookie, Value: u.ID}
}

// SetGames replaces the served catalog
func (b *FakeBackend) SetGames(games []model.Game) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.games = games
}

// Fail makes every request to method+path answer with status
func (b *FakeBackend) Fail(method, path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = status
}

// RequestCount returns how many requests hit method+path
func (b *FakeBackend) RequestCount(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if r == method+" "+path {
			n++
		}
	}
	return n
}

// Plays returns the game ids of all registered plays
func (b *FakeBackend) Plays() []model.GameID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.GameID(nil), b.plays...)
}

func (b *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.requests = append(b.requests, key)
		status, fail := b.failures[key]
		b.mu.Unlock()

		if fail {
			writeJSON(w, status, map[string]string{"message": "injected failure"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *FakeBackend) addUserLocked(username, email, password string) model.User {
	b.nextID++
	u := model.User{ID: "u" + strconv.Itoa(b.nextID), Username: username, Email: email}
	b.users[email] = &fakeUser{user: u, password: password}
	return u
}

func (b *FakeBackend) currentUser(r *http.Request) *model.User {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, fu := range b.users {
		if fu.user.ID == cookie.Value {
			u := fu.user
			return &u
		}
	}
	return nil
}

func (b *FakeBackend) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}

	b.mu.Lock()
	if _, exists := b.users[req.Email]; exists {
		b.mu.Unlock()
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Email already registered!"})
		return
	}
	u := b.addUserLocked(req.Username, req.Email, req.Password)
	b.mu.Unlock()

	setSession(w, u.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "User created successfully!", "user": u})
}

func (b *FakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}

	b.mu.Lock()
	fu, ok := b.users[req.Email]
	b.mu.Unlock()
	if !ok || fu.password != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password!"})
		return
	}

	setSession(w, fu.user.ID)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Login successful!", "user": fu.user})
}

func (b *FakeBackend) logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully!"})
}

func (b *FakeBackend) me(w http.ResponseWriter, r *http.Request) {
	u := b.currentUser(r)
	if u == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Authentication required!"})
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (b *FakeBackend) listGames(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	games := append([]model.Game(nil), b.games...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, games)
}

func (b *FakeBackend) play(w http.ResponseWriter, r *http.Request) {
	if b.currentUser(r) == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Authentication required!"})
		return
	}

	id := model.GameID(mux.Vars(r)["id"])
	b.mu.Lock()
	var found *model.Game
	for i := range b.games {
		if b.games[i].ID == id {
			found = &b.games[i]
			break
		}
	}
	if found == nil {
		b.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Game not found!"})
		return
	}
	title := found.Title
	b.plays = append(b.plays, id)
	n := len(b.plays)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Game session started!",
		"session_id": "s" + strconv.Itoa(n),
		"game_id":    id,
		"title":      title,
		"status":     "active",
	})
}

func setSession(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 7,
		HttpOnly: true,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
