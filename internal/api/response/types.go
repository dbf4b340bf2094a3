package response

import (
	"github.com/mcoot/gamehub/internal/app"
	"github.com/mcoot/gamehub/internal/model"
)

// User represents the signed-in user in API responses
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserFromModel converts a model.User; nil stays nil
func UserFromModel(u *model.User) *User {
	if u == nil {
		return nil
	}
	return &User{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Game represents a catalog entry
type Game struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Difficulty  string `json:"difficulty"`
}

// GameFromModel converts a model.Game
func GameFromModel(g model.Game) Game {
	return Game{
		ID:          string(g.ID),
		Title:       g.Title,
		Description: g.Description,
		ImageURL:    g.ImageURL,
		Difficulty:  string(g.Difficulty),
	}
}

// State is the visitor's view of the catalog
type State struct {
	User    *User  `json:"user"`
	Catalog string `json:"catalog"`
	Games   []Game `json:"games"`
}

// StateFromSnapshot converts a Store snapshot
func StateFromSnapshot(s app.State) State {
	games := make([]Game, len(s.Games))
	for i, g := range s.Games {
		games[i] = GameFromModel(g)
	}
	return State{
		User:    UserFromModel(s.User),
		Catalog: string(s.Catalog),
		Games:   games,
	}
}

// AuthResponse is the response for sign-in and sign-up
type AuthResponse struct {
	User *User `json:"user"`
}

// Launch is the response after a successful play
type Launch struct {
	GameID    string `json:"game_id"`
	Title     string `json:"title"`
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// LaunchFromApp converts an app.Launch
func LaunchFromApp(l *app.Launch) Launch {
	out := Launch{
		GameID: string(l.Game.ID),
		Title:  l.Game.Title,
		URL:    l.URL,
	}
	if l.Session != nil {
		out.SessionID = l.Session.SessionID
	}
	return out
}

// Health is the health check response
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
