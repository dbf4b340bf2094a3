package model

// GameID uniquely identifies a game in the catalog
type GameID string

// Difficulty is the difficulty label shown on a game card
type Difficulty string

// Known difficulty labels. Other values are carried through verbatim.
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Known reports whether d is one of the recognised difficulty labels
func (d Difficulty) Known() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// PlaceholderImage is the synthetic image reference used by the fallback catalog
// and swapped in when a card image fails to load
const PlaceholderImage = "/static/placeholder.svg"

// Game is a playable entry in the catalog.
// Games are immutable once fetched; identity is the ID.
type Game struct {
	ID          GameID     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
	Difficulty  Difficulty `json:"difficulty"`
}

// CatalogPhase describes where the games currently held came from
type CatalogPhase string

const (
	// CatalogLoading means the catalog fetch is still outstanding
	CatalogLoading CatalogPhase = "loading"
	// CatalogLive means the games came from the catalog service
	CatalogLive CatalogPhase = "live"
	// CatalogFallback means the catalog service failed and the static catalog is shown
	CatalogFallback CatalogPhase = "fallback"
)

// GameSession is returned by the backend when a play is registered.
// It is only used to decide whether to launch; it is never persisted.
type GameSession struct {
	SessionID string `json:"session_id"`
	GameID    GameID `json:"game_id"`
	Title     string `json:"title"`
	Status    string `json:"status,omitempty"`
}
