package launcher

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/mcoot/gamehub/internal/model"
)

// Hosted game URLs
const (
	BreakoutURL    = "https://breakout-master.vercel.app/"
	SudokuURL      = "https://sudoku-master-eta.vercel.app/"
	TicTacToeURL   = "https://tic-tac-toe-master-mauve.vercel.app/"
	SlidePuzzleURL = "https://slide-puzzle-master.vercel.app/"
)

// Opener opens a URL in a new browsing context
type Opener interface {
	Open(ctx context.Context, url string) error
}

// Target maps a match key to a hosted game URL
type Target struct {
	Key string
	URL string
}

// Resolver maps catalog entries to hosted game URLs.
// Title keywords are tried in order first, then exact game ids.
type Resolver struct {
	keywords []Target
	ids      []Target
}

// DefaultKeywords is the title keyword table
func DefaultKeywords() []Target {
	return []Target{
		{Key: "snake", URL: BreakoutURL},
		{Key: "memory", URL: SudokuURL},
		{Key: "space", URL: TicTacToeURL},
		{Key: "puzzle", URL: SlidePuzzleURL},
	}
}

// DefaultIDs is the game id table
func DefaultIDs() []Target {
	return []Target{
		{Key: "game1", URL: BreakoutURL},
		{Key: "game2", URL: SudokuURL},
		{Key: "game3", URL: TicTacToeURL},
		{Key: "game4", URL: SlidePuzzleURL},
	}
}

// NewResolver creates a Resolver with the default tables
func NewResolver() *Resolver {
	return NewResolverWithTargets(DefaultKeywords(), DefaultIDs())
}

// NewResolverWithTargets creates a Resolver with custom tables
func NewResolverWithTargets(keywords, ids []Target) *Resolver {
	fold := cases.Fold()
	r := &Resolver{ids: ids}
	for _, k := range keywords {
		r.keywords = append(r.keywords, Target{Key: fold.String(k.Key), URL: k.URL})
	}
	return r
}

// Resolve returns the launch URL for a game, or false if nothing matches
func (r *Resolver) Resolve(game model.Game) (string, bool) {
	// Casers are stateful, so each call gets its own
	title := cases.Fold().String(game.Title)
	for _, k := range r.keywords {
		if k.Key != "" && strings.Contains(title, k.Key) {
			return k.URL, true
		}
	}
	for _, t := range r.ids {
		if string(game.ID) == t.Key {
			return t.URL, true
		}
	}
	return "", false
}
