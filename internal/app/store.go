// Package app holds the application-state container that composes the session,
// catalog and launch services. Views read snapshots; every mutation goes through
// a Store method.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/services/authflow"
	"github.com/mcoot/gamehub/internal/services/catalog"
	"github.com/mcoot/gamehub/internal/services/launcher"
)

// SessionClient is the subset of the session service the Store needs
type SessionClient interface {
	authflow.Authenticator
	Current(ctx context.Context) *model.User
	Logout(ctx context.Context) error
}

// CatalogClient is the subset of the catalog service the Store needs
type CatalogClient interface {
	List(ctx context.Context) ([]model.Game, error)
	RegisterPlay(ctx context.Context, id model.GameID) (*model.GameSession, error)
}

// Resolver maps a game to its hosted URL
type Resolver interface {
	Resolve(game model.Game) (string, bool)
}

// State is a read-only snapshot of the Store
type State struct {
	User      *model.User          `json:"user"`
	Loading   bool                 `json:"loading"`
	Games     []model.Game         `json:"games"`
	Catalog   model.CatalogPhase   `json:"catalog"`
	AuthModal model.AuthModalState `json:"auth_modal"`
}

// Launch describes a game opened after a successful play
type Launch struct {
	Game    model.Game         `json:"game"`
	Session *model.GameSession `json:"session"`
	URL     string             `json:"url"`
}

// Store owns the session, catalog and auth modal state of one client
type Store struct {
	session  SessionClient
	catalog  CatalogClient
	resolver Resolver
	opener   launcher.Opener
	logger   *slog.Logger

	mu          sync.RWMutex
	user        *model.User
	loading     bool
	games       []model.Game
	phase       model.CatalogPhase
	modal       model.AuthModalState
	pendingMode model.AuthMode
}

// Deps holds the collaborators of a Store
type Deps struct {
	Session  SessionClient
	Catalog  CatalogClient
	Resolver Resolver
	Opener   launcher.Opener
	Logger   *slog.Logger
}

// discardOpener is used when the caller only renders the launch URL
type discardOpener struct{}

func (discardOpener) Open(context.Context, string) error { return nil }

// New creates a Store in its initial loading state
func New(deps Deps) *Store {
	resolver := deps.Resolver
	if resolver == nil {
		resolver = launcher.NewResolver()
	}
	opener := deps.Opener
	if opener == nil {
		opener = discardOpener{}
	}
	return &Store{
		session:  deps.Session,
		catalog:  deps.Catalog,
		resolver: resolver,
		opener:   opener,
		logger:   deps.Logger,
		loading:  true,
		phase:    model.CatalogLoading,
		modal:    model.AuthModalState{Mode: model.AuthModeLogin},
	}
}

// Start checks the session and fetches the catalog concurrently.
// Loading clears as soon as the session check settles; a failed catalog fetch
// is replaced by the fallback catalog. Start returns once both have settled.
func (s *Store) Start(ctx context.Context) {
	var g errgroup.Group

	g.Go(func() error {
		user := s.session.Current(ctx)
		s.mu.Lock()
		s.user = user
		s.loading = false
		s.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		games, err := s.catalog.List(ctx)
		phase := model.CatalogLive
		if err != nil {
			s.logger.Warn("catalog unavailable, using fallback", slog.String("error", err.Error()))
			games = catalog.Fallback()
			phase = model.CatalogFallback
		}
		s.mu.Lock()
		s.games = games
		s.phase = phase
		s.mu.Unlock()
		return nil
	})

	_ = g.Wait()
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var user *model.User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return State{
		User:      user,
		Loading:   s.loading,
		Games:     append([]model.Game(nil), s.games...),
		Catalog:   s.phase,
		AuthModal: s.modal,
	}
}

// User returns the signed-in user, or nil
func (s *Store) User() *model.User {
	return s.Snapshot().User
}

// Play launches a game for the signed-in user.
//
// Without a user the auth modal opens in login mode and ErrAuthRequired is
// returned without any network call. With a user the play is registered first;
// the game is opened only if registration succeeds and a launch target resolves.
func (s *Store) Play(ctx context.Context, id model.GameID) (*Launch, error) {
	s.mu.RLock()
	user := s.user
	game, found := s.findGameLocked(id)
	s.mu.RUnlock()

	if user == nil {
		s.OpenAuth(model.AuthModeLogin)
		return nil, model.ErrAuthRequired
	}

	session, err := s.catalog.RegisterPlay(ctx, id)
	if err != nil {
		s.logger.Error("failed to start game",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if !found {
		// not in the current list; only the id table can match
		game = model.Game{ID: id, Title: session.Title}
	}

	url, ok := s.resolver.Resolve(game)
	if !ok {
		s.logger.Warn("no launch target for game",
			slog.String("game_id", string(id)),
			slog.String("title", game.Title),
		)
		return nil, &model.UnresolvedRedirectError{Game: game}
	}

	if err := s.opener.Open(ctx, url); err != nil {
		return nil, fmt.Errorf("open %s: %w", url, err)
	}

	s.logger.Info("game launched",
		slog.String("game_id", string(id)),
		slog.String("session_id", session.SessionID),
		slog.String("url", url),
	)
	return &Launch{Game: game, Session: session, URL: url}, nil
}

// Logout ends the backend session on a best-effort basis, then clears the user
func (s *Store) Logout(ctx context.Context) {
	if err := s.session.Logout(ctx); err != nil {
		s.logger.Warn("logout request failed; clearing local session anyway", slog.String("error", err.Error()))
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// OpenAuth opens the auth modal in the given mode
func (s *Store) OpenAuth(mode model.AuthMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = model.AuthModalState{Open: true, Mode: mode}
	s.pendingMode = ""
}

// CloseAuth closes the modal, discarding any in-progress form.
// An authenticated user is left untouched.
func (s *Store) CloseAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal.Open = false
	s.pendingMode = ""
}

// SwitchAuthMode closes the modal and queues a reopen in the other mode.
// The reopen happens when the view reports the close transition finished.
func (s *Store) SwitchAuthMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingMode = s.modal.Mode.Other()
	s.modal.Open = false
}

// TransitionEnded is the view's close-transition completion callback.
// It reopens the modal if a mode switch is pending.
func (s *Store) TransitionEnded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingMode == "" {
		return
	}
	s.modal = model.AuthModalState{Open: true, Mode: s.pendingMode}
	s.pendingMode = ""
}

// AuthSucceeded records the newly authenticated user and closes the modal
func (s *Store) AuthSucceeded(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user != nil {
		s.user = user
	}
	s.modal.Open = false
	s.pendingMode = ""
}

// NewAuthController creates a form controller for the modal whose success
// callback feeds back into the Store
func (s *Store) NewAuthController(mode model.AuthMode) *authflow.Controller {
	return authflow.New(s.session, mode, s.AuthSucceeded)
}

// IsRecoverable reports whether a Play error belongs to the non-critical path
// (logged only, never surfaced as a failure)
func IsRecoverable(err error) bool {
	var playErr *model.PlayRegistrationError
	return errors.As(err, &playErr)
}

func (s *Store) findGameLocked(id model.GameID) (model.Game, bool) {
	for _, g := range s.games {
		if g.ID == id {
			return g, true
		}
	}
	return model.Game{}, false
}
