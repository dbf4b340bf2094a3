package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/mcoot/gamehub/internal/backend"
	"github.com/mcoot/gamehub/internal/model"
)

const gamesPath = "/api/games"

// Service wraps the external catalog service
type Service struct {
	client *backend.Client
	logger *slog.Logger
}

// New creates a new catalog Service
func New(client *backend.Client, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// List returns the live catalog exactly as the backend sends it
func (s *Service) List(ctx context.Context) ([]model.Game, error) {
	var games []model.Game
	if err := s.client.Get(ctx, gamesPath, &games); err != nil {
		return nil, &model.CatalogError{Status: statusOf(err), Err: err}
	}
	if games == nil {
		games = []model.Game{}
	}
	return games, nil
}

// RegisterPlay records a play of the game and returns the backend's game session
func (s *Service) RegisterPlay(ctx context.Context, id model.GameID) (*model.GameSession, error) {
	path := gamesPath + "/" + url.PathEscape(string(id)) + "/play"

	var session model.GameSession
	if err := s.client.Post(ctx, path, nil, &session); err != nil {
		return nil, &model.PlayRegistrationError{GameID: id, Status: statusOf(err), Err: err}
	}
	if session.GameID == "" {
		session.GameID = id
	}

	s.logger.Info("game session started",
		slog.String("game_id", string(session.GameID)),
		slog.String("session_id", session.SessionID),
	)
	return &session, nil
}

func statusOf(err error) int {
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return 0
}
