package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Seyram02/nations-league/brackets"
	"github.com/Seyram02/nations-league/models"
	"github.com/Seyram02/nations-league/repositories"
)

type TournamentService interface {
	// CreateTournament wipes any previous bracket and seeds the
	// quarterfinals from the registered teams. Exactly eight teams must
	// be registered.
	CreateTournament(ctx context.Context) ([]*models.Match, error)
	ResetTournament(ctx context.Context) error
}

type tournamentService struct {
	db        *sql.DB
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	hub       *brackets.Hub
	logger    *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:        db,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		hub:       hub,
		logger:    logger,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context) ([]*models.Match, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	fixtures, err := brackets.SeedQuarterfinals(teams)
	if err != nil {
		if errors.Is(err, brackets.ErrTeamCountInvalid) {
			return nil, fmt.Errorf("%w: have %d teams, need %d", ErrInsufficientTeams, len(teams), brackets.RequiredTeams)
		}
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.matchRepo.DeleteAll(ctx, tx); err != nil {
		return nil, err
	}

	matches := make([]*models.Match, 0, len(fixtures))
	for _, fixture := range fixtures {
		match := &models.Match{
			Round:   fixture.Round,
			Team1ID: fixture.Team1ID,
			Team2ID: fixture.Team2ID,
			Status:  models.MatchStatusScheduled,
		}
		if err := s.matchRepo.Create(ctx, tx, match); err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("tournament created", slog.Int("quarterfinals", len(matches)))
	if s.hub != nil {
		s.hub.BroadcastToRoom(brackets.FeedRoom, brackets.FeedMessage{
			Type:    brackets.MessageBracketAdvanced,
			Payload: matches,
		})
	}
	return matches, nil
}

func (s *tournamentService) ResetTournament(ctx context.Context) error {
	if err := s.matchRepo.DeleteAll(ctx, s.db); err != nil {
		return err
	}
	s.logger.Info("tournament reset, all matches removed")
	return nil
}
