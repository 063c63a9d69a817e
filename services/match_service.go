package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Seyram02/nations-league/brackets"
	"github.com/Seyram02/nations-league/commentary"
	"github.com/Seyram02/nations-league/models"
	"github.com/Seyram02/nations-league/repositories"
	"github.com/Seyram02/nations-league/sim"
)

type PlayerAnalysisResult struct {
	Analysis string         `json:"analysis"`
	Player   *models.Player `json:"player"`
}

type MatchService interface {
	GetMatch(ctx context.Context, id int) (*models.Match, error)
	ListMatches(ctx context.Context) ([]*models.Match, error)
	// SimulateMatch completes a scheduled match. Detailed mode builds the
	// event timeline and commentary; quick mode records only the outcome
	// and scorers.
	SimulateMatch(ctx context.Context, id int, detailed bool) (*models.Match, error)
	MatchPreview(ctx context.Context, id int) (string, error)
	PostMatchAnalysis(ctx context.Context, id int) (string, error)
	PlayerAnalysis(ctx context.Context, matchID int, playerName string) (*PlayerAnalysisResult, error)
}

type matchService struct {
	db        *sql.DB
	matchRepo repositories.MatchRepository
	teamRepo  repositories.TeamRepository
	engine    *sim.Engine
	text      commentary.Generator // optional AI backend, may be nil
	fallback  commentary.Generator
	email     *EmailService
	hub       *brackets.Hub
	logger    *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	engine *sim.Engine,
	text commentary.Generator,
	email *EmailService,
	hub *brackets.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:        db,
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		engine:    engine,
		text:      text,
		fallback:  commentary.NewFallbackGenerator(),
		email:     email,
		hub:       hub,
		logger:    logger,
	}
}

func (s *matchService) GetMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if err := s.attachTeams(ctx, match); err != nil {
		return nil, err
	}
	s.backfillScorers(ctx, match)
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := s.attachTeamsToAll(ctx, matches); err != nil {
		return nil, err
	}
	for _, match := range matches {
		s.backfillScorers(ctx, match)
	}
	return matches, nil
}

func (s *matchService) SimulateMatch(ctx context.Context, id int, detailed bool) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if match.Status == models.MatchStatusCompleted {
		return nil, ErrMatchAlreadyCompleted
	}
	if err := s.attachTeams(ctx, match); err != nil {
		return nil, err
	}

	result := s.engine.Simulate(match.Team1, match.Team2, sim.Options{
		Detailed: detailed,
		Knockout: match.Round.IsKnockout(),
	})

	if detailed {
		s.generateText(ctx, match, result)
	}

	// Single conditional update: if a concurrent request completed the
	// match first, that result stands and this one is discarded.
	if err := s.matchRepo.Complete(ctx, id, result); err != nil {
		if errors.Is(err, repositories.ErrMatchAlreadyCompleted) {
			return nil, ErrMatchAlreadyCompleted
		}
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	match.Status = models.MatchStatusCompleted
	match.Result = result
	now := time.Now()
	match.CompletedAt = &now

	s.recordResult(ctx, match, result)
	s.notifyFederations(match, result)
	s.progressBracket(ctx)

	if s.hub != nil {
		s.hub.BroadcastToRoom(brackets.FeedRoom, brackets.FeedMessage{
			Type:    brackets.MessageMatchCompleted,
			Payload: match,
		})
	}

	return match, nil
}

func (s *matchService) MatchPreview(ctx context.Context, id int) (string, error) {
	match, err := s.GetMatch(ctx, id)
	if err != nil {
		return "", err
	}

	if s.text != nil {
		preview, genErr := s.text.MatchPreview(ctx, match.Team1, match.Team2)
		if genErr == nil {
			return preview, nil
		}
		s.logger.Warn("match preview generation failed, using fallback", slog.Any("error", genErr))
	}
	preview, _ := s.fallback.MatchPreview(ctx, match.Team1, match.Team2)
	return preview, nil
}

func (s *matchService) PostMatchAnalysis(ctx context.Context, id int) (string, error) {
	match, err := s.GetMatch(ctx, id)
	if err != nil {
		return "", err
	}
	if match.Status != models.MatchStatusCompleted || match.Result == nil {
		return "", fmt.Errorf("%w: match has not been played yet", ErrValidationFailed)
	}

	if s.text != nil {
		analysis, genErr := s.text.PostMatchAnalysis(ctx, match.Result)
		if genErr == nil {
			return analysis, nil
		}
		s.logger.Warn("post-match analysis generation failed, using fallback", slog.Any("error", genErr))
	}
	analysis, _ := s.fallback.PostMatchAnalysis(ctx, match.Result)
	return analysis, nil
}

func (s *matchService) PlayerAnalysis(ctx context.Context, matchID int, playerName string) (*PlayerAnalysisResult, error) {
	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	var player *models.Player
	for _, squad := range []models.Squad{match.Team1.Squad, match.Team2.Squad} {
		for i := range squad {
			if squad[i].Name == playerName {
				player = &squad[i]
				break
			}
		}
		if player != nil {
			break
		}
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	var events []models.MatchEvent
	var goals int
	if match.Result != nil {
		events = match.Result.Events
		for _, scorer := range match.Result.GoalScorers {
			if scorer.Player == playerName {
				goals++
			}
		}
	}
	if goals == 0 {
		return &PlayerAnalysisResult{
			Analysis: fmt.Sprintf("%s did not score in this match.", playerName),
			Player:   player,
		}, nil
	}

	if s.text != nil {
		analysis, genErr := s.text.PlayerAnalysis(ctx, player, events)
		if genErr == nil && analysis != "" {
			return &PlayerAnalysisResult{Analysis: analysis, Player: player}, nil
		}
		if genErr != nil {
			s.logger.Warn("player analysis generation failed, using fallback", slog.Any("error", genErr))
		}
	}
	analysis, _ := s.fallback.PlayerAnalysis(ctx, player, events)
	return &PlayerAnalysisResult{Analysis: analysis, Player: player}, nil
}

// generateText fills the result's preview and commentary, always landing on
// the fallback formatter when the AI backend is absent or errors.
func (s *matchService) generateText(ctx context.Context, match *models.Match, result *models.MatchResult) {
	if s.text != nil {
		preview, err := s.text.MatchPreview(ctx, match.Team1, match.Team2)
		if err == nil {
			result.MatchPreview = preview
		} else {
			s.logger.Warn("match preview generation failed, using fallback", slog.Any("error", err))
		}

		lines, err := s.text.LiveCommentary(ctx, result.Events, result.Team1, result.Team2, result.Score)
		if err == nil {
			result.Commentary = lines
		} else {
			s.logger.Warn("live commentary generation failed, using fallback", slog.Any("error", err))
		}
	}

	if result.MatchPreview == "" {
		result.MatchPreview, _ = s.fallback.MatchPreview(ctx, match.Team1, match.Team2)
	}
	if result.Commentary == nil {
		result.Commentary, _ = s.fallback.LiveCommentary(ctx, result.Events, result.Team1, result.Team2, result.Score)
	}
}

// recordResult updates the cumulative win/loss and goal counters. Drawn
// friendlies leave the win/loss columns untouched.
func (s *matchService) recordResult(ctx context.Context, match *models.Match, result *models.MatchResult) {
	team1Wins, team2Wins := 0, 0
	switch result.Winner {
	case match.Team1.Country:
		team1Wins = 1
	case match.Team2.Country:
		team2Wins = 1
	}

	if err := s.teamRepo.AddToRecord(ctx, s.db, match.Team1ID, team1Wins, team2Wins, result.Team1Goals, result.Team2Goals); err != nil {
		s.logger.Error("failed to update team record", slog.Int("team_id", match.Team1ID), slog.Any("error", err))
	}
	if err := s.teamRepo.AddToRecord(ctx, s.db, match.Team2ID, team2Wins, team1Wins, result.Team2Goals, result.Team1Goals); err != nil {
		s.logger.Error("failed to update team record", slog.Int("team_id", match.Team2ID), slog.Any("error", err))
	}
}

func (s *matchService) notifyFederations(match *models.Match, result *models.MatchResult) {
	if s.email == nil || !s.email.Enabled() {
		return
	}
	if err := s.email.SendMatchCompletionEmail(match, result); err != nil {
		// Notification is best-effort; the match stays completed either way.
		s.logger.Error("failed to send match completion email", slog.Int("match_id", match.ID), slog.Any("error", err))
	}
}

// progressBracket materializes the next round's fixtures once the current
// round is fully completed. The fixture computation itself is pure; only the
// snapshot load and the inserts touch storage.
func (s *matchService) progressBracket(ctx context.Context) {
	matches, err := s.ListMatches(ctx)
	if err != nil {
		s.logger.Error("bracket progression: failed to load match snapshot", slog.Any("error", err))
		return
	}

	fixtures := brackets.NextFixtures(matches)
	if len(fixtures) == 0 {
		return
	}

	created := make([]*models.Match, 0, len(fixtures))
	for _, fixture := range fixtures {
		match := &models.Match{
			Round:   fixture.Round,
			Team1ID: fixture.Team1ID,
			Team2ID: fixture.Team2ID,
			Status:  models.MatchStatusScheduled,
		}
		if err := s.matchRepo.Create(ctx, s.db, match); err != nil {
			s.logger.Error("bracket progression: failed to create fixture",
				slog.String("round", string(fixture.Round)), slog.Any("error", err))
			continue
		}
		created = append(created, match)
	}

	if len(created) > 0 {
		s.logger.Info("bracket advanced",
			slog.String("round", string(created[0].Round)), slog.Int("fixtures", len(created)))
		if s.hub != nil {
			s.hub.BroadcastToRoom(brackets.FeedRoom, brackets.FeedMessage{
				Type:    brackets.MessageBracketAdvanced,
				Payload: created,
			})
		}
	}
}

// backfillScorers repairs completed matches that recorded goals without
// scorers, persisting the synthesized list.
func (s *matchService) backfillScorers(ctx context.Context, match *models.Match) {
	if match.Status != models.MatchStatusCompleted || match.Result == nil {
		return
	}
	res := match.Result
	if res.Team1Goals+res.Team2Goals == 0 || len(res.GoalScorers) > 0 {
		return
	}
	if match.Team1 == nil || match.Team2 == nil {
		return
	}

	res.GoalScorers = s.engine.BackfillScorers(match.Team1, match.Team2, res.Team1Goals, res.Team2Goals)
	if err := s.matchRepo.UpdateResult(ctx, match.ID, res); err != nil {
		s.logger.Error("failed to persist backfilled scorers", slog.Int("match_id", match.ID), slog.Any("error", err))
	}
}

func (s *matchService) attachTeams(ctx context.Context, match *models.Match) error {
	team1, err := s.teamRepo.GetByID(ctx, match.Team1ID)
	if err != nil {
		return fmt.Errorf("failed to load team %d: %w", match.Team1ID, err)
	}
	team2, err := s.teamRepo.GetByID(ctx, match.Team2ID)
	if err != nil {
		return fmt.Errorf("failed to load team %d: %w", match.Team2ID, err)
	}
	match.Team1, match.Team2 = team1, team2
	return nil
}

func (s *matchService) attachTeamsToAll(ctx context.Context, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return err
	}
	byID := make(map[int]*models.Team, len(teams))
	for _, team := range teams {
		byID[team.ID] = team
	}
	for _, match := range matches {
		match.Team1 = byID[match.Team1ID]
		match.Team2 = byID[match.Team2ID]
	}
	return nil
}
