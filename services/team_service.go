package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Seyram02/nations-league/models"
	"github.com/Seyram02/nations-league/repositories"
	"github.com/Seyram02/nations-league/sim"
	"github.com/Seyram02/nations-league/storage"
	"golang.org/x/sync/errgroup"
)

type RegisterTeamInput struct {
	Country        string `json:"country"`
	Manager        string `json:"manager"`
	Representative string `json:"representative"`
	Email          string `json:"email"`
}

type AnalyticsSummary struct {
	Played         int      `json:"played"`
	Wins           int      `json:"wins"`
	Losses         int      `json:"losses"`
	GoalsFor       int      `json:"goals_for"`
	GoalsAgainst   int      `json:"goals_against"`
	GoalDifference int      `json:"goal_difference"`
	RecentForm     []string `json:"recent_form"`
}

type ScorerTally struct {
	Player string `json:"player"`
	Goals  int    `json:"goals"`
}

type OpponentRecord struct {
	Opponent     string `json:"opponent"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
}

type TeamSummary struct {
	Country string  `json:"country"`
	Rating  float64 `json:"rating"`
	Manager string  `json:"manager"`
}

type TeamAnalytics struct {
	Team             TeamSummary      `json:"team"`
	Summary          AnalyticsSummary `json:"summary"`
	TopScorers       []ScorerTally    `json:"top_scorers"`
	RecordByOpponent []OpponentRecord `json:"record_by_opponent"`
}

type TeamService interface {
	RegisterTeam(ctx context.Context, input RegisterTeamInput) (*models.Team, error)
	GetTeam(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
	TeamAnalytics(ctx context.Context, country string) (*TeamAnalytics, error)
	UploadCrest(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	db        *sql.DB
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	engine    *sim.Engine
	uploader  storage.FileUploader
}

func NewTeamService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	engine *sim.Engine,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		db:        db,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		engine:    engine,
		uploader:  uploader,
	}
}

// RegisterTeam creates a federation with a freshly generated squad and its
// derived rating. The squad never changes afterwards.
func (s *teamService) RegisterTeam(ctx context.Context, input RegisterTeamInput) (*models.Team, error) {
	input.Country = strings.TrimSpace(input.Country)
	input.Manager = strings.TrimSpace(input.Manager)
	input.Representative = strings.TrimSpace(input.Representative)
	input.Email = strings.TrimSpace(input.Email)

	if input.Country == "" || input.Manager == "" || input.Representative == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: country, manager, representative and email are required", ErrValidationFailed)
	}

	squad := s.engine.GenerateSquad()
	team := &models.Team{
		Country:        input.Country,
		Manager:        input.Manager,
		Representative: input.Representative,
		Email:          input.Email,
		Squad:          squad,
		Rating:         sim.TeamRating(squad),
	}

	if err := s.teamRepo.Create(ctx, s.db, team); err != nil {
		if errors.Is(err, repositories.ErrTeamCountryConflict) {
			return nil, ErrCountryConflict
		}
		return nil, fmt.Errorf("failed to register team: %w", err)
	}

	s.populateCrestURL(team)
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.populateCrestURL(team)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, team := range teams {
		s.populateCrestURL(team)
	}
	return teams, nil
}

// TeamAnalytics aggregates a team's completed matches into a performance
// report. The team and the match list load in parallel.
func (s *teamService) TeamAnalytics(ctx context.Context, country string) (*TeamAnalytics, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, fmt.Errorf("%w: country is required", ErrValidationFailed)
	}

	var (
		team    *models.Team
		matches []*models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.teamRepo.GetByCountry(gCtx, country)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return err
		}
		team = t
		return nil
	})
	g.Go(func() error {
		completed := models.MatchStatusCompleted
		ms, err := s.matchRepo.List(gCtx, nil, &completed)
		if err != nil {
			return err
		}
		matches = ms
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	analytics := &TeamAnalytics{
		Team: TeamSummary{Country: team.Country, Rating: team.Rating, Manager: team.Manager},
	}

	byOpponent := map[string]*OpponentRecord{}
	topScorers := map[string]int{}
	var recentForm []string

	for _, m := range matches {
		if m.Result == nil {
			continue
		}
		res := m.Result
		if res.Team1 != country && res.Team2 != country {
			continue
		}

		analytics.Summary.Played++

		goalsFor, goalsAgainst := res.Team1Goals, res.Team2Goals
		opponent := res.Team2
		if res.Team2 == country {
			goalsFor, goalsAgainst = res.Team2Goals, res.Team1Goals
			opponent = res.Team1
		}
		analytics.Summary.GoalsFor += goalsFor
		analytics.Summary.GoalsAgainst += goalsAgainst

		record, ok := byOpponent[opponent]
		if !ok {
			record = &OpponentRecord{Opponent: opponent}
			byOpponent[opponent] = record
		}
		record.Played++
		record.GoalsFor += goalsFor
		record.GoalsAgainst += goalsAgainst

		if res.Winner == country {
			analytics.Summary.Wins++
			record.Wins++
			recentForm = append(recentForm, "W")
		} else {
			analytics.Summary.Losses++
			record.Losses++
			recentForm = append(recentForm, "L")
		}

		for _, goal := range res.GoalScorers {
			if goal.Team == country {
				topScorers[goal.Player]++
			}
		}
	}

	analytics.Summary.GoalDifference = analytics.Summary.GoalsFor - analytics.Summary.GoalsAgainst

	// Last five results, newest first.
	if len(recentForm) > 5 {
		recentForm = recentForm[len(recentForm)-5:]
	}
	for i, j := 0, len(recentForm)-1; i < j; i, j = i+1, j-1 {
		recentForm[i], recentForm[j] = recentForm[j], recentForm[i]
	}
	analytics.Summary.RecentForm = recentForm

	analytics.TopScorers = make([]ScorerTally, 0, len(topScorers))
	for player, goals := range topScorers {
		analytics.TopScorers = append(analytics.TopScorers, ScorerTally{Player: player, Goals: goals})
	}
	sort.Slice(analytics.TopScorers, func(i, j int) bool {
		if analytics.TopScorers[i].Goals != analytics.TopScorers[j].Goals {
			return analytics.TopScorers[i].Goals > analytics.TopScorers[j].Goals
		}
		return analytics.TopScorers[i].Player < analytics.TopScorers[j].Player
	})

	analytics.RecordByOpponent = make([]OpponentRecord, 0, len(byOpponent))
	for _, record := range byOpponent {
		analytics.RecordByOpponent = append(analytics.RecordByOpponent, *record)
	}
	sort.Slice(analytics.RecordByOpponent, func(i, j int) bool {
		if analytics.RecordByOpponent[i].Wins != analytics.RecordByOpponent[j].Wins {
			return analytics.RecordByOpponent[i].Wins > analytics.RecordByOpponent[j].Wins
		}
		return analytics.RecordByOpponent[i].Opponent < analytics.RecordByOpponent[j].Opponent
	})

	return analytics, nil
}

// UploadCrest stores a team crest and exposes its public URL on the team.
func (s *teamService) UploadCrest(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrCrestStorageUnavailable
	}

	var ext string
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	default:
		return nil, fmt.Errorf("%w: crest must be a PNG or JPEG image", ErrValidationFailed)
	}

	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("crests/team_%d%s", teamID, ext)
	uploaded, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload crest: %w", err)
	}

	if team.CrestKey != nil && *team.CrestKey != uploaded.Key {
		// Old object under a different key is stale; removal failure is
		// not worth failing the upload over.
		_ = s.uploader.Delete(ctx, *team.CrestKey)
	}

	if err := s.teamRepo.UpdateCrestKey(ctx, teamID, &uploaded.Key); err != nil {
		return nil, err
	}

	team.CrestKey = &uploaded.Key
	s.populateCrestURL(team)
	return team, nil
}

func (s *teamService) populateCrestURL(team *models.Team) {
	if s.uploader != nil && team.CrestKey != nil {
		url := s.uploader.GetPublicURL(*team.CrestKey)
		team.CrestURL = &url
	}
}
