package services

import (
	"context"
	"sort"
	"time"

	"github.com/Seyram02/nations-league/models"
	"github.com/Seyram02/nations-league/repositories"
)

type recordCall struct {
	teamID                     int
	wins, losses               int
	goalsFor, goalsAgainst     int
}

type fakeTeamRepo struct {
	teams       map[int]*models.Team
	recordCalls []recordCall
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: map[int]*models.Team{}}
}

func (f *fakeTeamRepo) Create(_ context.Context, _ repositories.SQLExecutor, team *models.Team) error {
	for _, t := range f.teams {
		if t.Country == team.Country {
			return repositories.ErrTeamCountryConflict
		}
	}
	team.ID = len(f.teams) + 1
	team.RegisteredAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(team.ID) * time.Minute)
	f.teams[team.ID] = team
	return nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return team, nil
}

func (f *fakeTeamRepo) GetByCountry(_ context.Context, country string) (*models.Team, error) {
	for _, t := range f.teams {
		if t.Country == country {
			return t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (f *fakeTeamRepo) List(_ context.Context) ([]*models.Team, error) {
	out := make([]*models.Team, 0, len(f.teams))
	for _, t := range f.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTeamRepo) AddToRecord(_ context.Context, _ repositories.SQLExecutor, id, wins, losses, goalsFor, goalsAgainst int) error {
	team, ok := f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.Wins += wins
	team.Losses += losses
	team.GoalsFor += goalsFor
	team.GoalsAgainst += goalsAgainst
	f.recordCalls = append(f.recordCalls, recordCall{id, wins, losses, goalsFor, goalsAgainst})
	return nil
}

func (f *fakeTeamRepo) UpdateCrestKey(_ context.Context, id int, key *string) error {
	team, ok := f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.CrestKey = key
	return nil
}

type fakeMatchRepo struct {
	matches map[int]*models.Match
	nextID  int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[int]*models.Match{}, nextID: 1}
}

func (f *fakeMatchRepo) add(match *models.Match) *models.Match {
	match.ID = f.nextID
	match.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.nextID) * time.Minute)
	f.nextID++
	f.matches[match.ID] = match
	return match
}

func (f *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	if match.Status == "" {
		match.Status = models.MatchStatusScheduled
	}
	f.add(match)
	return nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	match, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return match, nil
}

func (f *fakeMatchRepo) List(_ context.Context, round *models.Round, status *models.MatchStatus) ([]*models.Match, error) {
	out := make([]*models.Match, 0, len(f.matches))
	for _, m := range f.matches {
		if round != nil && m.Round != *round {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMatchRepo) Complete(_ context.Context, id int, result *models.MatchResult) error {
	match, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	if match.Status != models.MatchStatusScheduled {
		return repositories.ErrMatchAlreadyCompleted
	}
	now := time.Now()
	match.Status = models.MatchStatusCompleted
	match.Result = result
	match.CompletedAt = &now
	return nil
}

func (f *fakeMatchRepo) UpdateResult(_ context.Context, id int, result *models.MatchResult) error {
	match, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Result = result
	return nil
}

func (f *fakeMatchRepo) DeleteAll(_ context.Context, _ repositories.SQLExecutor) error {
	f.matches = map[int]*models.Match{}
	return nil
}
