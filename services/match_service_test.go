package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/Seyram02/nations-league/models"
	"github.com/Seyram02/nations-league/sim"
)

func newMatchServiceForTest(seed int64, teamCount int) (MatchService, *fakeTeamRepo, *fakeMatchRepo) {
	teamRepo := newFakeTeamRepo()
	matchRepo := newFakeMatchRepo()
	engine := sim.NewEngine(rand.New(rand.NewSource(seed)))

	countries := []string{"Nigeria", "Ghana", "Senegal", "Morocco", "Egypt", "Cameroon", "Algeria", "Tunisia"}
	for i := 0; i < teamCount; i++ {
		squad := engine.GenerateSquad()
		teamRepo.teams[i+1] = &models.Team{
			ID:      i + 1,
			Country: countries[i],
			Manager: "M",
			Squad:   squad,
			Rating:  sim.TeamRating(squad),
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewMatchService(nil, matchRepo, teamRepo, engine, nil, nil, nil, logger)
	return svc, teamRepo, matchRepo
}

func TestSimulateMatchCompletesAndRecords(t *testing.T) {
	svc, teamRepo, matchRepo := newMatchServiceForTest(20, 2)
	ctx := context.Background()

	scheduled := matchRepo.add(&models.Match{
		Round: models.RoundFriendly, Team1ID: 1, Team2ID: 2,
		Status: models.MatchStatusScheduled,
	})

	match, err := svc.SimulateMatch(ctx, scheduled.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match.Status != models.MatchStatusCompleted {
		t.Fatalf("match status %s, expected completed", match.Status)
	}
	if match.Result == nil {
		t.Fatal("completed match has no result")
	}
	if match.Result.Commentary != nil || match.Result.MatchPreview != "" {
		t.Error("quick simulation should not generate text")
	}

	if len(teamRepo.recordCalls) != 2 {
		t.Fatalf("expected 2 record updates, got %d", len(teamRepo.recordCalls))
	}
	res := match.Result
	for _, call := range teamRepo.recordCalls {
		switch call.teamID {
		case 1:
			if call.goalsFor != res.Team1Goals || call.goalsAgainst != res.Team2Goals {
				t.Errorf("team 1 record %+v does not match result %s", call, res.Score)
			}
		case 2:
			if call.goalsFor != res.Team2Goals || call.goalsAgainst != res.Team1Goals {
				t.Errorf("team 2 record %+v does not match result %s", call, res.Score)
			}
		default:
			t.Errorf("record update for unexpected team %d", call.teamID)
		}
		if res.Winner == models.WinnerDraw && (call.wins != 0 || call.losses != 0) {
			t.Errorf("drawn match changed win/loss counters: %+v", call)
		}
	}
}

func TestSimulateMatchAlreadyCompleted(t *testing.T) {
	svc, _, matchRepo := newMatchServiceForTest(21, 2)
	ctx := context.Background()

	match := matchRepo.add(&models.Match{
		Round: models.RoundFriendly, Team1ID: 1, Team2ID: 2,
		Status: models.MatchStatusScheduled,
	})

	if _, err := svc.SimulateMatch(ctx, match.ID, false); err != nil {
		t.Fatalf("first simulation failed: %v", err)
	}
	if _, err := svc.SimulateMatch(ctx, match.ID, false); !errors.Is(err, ErrMatchAlreadyCompleted) {
		t.Errorf("expected ErrMatchAlreadyCompleted, got %v", err)
	}
}

func TestSimulateMatchDetailedUsesFallbackText(t *testing.T) {
	svc, _, matchRepo := newMatchServiceForTest(22, 2)
	ctx := context.Background()

	match := matchRepo.add(&models.Match{
		Round: models.RoundFriendly, Team1ID: 1, Team2ID: 2,
		Status: models.MatchStatusScheduled,
	})

	completed, err := svc.SimulateMatch(ctx, match.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := completed.Result
	if res.MatchPreview == "" {
		t.Error("detailed simulation without preview")
	}
	if len(res.Commentary) != len(res.Events) {
		t.Errorf("expected one commentary line per event: %d lines, %d events", len(res.Commentary), len(res.Events))
	}
}

func TestSimulateFinalQuarterfinalAdvancesBracket(t *testing.T) {
	svc, teamRepo, matchRepo := newMatchServiceForTest(23, 8)
	ctx := context.Background()

	// Three quarterfinals already decided, the fourth still scheduled.
	winners := []int{1, 3, 5}
	for i := 0; i < 3; i++ {
		t1, t2 := teamRepo.teams[i*2+1], teamRepo.teams[i*2+2]
		matchRepo.add(&models.Match{
			Round: models.RoundQuarterfinal, Team1ID: t1.ID, Team2ID: t2.ID,
			Status: models.MatchStatusCompleted,
			Result: completedResult(t1.Country, 1, t2.Country, 0, teamRepo.teams[winners[i]].Country, []models.GoalScorer{
				{Minute: 40, Player: "Scorer", Team: t1.Country},
			}),
		})
	}
	lastQF := matchRepo.add(&models.Match{
		Round: models.RoundQuarterfinal, Team1ID: 7, Team2ID: 8,
		Status: models.MatchStatusScheduled,
	})

	completed, err := svc.SimulateMatch(ctx, lastQF.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	semis, err := matchRepo.List(ctx, roundPtr(models.RoundSemifinal), nil)
	if err != nil {
		t.Fatalf("listing semifinals: %v", err)
	}
	if len(semis) != 2 {
		t.Fatalf("expected 2 semifinals after the last quarterfinal, got %d", len(semis))
	}

	if semis[0].Team1ID != 1 || semis[0].Team2ID != 3 {
		t.Errorf("first semifinal pairs %d vs %d, expected 1 vs 3", semis[0].Team1ID, semis[0].Team2ID)
	}
	lastWinnerID := completed.Team1ID
	if completed.Result.Winner == teamRepo.teams[8].Country {
		lastWinnerID = completed.Team2ID
	}
	if semis[1].Team1ID != 5 || semis[1].Team2ID != lastWinnerID {
		t.Errorf("second semifinal pairs %d vs %d, expected 5 vs %d", semis[1].Team1ID, semis[1].Team2ID, lastWinnerID)
	}

	for _, sf := range semis {
		if sf.Status != models.MatchStatusScheduled {
			t.Errorf("new semifinal created with status %s", sf.Status)
		}
	}
}

func TestGetMatchBackfillsScorers(t *testing.T) {
	svc, _, matchRepo := newMatchServiceForTest(24, 2)
	ctx := context.Background()

	match := matchRepo.add(&models.Match{
		Round: models.RoundFriendly, Team1ID: 1, Team2ID: 2,
		Status: models.MatchStatusCompleted,
		Result: completedResult("Nigeria", 2, "Ghana", 1, "Nigeria", nil),
	})

	got, err := svc.GetMatch(ctx, match.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Result.GoalScorers) != 3 {
		t.Fatalf("expected 3 backfilled scorers, got %d", len(got.Result.GoalScorers))
	}

	// The synthesized list must be persisted.
	if len(matchRepo.matches[match.ID].Result.GoalScorers) != 3 {
		t.Error("backfilled scorers were not stored")
	}
}

func TestMatchPreviewFallback(t *testing.T) {
	svc, _, matchRepo := newMatchServiceForTest(25, 2)
	ctx := context.Background()

	match := matchRepo.add(&models.Match{
		Round: models.RoundFriendly, Team1ID: 1, Team2ID: 2,
		Status: models.MatchStatusScheduled,
	})

	preview, err := svc.MatchPreview(ctx, match.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(preview, "Nigeria") || !strings.Contains(preview, "Ghana") {
		t.Errorf("preview does not name both teams: %q", preview)
	}
}

func TestPlayerAnalysisNonScorer(t *testing.T) {
	svc, teamRepo, matchRepo := newMatchServiceForTest(26, 2)
	ctx := context.Background()

	match := matchRepo.add(&models.Match{
		Round: models.RoundFriendly, Team1ID: 1, Team2ID: 2,
		Status: models.MatchStatusCompleted,
		Result: completedResult("Nigeria", 0, "Ghana", 0, models.WinnerDraw, nil),
	})

	player := teamRepo.teams[1].Squad[0]
	analysis, err := svc.PlayerAnalysis(ctx, match.ID, player.Name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(analysis.Analysis, "did not score") {
		t.Errorf("expected did-not-score wording: %q", analysis.Analysis)
	}

	if _, err := svc.PlayerAnalysis(ctx, match.ID, "Nobody Atall"); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got %v", err)
	}
}

func roundPtr(r models.Round) *models.Round { return &r }
