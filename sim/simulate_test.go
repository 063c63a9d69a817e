package sim

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/Seyram02/nations-league/models"
)

func testTeam(engine *Engine, id int, country string) *models.Team {
	squad := engine.GenerateSquad()
	return &models.Team{
		ID:      id,
		Country: country,
		Squad:   squad,
		Rating:  TeamRating(squad),
	}
}

func TestSimulateQuickResultConsistency(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(10)))
	team1 := testTeam(engine, 1, "Nigeria")
	team2 := testTeam(engine, 2, "Ghana")

	for i := 0; i < 200; i++ {
		result := engine.Simulate(team1, team2, Options{})

		wantScore := fmt.Sprintf("%d-%d", result.Team1Goals, result.Team2Goals)
		if result.Score != wantScore {
			t.Fatalf("score %q does not match goal counts %q", result.Score, wantScore)
		}
		if len(result.GoalScorers) != result.Team1Goals+result.Team2Goals {
			t.Fatalf("expected %d scorers, got %d", result.Team1Goals+result.Team2Goals, len(result.GoalScorers))
		}
		if result.DecidedBy != models.DecidedByRegulation {
			t.Fatalf("friendly decided by %s", result.DecidedBy)
		}
		if result.PenaltyScore != nil {
			t.Fatal("friendly produced a penalty score")
		}
		if result.ExtraTime {
			t.Fatal("friendly went to extra time")
		}

		switch {
		case result.Team1Goals > result.Team2Goals:
			if result.Winner != team1.Country {
				t.Fatalf("winner %q, expected %q", result.Winner, team1.Country)
			}
		case result.Team2Goals > result.Team1Goals:
			if result.Winner != team2.Country {
				t.Fatalf("winner %q, expected %q", result.Winner, team2.Country)
			}
		default:
			if result.Winner != models.WinnerDraw {
				t.Fatalf("tied friendly has winner %q", result.Winner)
			}
		}
	}
}

func TestSimulateKnockoutNeverDraws(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(11)))
	team1 := testTeam(engine, 1, "Senegal")
	team2 := testTeam(engine, 2, "Morocco")

	sawPenalties := false
	for i := 0; i < 500; i++ {
		result := engine.Simulate(team1, team2, Options{Knockout: true})

		if result.Winner == models.WinnerDraw {
			t.Fatal("knockout match ended in a draw")
		}
		if result.Winner != team1.Country && result.Winner != team2.Country {
			t.Fatalf("winner %q is neither side", result.Winner)
		}

		switch result.DecidedBy {
		case models.DecidedByRegulation:
			if result.ExtraTime {
				t.Fatal("regulation decision flagged extra time")
			}
			if result.Team1Goals == result.Team2Goals {
				t.Fatal("regulation decision with level goals")
			}
		case models.DecidedByExtraTime:
			if !result.ExtraTime {
				t.Fatal("extra time decision without extra time flag")
			}
			if result.Team1Goals == result.Team2Goals {
				t.Fatal("extra time decision with level goals")
			}
		case models.DecidedByPenalties:
			sawPenalties = true
			if result.Team1Goals != result.Team2Goals {
				t.Fatal("penalty decision with unequal goal counts")
			}
			if result.PenaltyScore == nil {
				t.Fatal("penalty decision without a shootout score")
			}
			var tally1, tally2 int
			if _, err := fmt.Sscanf(*result.PenaltyScore, "%d-%d", &tally1, &tally2); err != nil {
				t.Fatalf("unparseable penalty score %q", *result.PenaltyScore)
			}
			if tally1 == tally2 {
				t.Fatalf("level shootout score %q", *result.PenaltyScore)
			}
			winnerByTally := team2.Country
			if tally1 > tally2 {
				winnerByTally = team1.Country
			}
			if result.Winner != winnerByTally {
				t.Fatalf("winner %q contradicts shootout score %q", result.Winner, *result.PenaltyScore)
			}
		}
	}

	if !sawPenalties {
		t.Error("expected at least one shootout across 500 knockout simulations")
	}
}

func TestSimulateDetailedTimeline(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(12)))
	team1 := testTeam(engine, 1, "Egypt")
	team2 := testTeam(engine, 2, "Cameroon")

	for i := 0; i < 100; i++ {
		result := engine.Simulate(team1, team2, Options{Detailed: true})

		for j := 1; j < len(result.Events); j++ {
			if result.Events[j].Minute < result.Events[j-1].Minute {
				t.Fatalf("events out of order at index %d", j)
			}
		}

		goalsByTeam := map[string]int{}
		for _, ev := range result.Events {
			if ev.Minute < 1 || ev.Minute > 120 {
				t.Fatalf("event minute %d out of range", ev.Minute)
			}
			if ev.Kind == models.EventGoal {
				goalsByTeam[ev.Team]++
			}
		}

		// The clock can run out before every computed goal is placed, so
		// the timeline may undershoot but never overshoot the score.
		if goalsByTeam[team1.Country] > result.Team1Goals {
			t.Fatalf("%d timeline goals for %s exceed score of %d", goalsByTeam[team1.Country], team1.Country, result.Team1Goals)
		}
		if goalsByTeam[team2.Country] > result.Team2Goals {
			t.Fatalf("%d timeline goals for %s exceed score of %d", goalsByTeam[team2.Country], team2.Country, result.Team2Goals)
		}
		if len(result.GoalScorers) != goalsByTeam[team1.Country]+goalsByTeam[team2.Country] {
			t.Fatalf("scorer list length %d does not match %d timeline goals",
				len(result.GoalScorers), goalsByTeam[team1.Country]+goalsByTeam[team2.Country])
		}
	}
}

func TestSimulateDetailedKnockoutShootoutMarker(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(13)))
	team1 := testTeam(engine, 1, "Algeria")
	team2 := testTeam(engine, 2, "Tunisia")

	sawMarker := false
	for i := 0; i < 500 && !sawMarker; i++ {
		result := engine.Simulate(team1, team2, Options{Detailed: true, Knockout: true})
		if result.DecidedBy != models.DecidedByPenalties {
			continue
		}
		for _, ev := range result.Events {
			if ev.Kind == models.EventPenalties {
				sawMarker = true
				if ev.Minute != 120 {
					t.Errorf("shootout marker at minute %d, expected 120", ev.Minute)
				}
				if ev.Team != "Both" {
					t.Errorf("shootout marker team %q, expected Both", ev.Team)
				}
			}
		}
		if !sawMarker {
			t.Fatal("penalty decision without a shootout marker event")
		}
	}

	if !sawMarker {
		t.Error("expected at least one shootout across 500 detailed knockouts")
	}
}

func TestPenaltyShootoutAlwaysDecides(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(14)))

	for i := 0; i < 1000; i++ {
		tally1, tally2 := engine.penaltyShootout(90, 70)
		if tally1 == tally2 {
			t.Fatalf("level shootout %d-%d", tally1, tally2)
		}
		if tally1 < 0 || tally2 < 0 {
			t.Fatalf("negative tally %d-%d", tally1, tally2)
		}
	}
}

func TestBackfillScorers(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(15)))
	team1 := testTeam(engine, 1, "Mali")
	team2 := testTeam(engine, 2, "Kenya")

	scorers := engine.BackfillScorers(team1, team2, 3, 2)
	if len(scorers) != 5 {
		t.Fatalf("expected 5 scorers, got %d", len(scorers))
	}

	counts := map[string]int{}
	for i, s := range scorers {
		counts[s.Team]++
		if s.Minute < 5 || s.Minute > 120 {
			t.Errorf("scorer minute %d out of range", s.Minute)
		}
		if i > 0 && scorers[i].Minute < scorers[i-1].Minute {
			t.Errorf("scorers not sorted at index %d", i)
		}
	}
	if counts[team1.Country] != 3 || counts[team2.Country] != 2 {
		t.Errorf("scorer split %v does not match goal counts", counts)
	}
}
