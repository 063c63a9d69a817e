package sim

import (
	"math/rand"
	"testing"

	"github.com/Seyram02/nations-league/models"
)

func TestGenerateSquadComposition(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(1)))
	squad := engine.GenerateSquad()

	if len(squad) != SquadSize {
		t.Fatalf("expected %d players, got %d", SquadSize, len(squad))
	}

	counts := map[models.Position]int{}
	captains := 0
	seenJerseys := map[int]bool{}
	for _, p := range squad {
		counts[p.NaturalPosition]++
		if p.IsCaptain {
			captains++
		}
		if seenJerseys[p.JerseyNumber] {
			t.Errorf("duplicate jersey number %d", p.JerseyNumber)
		}
		seenJerseys[p.JerseyNumber] = true
		if p.JerseyNumber < 1 || p.JerseyNumber > SquadSize {
			t.Errorf("jersey number %d out of range", p.JerseyNumber)
		}
	}

	want := map[models.Position]int{
		models.PositionGoalkeeper: 3,
		models.PositionDefender:   8,
		models.PositionMidfielder: 8,
		models.PositionAttacker:   4,
	}
	for pos, n := range want {
		if counts[pos] != n {
			t.Errorf("expected %d players at %s, got %d", n, pos, counts[pos])
		}
	}

	if captains != 1 {
		t.Errorf("expected exactly one captain, got %d", captains)
	}
}

func TestGenerateSquadRatingBounds(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(2)))

	for i := 0; i < 20; i++ {
		squad := engine.GenerateSquad()
		for _, p := range squad {
			for pos, rating := range p.Ratings {
				if pos == p.NaturalPosition {
					if rating < naturalRatingMin || rating > naturalRatingMax {
						t.Fatalf("natural rating %d for %s outside [%d, %d]", rating, pos, naturalRatingMin, naturalRatingMax)
					}
				} else if rating < offRatingMin || rating > offRatingMax {
					t.Fatalf("off-position rating %d for %s outside [%d, %d]", rating, pos, offRatingMin, offRatingMax)
				}
			}
		}
	}
}

func TestGenerateSquadDeterministicWithSeed(t *testing.T) {
	a := NewEngine(rand.New(rand.NewSource(7))).GenerateSquad()
	b := NewEngine(rand.New(rand.NewSource(7))).GenerateSquad()

	for i := range a {
		if a[i].Name != b[i].Name || a[i].IsCaptain != b[i].IsCaptain {
			t.Fatalf("player %d differs between identically seeded engines", i)
		}
		for pos := range a[i].Ratings {
			if a[i].Ratings[pos] != b[i].Ratings[pos] {
				t.Fatalf("player %d rating at %s differs between identically seeded engines", i, pos)
			}
		}
	}
}

func TestTeamRating(t *testing.T) {
	squad := models.Squad{
		{NaturalPosition: models.PositionGoalkeeper, Ratings: map[models.Position]int{models.PositionGoalkeeper: 80}},
		{NaturalPosition: models.PositionAttacker, Ratings: map[models.Position]int{models.PositionAttacker: 85}},
		{NaturalPosition: models.PositionDefender, Ratings: map[models.Position]int{models.PositionDefender: 90}},
	}

	got := TeamRating(squad)
	if got != 85.0 {
		t.Errorf("expected rating 85.0, got %v", got)
	}
}

func TestTeamRatingRounding(t *testing.T) {
	squad := models.Squad{
		{NaturalPosition: models.PositionAttacker, Ratings: map[models.Position]int{models.PositionAttacker: 80}},
		{NaturalPosition: models.PositionAttacker, Ratings: map[models.Position]int{models.PositionAttacker: 80}},
		{NaturalPosition: models.PositionAttacker, Ratings: map[models.Position]int{models.PositionAttacker: 81}},
	}

	// 241/3 = 80.333...
	got := TeamRating(squad)
	if got != 80.33 {
		t.Errorf("expected rating 80.33, got %v", got)
	}
}

func TestTeamRatingEmptySquad(t *testing.T) {
	if got := TeamRating(nil); got != 0 {
		t.Errorf("expected 0 for empty squad, got %v", got)
	}
}
