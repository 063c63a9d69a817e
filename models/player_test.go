package models

import "testing"

func TestSquadByPosition(t *testing.T) {
	squad := Squad{
		{Name: "A", NaturalPosition: PositionGoalkeeper},
		{Name: "B", NaturalPosition: PositionDefender},
		{Name: "C", NaturalPosition: PositionMidfielder},
		{Name: "D", NaturalPosition: PositionAttacker},
		{Name: "E", NaturalPosition: PositionAttacker},
	}

	forwards := squad.ByPosition(PositionMidfielder, PositionAttacker)
	if len(forwards) != 3 {
		t.Fatalf("expected 3 players, got %d", len(forwards))
	}
	for _, p := range forwards {
		if p.NaturalPosition == PositionGoalkeeper || p.NaturalPosition == PositionDefender {
			t.Errorf("unexpected %s in attacking pool", p.NaturalPosition)
		}
	}

	if got := squad.ByPosition(PositionGoalkeeper); len(got) != 1 || got[0].Name != "A" {
		t.Errorf("goalkeeper filter returned %v", got)
	}
}

func TestNaturalRating(t *testing.T) {
	p := Player{
		NaturalPosition: PositionAttacker,
		Ratings: map[Position]int{
			PositionAttacker:   88,
			PositionGoalkeeper: 20,
		},
	}
	if got := p.NaturalRating(); got != 88 {
		t.Errorf("expected 88, got %d", got)
	}
}

func TestRoundIsKnockout(t *testing.T) {
	for _, round := range []Round{RoundQuarterfinal, RoundSemifinal, RoundFinal} {
		if !round.IsKnockout() {
			t.Errorf("%s should be a knockout round", round)
		}
	}
	if RoundFriendly.IsKnockout() {
		t.Error("friendly should not be a knockout round")
	}
}
