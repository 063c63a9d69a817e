package sim

import (
	"math/rand"
	"testing"
)

func TestRegulationGoalsWithinBounds(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(3)))

	for i := 0; i < 1000; i++ {
		goals1, goals2, base1, base2 := engine.regulationGoals(85, 75)
		if goals1 < 0 || goals1 > maxRegulationGoals {
			t.Fatalf("goals1 = %d outside [0, %d]", goals1, maxRegulationGoals)
		}
		if goals2 < 0 || goals2 > maxRegulationGoals {
			t.Fatalf("goals2 = %d outside [0, %d]", goals2, maxRegulationGoals)
		}
		if base1 < minExpectedGoals || base2 < minExpectedGoals {
			t.Fatalf("expectation below floor: %v, %v", base1, base2)
		}
	}
}

func TestRegulationGoalsFavorStrongerTeam(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(4)))

	strong, weak := 0, 0
	for i := 0; i < 2000; i++ {
		goals1, goals2, _, _ := engine.regulationGoals(95, 70)
		strong += goals1
		weak += goals2
	}

	if strong <= weak {
		t.Errorf("expected the stronger side to outscore over many runs: strong=%d weak=%d", strong, weak)
	}
}

func TestExtraTimeGoalsCapped(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(5)))

	for i := 0; i < 1000; i++ {
		goals := engine.extraTimeGoals(2.5)
		if goals < 0 || goals > maxExtraTimeGoals {
			t.Fatalf("extra time goals = %d outside [0, %d]", goals, maxExtraTimeGoals)
		}
	}
}

func TestPoissonApproxNonPositiveLambda(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(6)))

	if got := engine.poissonApprox(0); got != 0 {
		t.Errorf("expected 0 for lambda 0, got %d", got)
	}
	if got := engine.poissonApprox(-1); got != 0 {
		t.Errorf("expected 0 for negative lambda, got %d", got)
	}
}

func TestPoissonApproxNeverNegative(t *testing.T) {
	engine := NewEngine(rand.New(rand.NewSource(7)))

	for i := 0; i < 5000; i++ {
		if got := engine.poissonApprox(0.2); got < 0 {
			t.Fatalf("negative draw %d", got)
		}
	}
}
