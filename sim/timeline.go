package sim

import (
	"sort"

	"github.com/Seyram02/nations-league/models"
)

const (
	regulationMinutes = 90
	minClockStep      = 2
	maxClockStep      = 10
)

// Phase classification bands: a single uniform roll per phase falls into
// exactly one of these, in order. Everything above foulBand is a quiet phase.
const (
	goalBand   = 0.1
	saveBand   = 0.2
	chanceBand = 0.3
	foulBand   = 0.4
)

// randomFrom picks a player uniformly from pool, falling back to the whole
// squad when the positional filter comes up empty.
func (e *Engine) randomFrom(pool []models.Player, squad models.Squad) models.Player {
	if len(pool) == 0 {
		pool = squad
	}
	return pool[e.rnd.Intn(len(pool))]
}

// buildTimeline produces the regulation event sequence for detailed mode.
// The clock advances in random 2-10 minute steps; goal events stop once a
// team reaches its target count, while saves, chances and fouls are pure
// texture. Returned events are in generation order; the caller sorts once
// the full match (including any extra time) is known.
func (e *Engine) buildTimeline(team1, team2 *models.Team, target1, target2 int) ([]models.MatchEvent, []models.GoalScorer, map[string]int) {
	events := []models.MatchEvent{}
	scorers := []models.GoalScorer{}
	scored := map[string]int{team1.Country: 0, team2.Country: 0}

	targets := map[string]int{team1.Country: target1, team2.Country: target2}

	minute := 0
	for minute < regulationMinutes {
		minute += e.intBetween(minClockStep, maxClockStep)
		if minute > regulationMinutes {
			break
		}

		attacking, defending := team1, team2
		if e.rnd.Intn(2) == 1 {
			attacking, defending = team2, team1
		}

		roll := e.rnd.Float64()
		switch {
		case roll < goalBand && scored[attacking.Country] < targets[attacking.Country]:
			scorer := e.randomFrom(attacking.Squad.ByPosition(models.PositionMidfielder, models.PositionAttacker), attacking.Squad)
			events = append(events, models.MatchEvent{
				Minute: minute,
				Kind:   models.EventGoal,
				Team:   attacking.Country,
				Player: scorer.Name,
			})
			scorers = append(scorers, models.GoalScorer{Minute: minute, Player: scorer.Name, Team: attacking.Country})
			scored[attacking.Country]++

		case roll >= goalBand && roll < saveBand:
			keeper := e.randomFrom(defending.Squad.ByPosition(models.PositionGoalkeeper), defending.Squad)
			events = append(events, models.MatchEvent{
				Minute: minute,
				Kind:   models.EventSave,
				Team:   defending.Country,
				Player: keeper.Name,
			})

		case roll >= saveBand && roll < chanceBand:
			creator := e.randomFrom(attacking.Squad.ByPosition(models.PositionMidfielder, models.PositionAttacker), attacking.Squad)
			events = append(events, models.MatchEvent{
				Minute: minute,
				Kind:   models.EventChance,
				Team:   attacking.Country,
				Player: creator.Name,
			})

		case roll >= chanceBand && roll < foulBand:
			offender := e.randomFrom(attacking.Squad, attacking.Squad)
			events = append(events, models.MatchEvent{
				Minute: minute,
				Kind:   models.EventFoul,
				Team:   attacking.Country,
				Player: offender.Name,
			})
		}
	}

	return events, scorers, scored
}

// quickScorers synthesizes a scorer list without a timeline: one random
// midfielder or attacker per target goal, minutes uniform in [5, 85].
func (e *Engine) quickScorers(team *models.Team, goals int) []models.GoalScorer {
	return e.scorersFor(team, goals, 5, 85)
}

func (e *Engine) scorersFor(team *models.Team, goals, minMinute, maxMinute int) []models.GoalScorer {
	scorers := make([]models.GoalScorer, 0, goals)
	for i := 0; i < goals; i++ {
		scorer := e.randomFrom(team.Squad.ByPosition(models.PositionMidfielder, models.PositionAttacker), team.Squad)
		scorers = append(scorers, models.GoalScorer{
			Minute: e.intBetween(minMinute, maxMinute),
			Player: scorer.Name,
			Team:   team.Country,
		})
	}
	return scorers
}

// BackfillScorers fills in a scorer list for a completed match that recorded
// goals but no scorers: minutes uniform in [5, 120], sorted ascending.
func (e *Engine) BackfillScorers(team1, team2 *models.Team, goals1, goals2 int) []models.GoalScorer {
	e.mu.Lock()
	defer e.mu.Unlock()

	scorers := append(e.scorersFor(team1, goals1, 5, 120), e.scorersFor(team2, goals2, 5, 120)...)
	sort.SliceStable(scorers, func(i, j int) bool { return scorers[i].Minute < scorers[j].Minute })
	return scorers
}
