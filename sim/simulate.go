package sim

import (
	"fmt"
	"sort"
	"time"

	"github.com/Seyram02/nations-league/models"
)

const (
	extraTimeStart = 91
	matchEnd       = 120
)

// Simulate plays out a full match between two teams. It is a pure function
// of its inputs and the engine's random source: no I/O, no shared state
// beyond the guarded source. A knockout match never returns a draw; the
// resolver walks regulation → extra time → penalties until decided.
func (e *Engine) Simulate(team1, team2 *models.Team, opts Options) *models.MatchResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	goals1, goals2, base1, base2 := e.regulationGoals(team1.Rating, team2.Rating)

	var events []models.MatchEvent
	var scorers []models.GoalScorer
	if opts.Detailed {
		events, scorers, _ = e.buildTimeline(team1, team2, goals1, goals2)
	} else {
		scorers = append(e.quickScorers(team1, goals1), e.quickScorers(team2, goals2)...)
	}

	decidedBy := models.DecidedByRegulation
	var penaltyScore *string
	extraTime := false

	if opts.Knockout && goals1 == goals2 {
		extraTime = true
		extra1 := e.extraTimeGoals(base1)
		extra2 := e.extraTimeGoals(base2)

		if opts.Detailed {
			events, scorers = e.appendExtraTimeGoals(events, scorers, team1, extra1)
			events, scorers = e.appendExtraTimeGoals(events, scorers, team2, extra2)
		}

		goals1 += extra1
		goals2 += extra2

		if goals1 != goals2 {
			decidedBy = models.DecidedByExtraTime
		} else {
			decidedBy = models.DecidedByPenalties
			tally1, tally2 := e.penaltyShootout(team1.Rating, team2.Rating)
			score := fmt.Sprintf("%d-%d", tally1, tally2)
			penaltyScore = &score

			if opts.Detailed {
				events = append(events, models.MatchEvent{
					Minute: matchEnd,
					Kind:   models.EventPenalties,
					Team:   "Both",
					Player: "Shootout " + score,
				})
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Minute < events[j].Minute
	})

	return &models.MatchResult{
		Team1:        team1.Country,
		Team2:        team2.Country,
		Score:        fmt.Sprintf("%d-%d", goals1, goals2),
		Team1Goals:   goals1,
		Team2Goals:   goals2,
		Winner:       winner(team1, team2, goals1, goals2, penaltyScore, opts.Knockout),
		Events:       events,
		GoalScorers:  scorers,
		DecidedBy:    decidedBy,
		PenaltyScore: penaltyScore,
		ExtraTime:    extraTime,
		SimulatedAt:  time.Now(),
	}
}

// appendExtraTimeGoals adds goal events with minutes uniform in [91, 120]
// for one team's extra-time tally.
func (e *Engine) appendExtraTimeGoals(events []models.MatchEvent, scorers []models.GoalScorer, team *models.Team, goals int) ([]models.MatchEvent, []models.GoalScorer) {
	for i := 0; i < goals; i++ {
		minute := e.intBetween(extraTimeStart, matchEnd)
		scorer := e.randomFrom(team.Squad.ByPosition(models.PositionMidfielder, models.PositionAttacker), team.Squad)
		events = append(events, models.MatchEvent{
			Minute: minute,
			Kind:   models.EventGoal,
			Team:   team.Country,
			Player: scorer.Name,
		})
		scorers = append(scorers, models.GoalScorer{Minute: minute, Player: scorer.Name, Team: team.Country})
	}
	return events, scorers
}

// winner applies the decision rules: higher goal count wins; a tied knockout
// is settled by the shootout tally without touching the goal totals; a tied
// friendly is a draw.
func winner(team1, team2 *models.Team, goals1, goals2 int, penaltyScore *string, knockout bool) string {
	switch {
	case goals1 > goals2:
		return team1.Country
	case goals2 > goals1:
		return team2.Country
	case knockout:
		var tally1, tally2 int
		if penaltyScore != nil {
			fmt.Sscanf(*penaltyScore, "%d-%d", &tally1, &tally2)
		}
		if tally1 > tally2 {
			return team1.Country
		}
		return team2.Country
	default:
		return models.WinnerDraw
	}
}
