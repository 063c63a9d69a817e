package brackets

import (
	"errors"
	"sort"

	"github.com/Seyram02/nations-league/models"
)

// RequiredTeams is the fixed bracket size: 8 teams seed exactly 4
// quarterfinals.
const RequiredTeams = 8

var ErrTeamCountInvalid = errors.New("exactly 8 teams are required to seed the bracket")

// Fixture is a match to be created; progression returns fixtures without
// persisting them.
type Fixture struct {
	Round   models.Round `json:"round"`
	Team1ID int          `json:"team1_id"`
	Team2ID int          `json:"team2_id"`
}

// SeedQuarterfinals pairs the registered teams into the opening round in
// registration order: (1,2), (3,4), (5,6), (7,8). Any team count other than
// 8 is rejected before a single fixture is produced.
func SeedQuarterfinals(teams []*models.Team) ([]Fixture, error) {
	if len(teams) != RequiredTeams {
		return nil, ErrTeamCountInvalid
	}
	fixtures := make([]Fixture, 0, RequiredTeams/2)
	for i := 0; i < RequiredTeams; i += 2 {
		fixtures = append(fixtures, Fixture{
			Round:   models.RoundQuarterfinal,
			Team1ID: teams[i].ID,
			Team2ID: teams[i+1].ID,
		})
	}
	return fixtures, nil
}

// NextFixtures inspects a snapshot of all matches and returns the fixtures
// the bracket owes: semifinals once every quarterfinal is completed, the
// final once both semifinals are. Pairing follows creation order: W(QF1) vs
// W(QF2), W(QF3) vs W(QF4), then W(SF1) vs W(SF2). The function is
// idempotent: a round that already exists is never created again, regardless
// of how many of its matches are present.
func NextFixtures(matches []*models.Match) []Fixture {
	byRound := map[models.Round][]*models.Match{}
	for _, m := range matches {
		byRound[m.Round] = append(byRound[m.Round], m)
	}

	var fixtures []Fixture

	if allCompleted(byRound[models.RoundQuarterfinal]) && len(byRound[models.RoundSemifinal]) == 0 {
		winners := roundWinners(byRound[models.RoundQuarterfinal])
		if len(winners) >= 4 {
			fixtures = append(fixtures,
				Fixture{Round: models.RoundSemifinal, Team1ID: winners[0], Team2ID: winners[1]},
				Fixture{Round: models.RoundSemifinal, Team1ID: winners[2], Team2ID: winners[3]},
			)
		}
	}

	if allCompleted(byRound[models.RoundSemifinal]) && len(byRound[models.RoundFinal]) == 0 {
		winners := roundWinners(byRound[models.RoundSemifinal])
		if len(winners) >= 2 {
			fixtures = append(fixtures,
				Fixture{Round: models.RoundFinal, Team1ID: winners[0], Team2ID: winners[1]},
			)
		}
	}

	return fixtures
}

func allCompleted(matches []*models.Match) bool {
	if len(matches) == 0 {
		return false
	}
	for _, m := range matches {
		if m.Status != models.MatchStatusCompleted {
			return false
		}
	}
	return true
}

// roundWinners returns the winning team IDs of a round in bracket order
// (creation time, then ID for stability). Matches whose winner cannot be
// resolved are skipped rather than failing the whole progression.
func roundWinners(matches []*models.Match) []int {
	ordered := make([]*models.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	winners := make([]int, 0, len(ordered))
	for _, m := range ordered {
		if id, ok := winnerTeamID(m); ok {
			winners = append(winners, id)
		}
	}
	return winners
}

func winnerTeamID(m *models.Match) (int, bool) {
	if m.Result == nil || m.Result.Winner == "" || m.Result.Winner == models.WinnerDraw {
		return 0, false
	}
	if m.Team1 != nil && m.Team1.Country == m.Result.Winner {
		return m.Team1ID, true
	}
	if m.Team2 != nil && m.Team2.Country == m.Result.Winner {
		return m.Team2ID, true
	}
	return 0, false
}
