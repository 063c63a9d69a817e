package sim

import (
	"fmt"
	"math"

	"github.com/Seyram02/nations-league/models"
)

const SquadSize = 23

// squadDistribution fixes the positional makeup of every generated squad.
var squadDistribution = []struct {
	Position models.Position
	Count    int
}{
	{models.PositionGoalkeeper, 3},
	{models.PositionDefender, 8},
	{models.PositionMidfielder, 8},
	{models.PositionAttacker, 4},
}

var firstNames = []string{
	"John", "David", "Michael", "James", "Robert", "Mohamed", "Ahmed", "Ibrahim",
	"Kofi", "Kwame", "Chukwu", "Adebayo", "Musa", "Sekou", "Jabari", "Tendai",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Traore", "Diallo", "Kamara",
	"Nkrumah", "Mensah", "Okoro", "Adeyemi", "Sow", "Diop", "Ndlovu", "Mbeki",
}

// Rating bounds: a player is strong in their natural position and weak
// everywhere else.
const (
	naturalRatingMin = 70
	naturalRatingMax = 95
	offRatingMin     = 15
	offRatingMax     = 65
)

func (e *Engine) playerName() string {
	first := firstNames[e.rnd.Intn(len(firstNames))]
	last := lastNames[e.rnd.Intn(len(lastNames))]
	return first + " " + last
}

func (e *Engine) playerRatings(natural models.Position) map[models.Position]int {
	ratings := make(map[models.Position]int, len(models.Positions))
	for _, pos := range models.Positions {
		if pos == natural {
			ratings[pos] = e.intBetween(naturalRatingMin, naturalRatingMax)
		} else {
			ratings[pos] = e.intBetween(offRatingMin, offRatingMax)
		}
	}
	return ratings
}

// GenerateSquad builds a 23-player squad with the fixed positional
// distribution and exactly one randomly chosen captain.
func (e *Engine) GenerateSquad() models.Squad {
	e.mu.Lock()
	defer e.mu.Unlock()

	squad := make(models.Squad, 0, SquadSize)
	for _, slot := range squadDistribution {
		for i := 0; i < slot.Count; i++ {
			n := len(squad) + 1
			squad = append(squad, models.Player{
				ID:              fmt.Sprintf("player_%d", n),
				Name:            e.playerName(),
				NaturalPosition: slot.Position,
				Ratings:         e.playerRatings(slot.Position),
				JerseyNumber:    n,
			})
		}
	}
	squad[e.rnd.Intn(len(squad))].IsCaptain = true
	return squad
}

// TeamRating reduces a squad to its scalar strength: the mean of each
// player's rating in their natural position, rounded to two decimals.
// An empty squad aggregates to 0.
func TeamRating(squad models.Squad) float64 {
	if len(squad) == 0 {
		return 0
	}
	total := 0
	for _, p := range squad {
		total += p.NaturalRating()
	}
	mean := float64(total) / float64(len(squad))
	return math.Round(mean*100) / 100
}
