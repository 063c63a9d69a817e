package models

// Position is one of the four squad roles a player can occupy.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DF"
	PositionMidfielder Position = "MD"
	PositionAttacker   Position = "AT"
)

// Positions lists every role in fixed squad order.
var Positions = []Position{
	PositionGoalkeeper,
	PositionDefender,
	PositionMidfielder,
	PositionAttacker,
}

// Player is immutable once generated at team registration.
type Player struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	NaturalPosition Position         `json:"natural_position"`
	Ratings         map[Position]int `json:"ratings"`
	JerseyNumber    int              `json:"jersey_number"`
	IsCaptain       bool             `json:"is_captain,omitempty"`
}

// NaturalRating returns the player's rating in their own position.
func (p Player) NaturalRating() int {
	return p.Ratings[p.NaturalPosition]
}

type Squad []Player

// ByPosition returns the players whose natural position is one of the given roles.
func (s Squad) ByPosition(positions ...Position) []Player {
	var out []Player
	for _, p := range s {
		for _, pos := range positions {
			if p.NaturalPosition == pos {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
