package models

import "time"

// Team is a registered national federation. The squad and rating are derived
// once at registration; the record counters accumulate as matches complete.
type Team struct {
	ID             int       `json:"id" db:"id"`
	Country        string    `json:"country" db:"country"`
	Manager        string    `json:"manager" db:"manager"`
	Representative string    `json:"representative" db:"representative"`
	Email          string    `json:"email" db:"email"`
	Rating         float64   `json:"rating" db:"rating"`
	Squad          Squad     `json:"squad" db:"squad"`
	Wins           int       `json:"wins" db:"wins"`
	Losses         int       `json:"losses" db:"losses"`
	GoalsFor       int       `json:"goals_for" db:"goals_for"`
	GoalsAgainst   int       `json:"goals_against" db:"goals_against"`
	RegisteredAt   time.Time `json:"registered_at" db:"registered_at"`

	CrestKey *string `json:"-" db:"crest_key"`
	CrestURL *string `json:"crest_url,omitempty" db:"-"`
}
