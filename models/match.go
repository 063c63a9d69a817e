package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed"
)

// Round tags a match with its bracket stage. Friendlies sit outside the
// bracket and are the only matches allowed to end in a draw.
type Round string

const (
	RoundQuarterfinal Round = "quarterfinal"
	RoundSemifinal    Round = "semifinal"
	RoundFinal        Round = "final"
	RoundFriendly     Round = "friendly"
)

// IsKnockout reports whether a tied result is not a permitted terminal
// outcome for this round.
func (r Round) IsKnockout() bool {
	switch r {
	case RoundQuarterfinal, RoundSemifinal, RoundFinal:
		return true
	}
	return false
}

type EventKind string

const (
	EventGoal      EventKind = "goal"
	EventSave      EventKind = "save"
	EventChance    EventKind = "chance"
	EventFoul      EventKind = "foul"
	EventPenalties EventKind = "penalties"
)

// MatchEvent is a single timeline entry. Events are ordered by minute,
// ties keeping insertion order.
type MatchEvent struct {
	Minute int       `json:"minute"`
	Kind   EventKind `json:"type"`
	Team   string    `json:"team"`
	Player string    `json:"player"`
}

// GoalScorer is the goal-only subsequence of the timeline, kept separately
// so consumers that only need scorers don't walk the full event list.
type GoalScorer struct {
	Minute int    `json:"minute"`
	Player string `json:"player"`
	Team   string `json:"team"`
}

// DecisionMode records which resolution stage produced the final winner.
type DecisionMode string

const (
	DecidedByRegulation DecisionMode = "regulation"
	DecidedByExtraTime  DecisionMode = "extra_time"
	DecidedByPenalties  DecisionMode = "penalties"
)

// WinnerDraw is the winner value for a drawn friendly.
const WinnerDraw = "Draw"

// MatchResult is attached to a match exactly once, atomically with the
// scheduled→completed status transition. A penalty-decided match keeps its
// tied goal totals; the shootout score is recorded separately.
type MatchResult struct {
	Team1        string       `json:"team1"`
	Team2        string       `json:"team2"`
	Score        string       `json:"score"`
	Team1Goals   int          `json:"team1_goals"`
	Team2Goals   int          `json:"team2_goals"`
	Winner       string       `json:"winner"`
	Events       []MatchEvent `json:"events"`
	GoalScorers  []GoalScorer `json:"goal_scorers"`
	Commentary   []string     `json:"commentary,omitempty"`
	MatchPreview string       `json:"match_preview,omitempty"`
	DecidedBy    DecisionMode `json:"decided_by"`
	PenaltyScore *string      `json:"penalty_score,omitempty"`
	ExtraTime    bool         `json:"extra_time"`
	SimulatedAt  time.Time    `json:"simulated_at"`
}

type Match struct {
	ID          int          `json:"id" db:"id"`
	Round       Round        `json:"round" db:"round"`
	Team1ID     int          `json:"team1_id" db:"team1_id"`
	Team2ID     int          `json:"team2_id" db:"team2_id"`
	Status      MatchStatus  `json:"status" db:"status"`
	Result      *MatchResult `json:"result,omitempty" db:"result"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty" db:"completed_at"`

	Team1 *Team `json:"team1,omitempty" db:"-"`
	Team2 *Team `json:"team2,omitempty" db:"-"`
}
