package commentary

import (
	"context"
	"fmt"
	"strings"

	"github.com/Seyram02/nations-league/models"
)

// FallbackGenerator formats text deterministically from the structured
// events. It carries the same information as the AI path, so consumers that
// disable text generation lose nothing.
type FallbackGenerator struct{}

func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

func (g *FallbackGenerator) MatchPreview(_ context.Context, team1, team2 *models.Team) (string, error) {
	return fmt.Sprintf(
		"Welcome to the Nations League clash between %s and %s!\n\n"+
			"%s, managed by %s, bring a team rating of %.2f into this match. "+
			"They face a determined %s side led by %s with a rating of %.2f.\n\n"+
			"The atmosphere is electric as these two sides prepare for battle. "+
			"Who will emerge victorious and advance in the tournament?",
		team1.Country, team2.Country,
		team1.Country, team1.Manager, team1.Rating,
		team2.Country, team2.Manager, team2.Rating,
	), nil
}

func (g *FallbackGenerator) LiveCommentary(_ context.Context, events []models.MatchEvent, _, _, _ string) ([]string, error) {
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		switch ev.Kind {
		case models.EventGoal:
			lines = append(lines, fmt.Sprintf("%d' - GOAL! %s scores for %s! The crowd erupts!", ev.Minute, ev.Player, ev.Team))
		case models.EventSave:
			lines = append(lines, fmt.Sprintf("%d' - What a save by %s! Incredible reflexes!", ev.Minute, ev.Player))
		case models.EventChance:
			lines = append(lines, fmt.Sprintf("%d' - Great opportunity for %s! %s with the chance...", ev.Minute, ev.Team, ev.Player))
		case models.EventFoul:
			lines = append(lines, fmt.Sprintf("%d' - Free kick given after a foul by %s.", ev.Minute, ev.Player))
		case models.EventPenalties:
			lines = append(lines, fmt.Sprintf("%d' - It goes to penalties! %s.", ev.Minute, ev.Player))
		}
	}
	return lines, nil
}

func (g *FallbackGenerator) PostMatchAnalysis(_ context.Context, result *models.MatchResult) (string, error) {
	return fmt.Sprintf(
		"Match Analysis: %s %s %s\n\n"+
			"%s emerged victorious in this Nations League encounter. "+
			"The match featured several key moments that determined the outcome.\n\n"+
			"The goal scorers made the difference today, with both teams showing "+
			"moments of quality. This result will have significant implications "+
			"for the tournament progression.",
		result.Team1, result.Score, result.Team2, result.Winner,
	), nil
}

func (g *FallbackGenerator) PlayerAnalysis(_ context.Context, player *models.Player, events []models.MatchEvent) (string, error) {
	var goals, saves, chances, fouls int
	var moments []string
	for _, ev := range events {
		if ev.Player != player.Name {
			continue
		}
		moments = append(moments, fmt.Sprintf("%d' %s", ev.Minute, ev.Kind))
		switch ev.Kind {
		case models.EventGoal:
			goals++
		case models.EventSave:
			saves++
		case models.EventChance:
			chances++
		case models.EventFoul:
			fouls++
		}
	}

	momentText := strings.Join(moments, ", ")
	if momentText == "" {
		momentText = "no notable recorded events"
	}

	impact := "disciplined off the ball"
	if goals > 0 {
		impact = "clinical in front of goal"
	} else if chances > 0 {
		impact = "worked to create openings"
	}

	rating := 6.5 + float64(goals)*0.8 + float64(saves)*0.4 + float64(chances)*0.2 - float64(fouls)*0.1
	if rating < 5.0 {
		rating = 5.0
	}
	if rating > 9.5 {
		rating = 9.5
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) delivered a steady performance. Key moments: %s.\n\n", player.Name, player.NaturalPosition, momentText)
	fmt.Fprintf(&b, "Impact: %s.", impact)
	if saves > 0 {
		b.WriteString(" Important interventions between the posts.")
	}
	if fouls > 0 {
		b.WriteString(" Needs more composure; gave away fouls.")
	}
	fmt.Fprintf(&b, "\n\nOverall performance rating: %.1f/10.", rating)
	return b.String(), nil
}
