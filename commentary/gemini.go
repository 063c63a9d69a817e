package commentary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Seyram02/nations-league/models"
)

const (
	geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	geminiModel    = "gemini-1.0-pro"
)

// GeminiGenerator calls the Google Generative Language REST API. Every
// method returns an error when the backend is unreachable or the key is
// missing; callers fall back to FallbackGenerator.
type GeminiGenerator struct {
	apiKey string
	model  string
	client *http.Client
}

func NewGeminiGenerator(apiKey string) *GeminiGenerator {
	return &GeminiGenerator{
		apiKey: apiKey,
		model:  geminiModel,
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`

	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", ErrUnavailable
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.8,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 1024,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf(geminiEndpoint, g.model) + "?key=" + g.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, raw)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}

func (g *GeminiGenerator) MatchPreview(ctx context.Context, team1, team2 *models.Team) (string, error) {
	prompt := fmt.Sprintf(
		"Generate an exciting match preview for a football match between %s and %s in the Nations League.\n\n"+
			"Team %s:\n- Manager: %s\n- Team Rating: %.2f/100\n- Key Players: %s\n\n"+
			"Team %s:\n- Manager: %s\n- Team Rating: %.2f/100\n- Key Players: %s\n\n"+
			"Write a compelling 2-3 paragraph preview that builds excitement, highlights "+
			"each team's strengths and names key players to watch. "+
			"Style: professional sports journalism.",
		team1.Country, team2.Country,
		team1.Country, team1.Manager, team1.Rating, keyPlayers(team1.Squad),
		team2.Country, team2.Manager, team2.Rating, keyPlayers(team2.Squad),
	)
	return g.generate(ctx, prompt)
}

func (g *GeminiGenerator) LiveCommentary(ctx context.Context, events []models.MatchEvent, team1, team2, currentScore string) ([]string, error) {
	var eventLines strings.Builder
	for _, ev := range events {
		fmt.Fprintf(&eventLines, "Minute %d: %s - %s (%s)\n", ev.Minute, strings.ToUpper(string(ev.Kind)), ev.Player, ev.Team)
	}

	prompt := fmt.Sprintf(
		"You are an energetic football commentator providing live commentary for a "+
			"Nations League match between %s and %s.\n\n"+
			"CURRENT SCORE: %s\n\nMATCH EVENTS SO FAR:\n%s\n"+
			"Generate realistic, exciting commentary for these events, one line per "+
			"major moment, with timestamps. Make it sound like a real broadcast.",
		team1, team2, currentScore, eventLines.String(),
	)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines, nil
}

func (g *GeminiGenerator) PostMatchAnalysis(ctx context.Context, result *models.MatchResult) (string, error) {
	var scorers strings.Builder
	for _, goal := range result.GoalScorers {
		fmt.Fprintf(&scorers, "- %s (%s) - %d'\n", goal.Player, goal.Team, goal.Minute)
	}

	prompt := fmt.Sprintf(
		"Provide post-match analysis for the Nations League match between %s and %s.\n\n"+
			"FINAL SCORE: %s\nWINNER: %s\n\nGoal Scorers:\n%s\n"+
			"Write a detailed 3-4 paragraph analysis covering the key moments, the "+
			"winning team's performance, standout players and tournament implications.",
		result.Team1, result.Team2, result.Score, result.Winner, scorers.String(),
	)
	return g.generate(ctx, prompt)
}

func (g *GeminiGenerator) PlayerAnalysis(ctx context.Context, player *models.Player, events []models.MatchEvent) (string, error) {
	var actions strings.Builder
	for _, ev := range events {
		if ev.Player == player.Name {
			fmt.Fprintf(&actions, "- Minute %d: %s\n", ev.Minute, ev.Kind)
		}
	}

	prompt := fmt.Sprintf(
		"Analyze the performance of %s (%s) in today's Nations League match.\n\n"+
			"Player actions in match:\n%s\n"+
			"Provide a brief but insightful analysis (2-3 paragraphs) of their impact, "+
			"key contributions and an overall rating of their performance.",
		player.Name, player.NaturalPosition, actions.String(),
	)
	return g.generate(ctx, prompt)
}

func keyPlayers(squad models.Squad) string {
	names := make([]string, 0, 3)
	for i := 0; i < len(squad) && i < 3; i++ {
		names = append(names, squad[i].Name)
	}
	return strings.Join(names, ", ")
}
