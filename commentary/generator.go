package commentary

import (
	"context"
	"errors"

	"github.com/Seyram02/nations-league/models"
)

// ErrUnavailable is returned when no AI backend is configured. Callers must
// recover with the fallback generator; generation failures never surface to
// API clients.
var ErrUnavailable = errors.New("text generation backend unavailable")

// Generator produces match text: previews, live commentary, post-match and
// per-player analysis. Implementations are pure formatting over structured
// simulation output; they never influence results.
type Generator interface {
	MatchPreview(ctx context.Context, team1, team2 *models.Team) (string, error)
	LiveCommentary(ctx context.Context, events []models.MatchEvent, team1, team2, currentScore string) ([]string, error)
	PostMatchAnalysis(ctx context.Context, result *models.MatchResult) (string, error)
	PlayerAnalysis(ctx context.Context, player *models.Player, events []models.MatchEvent) (string, error)
}
