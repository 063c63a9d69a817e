package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Seyram02/nations-league/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrTeamCountryConflict = errors.New("country is already registered")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByCountry(ctx context.Context, country string) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	AddToRecord(ctx context.Context, exec SQLExecutor, id, wins, losses, goalsFor, goalsAgainst int) error
	UpdateCrestKey(ctx context.Context, id int, key *string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, country, manager, representative, email, rating, squad,
		wins, losses, goals_for, goals_against, crest_key, registered_at`

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	squadJSON, err := json.Marshal(team.Squad)
	if err != nil {
		return fmt.Errorf("failed to marshal squad: %w", err)
	}

	query := `
		INSERT INTO teams
			(country, manager, representative, email, rating, squad)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, registered_at`

	err = exec.QueryRowContext(ctx, query,
		team.Country,
		team.Manager,
		team.Representative,
		team.Email,
		team.Rating,
		squadJSON,
	).Scan(&team.ID, &team.RegisteredAt)

	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByCountry(ctx context.Context, country string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE country = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, country))
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY registered_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team, scanErr := scanTeamRow(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during team rows iteration: %w", err)
	}
	return teams, nil
}

// AddToRecord increments the cumulative record counters; it never overwrites
// them, so concurrent match completions cannot lose updates.
func (r *postgresTeamRepository) AddToRecord(ctx context.Context, exec SQLExecutor, id, wins, losses, goalsFor, goalsAgainst int) error {
	query := `
		UPDATE teams
		SET wins = wins + $1, losses = losses + $2,
		    goals_for = goals_for + $3, goals_against = goals_against + $4
		WHERE id = $5`

	result, err := exec.ExecContext(ctx, query, wins, losses, goalsFor, goalsAgainst, id)
	if err != nil {
		return fmt.Errorf("failed to update record for team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateCrestKey(ctx context.Context, id int, key *string) error {
	query := `UPDATE teams SET crest_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return fmt.Errorf("failed to update crest key for team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) scanTeam(row *sql.Row) (*models.Team, error) {
	team, err := scanTeamRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func scanTeamRow(scan func(dest ...interface{}) error) (*models.Team, error) {
	team := &models.Team{}
	var squadJSON []byte

	err := scan(
		&team.ID,
		&team.Country,
		&team.Manager,
		&team.Representative,
		&team.Email,
		&team.Rating,
		&squadJSON,
		&team.Wins,
		&team.Losses,
		&team.GoalsFor,
		&team.GoalsAgainst,
		&team.CrestKey,
		&team.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan team row: %w", err)
	}

	if len(squadJSON) > 0 {
		if err := json.Unmarshal(squadJSON, &team.Squad); err != nil {
			return nil, fmt.Errorf("failed to unmarshal squad for team %d: %w", team.ID, err)
		}
	}
	return team, nil
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "teams_country_key" {
		return ErrTeamCountryConflict
	}
	return err
}
