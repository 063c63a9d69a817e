package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Seyram02/nations-league/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchTeamInvalid      = errors.New("match references an unknown team")
	ErrMatchAlreadyCompleted = errors.New("match is already completed")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, round *models.Round, status *models.MatchStatus) ([]*models.Match, error)
	Complete(ctx context.Context, id int, result *models.MatchResult) error
	UpdateResult(ctx context.Context, id int, result *models.MatchResult) error
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, round, team1_id, team2_id, status, result, created_at, completed_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches (round, team1_id, team2_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	if match.Status == "" {
		match.Status = models.MatchStatusScheduled
	}

	err := exec.QueryRowContext(ctx, query,
		match.Round,
		match.Team1ID,
		match.Team2ID,
		match.Status,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatchRow(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, roundFilter *models.Round, statusFilter *models.MatchStatus) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE true`)

	args := []interface{}{}
	placeholder := 1

	if roundFilter != nil {
		queryBuilder.WriteString(" AND round = $")
		queryBuilder.WriteString(strconv.Itoa(placeholder))
		args = append(args, *roundFilter)
		placeholder++
	}
	if statusFilter != nil {
		queryBuilder.WriteString(" AND status = $")
		queryBuilder.WriteString(strconv.Itoa(placeholder))
		args = append(args, *statusFilter)
	}

	queryBuilder.WriteString(" ORDER BY created_at ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatchRow(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

// Complete attaches the result and flips the match to completed in a single
// conditional update keyed on the current status. If another request already
// completed the match, zero rows are affected and the first result stands.
func (r *postgresMatchRepository) Complete(ctx context.Context, id int, result *models.MatchResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal match result: %w", err)
	}

	query := `
		UPDATE matches
		SET status = $1, result = $2, completed_at = now()
		WHERE id = $3 AND status = $4`

	res, err := r.db.ExecContext(ctx, query,
		models.MatchStatusCompleted, resultJSON, id, models.MatchStatusScheduled)
	if err != nil {
		return fmt.Errorf("failed to complete match %d: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		// Either the match does not exist or it was completed concurrently.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrMatchAlreadyCompleted
	}
	return nil
}

// UpdateResult rewrites the stored result of a completed match, used by the
// goal-scorer backfill.
func (r *postgresMatchRepository) UpdateResult(ctx context.Context, id int, result *models.MatchResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal match result: %w", err)
	}

	query := `UPDATE matches SET result = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, resultJSON, id)
	if err != nil {
		return fmt.Errorf("failed to update result for match %d: %w", id, err)
	}
	return checkAffectedRows(res, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}

func scanMatchRow(scan func(dest ...interface{}) error) (*models.Match, error) {
	match := &models.Match{}
	var resultJSON []byte

	err := scan(
		&match.ID,
		&match.Round,
		&match.Team1ID,
		&match.Team2ID,
		&match.Status,
		&resultJSON,
		&match.CreatedAt,
		&match.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(resultJSON) > 0 {
		match.Result = &models.MatchResult{}
		if err := json.Unmarshal(resultJSON, match.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result for match %d: %w", match.ID, err)
		}
	}
	return match, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "matches_team1_id_fkey", "matches_team2_id_fkey":
			return ErrMatchTeamInvalid
		}
	}
	return err
}
