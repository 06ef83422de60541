package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/algo-tracker/internal/domain"
)

// ProblemRepository defines persistence access for problem entries.
type ProblemRepository interface {
	Create(ctx context.Context, entry *domain.ProblemEntry) error
	Update(ctx context.Context, entry *domain.ProblemEntry) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ProblemEntry, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ProblemEntry, error)
	ListTagsByUser(ctx context.Context, userID string) ([]string, error)
}

type problemRepository struct {
	pool *pgxpool.Pool
}

// NewProblemRepository returns a Postgres-backed implementation.
func NewProblemRepository(pool *pgxpool.Pool) ProblemRepository {
	return &problemRepository{pool: pool}
}

const problemColumns = `
        id, user_id, problem_id, title, url, difficulty, language, attempts,
        tags, status, time_taken_seconds, cognitive_load, date_solved, notes,
        created_at, updated_at`

func (r *problemRepository) Create(ctx context.Context, entry *domain.ProblemEntry) error {
	const query = `
        INSERT INTO problem_entries
            (user_id, problem_id, title, url, difficulty, language, attempts,
             tags, status, time_taken_seconds, cognitive_load, date_solved, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		entry.UserID,
		entry.ProblemID,
		entry.Title,
		entry.URL,
		entry.Difficulty,
		entry.Language,
		entry.Attempts,
		entry.Tags,
		entry.Status,
		entry.TimeTakenSeconds,
		entry.CognitiveLoad,
		entry.DateSolved,
		entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
}

func (r *problemRepository) Update(ctx context.Context, entry *domain.ProblemEntry) error {
	const query = `
        UPDATE problem_entries SET
            problem_id=$1, title=$2, url=$3, difficulty=$4, language=$5,
            attempts=$6, tags=$7, status=$8, time_taken_seconds=$9,
            cognitive_load=$10, date_solved=$11, notes=$12, updated_at=NOW()
        WHERE id=$13`

	cmd, err := r.pool.Exec(ctx, query,
		entry.ProblemID,
		entry.Title,
		entry.URL,
		entry.Difficulty,
		entry.Language,
		entry.Attempts,
		entry.Tags,
		entry.Status,
		entry.TimeTakenSeconds,
		entry.CognitiveLoad,
		entry.DateSolved,
		entry.Notes,
		entry.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *problemRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM problem_entries WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *problemRepository) GetByID(ctx context.Context, id string) (*domain.ProblemEntry, error) {
	query := `SELECT ` + problemColumns + ` FROM problem_entries WHERE id=$1`

	var entry domain.ProblemEntry
	if err := r.scanEntry(r.pool.QueryRow(ctx, query, id), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *problemRepository) ListByUser(ctx context.Context, userID string) ([]domain.ProblemEntry, error) {
	query := `SELECT ` + problemColumns + `
        FROM problem_entries WHERE user_id=$1
        ORDER BY date_solved DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.ProblemEntry, 0)
	for rows.Next() {
		var entry domain.ProblemEntry
		if err := r.scanEntry(rows, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *problemRepository) ListTagsByUser(ctx context.Context, userID string) ([]string, error) {
	const query = `
        SELECT DISTINCT unnest(tags) AS tag
        FROM problem_entries WHERE user_id=$1
        ORDER BY tag`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]string, 0)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *problemRepository) scanEntry(row pgx.Row, entry *domain.ProblemEntry) error {
	return row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.ProblemID,
		&entry.Title,
		&entry.URL,
		&entry.Difficulty,
		&entry.Language,
		&entry.Attempts,
		&entry.Tags,
		&entry.Status,
		&entry.TimeTakenSeconds,
		&entry.CognitiveLoad,
		&entry.DateSolved,
		&entry.Notes,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
}
