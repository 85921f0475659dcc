package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"GeniusLabs/internal/app_errors"
	"GeniusLabs/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const progressColumns = `user_id, module_id, lessons_completed, current_lesson, module_progress,
		is_completed, quiz_scores, exercises_completed, time_spent,
		started_at, last_accessed_at, updated_at, completed_at`

type ProgressPostgres struct {
	db *pgxpool.Pool
}

func NewProgressPostgres(db *pgxpool.Pool) *ProgressPostgres {
	return &ProgressPostgres{db: db}
}

func (r *ProgressPostgres) Get(ctx context.Context, userID, moduleID string) (*models.UserProgress, error) {
	query := fmt.Sprintf(`SELECT %s FROM user_progress WHERE user_id = $1 AND module_id = $2`, progressColumns)

	row := r.db.QueryRow(ctx, query, userID, moduleID)
	p, err := scanProgress(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrProgressNotFound
		}
		return nil, unavailable(err)
	}
	return p, nil
}

func (r *ProgressPostgres) Put(ctx context.Context, p models.UserProgress) error {
	query := `
        INSERT INTO user_progress (user_id, module_id, lessons_completed, current_lesson, module_progress,
            is_completed, quiz_scores, exercises_completed, time_spent,
            started_at, last_accessed_at, updated_at, completed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `
	_, err := r.db.Exec(ctx, query,
		p.UserID, p.ModuleID, p.LessonsCompleted, p.CurrentLesson, p.ModuleProgress,
		p.IsCompleted, p.QuizScores, p.ExercisesCompleted, p.TimeSpent,
		p.StartedAt, p.LastAccessedAt, p.UpdatedAt, p.CompletedAt,
	)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == "23505" {
			return app_errors.ErrProgressExists
		}
		return unavailable(err)
	}
	return nil
}

// Update merges only the fields present in u; untouched columns keep their
// values. last_accessed_at and updated_at are always refreshed.
func (r *ProgressPostgres) Update(ctx context.Context, userID, moduleID string, u models.ProgressUpdate) (*models.UserProgress, error) {
	now := time.Now().UTC()
	set := []string{"last_accessed_at = $1", "updated_at = $1"}
	args := []any{now}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if u.LessonsCompleted != nil {
		add("lessons_completed", u.LessonsCompleted)
	}
	if u.CurrentLesson != nil {
		add("current_lesson", *u.CurrentLesson)
	}
	if u.ModuleProgress != nil {
		add("module_progress", *u.ModuleProgress)
	}
	if u.IsCompleted != nil {
		add("is_completed", *u.IsCompleted)
	}
	if u.QuizScores != nil {
		add("quiz_scores", u.QuizScores)
	}
	if u.ExercisesCompleted != nil {
		add("exercises_completed", u.ExercisesCompleted)
	}
	if u.TimeSpent != nil {
		add("time_spent", *u.TimeSpent)
	}
	if u.CompletedAt != nil {
		add("completed_at", *u.CompletedAt)
	}

	args = append(args, userID, moduleID)
	query := fmt.Sprintf(`
        UPDATE user_progress SET %s
        WHERE user_id = $%d AND module_id = $%d
        RETURNING %s`,
		strings.Join(set, ", "), len(args)-1, len(args), progressColumns,
	)

	row := r.db.QueryRow(ctx, query, args...)
	p, err := scanProgress(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrProgressNotFound
		}
		return nil, unavailable(err)
	}
	return p, nil
}

func (r *ProgressPostgres) QueryByUser(ctx context.Context, userID string) ([]models.UserProgress, error) {
	query := fmt.Sprintf(`SELECT %s FROM user_progress WHERE user_id = $1 ORDER BY started_at`, progressColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	var records []models.UserProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, unavailable(err)
		}
		records = append(records, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return records, nil
}

func (r *ProgressPostgres) Delete(ctx context.Context, userID, moduleID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_progress WHERE user_id = $1 AND module_id = $2`, userID, moduleID)
	if err != nil {
		return unavailable(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrProgressNotFound
	}
	return nil
}

func scanProgress(row pgx.Row) (*models.UserProgress, error) {
	var p models.UserProgress
	err := row.Scan(
		&p.UserID, &p.ModuleID, &p.LessonsCompleted, &p.CurrentLesson, &p.ModuleProgress,
		&p.IsCompleted, &p.QuizScores, &p.ExercisesCompleted, &p.TimeSpent,
		&p.StartedAt, &p.LastAccessedAt, &p.UpdatedAt, &p.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
