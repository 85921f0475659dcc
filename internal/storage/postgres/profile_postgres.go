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

const profileColumns = `email, display_name, avatar_url, bio,
		total_lessons_completed, total_modules_completed, total_time_spent, total_score,
		current_streak, longest_streak, last_activity_date,
		email_notifications, daily_reminders, preferred_language,
		created_at, updated_at`

type ProfilePostgres struct {
	db *pgxpool.Pool
}

func NewProfilePostgres(db *pgxpool.Pool) *ProfilePostgres {
	return &ProfilePostgres{db: db}
}

func (r *ProfilePostgres) Get(ctx context.Context, email string) (*models.UserProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM user_profiles WHERE email = $1`, profileColumns)

	row := r.db.QueryRow(ctx, query, email)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrProfileNotFound
		}
		return nil, unavailable(err)
	}
	return p, nil
}

func (r *ProfilePostgres) Create(ctx context.Context, p models.UserProfile) error {
	query := `
        INSERT INTO user_profiles (email, display_name, avatar_url, bio,
            email_notifications, daily_reminders, preferred_language, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
        ON CONFLICT (email) DO NOTHING
    `
	_, err := r.db.Exec(ctx, query,
		p.Email, p.DisplayName, p.AvatarURL, p.Bio,
		p.Settings.EmailNotifications, p.Settings.DailyReminders, p.Settings.PreferredLanguage,
		p.CreatedAt,
	)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func (r *ProfilePostgres) Update(ctx context.Context, email string, u models.ProfileUpdate) (*models.UserProfile, error) {
	now := time.Now().UTC()
	set := []string{"updated_at = $1"}
	args := []any{now}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if u.DisplayName != nil {
		add("display_name", *u.DisplayName)
	}
	if u.AvatarURL != nil {
		add("avatar_url", *u.AvatarURL)
	}
	if u.Bio != nil {
		add("bio", *u.Bio)
	}

	args = append(args, email)
	query := fmt.Sprintf(`UPDATE user_profiles SET %s WHERE email = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), profileColumns)

	row := r.db.QueryRow(ctx, query, args...)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrProfileNotFound
		}
		return nil, unavailable(err)
	}
	return p, nil
}

func (r *ProfilePostgres) UpdateSettings(ctx context.Context, email string, u models.SettingsUpdate) (*models.UserProfile, error) {
	now := time.Now().UTC()
	set := []string{"updated_at = $1"}
	args := []any{now}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if u.EmailNotifications != nil {
		add("email_notifications", *u.EmailNotifications)
	}
	if u.DailyReminders != nil {
		add("daily_reminders", *u.DailyReminders)
	}
	if u.PreferredLanguage != nil {
		add("preferred_language", *u.PreferredLanguage)
	}

	args = append(args, email)
	query := fmt.Sprintf(`UPDATE user_profiles SET %s WHERE email = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), profileColumns)

	row := r.db.QueryRow(ctx, query, args...)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrProfileNotFound
		}
		return nil, unavailable(err)
	}
	return p, nil
}

// SaveStats overwrites the cached aggregates, re-derived from the progress
// records by the profile service.
func (r *ProfilePostgres) SaveStats(ctx context.Context, email string, stats models.ProfileStats) error {
	query := `
        UPDATE user_profiles SET
            total_lessons_completed = $2,
            total_modules_completed = $3,
            total_time_spent = $4,
            total_score = $5,
            current_streak = $6,
            longest_streak = $7,
            last_activity_date = $8,
            updated_at = $9
        WHERE email = $1
    `
	tag, err := r.db.Exec(ctx, query, email,
		stats.TotalLessonsCompleted, stats.TotalModulesCompleted, stats.TotalTimeSpent,
		stats.TotalScore, stats.CurrentStreak, stats.LongestStreak, stats.LastActivityDate,
		time.Now().UTC(),
	)
	if err != nil {
		return unavailable(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrProfileNotFound
	}
	return nil
}

func (r *ProfilePostgres) Delete(ctx context.Context, email string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_profiles WHERE email = $1`, email)
	if err != nil {
		return unavailable(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrProfileNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (*models.UserProfile, error) {
	var p models.UserProfile
	err := row.Scan(
		&p.Email, &p.DisplayName, &p.AvatarURL, &p.Bio,
		&p.Stats.TotalLessonsCompleted, &p.Stats.TotalModulesCompleted, &p.Stats.TotalTimeSpent, &p.Stats.TotalScore,
		&p.Stats.CurrentStreak, &p.Stats.LongestStreak, &p.Stats.LastActivityDate,
		&p.Settings.EmailNotifications, &p.Settings.DailyReminders, &p.Settings.PreferredLanguage,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
