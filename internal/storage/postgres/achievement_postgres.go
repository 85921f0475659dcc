package postgres

import (
	"context"

	"GeniusLabs/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AchievementPostgres struct {
	db *pgxpool.Pool
}

func NewAchievementPostgres(db *pgxpool.Pool) *AchievementPostgres {
	return &AchievementPostgres{db: db}
}

// Unlock inserts the join record once. Repeated unlocks of the same pair are
// no-ops; inserted reports whether this call created the record.
func (r *AchievementPostgres) Unlock(ctx context.Context, ua models.UserAchievement) (inserted bool, err error) {
	query := `
        INSERT INTO user_achievements (email, achievement_id, unlocked_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (email, achievement_id) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, ua.Email, ua.AchievementID, ua.UnlockedAt)
	if err != nil {
		return false, unavailable(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AchievementPostgres) UnlockedByUser(ctx context.Context, email string) ([]models.UserAchievement, error) {
	query := `
        SELECT email, achievement_id, unlocked_at
        FROM user_achievements
        WHERE email = $1
        ORDER BY unlocked_at
    `
	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	var unlocked []models.UserAchievement
	for rows.Next() {
		var ua models.UserAchievement
		if err := rows.Scan(&ua.Email, &ua.AchievementID, &ua.UnlockedAt); err != nil {
			return nil, unavailable(err)
		}
		unlocked = append(unlocked, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return unlocked, nil
}

// DeleteByUser clears all unlocks for a user. Only the explicit full account
// reset path calls this; a progress reset alone never revokes achievements.
func (r *AchievementPostgres) DeleteByUser(ctx context.Context, email string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM user_achievements WHERE email = $1`, email); err != nil {
		return unavailable(err)
	}
	return nil
}
