package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS user_progress (
    user_id TEXT NOT NULL,
    module_id TEXT NOT NULL,
    lessons_completed JSONB NOT NULL DEFAULT '[]'::jsonb,
    current_lesson TEXT NOT NULL DEFAULT '',
    module_progress INTEGER NOT NULL DEFAULT 0,
    is_completed BOOLEAN NOT NULL DEFAULT FALSE,
    quiz_scores JSONB NOT NULL DEFAULT '{}'::jsonb,
    exercises_completed JSONB NOT NULL DEFAULT '{}'::jsonb,
    time_spent INTEGER NOT NULL DEFAULT 0,
    started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    last_accessed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    completed_at TIMESTAMPTZ,
    PRIMARY KEY (user_id, module_id),
    CONSTRAINT valid_module_progress CHECK (module_progress >= 0 AND module_progress <= 100),
    CONSTRAINT valid_time_spent CHECK (time_spent >= 0)
);

CREATE INDEX IF NOT EXISTS idx_user_progress_user_id ON user_progress(user_id);

CREATE TABLE IF NOT EXISTS user_profiles (
    email TEXT PRIMARY KEY,
    display_name TEXT NOT NULL DEFAULT '',
    avatar_url TEXT NOT NULL DEFAULT '',
    bio TEXT NOT NULL DEFAULT '',
    total_lessons_completed INTEGER NOT NULL DEFAULT 0,
    total_modules_completed INTEGER NOT NULL DEFAULT 0,
    total_time_spent INTEGER NOT NULL DEFAULT 0,
    total_score INTEGER NOT NULL DEFAULT 0,
    current_streak INTEGER NOT NULL DEFAULT 0,
    longest_streak INTEGER NOT NULL DEFAULT 0,
    last_activity_date TIMESTAMPTZ,
    email_notifications BOOLEAN NOT NULL DEFAULT TRUE,
    daily_reminders BOOLEAN NOT NULL DEFAULT FALSE,
    preferred_language TEXT NOT NULL DEFAULT 'javascript',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS user_achievements (
    email TEXT NOT NULL,
    achievement_id TEXT NOT NULL,
    unlocked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (email, achievement_id)
);

CREATE INDEX IF NOT EXISTS idx_user_achievements_email ON user_achievements(email);
`

// Migrate applies the schema on boot. Statements are idempotent, so running
// it on every start is safe.
func (p *Storage) Migrate(ctx context.Context) error {
	if _, err := p.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
