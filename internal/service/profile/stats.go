package profile

import (
	"time"

	"GeniusLabs/internal/models"
)

// minutesPerLesson is the estimate used when no explicit time data was ever
// recorded, carried over from the original platform.
const minutesPerLesson = 5

const streakWindow = 24 * time.Hour

// ComputeStats folds a user's progress records into the profile aggregates.
// It is pure given its inputs; the caller supplies "now" so the streak check
// is deterministic. The streak is the source's coarse binary signal: 1 if the
// most recent activity is within 24 hours, else 0.
func ComputeStats(records []models.UserProgress, now time.Time) models.ProfileStats {
	var stats models.ProfileStats
	var lastActivity time.Time

	for _, p := range records {
		stats.TotalLessonsCompleted += len(p.LessonsCompleted)
		if p.IsCompleted {
			stats.TotalModulesCompleted++
		}
		stats.TotalTimeSpent += p.TimeSpent
		for _, score := range p.QuizScores {
			stats.TotalScore += score
		}
		if p.LastAccessedAt.After(lastActivity) {
			lastActivity = p.LastAccessedAt
		}
	}

	if stats.TotalTimeSpent == 0 {
		stats.TotalTimeSpent = stats.TotalLessonsCompleted * minutesPerLesson
	}

	if !lastActivity.IsZero() {
		t := lastActivity
		stats.LastActivityDate = &t
		if now.Sub(lastActivity) <= streakWindow {
			stats.CurrentStreak = 1
		}
	}
	stats.LongestStreak = stats.CurrentStreak

	return stats
}
