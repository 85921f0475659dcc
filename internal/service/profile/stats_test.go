package profile

import (
	"testing"
	"time"

	"GeniusLabs/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats_Fold(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []models.UserProgress{
		{
			LessonsCompleted: []string{"a", "b"},
			IsCompleted:      false,
			LastAccessedAt:   now.Add(-48 * time.Hour),
		},
		{
			LessonsCompleted: []string{"c"},
			IsCompleted:      true,
			QuizScores:       map[string]int{"q1": 80},
			LastAccessedAt:   now.Add(-30 * time.Hour),
		},
	}

	stats := ComputeStats(records, now)
	assert.Equal(t, 3, stats.TotalLessonsCompleted)
	assert.Equal(t, 1, stats.TotalModulesCompleted)
	assert.Equal(t, 80, stats.TotalScore)
}

func TestComputeStats_TimeFallback(t *testing.T) {
	now := time.Now().UTC()

	// no explicit time data: estimate 5 minutes per lesson
	stats := ComputeStats([]models.UserProgress{
		{LessonsCompleted: []string{"a", "b", "c", "d"}, LastAccessedAt: now},
	}, now)
	assert.Equal(t, 20, stats.TotalTimeSpent)

	// explicit time wins over the estimate
	stats = ComputeStats([]models.UserProgress{
		{LessonsCompleted: []string{"a"}, TimeSpent: 42, LastAccessedAt: now},
	}, now)
	assert.Equal(t, 42, stats.TotalTimeSpent)
}

func TestComputeStats_Streak(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	active := ComputeStats([]models.UserProgress{
		{LastAccessedAt: now.Add(-23 * time.Hour)},
	}, now)
	assert.Equal(t, 1, active.CurrentStreak)

	stale := ComputeStats([]models.UserProgress{
		{LastAccessedAt: now.Add(-25 * time.Hour)},
	}, now)
	assert.Equal(t, 0, stale.CurrentStreak)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, time.Now().UTC())
	assert.Zero(t, stats.TotalLessonsCompleted)
	assert.Zero(t, stats.TotalModulesCompleted)
	assert.Zero(t, stats.TotalTimeSpent)
	assert.Zero(t, stats.TotalScore)
	assert.Zero(t, stats.CurrentStreak)
	assert.Nil(t, stats.LastActivityDate)
}

func TestComputeStats_LastActivity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	older := now.Add(-72 * time.Hour)
	newer := now.Add(-1 * time.Hour)

	stats := ComputeStats([]models.UserProgress{
		{LastAccessedAt: older},
		{LastAccessedAt: newer},
	}, now)
	if assert.NotNil(t, stats.LastActivityDate) {
		assert.Equal(t, newer, *stats.LastActivityDate)
	}
}

func TestComputeStats_Deterministic(t *testing.T) {
	now := time.Now().UTC()
	records := []models.UserProgress{
		{LessonsCompleted: []string{"a"}, QuizScores: map[string]int{"q1": 50, "q2": 70}, LastAccessedAt: now},
		{LessonsCompleted: []string{"b", "c"}, IsCompleted: true, TimeSpent: 30, LastAccessedAt: now},
	}

	first := ComputeStats(records, now)
	second := ComputeStats(records, now)
	assert.Equal(t, first, second)
}
