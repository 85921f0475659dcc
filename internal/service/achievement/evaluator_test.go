package achievement

import (
	"testing"

	"GeniusLabs/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unlockedSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func achievementIDs(list []models.Achievement) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestEvaluate_LessonThresholds(t *testing.T) {
	e := NewEvaluator(DefaultCatalog(), nil)

	newly := e.Evaluate(models.ProfileStats{TotalLessonsCompleted: 5}, unlockedSet())
	assert.Contains(t, achievementIDs(newly), "first-steps")
	assert.NotContains(t, achievementIDs(newly), "learning-momentum")
}

func TestEvaluate_Monotonic(t *testing.T) {
	e := NewEvaluator(DefaultCatalog(), nil)

	first := e.Evaluate(models.ProfileStats{TotalLessonsCompleted: 5}, unlockedSet())
	require.Contains(t, achievementIDs(first), "first-steps")

	// raising stats must not re-unlock what is already held
	second := e.Evaluate(models.ProfileStats{TotalLessonsCompleted: 15}, unlockedSet("first-steps"))
	assert.Contains(t, achievementIDs(second), "learning-momentum")
	assert.NotContains(t, achievementIDs(second), "first-steps")
}

func TestEvaluate_AllRequirementTypes(t *testing.T) {
	e := NewEvaluator(DefaultCatalog(), nil)

	stats := models.ProfileStats{
		TotalLessonsCompleted: 50,
		TotalModulesCompleted: 5,
		TotalScore:            1000,
		CurrentStreak:         1,
	}
	ids := achievementIDs(e.Evaluate(stats, unlockedSet()))
	assert.Contains(t, ids, "lesson-master")
	assert.Contains(t, ids, "module-collector")
	assert.Contains(t, ids, "high-scorer")
	assert.Contains(t, ids, "on-a-roll")
}

func TestEvaluate_CustomWithoutPredicateNeverUnlocks(t *testing.T) {
	e := NewEvaluator(DefaultCatalog(), nil)

	stats := models.ProfileStats{TotalLessonsCompleted: 1000, TotalScore: 100000}
	assert.NotContains(t, achievementIDs(e.Evaluate(stats, unlockedSet())), "perfectionist")
}

func TestEvaluate_CustomPredicate(t *testing.T) {
	cat := []models.Achievement{
		{
			ID:          "night-owl",
			Name:        "Night Owl",
			Category:    models.CategorySpecial,
			Requirement: models.Requirement{Type: models.RequirementCustom},
		},
	}
	e := NewEvaluator(cat, map[string]CustomPredicate{
		"night-owl": func(stats models.ProfileStats) bool { return stats.TotalTimeSpent > 60 },
	})

	assert.Empty(t, e.Evaluate(models.ProfileStats{TotalTimeSpent: 30}, unlockedSet()))
	assert.Len(t, e.Evaluate(models.ProfileStats{TotalTimeSpent: 90}, unlockedSet()), 1)
}

func TestEvaluate_AlternateCatalog(t *testing.T) {
	cat := []models.Achievement{
		{ID: "one", Requirement: models.Requirement{Type: models.RequirementLessonsCompleted, Value: 1}},
		{ID: "two", Requirement: models.Requirement{Type: models.RequirementLessonsCompleted, Value: 2}},
	}
	e := NewEvaluator(cat, nil)

	newly := e.Evaluate(models.ProfileStats{TotalLessonsCompleted: 1}, unlockedSet())
	assert.Equal(t, []string{"one"}, achievementIDs(newly))
}

func TestCatalogIsImmutable(t *testing.T) {
	source := []models.Achievement{
		{ID: "one", Requirement: models.Requirement{Type: models.RequirementLessonsCompleted, Value: 1}},
	}
	e := NewEvaluator(source, nil)

	source[0].ID = "mutated"
	assert.Equal(t, "one", e.Catalog()[0].ID)

	got := e.Catalog()
	got[0].ID = "mutated-again"
	assert.Equal(t, "one", e.Catalog()[0].ID)
}
