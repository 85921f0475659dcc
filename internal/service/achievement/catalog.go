package achievement

import "GeniusLabs/internal/models"

// DefaultCatalog is the achievement set of the platform. Thresholds are
// product constants; changing them only affects future evaluations, existing
// unlocks are never revoked.
func DefaultCatalog() []models.Achievement {
	return []models.Achievement{
		{
			ID:          "first-steps",
			Name:        "First Steps",
			Description: "Complete your first 5 lessons",
			Icon:        "footprints",
			Category:    models.CategoryLessons,
			Requirement: models.Requirement{Type: models.RequirementLessonsCompleted, Value: 5},
		},
		{
			ID:          "learning-momentum",
			Name:        "Learning Momentum",
			Description: "Complete 15 lessons",
			Icon:        "rocket",
			Category:    models.CategoryLessons,
			Requirement: models.Requirement{Type: models.RequirementLessonsCompleted, Value: 15},
		},
		{
			ID:          "lesson-master",
			Name:        "Lesson Master",
			Description: "Complete 50 lessons",
			Icon:        "graduation-cap",
			Category:    models.CategoryLessons,
			Requirement: models.Requirement{Type: models.RequirementLessonsCompleted, Value: 50},
		},
		{
			ID:          "module-one",
			Name:        "Module Pioneer",
			Description: "Finish your first module",
			Icon:        "flag",
			Category:    models.CategoryModules,
			Requirement: models.Requirement{Type: models.RequirementModulesCompleted, Value: 1},
		},
		{
			ID:          "module-collector",
			Name:        "Module Collector",
			Description: "Finish 5 modules",
			Icon:        "trophy",
			Category:    models.CategoryModules,
			Requirement: models.Requirement{Type: models.RequirementModulesCompleted, Value: 5},
		},
		{
			ID:          "quiz-whiz",
			Name:        "Quiz Whiz",
			Description: "Earn 500 total quiz points",
			Icon:        "brain",
			Category:    models.CategoryScore,
			Requirement: models.Requirement{Type: models.RequirementScore, Value: 500},
		},
		{
			ID:          "high-scorer",
			Name:        "High Scorer",
			Description: "Earn 1000 total quiz points",
			Icon:        "star",
			Category:    models.CategoryScore,
			Requirement: models.Requirement{Type: models.RequirementScore, Value: 1000},
		},
		{
			ID:          "on-a-roll",
			Name:        "On a Roll",
			Description: "Stay active today",
			Icon:        "flame",
			Category:    models.CategoryStreak,
			Requirement: models.Requirement{Type: models.RequirementStreak, Value: 1},
		},
		{
			ID:          "perfectionist",
			Name:        "Perfectionist",
			Description: "Score 100 on any quiz",
			Icon:        "gem",
			Category:    models.CategorySpecial,
			Requirement: models.Requirement{Type: models.RequirementCustom, Value: 100},
		},
	}
}

// DefaultCustomPredicates resolves the custom entries of DefaultCatalog.
// "perfectionist" cannot be derived from the aggregate fold (per-quiz maxima
// are not in ProfileStats), so the bulk evaluation never awards it; the quiz
// submission path unlocks it explicitly through POST /achievements.
func DefaultCustomPredicates() map[string]CustomPredicate {
	return map[string]CustomPredicate{
		"perfectionist": func(models.ProfileStats) bool { return false },
	}
}
