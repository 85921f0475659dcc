package models

import "time"

const (
	CategoryLessons = "lessons"
	CategoryModules = "modules"
	CategoryScore   = "score"
	CategoryStreak  = "streak"
	CategorySpecial = "special"
)

const (
	RequirementLessonsCompleted = "lessons_completed"
	RequirementModulesCompleted = "modules_completed"
	RequirementScore            = "score"
	RequirementStreak           = "streak"
	RequirementCustom           = "custom"
)

// Requirement is the threshold that unlocks an achievement. Type selects
// which aggregate statistic Value is compared against.
type Requirement struct {
	Type  string `json:"type" yaml:"type"`
	Value int    `json:"value" yaml:"value"`
}

type Achievement struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Icon        string      `json:"icon" yaml:"icon"`
	Category    string      `json:"category" yaml:"category"`
	Requirement Requirement `json:"requirement" yaml:"requirement"`
}

// UserAchievement is the join record for one unlock. At most one exists
// per (email, achievement) pair.
type UserAchievement struct {
	Email         string    `json:"email"`
	AchievementID string    `json:"achievementId"`
	UnlockedAt    time.Time `json:"unlockedAt"`
}

// AchievementStatus is a catalog entry joined with the user's unlock state.
type AchievementStatus struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}
