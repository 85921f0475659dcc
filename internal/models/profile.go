package models

import "time"

// ProfileStats are aggregates folded from the user's progress records.
// They are a cache of that fold, not an independent source of truth.
type ProfileStats struct {
	TotalLessonsCompleted int        `json:"totalLessonsCompleted"`
	TotalModulesCompleted int        `json:"totalModulesCompleted"`
	TotalTimeSpent        int        `json:"totalTimeSpent"`
	TotalScore            int        `json:"totalScore"`
	CurrentStreak         int        `json:"currentStreak"`
	LongestStreak         int        `json:"longestStreak"`
	LastActivityDate      *time.Time `json:"lastActivityDate,omitempty"`
}

type ProfileSettings struct {
	EmailNotifications bool   `json:"emailNotifications"`
	DailyReminders     bool   `json:"dailyReminders"`
	PreferredLanguage  string `json:"preferredLanguage"`
}

type UserProfile struct {
	Email       string          `json:"email"`
	DisplayName string          `json:"displayName"`
	AvatarURL   string          `json:"avatarUrl,omitempty"`
	Bio         string          `json:"bio,omitempty"`
	Stats       ProfileStats    `json:"stats"`
	Settings    ProfileSettings `json:"settings"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProfileUpdate is a partial update of the mutable profile fields.
type ProfileUpdate struct {
	DisplayName *string
	AvatarURL   *string
	Bio         *string
}

// SettingsUpdate is a partial update of the profile preferences.
type SettingsUpdate struct {
	EmailNotifications *bool
	DailyReminders     *bool
	PreferredLanguage  *string
}
