package service

import (
	"GeniusLabs/internal/service/achievement"
	"GeniusLabs/internal/service/profile"
	"GeniusLabs/internal/service/progress"
)

type Collection struct {
	*progress.ProgressService
	*profile.ProfileService
	*achievement.AchievementService
}
