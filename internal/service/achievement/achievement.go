package achievement

import (
	"context"
	"time"

	"GeniusLabs/internal/app_errors"
	"GeniusLabs/internal/models"
	"GeniusLabs/internal/service/profile"
	"GeniusLabs/pkg/logger"
)

type achievementRepo interface {
	Unlock(ctx context.Context, ua models.UserAchievement) (bool, error)
	UnlockedByUser(ctx context.Context, email string) ([]models.UserAchievement, error)
	DeleteByUser(ctx context.Context, email string) error
}

type progressRepo interface {
	QueryByUser(ctx context.Context, userID string) ([]models.UserProgress, error)
}

type AchievementService struct {
	log          logger.Log
	evaluator    *Evaluator
	repo         achievementRepo
	progressRepo progressRepo
	now          func() time.Time
}

func NewAchievementService(log logger.Log, evaluator *Evaluator, repo achievementRepo, gr progressRepo) *AchievementService {
	return &AchievementService{
		log:          log,
		evaluator:    evaluator,
		repo:         repo,
		progressRepo: gr,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// List returns the full catalog joined with the user's unlock state.
func (s *AchievementService) List(ctx context.Context, email string) ([]models.AchievementStatus, error) {
	if email == "" {
		return nil, app_errors.ErrInvalidInput
	}
	unlocked, err := s.repo.UnlockedByUser(ctx, email)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.UserAchievement, len(unlocked))
	for _, ua := range unlocked {
		byID[ua.AchievementID] = ua
	}

	catalog := s.evaluator.Catalog()
	out := make([]models.AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		status := models.AchievementStatus{Achievement: a}
		if ua, ok := byID[a.ID]; ok {
			status.Unlocked = true
			t := ua.UnlockedAt
			status.UnlockedAt = &t
		}
		out = append(out, status)
	}
	return out, nil
}

// Unlock awards one achievement explicitly. Unlocking twice is a no-op that
// returns the existing record.
func (s *AchievementService) Unlock(ctx context.Context, email, achievementID string) (*models.UserAchievement, error) {
	if email == "" || achievementID == "" {
		return nil, app_errors.ErrInvalidInput
	}
	if !s.inCatalog(achievementID) {
		return nil, app_errors.ErrAchievementNotFound
	}

	ua := models.UserAchievement{
		Email:         email,
		AchievementID: achievementID,
		UnlockedAt:    s.now(),
	}
	inserted, err := s.repo.Unlock(ctx, ua)
	if err != nil {
		return nil, err
	}
	if inserted {
		s.log.Info("achievement unlocked", "email", email, "achievement_id", achievementID)
		return &ua, nil
	}

	existing, err := s.repo.UnlockedByUser(ctx, email)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if e.AchievementID == achievementID {
			return &e, nil
		}
	}
	return &ua, nil
}

// CheckAndUnlockAll folds the user's progress into stats, evaluates the
// catalog and persists every newly satisfied achievement.
func (s *AchievementService) CheckAndUnlockAll(ctx context.Context, email string) ([]models.Achievement, error) {
	if email == "" {
		return nil, app_errors.ErrInvalidInput
	}
	records, err := s.progressRepo.QueryByUser(ctx, email)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.repo.UnlockedByUser(ctx, email)
	if err != nil {
		return nil, err
	}
	unlockedIDs := make(map[string]struct{}, len(unlocked))
	for _, ua := range unlocked {
		unlockedIDs[ua.AchievementID] = struct{}{}
	}

	stats := profile.ComputeStats(records, s.now())
	newly := s.evaluator.Evaluate(stats, unlockedIDs)

	for _, a := range newly {
		ua := models.UserAchievement{Email: email, AchievementID: a.ID, UnlockedAt: s.now()}
		if _, err := s.repo.Unlock(ctx, ua); err != nil {
			return nil, err
		}
		s.log.Info("achievement unlocked", "email", email, "achievement_id", a.ID)
	}
	return newly, nil
}

// ResetUser clears every unlock for an account. Only the explicit full reset
// path calls this; regressing stats alone never revokes achievements.
func (s *AchievementService) ResetUser(ctx context.Context, email string) error {
	if email == "" {
		return app_errors.ErrInvalidInput
	}
	return s.repo.DeleteByUser(ctx, email)
}

func (s *AchievementService) inCatalog(achievementID string) bool {
	for _, a := range s.evaluator.Catalog() {
		if a.ID == achievementID {
			return true
		}
	}
	return false
}
