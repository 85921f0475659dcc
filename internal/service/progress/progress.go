package progress

import (
	"context"
	"errors"
	"math"
	"time"

	"GeniusLabs/internal/app_errors"
	"GeniusLabs/internal/models"
	"GeniusLabs/pkg/logger"
)

type progressRepo interface {
	Get(ctx context.Context, userID, moduleID string) (*models.UserProgress, error)
	Put(ctx context.Context, p models.UserProgress) error
	Update(ctx context.Context, userID, moduleID string, u models.ProgressUpdate) (*models.UserProgress, error)
	QueryByUser(ctx context.Context, userID string) ([]models.UserProgress, error)
	Delete(ctx context.Context, userID, moduleID string) error
}

type lessonCatalog interface {
	LessonCount(moduleID string) (int, error)
}

type progressCache interface {
	Set(ctx context.Context, p models.UserProgress) error
	Get(ctx context.Context, userID, moduleID string) (*models.UserProgress, error)
	GetByUser(ctx context.Context, userID string) ([]models.UserProgress, error)
	Delete(ctx context.Context, userID, moduleID string) error
}

type ProgressService struct {
	log     logger.Log
	repo    progressRepo
	catalog lessonCatalog
	cache   progressCache
	now     func() time.Time
}

// NewProgressService builds the service. cache may be nil; without it reads
// have no fallback when the primary store is down.
func NewProgressService(log logger.Log, repo progressRepo, catalog lessonCatalog, cache progressCache) *ProgressService {
	return &ProgressService{
		log:     log,
		repo:    repo,
		catalog: catalog,
		cache:   cache,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateProgress starts tracking a module for a user. The check-then-create
// race is accepted; a concurrent insert still surfaces as ErrProgressExists
// through the store's key conflict.
func (s *ProgressService) CreateProgress(ctx context.Context, userID, moduleID, currentLesson string) (*models.UserProgress, error) {
	if userID == "" || moduleID == "" {
		return nil, app_errors.ErrInvalidInput
	}
	if _, err := s.catalog.LessonCount(moduleID); err != nil {
		return nil, err
	}

	_, err := s.repo.Get(ctx, userID, moduleID)
	if err == nil {
		return nil, app_errors.ErrProgressExists
	}
	if !errors.Is(err, app_errors.ErrProgressNotFound) {
		return nil, err
	}

	now := s.now()
	p := models.UserProgress{
		UserID:             userID,
		ModuleID:           moduleID,
		LessonsCompleted:   []string{},
		CurrentLesson:      currentLesson,
		QuizScores:         map[string]int{},
		ExercisesCompleted: map[string]bool{},
		StartedAt:          now,
		LastAccessedAt:     now,
		UpdatedAt:          now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	s.cacheSet(ctx, p)
	return &p, nil
}

// MarkLessonCompleted adds a lesson to the completed set and recomputes the
// derived fields. Re-marking a lesson is a no-op on the set but still
// refreshes last_accessed_at. completedAt is stamped exactly once, on the
// transition to 100%.
func (s *ProgressService) MarkLessonCompleted(ctx context.Context, userID, moduleID, lessonID string) (*models.UserProgress, error) {
	if userID == "" || moduleID == "" || lessonID == "" {
		return nil, app_errors.ErrInvalidInput
	}
	total, err := s.catalog.LessonCount(moduleID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.Get(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}

	lessons := p.LessonsCompleted
	if !p.HasLesson(lessonID) {
		lessons = append(append([]string{}, lessons...), lessonID)
	}
	pct := completionPercent(len(lessons), total)
	completed := pct == 100

	u := models.ProgressUpdate{
		LessonsCompleted: lessons,
		CurrentLesson:    &lessonID,
		ModuleProgress:   &pct,
		IsCompleted:      &completed,
	}
	if completed && p.CompletedAt == nil {
		completedAt := s.now()
		u.CompletedAt = &completedAt
	}

	updated, err := s.repo.Update(ctx, userID, moduleID, u)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, *updated)
	return updated, nil
}

// UpdateQuizScore records a score for one quiz, last write wins.
func (s *ProgressService) UpdateQuizScore(ctx context.Context, userID, moduleID, quizID string, score int) (*models.UserProgress, error) {
	if userID == "" || moduleID == "" || quizID == "" {
		return nil, app_errors.ErrInvalidInput
	}
	if score < 0 || score > 100 {
		return nil, app_errors.ErrInvalidScore
	}

	p, err := s.repo.Get(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]int, len(p.QuizScores)+1)
	for k, v := range p.QuizScores {
		scores[k] = v
	}
	scores[quizID] = score

	updated, err := s.repo.Update(ctx, userID, moduleID, models.ProgressUpdate{QuizScores: scores})
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, *updated)
	return updated, nil
}

// UpdateProgress applies a generic partial update. The derived fields
// (moduleProgress, isCompleted, completedAt) are never taken from the caller;
// they are recomputed here whenever the lesson set changes. TimeSpent in the
// update is minutes to add, keeping the stored value non-decreasing.
func (s *ProgressService) UpdateProgress(ctx context.Context, userID, moduleID string, u models.ProgressUpdate) (*models.UserProgress, error) {
	if userID == "" || moduleID == "" || u.IsEmpty() {
		return nil, app_errors.ErrInvalidInput
	}

	p, err := s.repo.Get(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}

	u.ModuleProgress = nil
	u.IsCompleted = nil
	u.CompletedAt = nil

	if u.LessonsCompleted != nil {
		lessons := dedupe(u.LessonsCompleted)
		total, err := s.catalog.LessonCount(moduleID)
		if err != nil {
			return nil, err
		}
		pct := completionPercent(len(lessons), total)
		completed := pct == 100

		u.LessonsCompleted = lessons
		u.ModuleProgress = &pct
		u.IsCompleted = &completed
		if completed && p.CompletedAt == nil {
			completedAt := s.now()
			u.CompletedAt = &completedAt
		}
	}

	if u.TimeSpent != nil {
		minutes := *u.TimeSpent
		if minutes < 0 {
			return nil, app_errors.ErrInvalidInput
		}
		accumulated := p.TimeSpent + minutes
		u.TimeSpent = &accumulated
	}

	updated, err := s.repo.Update(ctx, userID, moduleID, u)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, *updated)
	return updated, nil
}

func (s *ProgressService) GetProgress(ctx context.Context, userID, moduleID string) (*models.UserProgress, error) {
	p, err := s.repo.Get(ctx, userID, moduleID)
	if err != nil {
		if errors.Is(err, app_errors.ErrStorageUnavailable) && s.cache != nil {
			if cached, cacheErr := s.cache.Get(ctx, userID, moduleID); cacheErr == nil {
				s.log.Warn("serving progress from cache", "user_id", userID, "module_id", moduleID)
				return cached, nil
			}
		}
		return nil, err
	}
	s.cacheSet(ctx, *p)
	return p, nil
}

func (s *ProgressService) GetAllProgress(ctx context.Context, userID string) ([]models.UserProgress, error) {
	if userID == "" {
		return nil, app_errors.ErrInvalidInput
	}
	records, err := s.repo.QueryByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, app_errors.ErrStorageUnavailable) && s.cache != nil {
			if cached, cacheErr := s.cache.GetByUser(ctx, userID); cacheErr == nil {
				s.log.Warn("serving progress list from cache", "user_id", userID)
				return cached, nil
			}
		}
		return nil, err
	}
	for _, p := range records {
		s.cacheSet(ctx, p)
	}
	return records, nil
}

func (s *ProgressService) DeleteProgress(ctx context.Context, userID, moduleID string) error {
	if userID == "" || moduleID == "" {
		return app_errors.ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, userID, moduleID); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, userID, moduleID); err != nil {
			s.log.Warn("failed to invalidate progress cache", "user_id", userID, "module_id", moduleID)
		}
	}
	return nil
}

func (s *ProgressService) cacheSet(ctx context.Context, p models.UserProgress) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, p); err != nil {
		s.log.Warn("failed to cache progress", "user_id", p.UserID, "module_id", p.ModuleID)
	}
}

func completionPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) * 100 / float64(total)))
	if pct > 100 {
		pct = 100
	}
	return pct
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
