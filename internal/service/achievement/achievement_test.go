package achievement

import (
	"context"
	"testing"
	"time"

	"GeniusLabs/internal/app_errors"
	"GeniusLabs/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLog struct{}

func (nopLog) Debug(string, ...interface{})           {}
func (nopLog) Info(string, ...interface{})            {}
func (nopLog) Warn(string, ...interface{})            {}
func (nopLog) Error(string, ...interface{})           {}
func (nopLog) ErrorErr(string, error, ...interface{}) {}
func (nopLog) Fatal(string, ...interface{})           {}
func (nopLog) FatalErr(string, error, ...interface{}) {}

type fakeAchievementRepo struct {
	unlocked map[string][]models.UserAchievement
}

func newFakeAchievementRepo() *fakeAchievementRepo {
	return &fakeAchievementRepo{unlocked: make(map[string][]models.UserAchievement)}
}

func (r *fakeAchievementRepo) Unlock(_ context.Context, ua models.UserAchievement) (bool, error) {
	for _, existing := range r.unlocked[ua.Email] {
		if existing.AchievementID == ua.AchievementID {
			return false, nil
		}
	}
	r.unlocked[ua.Email] = append(r.unlocked[ua.Email], ua)
	return true, nil
}

func (r *fakeAchievementRepo) UnlockedByUser(_ context.Context, email string) ([]models.UserAchievement, error) {
	return r.unlocked[email], nil
}

func (r *fakeAchievementRepo) DeleteByUser(_ context.Context, email string) error {
	delete(r.unlocked, email)
	return nil
}

type fakeProgressRepo struct {
	records []models.UserProgress
}

func (r *fakeProgressRepo) QueryByUser(_ context.Context, userID string) ([]models.UserProgress, error) {
	var out []models.UserProgress
	for _, p := range r.records {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestService(progressRecords []models.UserProgress) (*AchievementService, *fakeAchievementRepo) {
	repo := newFakeAchievementRepo()
	evaluator := NewEvaluator(DefaultCatalog(), DefaultCustomPredicates())
	svc := NewAchievementService(nopLog{}, evaluator, repo, &fakeProgressRepo{records: progressRecords})
	return svc, repo
}

func lessonRecord(userID string, count int) models.UserProgress {
	lessons := make([]string, count)
	for i := range lessons {
		lessons[i] = string(rune('a' + i))
	}
	return models.UserProgress{
		UserID:           userID,
		ModuleID:         "m1",
		LessonsCompleted: lessons,
		LastAccessedAt:   time.Now().UTC(),
	}
}

func TestCheckAndUnlockAll(t *testing.T) {
	svc, repo := newTestService([]models.UserProgress{lessonRecord("u1@test.dev", 5)})
	ctx := context.Background()

	newly, err := svc.CheckAndUnlockAll(ctx, "u1@test.dev")
	require.NoError(t, err)

	ids := achievementIDs(newly)
	assert.Contains(t, ids, "first-steps")
	assert.Contains(t, ids, "on-a-roll")
	assert.NotContains(t, ids, "learning-momentum")
	assert.Len(t, repo.unlocked["u1@test.dev"], len(newly))
}

func TestCheckAndUnlockAll_SecondPassOnlyNew(t *testing.T) {
	svc, _ := newTestService([]models.UserProgress{lessonRecord("u1@test.dev", 5)})
	ctx := context.Background()

	_, err := svc.CheckAndUnlockAll(ctx, "u1@test.dev")
	require.NoError(t, err)

	// same stats again: nothing new
	newly, err := svc.CheckAndUnlockAll(ctx, "u1@test.dev")
	require.NoError(t, err)
	assert.Empty(t, newly)
}

func TestUnlock_Idempotent(t *testing.T) {
	svc, repo := newTestService(nil)
	ctx := context.Background()

	first, err := svc.Unlock(ctx, "u1@test.dev", "first-steps")
	require.NoError(t, err)

	second, err := svc.Unlock(ctx, "u1@test.dev", "first-steps")
	require.NoError(t, err)
	assert.Equal(t, first.UnlockedAt, second.UnlockedAt)
	assert.Len(t, repo.unlocked["u1@test.dev"], 1)
}

func TestUnlock_UnknownID(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Unlock(context.Background(), "u1@test.dev", "no-such-achievement")
	assert.ErrorIs(t, err, app_errors.ErrAchievementNotFound)
}

func TestList_JoinsUnlockState(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	_, err := svc.Unlock(ctx, "u1@test.dev", "first-steps")
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1@test.dev")
	require.NoError(t, err)
	assert.Len(t, list, len(DefaultCatalog()))

	for _, status := range list {
		if status.ID == "first-steps" {
			assert.True(t, status.Unlocked)
			assert.NotNil(t, status.UnlockedAt)
		} else {
			assert.False(t, status.Unlocked)
			assert.Nil(t, status.UnlockedAt)
		}
	}
}

func TestResetUser(t *testing.T) {
	svc, repo := newTestService(nil)
	ctx := context.Background()

	_, err := svc.Unlock(ctx, "u1@test.dev", "first-steps")
	require.NoError(t, err)

	require.NoError(t, svc.ResetUser(ctx, "u1@test.dev"))
	assert.Empty(t, repo.unlocked["u1@test.dev"])
}
