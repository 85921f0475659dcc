package profile

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"GeniusLabs/internal/app_errors"
	"GeniusLabs/internal/models"
	"GeniusLabs/pkg/logger"
)

type profileRepo interface {
	Get(ctx context.Context, email string) (*models.UserProfile, error)
	Create(ctx context.Context, p models.UserProfile) error
	Update(ctx context.Context, email string, u models.ProfileUpdate) (*models.UserProfile, error)
	UpdateSettings(ctx context.Context, email string, u models.SettingsUpdate) (*models.UserProfile, error)
	SaveStats(ctx context.Context, email string, stats models.ProfileStats) error
	Delete(ctx context.Context, email string) error
}

type progressRepo interface {
	QueryByUser(ctx context.Context, userID string) ([]models.UserProgress, error)
}

type avatarStorage interface {
	UploadAvatar(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	GetAvatarURL(ctx context.Context, objectKey string) (string, error)
	DeleteAvatar(ctx context.Context, avatarURL string) error
}

const maxAvatarSize = 5 << 20

type ProfileService struct {
	log          logger.Log
	profileRepo  profileRepo
	progressRepo progressRepo
	avatars      avatarStorage
	now          func() time.Time
}

// NewProfileService builds the service. avatars may be nil when object
// storage is not configured; avatar upload then fails with ErrInvalidInput.
func NewProfileService(log logger.Log, pr profileRepo, gr progressRepo, avatars avatarStorage) *ProfileService {
	return &ProfileService{
		log:          log,
		profileRepo:  pr,
		progressRepo: gr,
		avatars:      avatars,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// GetProfile fetches the profile, creating a default one on first access, and
// recomputes the aggregate stats from the progress records. The stored
// aggregates are a cache of that fold, never a source of truth.
func (s *ProfileService) GetProfile(ctx context.Context, email string) (*models.UserProfile, error) {
	if email == "" {
		return nil, app_errors.ErrInvalidInput
	}
	p, err := s.ensureProfile(ctx, email)
	if err != nil {
		return nil, err
	}

	records, err := s.progressRepo.QueryByUser(ctx, email)
	if err != nil {
		// stats refresh is best effort, serve the cached aggregates
		s.log.Warn("failed to load progress for stats refresh", "email", email)
		return p, nil
	}

	stats := ComputeStats(records, s.now())
	if p.Stats.LongestStreak > stats.LongestStreak {
		stats.LongestStreak = p.Stats.LongestStreak
	}
	if err := s.profileRepo.SaveStats(ctx, email, stats); err != nil {
		s.log.ErrorErr("failed to persist profile stats", err, "email", email)
	}
	p.Stats = stats
	return p, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, email string, u models.ProfileUpdate) (*models.UserProfile, error) {
	if email == "" {
		return nil, app_errors.ErrInvalidInput
	}
	if _, err := s.ensureProfile(ctx, email); err != nil {
		return nil, err
	}
	return s.profileRepo.Update(ctx, email, u)
}

func (s *ProfileService) UpdateSettings(ctx context.Context, email string, u models.SettingsUpdate) (*models.UserProfile, error) {
	if email == "" {
		return nil, app_errors.ErrInvalidInput
	}
	return s.profileRepo.UpdateSettings(ctx, email, u)
}

// UploadAvatar stores the image and points the profile's avatarUrl at a
// presigned link for it.
func (s *ProfileService) UploadAvatar(ctx context.Context, email, filename string, reader io.Reader, size int64, contentType string) (*models.UserProfile, error) {
	if email == "" || s.avatars == nil {
		return nil, app_errors.ErrInvalidInput
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, app_errors.ErrNotImage
	}
	if size <= 0 || size > maxAvatarSize {
		return nil, app_errors.ErrFileSize
	}
	p, err := s.ensureProfile(ctx, email)
	if err != nil {
		return nil, err
	}

	objectKey, err := s.avatars.UploadAvatar(ctx, filename, reader, size, contentType)
	if err != nil {
		return nil, err
	}
	url, err := s.avatars.GetAvatarURL(ctx, objectKey)
	if err != nil {
		return nil, err
	}
	updated, err := s.profileRepo.Update(ctx, email, models.ProfileUpdate{AvatarURL: &url})
	if err != nil {
		return nil, err
	}
	if p.AvatarURL != "" {
		if err := s.avatars.DeleteAvatar(ctx, p.AvatarURL); err != nil {
			s.log.Warn("failed to delete previous avatar", "email", email)
		}
	}
	return updated, nil
}

// DeleteProfile removes the profile row. Progress records and achievement
// unlocks are owned by their services and are deleted through them.
func (s *ProfileService) DeleteProfile(ctx context.Context, email string) error {
	if email == "" {
		return app_errors.ErrInvalidInput
	}
	return s.profileRepo.Delete(ctx, email)
}

func (s *ProfileService) ensureProfile(ctx context.Context, email string) (*models.UserProfile, error) {
	p, err := s.profileRepo.Get(ctx, email)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, app_errors.ErrProfileNotFound) {
		return nil, err
	}

	created := models.UserProfile{
		Email:       email,
		DisplayName: defaultDisplayName(email),
		Settings: models.ProfileSettings{
			EmailNotifications: true,
			PreferredLanguage:  "javascript",
		},
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	if err := s.profileRepo.Create(ctx, created); err != nil {
		return nil, err
	}
	// re-read so a concurrent create still yields the stored row
	return s.profileRepo.Get(ctx, email)
}

func defaultDisplayName(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
