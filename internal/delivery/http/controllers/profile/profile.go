package profile

import (
	"context"
	"errors"
	"io"
	"net/http"

	"GeniusLabs/internal/app_errors"
	"GeniusLabs/internal/models"
	"GeniusLabs/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ProfileService interface {
	GetProfile(ctx context.Context, email string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, email string, u models.ProfileUpdate) (*models.UserProfile, error)
	UpdateSettings(ctx context.Context, email string, u models.SettingsUpdate) (*models.UserProfile, error)
	UploadAvatar(ctx context.Context, email, filename string, reader io.Reader, size int64, contentType string) (*models.UserProfile, error)
	DeleteProfile(ctx context.Context, email string) error
}

type ProfileHandler struct {
	log     logger.Log
	service ProfileService
}

func NewProfileHandler(log logger.Log, service ProfileService) *ProfileHandler {
	return &ProfileHandler{log: log, service: service}
}

// GetProfile is fetch-or-create: first access provisions a default profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	p, err := h.service.GetProfile(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

type updateProfileRequest struct {
	Email       string  `json:"email" binding:"required"`
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u := models.ProfileUpdate{DisplayName: req.DisplayName, Bio: req.Bio}
	p, err := h.service.UpdateProfile(c.Request.Context(), req.Email, u)
	if err != nil {
		if errors.Is(err, app_errors.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

type updateSettingsRequest struct {
	Email              string  `json:"email" binding:"required"`
	EmailNotifications *bool   `json:"emailNotifications"`
	DailyReminders     *bool   `json:"dailyReminders"`
	PreferredLanguage  *string `json:"preferredLanguage"`
}

func (h *ProfileHandler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u := models.SettingsUpdate{
		EmailNotifications: req.EmailNotifications,
		DailyReminders:     req.DailyReminders,
		PreferredLanguage:  req.PreferredLanguage,
	}
	p, err := h.service.UpdateSettings(c.Request.Context(), req.Email, u)
	if err != nil {
		if errors.Is(err, app_errors.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	if err := h.service.DeleteProfile(c.Request.Context(), email); err != nil {
		if errors.Is(err, app_errors.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	p, err := h.service.UploadAvatar(c.Request.Context(), email, header.Filename, file, header.Size, contentType)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrNotImage), errors.Is(err, app_errors.ErrFileSize):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}
