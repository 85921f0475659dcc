package achievement

import (
	"context"
	"errors"
	"net/http"

	"GeniusLabs/internal/app_errors"
	"GeniusLabs/internal/models"
	"GeniusLabs/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AchievementService interface {
	List(ctx context.Context, email string) ([]models.AchievementStatus, error)
	Unlock(ctx context.Context, email, achievementID string) (*models.UserAchievement, error)
	CheckAndUnlockAll(ctx context.Context, email string) ([]models.Achievement, error)
	ResetUser(ctx context.Context, email string) error
}

type AchievementHandler struct {
	log     logger.Log
	service AchievementService
}

func NewAchievementHandler(log logger.Log, service AchievementService) *AchievementHandler {
	return &AchievementHandler{log: log, service: service}
}

func (h *AchievementHandler) ListAchievements(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	achievements, err := h.service.List(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}

type unlockRequest struct {
	Email         string `json:"email" binding:"required"`
	AchievementID string `json:"achievementId" binding:"required"`
}

func (h *AchievementHandler) UnlockAchievement(c *gin.Context) {
	var req unlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ua, err := h.service.Unlock(c.Request.Context(), req.Email, req.AchievementID)
	if err != nil {
		if errors.Is(err, app_errors.ErrAchievementNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievement": ua})
}

type checkAllRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *AchievementHandler) CheckAndUnlockAll(c *gin.Context) {
	var req checkAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newly, err := h.service.CheckAndUnlockAll(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if newly == nil {
		newly = []models.Achievement{}
	}
	c.JSON(http.StatusOK, gin.H{"newAchievements": newly, "count": len(newly)})
}

// ResetAchievements clears every unlock for an account. Part of the full
// account reset flow, not of deleting a single module's progress.
func (h *AchievementHandler) ResetAchievements(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	if err := h.service.ResetUser(c.Request.Context(), email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "achievements reset"})
}
