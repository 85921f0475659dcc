package progress

import (
	"context"
	"errors"
	"net/http"

	"GeniusLabs/internal/app_errors"
	"GeniusLabs/internal/models"
	"GeniusLabs/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ProgressService interface {
	CreateProgress(ctx context.Context, userID, moduleID, currentLesson string) (*models.UserProgress, error)
	MarkLessonCompleted(ctx context.Context, userID, moduleID, lessonID string) (*models.UserProgress, error)
	UpdateQuizScore(ctx context.Context, userID, moduleID, quizID string, score int) (*models.UserProgress, error)
	UpdateProgress(ctx context.Context, userID, moduleID string, u models.ProgressUpdate) (*models.UserProgress, error)
	GetProgress(ctx context.Context, userID, moduleID string) (*models.UserProgress, error)
	GetAllProgress(ctx context.Context, userID string) ([]models.UserProgress, error)
	DeleteProgress(ctx context.Context, userID, moduleID string) error
}

type ProgressHandler struct {
	log     logger.Log
	service ProgressService
}

func NewProgressHandler(log logger.Log, service ProgressService) *ProgressHandler {
	return &ProgressHandler{log: log, service: service}
}

func (h *ProgressHandler) ListProgress(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	records, err := h.service.GetAllProgress(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []models.UserProgress{}
	}
	c.JSON(http.StatusOK, gin.H{"progress": records})
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	moduleID := c.Param("module_id")
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	p, err := h.service.GetProgress(c.Request.Context(), userID, moduleID)
	if err != nil {
		if errors.Is(err, app_errors.ErrProgressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": p})
}

type createProgressRequest struct {
	UserID        string `json:"userId" binding:"required"`
	ModuleID      string `json:"moduleId" binding:"required"`
	CurrentLesson string `json:"currentLesson"`
}

func (h *ProgressHandler) CreateProgress(c *gin.Context) {
	var req createProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.CreateProgress(c.Request.Context(), req.UserID, req.ModuleID, req.CurrentLesson)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrProgressExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrUnknownModule):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"progress": p})
}

type patchProgressRequest struct {
	UserID             string          `json:"userId" binding:"required"`
	CurrentLesson      *string         `json:"currentLesson"`
	LessonsCompleted   []string        `json:"lessonsCompleted"`
	QuizScores         map[string]int  `json:"quizScores"`
	ExercisesCompleted map[string]bool `json:"exercisesCompleted"`
	TimeSpent          *int            `json:"timeSpent"`
}

func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	moduleID := c.Param("module_id")

	var req patchProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u := models.ProgressUpdate{
		CurrentLesson:      req.CurrentLesson,
		LessonsCompleted:   req.LessonsCompleted,
		QuizScores:         req.QuizScores,
		ExercisesCompleted: req.ExercisesCompleted,
		TimeSpent:          req.TimeSpent,
	}

	p, err := h.service.UpdateProgress(c.Request.Context(), req.UserID, moduleID, u)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrProgressNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrInvalidInput), errors.Is(err, app_errors.ErrUnknownModule):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": p})
}

func (h *ProgressHandler) DeleteProgress(c *gin.Context) {
	userID := c.Query("userId")
	moduleID := c.Query("moduleId")
	if userID == "" || moduleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and moduleId are required"})
		return
	}

	if err := h.service.DeleteProgress(c.Request.Context(), userID, moduleID); err != nil {
		if errors.Is(err, app_errors.ErrProgressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "progress deleted"})
}

type completeLessonRequest struct {
	UserID   string `json:"userId" binding:"required"`
	LessonID string `json:"lessonId" binding:"required"`
}

func (h *ProgressHandler) CompleteLesson(c *gin.Context) {
	moduleID := c.Param("module_id")

	var req completeLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.MarkLessonCompleted(c.Request.Context(), req.UserID, moduleID, req.LessonID)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrProgressNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrUnknownModule):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": p})
}

type quizScoreRequest struct {
	UserID string `json:"userId" binding:"required"`
	QuizID string `json:"quizId" binding:"required"`
	Score  *int   `json:"score" binding:"required"`
}

func (h *ProgressHandler) SubmitQuizScore(c *gin.Context) {
	moduleID := c.Param("module_id")

	var req quizScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.UpdateQuizScore(c.Request.Context(), req.UserID, moduleID, req.QuizID, *req.Score)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrInvalidScore):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrProgressNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": p})
}
