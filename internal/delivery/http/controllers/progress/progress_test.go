package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"GeniusLabs/internal/app_errors"
	"GeniusLabs/internal/models"

	"github.com/gin-gonic/gin"
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

type stubService struct {
	progress *models.UserProgress
	list     []models.UserProgress
	err      error
}

func (s *stubService) CreateProgress(context.Context, string, string, string) (*models.UserProgress, error) {
	return s.progress, s.err
}

func (s *stubService) MarkLessonCompleted(context.Context, string, string, string) (*models.UserProgress, error) {
	return s.progress, s.err
}

func (s *stubService) UpdateQuizScore(context.Context, string, string, string, int) (*models.UserProgress, error) {
	return s.progress, s.err
}

func (s *stubService) UpdateProgress(context.Context, string, string, models.ProgressUpdate) (*models.UserProgress, error) {
	return s.progress, s.err
}

func (s *stubService) GetProgress(context.Context, string, string) (*models.UserProgress, error) {
	return s.progress, s.err
}

func (s *stubService) GetAllProgress(context.Context, string) ([]models.UserProgress, error) {
	return s.list, s.err
}

func (s *stubService) DeleteProgress(context.Context, string, string) error {
	return s.err
}

func setupRouter(svc ProgressService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProgressHandler(nopLog{}, svc)
	r := gin.New()
	r.GET("/progress", h.ListProgress)
	r.POST("/progress", h.CreateProgress)
	r.DELETE("/progress", h.DeleteProgress)
	r.GET("/progress/:module_id", h.GetProgress)
	r.PATCH("/progress/:module_id", h.UpdateProgress)
	r.POST("/progress/:module_id/lesson", h.CompleteLesson)
	r.POST("/progress/:module_id/quiz", h.SubmitQuizScore)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListProgress_RequiresUserID(t *testing.T) {
	r := setupRouter(&stubService{})

	w := doJSON(t, r, http.MethodGet, "/progress", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProgress_EmptyListNotNull(t *testing.T) {
	r := setupRouter(&stubService{})

	w := doJSON(t, r, http.MethodGet, "/progress?userId=u1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"progress": []}`, w.Body.String())
}

func TestGetProgress_NotFound(t *testing.T) {
	r := setupRouter(&stubService{err: app_errors.ErrProgressNotFound})

	w := doJSON(t, r, http.MethodGet, "/progress/js-basics?userId=u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProgress_Created(t *testing.T) {
	r := setupRouter(&stubService{progress: &models.UserProgress{UserID: "u1", ModuleID: "js-basics"}})

	w := doJSON(t, r, http.MethodPost, "/progress", gin.H{"userId": "u1", "moduleId": "js-basics"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateProgress_MissingFields(t *testing.T) {
	r := setupRouter(&stubService{})

	w := doJSON(t, r, http.MethodPost, "/progress", gin.H{"userId": "u1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProgress_Conflict(t *testing.T) {
	r := setupRouter(&stubService{err: app_errors.ErrProgressExists})

	w := doJSON(t, r, http.MethodPost, "/progress", gin.H{"userId": "u1", "moduleId": "js-basics"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteProgress_RequiresBothKeys(t *testing.T) {
	r := setupRouter(&stubService{})

	w := doJSON(t, r, http.MethodDelete, "/progress?userId=u1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitQuizScore_ZeroIsValid(t *testing.T) {
	r := setupRouter(&stubService{progress: &models.UserProgress{}})

	w := doJSON(t, r, http.MethodPost, "/progress/js-basics/quiz", gin.H{"userId": "u1", "quizId": "q1", "score": 0})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitQuizScore_MissingScore(t *testing.T) {
	r := setupRouter(&stubService{progress: &models.UserProgress{}})

	w := doJSON(t, r, http.MethodPost, "/progress/js-basics/quiz", gin.H{"userId": "u1", "quizId": "q1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitQuizScore_OutOfRange(t *testing.T) {
	r := setupRouter(&stubService{err: app_errors.ErrInvalidScore})

	w := doJSON(t, r, http.MethodPost, "/progress/js-basics/quiz", gin.H{"userId": "u1", "quizId": "q1", "score": 101})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteLesson_UnknownModule(t *testing.T) {
	r := setupRouter(&stubService{err: app_errors.ErrUnknownModule})

	w := doJSON(t, r, http.MethodPost, "/progress/nope/lesson", gin.H{"userId": "u1", "lessonId": "l1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProgress_NotFound(t *testing.T) {
	r := setupRouter(&stubService{err: app_errors.ErrProgressNotFound})

	w := doJSON(t, r, http.MethodPatch, "/progress/js-basics", gin.H{"userId": "u1", "timeSpent": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
