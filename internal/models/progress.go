package models

import "time"

// UserProgress is the persisted completion state for one (user, module) pair.
// ModuleProgress and IsCompleted are derived from LessonsCompleted on every
// mutation; they are never trusted as externally supplied truth.
type UserProgress struct {
	UserID             string          `json:"userId"`
	ModuleID           string          `json:"moduleId"`
	LessonsCompleted   []string        `json:"lessonsCompleted"`
	CurrentLesson      string          `json:"currentLesson,omitempty"`
	ModuleProgress     int             `json:"moduleProgress"`
	IsCompleted        bool            `json:"isCompleted"`
	QuizScores         map[string]int  `json:"quizScores"`
	ExercisesCompleted map[string]bool `json:"exercisesCompleted"`
	TimeSpent          int             `json:"timeSpent"`
	StartedAt          time.Time       `json:"startedAt"`
	LastAccessedAt     time.Time       `json:"lastAccessedAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
	CompletedAt        *time.Time      `json:"completedAt,omitempty"`
}

// HasLesson reports whether lessonID is already in the completed set.
func (p *UserProgress) HasLesson(lessonID string) bool {
	for _, id := range p.LessonsCompleted {
		if id == lessonID {
			return true
		}
	}
	return false
}

// ProgressUpdate is a partial update of a progress record. Nil fields are
// left untouched by the store; LastAccessedAt/UpdatedAt are always refreshed.
type ProgressUpdate struct {
	LessonsCompleted   []string
	CurrentLesson      *string
	ModuleProgress     *int
	IsCompleted        *bool
	QuizScores         map[string]int
	ExercisesCompleted map[string]bool
	TimeSpent          *int
	CompletedAt        *time.Time
}

// IsEmpty reports whether the update carries no field at all.
func (u ProgressUpdate) IsEmpty() bool {
	return u.LessonsCompleted == nil &&
		u.CurrentLesson == nil &&
		u.ModuleProgress == nil &&
		u.IsCompleted == nil &&
		u.QuizScores == nil &&
		u.ExercisesCompleted == nil &&
		u.TimeSpent == nil &&
		u.CompletedAt == nil
}
