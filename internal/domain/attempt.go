package domain

import "time"

// QuizAttempt is one user's run through a quiz.
// Score, TotalTime and CompletedAt stay nil until the attempt is submitted.
type QuizAttempt struct {
	ID          string
	UserID      string
	QuizID      string
	Score       *int
	TotalTime   *int
	Completed   bool
	StartedAt   time.Time
	CompletedAt *time.Time
}

// NewQuizAttempt returns an in-progress attempt.
func NewQuizAttempt(id, userID, quizID string, startedAt time.Time) *QuizAttempt {
	return &QuizAttempt{
		ID:        id,
		UserID:    userID,
		QuizID:    quizID,
		StartedAt: startedAt,
	}
}

// MarkCompleted applies the result of a successful submission.
func (a *QuizAttempt) MarkCompleted(score, totalTime int, completedAt time.Time) {
	a.Score = &score
	a.TotalTime = &totalTime
	a.Completed = true
	a.CompletedAt = &completedAt
}

// UserAnswer records how one question of an attempt was answered.
// UserAnswer is nil when the question was left unanswered.
type UserAnswer struct {
	ID         string
	AttemptID  string
	QuestionID string
	UserAnswer *string
	IsCorrect  bool
	CreatedAt  time.Time
}
