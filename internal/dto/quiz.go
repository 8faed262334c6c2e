package dto

import (
	"encoding/json"
	"time"
)

// CreateQuizRequest represents the body of a quiz creation request
// @Description Request body for generating a quiz from a material
type CreateQuizRequest struct {
	UserID         string `json:"userId,omitempty"`
	Title          string `json:"title,omitempty"`
	Description    string `json:"description,omitempty"`
	Difficulty     string `json:"difficulty,omitempty"`
	TotalQuestions *int   `json:"totalQuestions,omitempty"`
	QuestionType   string `json:"questionType,omitempty"`
}

// QuizResponse represents a quiz in the API response
// @Description Quiz information
type QuizResponse struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	MaterialID         string    `json:"materialId"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	Difficulty         string    `json:"difficulty"`
	TotalQuestions     int       `json:"totalQuestions"`
	RequestedQuestions int       `json:"requestedQuestions"`
	QuestionType       string    `json:"questionType"`
	CreatedAt          time.Time `json:"createdAt"`
}

// PublicQuestionResponse is a question as shown to someone taking the quiz.
// It never carries the correct answer or the explanation.
type PublicQuestionResponse struct {
	ID           string   `json:"id"`
	QuizID       string   `json:"quizId"`
	Position     int      `json:"position"`
	QuestionText string   `json:"questionText"`
	QuestionType string   `json:"questionType"`
	Options      []string `json:"options,omitempty"`
}

// QuestionResponse is the full question, shown in results.
type QuestionResponse struct {
	PublicQuestionResponse
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation,omitempty"`
}

// CreateQuizResponse wraps the new quiz with the questions that were stored.
type CreateQuizResponse struct {
	Quiz      QuizResponse             `json:"quiz"`
	Questions []PublicQuestionResponse `json:"questions"`
}

// StartAttemptRequest represents the body of an attempt start request
type StartAttemptRequest struct {
	UserID string `json:"userId"`
}

// AnswerInput is one submitted answer. QuestionID may be empty, in which case
// the answer is matched to the question at the same position.
// On the wire Answer may also be a JSON boolean or number.
type AnswerInput struct {
	QuestionID string  `json:"questionId,omitempty"`
	Answer     *string `json:"answer"`
}

// SubmitAttemptRequest represents the body of an attempt submission
// @Description Request body for submitting answers
type SubmitAttemptRequest struct {
	Answers   json.RawMessage `json:"answers" swaggertype:"array,object"`
	TotalTime int             `json:"totalTime"`
}

// AttemptResponse represents a quiz attempt in the API response
type AttemptResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	QuizID      string     `json:"quizId"`
	Score       *int       `json:"score"`
	TotalTime   *int       `json:"totalTime"`
	Completed   bool       `json:"completed"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// SubmitAttemptResponse is returned after a successful submission
type SubmitAttemptResponse struct {
	Attempt       AttemptResponse `json:"attempt"`
	Score         int             `json:"score"`
	TotalAnswered int             `json:"totalAnswered"`
	TotalCorrect  int             `json:"totalCorrect"`
}

// QuestionResult joins a question with the answer given for it.
type QuestionResult struct {
	Question   QuestionResponse `json:"question"`
	UserAnswer *string          `json:"userAnswer"`
	IsCorrect  bool             `json:"isCorrect"`
}

// AttemptResultsResponse represents the graded results of a completed attempt
type AttemptResultsResponse struct {
	Attempt AttemptResponse  `json:"attempt"`
	Results []QuestionResult `json:"results"`
}
