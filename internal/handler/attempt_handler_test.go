package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"studyhub/internal/domain"
	"studyhub/internal/dto"
	"studyhub/internal/handler"
	"studyhub/internal/middleware"
	"studyhub/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttemptHandler(svc *MockAttemptService) *handler.AttemptHandler {
	return handler.NewAttemptHandler(svc, validation.NewValidator(20))
}

func TestStartAttempt(t *testing.T) {
	started := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	var gotQuiz, gotUser string
	svc := &MockAttemptService{
		StartAttemptFunc: func(ctx context.Context, quizID, userID string) (*dto.AttemptResponse, error) {
			gotQuiz, gotUser = quizID, userID
			return &dto.AttemptResponse{ID: "A1", QuizID: quizID, UserID: userID, StartedAt: started}, nil
		},
	}
	h := newAttemptHandler(svc)

	t.Run("token user wins over body", func(t *testing.T) {
		app := newTestApp()
		app.Post("/quizzes/:id/attempts", asUser("U-token"), h.StartAttempt)

		resp := doJSON(t, app, "POST", "/quizzes/QZ1/attempts", map[string]string{"userId": "U-body"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "QZ1", gotQuiz)
		assert.Equal(t, "U-token", gotUser)

		var body dto.AttemptResponse
		decodeBody(t, resp, &body)
		assert.False(t, body.Completed)
		assert.Nil(t, body.Score)
		assert.Nil(t, body.CompletedAt)
	})

	t.Run("anonymous uses body", func(t *testing.T) {
		app := newTestApp()
		app.Post("/quizzes/:id/attempts", h.StartAttempt)

		resp := doJSON(t, app, "POST", "/quizzes/QZ1/attempts", map[string]string{"userId": "U-body"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "U-body", gotUser)
	})

	t.Run("no user at all", func(t *testing.T) {
		app := newTestApp()
		app.Post("/quizzes/:id/attempts", h.StartAttempt)

		resp := doJSON(t, app, "POST", "/quizzes/QZ1/attempts", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body middleware.ValidationErrorResponse
		decodeBody(t, resp, &body)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "userId", body.Errors[0].Field)
	})
}

func TestStartAttempt_QuizNotFound(t *testing.T) {
	svc := &MockAttemptService{
		StartAttemptFunc: func(ctx context.Context, quizID, userID string) (*dto.AttemptResponse, error) {
			return nil, domain.NewNotFoundError("Quiz QZ9 not found")
		},
	}
	app := newTestApp()
	app.Post("/quizzes/:id/attempts", asUser("U1"), newAttemptHandler(svc).StartAttempt)

	resp := doJSON(t, app, "POST", "/quizzes/QZ9/attempts", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmitAttempt(t *testing.T) {
	var gotAnswers []dto.AnswerInput
	var gotTime int
	called := false
	svc := &MockAttemptService{
		SubmitAttemptFunc: func(ctx context.Context, attemptID string, answers []dto.AnswerInput, totalTime int) (*dto.SubmitAttemptResponse, error) {
			called = true
			gotAnswers, gotTime = answers, totalTime
			score := 60
			return &dto.SubmitAttemptResponse{
				Attempt:       dto.AttemptResponse{ID: attemptID, Score: &score, Completed: true},
				Score:         60,
				TotalAnswered: 2,
				TotalCorrect:  1,
			}, nil
		},
	}
	app := newTestApp()
	app.Post("/attempts/:id/submit", newAttemptHandler(svc).SubmitAttempt)

	t.Run("success", func(t *testing.T) {
		called = false
		resp := doJSON(t, app, "POST", "/attempts/A1/submit",
			`{"answers":[{"questionId":"Q0","answer":"Paris"},{"answer":null}],"totalTime":120}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, called)
		require.Len(t, gotAnswers, 2)
		assert.Equal(t, "Q0", gotAnswers[0].QuestionID)
		assert.Equal(t, "Paris", *gotAnswers[0].Answer)
		assert.Nil(t, gotAnswers[1].Answer)
		assert.Equal(t, 120, gotTime)

		var body dto.SubmitAttemptResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, 60, body.Score)
		assert.Equal(t, 2, body.TotalAnswered)
		assert.True(t, body.Attempt.Completed)
	})

	rejected := []struct {
		name string
		body string
	}{
		{"answers is an object", `{"answers":{"Q0":"Paris"},"totalTime":10}`},
		{"answers is a string", `{"answers":"Paris","totalTime":10}`},
		{"answers missing", `{"totalTime":10}`},
		{"negative total time", `{"answers":[],"totalTime":-5}`},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			resp := doJSON(t, app, "POST", "/attempts/A1/submit", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.False(t, called, "service must not run for invalid input")
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		called = false
		resp := doJSON(t, app, "POST", "/attempts/A1/submit", `{"answers":[`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.False(t, called)
	})
}

func TestSubmitAttempt_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"already completed", domain.NewAlreadyCompletedError("A1"), http.StatusConflict},
		{"not found", domain.NewNotFoundError("Quiz attempt A1 not found"), http.StatusNotFound},
		{"unknown question", domain.ValidationErrors{domain.NewInvalidFormatError("questionId", "Q9")}, http.StatusBadRequest},
		{"unsupported type", domain.NewUnsupportedQuestionTypeError("essay"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAttemptService{
				SubmitAttemptFunc: func(ctx context.Context, attemptID string, answers []dto.AnswerInput, totalTime int) (*dto.SubmitAttemptResponse, error) {
					return nil, tt.err
				},
			}
			app := newTestApp()
			app.Post("/attempts/:id/submit", newAttemptHandler(svc).SubmitAttempt)

			resp := doJSON(t, app, "POST", "/attempts/A1/submit", `{"answers":[],"totalTime":0}`)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestGetResults(t *testing.T) {
	answer := "Paris"
	svc := &MockAttemptService{
		GetResultsFunc: func(ctx context.Context, attemptID string) (*dto.AttemptResultsResponse, error) {
			if attemptID == "A2" {
				return nil, domain.NewNotCompletedError(attemptID)
			}
			return &dto.AttemptResultsResponse{
				Attempt: dto.AttemptResponse{ID: attemptID, Completed: true},
				Results: []dto.QuestionResult{
					{Question: dto.QuestionResponse{PublicQuestionResponse: dto.PublicQuestionResponse{ID: "Q0"}, CorrectAnswer: "Paris", Explanation: "Capital."}, UserAnswer: &answer, IsCorrect: true},
					{Question: dto.QuestionResponse{PublicQuestionResponse: dto.PublicQuestionResponse{ID: "Q1"}, CorrectAnswer: "True"}},
				},
			}, nil
		},
	}
	app := newTestApp()
	app.Get("/attempts/:id/results", newAttemptHandler(svc).GetResults)

	resp := doJSON(t, app, "GET", "/attempts/A1/results", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	results := body["results"].([]interface{})
	require.Len(t, results, 2)
	second := results[1].(map[string]interface{})
	assert.Nil(t, second["userAnswer"])
	assert.Equal(t, false, second["isCorrect"])
	assert.Equal(t, "True", second["question"].(map[string]interface{})["correctAnswer"])

	resp = doJSON(t, app, "GET", "/attempts/A2/results", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetAttemptAndUserAttempts(t *testing.T) {
	svc := &MockAttemptService{
		GetAttemptFunc: func(ctx context.Context, id string) (*dto.AttemptResponse, error) {
			return &dto.AttemptResponse{ID: id}, nil
		},
		GetUserAttemptsFunc: func(ctx context.Context, userID string) ([]dto.AttemptResponse, error) {
			return []dto.AttemptResponse{}, nil
		},
	}
	h := newAttemptHandler(svc)
	app := newTestApp()
	app.Get("/attempts/:id", h.GetAttempt)
	app.Get("/users/:userId/attempts", h.GetUserAttempts)

	resp := doJSON(t, app, "GET", "/attempts/A1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/users/U1/attempts", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.AttemptResponse
	decodeBody(t, resp, &list)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
