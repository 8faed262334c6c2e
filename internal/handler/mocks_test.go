package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"studyhub/internal/dto"
	"studyhub/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

type MockQuizService struct {
	CreateQuizFunc         func(ctx context.Context, materialID, tokenUserID string, req *dto.CreateQuizRequest) (*dto.CreateQuizResponse, error)
	GetQuizFunc            func(ctx context.Context, id string) (*dto.QuizResponse, error)
	GetQuizQuestionsFunc   func(ctx context.Context, id string) ([]dto.PublicQuestionResponse, error)
	GetUserQuizzesFunc     func(ctx context.Context, userID string) ([]dto.QuizResponse, error)
	GetMaterialQuizzesFunc func(ctx context.Context, materialID string) ([]dto.QuizResponse, error)
}

func (m *MockQuizService) CreateQuiz(ctx context.Context, materialID, tokenUserID string, req *dto.CreateQuizRequest) (*dto.CreateQuizResponse, error) {
	if m.CreateQuizFunc != nil {
		return m.CreateQuizFunc(ctx, materialID, tokenUserID, req)
	}
	panic("MockQuizService.CreateQuizFunc not implemented")
}
func (m *MockQuizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	if m.GetQuizFunc != nil {
		return m.GetQuizFunc(ctx, id)
	}
	panic("MockQuizService.GetQuizFunc not implemented")
}
func (m *MockQuizService) GetQuizQuestions(ctx context.Context, id string) ([]dto.PublicQuestionResponse, error) {
	if m.GetQuizQuestionsFunc != nil {
		return m.GetQuizQuestionsFunc(ctx, id)
	}
	panic("MockQuizService.GetQuizQuestionsFunc not implemented")
}
func (m *MockQuizService) GetUserQuizzes(ctx context.Context, userID string) ([]dto.QuizResponse, error) {
	if m.GetUserQuizzesFunc != nil {
		return m.GetUserQuizzesFunc(ctx, userID)
	}
	panic("MockQuizService.GetUserQuizzesFunc not implemented")
}
func (m *MockQuizService) GetMaterialQuizzes(ctx context.Context, materialID string) ([]dto.QuizResponse, error) {
	if m.GetMaterialQuizzesFunc != nil {
		return m.GetMaterialQuizzesFunc(ctx, materialID)
	}
	panic("MockQuizService.GetMaterialQuizzesFunc not implemented")
}

type MockAttemptService struct {
	StartAttemptFunc    func(ctx context.Context, quizID, userID string) (*dto.AttemptResponse, error)
	GetAttemptFunc      func(ctx context.Context, id string) (*dto.AttemptResponse, error)
	SubmitAttemptFunc   func(ctx context.Context, attemptID string, answers []dto.AnswerInput, totalTime int) (*dto.SubmitAttemptResponse, error)
	GetResultsFunc      func(ctx context.Context, attemptID string) (*dto.AttemptResultsResponse, error)
	GetUserAttemptsFunc func(ctx context.Context, userID string) ([]dto.AttemptResponse, error)
}

func (m *MockAttemptService) StartAttempt(ctx context.Context, quizID, userID string) (*dto.AttemptResponse, error) {
	if m.StartAttemptFunc != nil {
		return m.StartAttemptFunc(ctx, quizID, userID)
	}
	panic("MockAttemptService.StartAttemptFunc not implemented")
}
func (m *MockAttemptService) GetAttempt(ctx context.Context, id string) (*dto.AttemptResponse, error) {
	if m.GetAttemptFunc != nil {
		return m.GetAttemptFunc(ctx, id)
	}
	panic("MockAttemptService.GetAttemptFunc not implemented")
}
func (m *MockAttemptService) SubmitAttempt(ctx context.Context, attemptID string, answers []dto.AnswerInput, totalTime int) (*dto.SubmitAttemptResponse, error) {
	if m.SubmitAttemptFunc != nil {
		return m.SubmitAttemptFunc(ctx, attemptID, answers, totalTime)
	}
	panic("MockAttemptService.SubmitAttemptFunc not implemented")
}
func (m *MockAttemptService) GetResults(ctx context.Context, attemptID string) (*dto.AttemptResultsResponse, error) {
	if m.GetResultsFunc != nil {
		return m.GetResultsFunc(ctx, attemptID)
	}
	panic("MockAttemptService.GetResultsFunc not implemented")
}
func (m *MockAttemptService) GetUserAttempts(ctx context.Context, userID string) ([]dto.AttemptResponse, error) {
	if m.GetUserAttemptsFunc != nil {
		return m.GetUserAttemptsFunc(ctx, userID)
	}
	panic("MockAttemptService.GetUserAttemptsFunc not implemented")
}

type MockMaterialService struct {
	CreateMaterialFunc   func(ctx context.Context, req *dto.CreateMaterialRequest) (*dto.MaterialResponse, error)
	ImportFileFunc       func(ctx context.Context, userID, title, path string) (*dto.MaterialResponse, error)
	GetMaterialFunc      func(ctx context.Context, id string) (*dto.MaterialResponse, error)
	GetUserMaterialsFunc func(ctx context.Context, userID string) ([]dto.MaterialResponse, error)
}

func (m *MockMaterialService) CreateMaterial(ctx context.Context, req *dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if m.CreateMaterialFunc != nil {
		return m.CreateMaterialFunc(ctx, req)
	}
	panic("MockMaterialService.CreateMaterialFunc not implemented")
}
func (m *MockMaterialService) ImportFile(ctx context.Context, userID, title, path string) (*dto.MaterialResponse, error) {
	if m.ImportFileFunc != nil {
		return m.ImportFileFunc(ctx, userID, title, path)
	}
	panic("MockMaterialService.ImportFileFunc not implemented")
}
func (m *MockMaterialService) GetMaterial(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	if m.GetMaterialFunc != nil {
		return m.GetMaterialFunc(ctx, id)
	}
	panic("MockMaterialService.GetMaterialFunc not implemented")
}
func (m *MockMaterialService) GetUserMaterials(ctx context.Context, userID string) ([]dto.MaterialResponse, error) {
	if m.GetUserMaterialsFunc != nil {
		return m.GetUserMaterialsFunc(ctx, userID)
	}
	panic("MockMaterialService.GetUserMaterialsFunc not implemented")
}

type MockSummaryService struct {
	CreateSummaryFunc        func(ctx context.Context, materialID, userID string) (*dto.SummaryResponse, error)
	GetSummaryFunc           func(ctx context.Context, id string) (*dto.SummaryResponse, error)
	GetUserSummariesFunc     func(ctx context.Context, userID string) ([]dto.SummaryResponse, error)
	GetMaterialSummariesFunc func(ctx context.Context, materialID string) ([]dto.SummaryResponse, error)
}

func (m *MockSummaryService) CreateSummary(ctx context.Context, materialID, userID string) (*dto.SummaryResponse, error) {
	if m.CreateSummaryFunc != nil {
		return m.CreateSummaryFunc(ctx, materialID, userID)
	}
	panic("MockSummaryService.CreateSummaryFunc not implemented")
}
func (m *MockSummaryService) GetSummary(ctx context.Context, id string) (*dto.SummaryResponse, error) {
	if m.GetSummaryFunc != nil {
		return m.GetSummaryFunc(ctx, id)
	}
	panic("MockSummaryService.GetSummaryFunc not implemented")
}
func (m *MockSummaryService) GetUserSummaries(ctx context.Context, userID string) ([]dto.SummaryResponse, error) {
	if m.GetUserSummariesFunc != nil {
		return m.GetUserSummariesFunc(ctx, userID)
	}
	panic("MockSummaryService.GetUserSummariesFunc not implemented")
}
func (m *MockSummaryService) GetMaterialSummaries(ctx context.Context, materialID string) ([]dto.SummaryResponse, error) {
	if m.GetMaterialSummariesFunc != nil {
		return m.GetMaterialSummariesFunc(ctx, materialID)
	}
	panic("MockSummaryService.GetMaterialSummariesFunc not implemented")
}

type MockUserService struct {
	CreateUserFunc func(ctx context.Context, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error)
	GetUserFunc    func(ctx context.Context, id string) (*dto.UserResponse, error)
}

func (m *MockUserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, req)
	}
	panic("MockUserService.CreateUserFunc not implemented")
}
func (m *MockUserService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	panic("MockUserService.GetUserFunc not implemented")
}

// --- helpers ---

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
}

// asUser sets the authenticated user id the way OptionalAuth does.
func asUser(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDKey, userID)
		return c.Next()
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}
