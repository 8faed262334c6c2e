package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"studyhub/internal/domain"
	"studyhub/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestValidateID(t *testing.T) {
	v := NewValidator(20)
	assert.Empty(t, v.ValidateID("id", "01HZY3K6N4TQ8W2X5V7B9C0D1E"))

	errs := v.ValidateID("id", "")
	require.Len(t, errs, 1)
	assert.Equal(t, "id is required", errs[0].Message)

	assert.Len(t, v.ValidateID("id", "not-a-ulid"), 1)
}

func TestValidateCreateQuizRequest(t *testing.T) {
	v := NewValidator(20)

	tests := []struct {
		name    string
		req     dto.CreateQuizRequest
		wantErr []string
	}{
		{name: "empty uses defaults", req: dto.CreateQuizRequest{}},
		{name: "valid", req: dto.CreateQuizRequest{Difficulty: "hard", QuestionType: "short-answer", TotalQuestions: intPtr(20)}},
		{name: "zero questions", req: dto.CreateQuizRequest{TotalQuestions: intPtr(0)}, wantErr: []string{"totalQuestions"}},
		{name: "too many questions", req: dto.CreateQuizRequest{TotalQuestions: intPtr(21)}, wantErr: []string{"totalQuestions"}},
		{name: "bad enums", req: dto.CreateQuizRequest{Difficulty: "brutal", QuestionType: "essay"}, wantErr: []string{"difficulty", "questionType"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateCreateQuizRequest(&tt.req)
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantErr, fields)
		})
	}
}

func TestDecodeAnswers(t *testing.T) {
	v := NewValidator(20)

	answers, errs := v.DecodeAnswers(json.RawMessage(` [{"questionId":"q1","answer":"Paris"},{"answer":null}]`))
	require.Empty(t, errs)
	require.Len(t, answers, 2)
	assert.Equal(t, "q1", answers[0].QuestionID)
	assert.Equal(t, "Paris", *answers[0].Answer)
	assert.Nil(t, answers[1].Answer)

	_, errs = v.DecodeAnswers(json.RawMessage(`{"questionId":"q1"}`))
	require.Len(t, errs, 1)
	assert.Equal(t, "answers must be an array", errs[0].Message)

	_, errs = v.DecodeAnswers(json.RawMessage(`"Paris"`))
	assert.Len(t, errs, 1)

	_, errs = v.DecodeAnswers(nil)
	assert.Len(t, errs, 1)

	_, errs = v.DecodeAnswers(json.RawMessage(`[{"answer": {"text": "Paris"}}]`))
	require.Len(t, errs, 1)
	assert.Equal(t, domain.ErrInvalidFormat, errs[0].Code)

	long := strings.Repeat("x", maxAnswerLength+1)
	raw, _ := json.Marshal([]dto.AnswerInput{{Answer: &long}})
	_, errs = v.DecodeAnswers(raw)
	assert.Len(t, errs, 1)
}

func TestDecodeAnswers_NonStringAnswers(t *testing.T) {
	v := NewValidator(20)

	answers, errs := v.DecodeAnswers(json.RawMessage(`[
		{"questionId":"q1","answer":true},
		{"questionId":"q2","answer":false},
		{"questionId":"q3","answer":42},
		{"questionId":"q4","answer":"3.5"}
	]`))
	require.Empty(t, errs)
	require.Len(t, answers, 4)
	assert.Equal(t, "True", *answers[0].Answer)
	assert.Equal(t, "False", *answers[1].Answer)
	assert.Equal(t, "42", *answers[2].Answer)
	assert.Equal(t, "3.5", *answers[3].Answer)
}

func TestValidateTotalTime(t *testing.T) {
	v := NewValidator(20)
	assert.Empty(t, v.ValidateTotalTime(0))
	assert.Len(t, v.ValidateTotalTime(-1), 1)
}

func TestValidateCreateMaterialRequest(t *testing.T) {
	v := NewValidator(20)

	assert.Empty(t, v.ValidateCreateMaterialRequest(&dto.CreateMaterialRequest{UserID: "u1", Title: "Cells", FileType: "pdf"}))

	errs := v.ValidateCreateMaterialRequest(&dto.CreateMaterialRequest{FileType: "exe"})
	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"userId", "title", "fileType"}, fields)
}

func TestValidateCreateUserRequest(t *testing.T) {
	v := NewValidator(20)
	assert.Empty(t, v.ValidateCreateUserRequest(&dto.CreateUserRequest{Username: "ada_l", Email: "ada@example.com"}))
	assert.Len(t, v.ValidateCreateUserRequest(&dto.CreateUserRequest{Username: "a", Email: "nope"}), 2)
	assert.Len(t, v.ValidateCreateUserRequest(&dto.CreateUserRequest{}), 2)
}
