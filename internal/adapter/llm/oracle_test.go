package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"studyhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// stubModel is a scripted llms.Model.
type stubModel struct {
	responses []string
	err       error
	prompts   []string
	options   []llms.CallOptions
}

func (s *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, m := range messages {
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				s.prompts = append(s.prompts, text.Text)
			}
		}
	}
	var opts llms.CallOptions
	for _, o := range options {
		o(&opts)
	}
	s.options = append(s.options, opts)

	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return nil, errors.New("stub: no scripted response")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: resp}}}, nil
}

func (s *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, s, prompt, options...)
}

func newTestOracle(model *stubModel) *Oracle {
	return NewOracle(NewLangchainGenerator(model), time.Second)
}

func TestGenerateQuizQuestions_ParsesArrayFromNoisyResponse(t *testing.T) {
	model := &stubModel{responses: []string{"<think>let me plan</think>Here you go:\n```json\n" + `[
  {"questionText": "Which organelle produces ATP?", "questionType": "multiple-choice",
   "options": ["Nucleus", "Mitochondria", "Ribosome", "Golgi"], "correctAnswer": "Mitochondria",
   "explanation": "Cellular respiration happens there."},
  {"questionText": "Plants perform photosynthesis.", "questionType": "true-false",
   "correctAnswer": true, "explanation": "Chlorophyll."}
]` + "\n```\nGood luck!"}}
	oracle := newTestOracle(model)

	req := domain.QuestionGenerationRequest{
		Text: "Cells contain organelles.", Title: "Biology", Count: 2,
		QuestionType: domain.QuestionTypeMixed, Difficulty: domain.DifficultyMedium,
	}
	questions, err := oracle.GenerateQuizQuestions(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "Which organelle produces ATP?", questions[0].QuestionText)
	assert.Equal(t, []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi"}, questions[0].Options)
	assert.Equal(t, "Mitochondria", questions[0].CorrectAnswer)
	assert.Equal(t, "True", questions[1].CorrectAnswer)
	assert.Empty(t, questions[1].Options)

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], `"Biology"`)
	assert.Contains(t, model.prompts[0], "exactly 2 questions")
	assert.Contains(t, model.prompts[0], "Cells contain organelles.")
	assert.InDelta(t, 0.2, model.options[0].Temperature, 1e-9)
}

func TestGenerateQuizQuestions_NoArrayIsGenerationFailure(t *testing.T) {
	oracle := newTestOracle(&stubModel{responses: []string{"I cannot help with that."}})

	_, err := oracle.GenerateQuizQuestions(context.Background(), domain.QuestionGenerationRequest{Count: 3})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrGenerationFailure))
}

func TestGenerateQuizQuestions_ModelErrorIsServiceError(t *testing.T) {
	oracle := newTestOracle(&stubModel{err: errors.New("connection refused")})

	_, err := oracle.GenerateQuizQuestions(context.Background(), domain.QuestionGenerationRequest{Count: 3})
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrLLMServiceError))
}

func TestGradeShortAnswer(t *testing.T) {
	tests := []struct {
		response string
		want     bool
	}{
		{"correct", true},
		{"Correct.", true},
		{"<think>close enough</think>\ncorrect", true},
		{"incorrect", false},
		{"INCORRECT", false},
		{"The answer is not correct, it is incorrect", false},
		{"unsure", false},
	}
	for _, tt := range tests {
		t.Run(tt.response, func(t *testing.T) {
			model := &stubModel{responses: []string{tt.response}}
			got, err := newTestOracle(model).GradeShortAnswer(context.Background(), "Q?", "expected", "submitted")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.InDelta(t, 0.1, model.options[0].Temperature, 1e-9)
			assert.Equal(t, 10, model.options[0].MaxTokens)
			assert.Contains(t, model.prompts[0], "Expected answer: expected")
			assert.Contains(t, model.prompts[0], "Student's answer: submitted")
		})
	}
}

func TestGradeShortAnswer_PropagatesFailure(t *testing.T) {
	_, err := newTestOracle(&stubModel{err: errors.New("boom")}).GradeShortAnswer(context.Background(), "Q?", "a", "b")
	assert.Error(t, err)
}

func TestGenerateSummary(t *testing.T) {
	model := &stubModel{responses: []string{"<think>hmm</think>## Overview\n- Cells"}}
	summary, err := newTestOracle(model).GenerateSummary(context.Background(), "Biology", "Cells contain organelles.")
	require.NoError(t, err)
	assert.Equal(t, "## Overview\n- Cells", summary)
	assert.Contains(t, model.prompts[0], "expert educational summarizer")

	_, err = newTestOracle(&stubModel{responses: []string{"   "}}).GenerateSummary(context.Background(), "B", "text")
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrGenerationFailure))
}

func TestOracle_AppliesTimeout(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	oracle := NewOracle(gen, 10*time.Millisecond)

	_, err := oracle.GradeShortAnswer(context.Background(), "Q?", "a", "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type generatorFunc func(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	return f(ctx, prompt, opts)
}
