package domain

import "context"

// QuizOracle is the generative text service used for content generation
// and semantic grading judgments.
type QuizOracle interface {
	GenerateQuizQuestions(ctx context.Context, req QuestionGenerationRequest) ([]GeneratedQuestion, error)
	GradeShortAnswer(ctx context.Context, questionText, expected, submitted string) (bool, error)
	GenerateSummary(ctx context.Context, title, text string) (string, error)
}

// ContentExtractor turns a stored file into plain text.
type ContentExtractor interface {
	Extract(ctx context.Context, path, fileType string) (string, error)
}
