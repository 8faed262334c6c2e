package dto

import "studyhub/internal/domain"

func NewQuizResponse(q *domain.Quiz) QuizResponse {
	return QuizResponse{
		ID:                 q.ID,
		UserID:             q.UserID,
		MaterialID:         q.MaterialID,
		Title:              q.Title,
		Description:        q.Description,
		Difficulty:         string(q.Difficulty),
		TotalQuestions:     q.TotalQuestions,
		RequestedQuestions: q.RequestedQuestions,
		QuestionType:       string(q.QuestionType),
		CreatedAt:          q.CreatedAt,
	}
}

func NewQuizResponses(quizzes []*domain.Quiz) []QuizResponse {
	out := make([]QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, NewQuizResponse(q))
	}
	return out
}

func NewPublicQuestionResponse(q *domain.Question) PublicQuestionResponse {
	return PublicQuestionResponse{
		ID:           q.ID,
		QuizID:       q.QuizID,
		Position:     q.Position,
		QuestionText: q.QuestionText,
		QuestionType: string(q.QuestionType),
		Options:      q.Options,
	}
}

func NewPublicQuestionResponses(questions []*domain.Question) []PublicQuestionResponse {
	out := make([]PublicQuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, NewPublicQuestionResponse(q))
	}
	return out
}

func NewQuestionResponse(q *domain.Question) QuestionResponse {
	return QuestionResponse{
		PublicQuestionResponse: NewPublicQuestionResponse(q),
		CorrectAnswer:          q.CorrectAnswer,
		Explanation:            q.Explanation,
	}
}

func NewAttemptResponse(a *domain.QuizAttempt) AttemptResponse {
	return AttemptResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		QuizID:      a.QuizID,
		Score:       a.Score,
		TotalTime:   a.TotalTime,
		Completed:   a.Completed,
		StartedAt:   a.StartedAt,
		CompletedAt: a.CompletedAt,
	}
}

func NewAttemptResponses(attempts []*domain.QuizAttempt) []AttemptResponse {
	out := make([]AttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, NewAttemptResponse(a))
	}
	return out
}

func NewMaterialResponse(m *domain.Material) MaterialResponse {
	return MaterialResponse{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		FileType:    m.FileType,
		Content:     m.Content,
		FileURL:     m.FileURL,
		Subject:     m.Subject,
		CreatedAt:   m.CreatedAt,
	}
}

func NewMaterialResponses(materials []*domain.Material) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, NewMaterialResponse(m))
	}
	return out
}

func NewSummaryResponse(s *domain.Summary) SummaryResponse {
	return SummaryResponse{
		ID:         s.ID,
		UserID:     s.UserID,
		MaterialID: s.MaterialID,
		Title:      s.Title,
		Content:    s.Content,
		PDFURL:     s.PDFURL,
		CreatedAt:  s.CreatedAt,
	}
}

func NewSummaryResponses(summaries []*domain.Summary) []SummaryResponse {
	out := make([]SummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, NewSummaryResponse(s))
	}
	return out
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		IsAdmin:     u.IsAdmin,
		Provider:    u.Provider,
		CreatedAt:   u.CreatedAt,
	}
}
