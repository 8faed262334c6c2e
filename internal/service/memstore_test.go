package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"studyhub/internal/domain"
)

// memStore is an in-memory QuizRepository, QuizAttemptRepository and
// TransactionManager. A failed transaction restores the state it started from.
type memStore struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	quizzes   map[string]domain.Quiz
	questions map[string][]domain.Question
	attempts  map[string]domain.QuizAttempt
	answers   map[string][]domain.UserAnswer
}

func newMemStore() *memStore {
	return &memStore{
		quizzes:   map[string]domain.Quiz{},
		questions: map[string][]domain.Question{},
		attempts:  map[string]domain.QuizAttempt{},
		answers:   map[string][]domain.UserAnswer{},
	}
}

func (s *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.copyState()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.quizzes, s.questions, s.attempts, s.answers = snapshot.quizzes, snapshot.questions, snapshot.attempts, snapshot.answers
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) copyState() *memStore {
	c := newMemStore()
	for k, v := range s.quizzes {
		c.quizzes[k] = v
	}
	for k, v := range s.questions {
		c.questions[k] = append([]domain.Question(nil), v...)
	}
	for k, v := range s.attempts {
		c.attempts[k] = v
	}
	for k, v := range s.answers {
		c.answers[k] = append([]domain.UserAnswer(nil), v...)
	}
	return c
}

func (s *memStore) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = *quiz
	return nil
}

func (s *memStore) CreateQuestion(ctx context.Context, question *domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[question.QuizID] = append(s.questions[question.QuizID], *question)
	return nil
}

func (s *memStore) GetQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quizzes[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (s *memStore) GetQuizzesByUserID(ctx context.Context, userID string) ([]*domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Quiz
	for _, q := range s.quizzes {
		if q.UserID == userID {
			q := q
			out = append(out, &q)
		}
	}
	return out, nil
}

func (s *memStore) GetQuizzesByMaterialID(ctx context.Context, materialID string) ([]*domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Quiz
	for _, q := range s.quizzes {
		if q.MaterialID == materialID {
			q := q
			out = append(out, &q)
		}
	}
	return out, nil
}

func (s *memStore) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]*domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := append([]domain.Question(nil), s.questions[quizID]...)
	sort.Slice(stored, func(i, j int) bool { return stored[i].Position < stored[j].Position })
	out := make([]*domain.Question, 0, len(stored))
	for i := range stored {
		out = append(out, &stored[i])
	}
	return out, nil
}

func (s *memStore) CreateQuizAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[attempt.ID] = *attempt
	return nil
}

func (s *memStore) GetQuizAttempt(ctx context.Context, id string) (*domain.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *memStore) GetQuizAttemptsByUserID(ctx context.Context, userID string) ([]*domain.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.QuizAttempt
	for _, a := range s.attempts {
		if a.UserID == userID {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (s *memStore) CompleteQuizAttempt(ctx context.Context, id string, score, totalTime int, completedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[id]
	if !ok || a.Completed {
		return false, nil
	}
	a.MarkCompleted(score, totalTime, completedAt)
	s.attempts[id] = a
	return true, nil
}

func (s *memStore) CreateUserAnswer(ctx context.Context, answer *domain.UserAnswer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[answer.AttemptID] = append(s.answers[answer.AttemptID], *answer)
	return nil
}

func (s *memStore) GetUserAnswersByAttemptID(ctx context.Context, attemptID string) ([]*domain.UserAnswer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := append([]domain.UserAnswer(nil), s.answers[attemptID]...)
	out := make([]*domain.UserAnswer, 0, len(stored))
	for i := range stored {
		out = append(out, &stored[i])
	}
	return out, nil
}
