package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"studyhub/internal/domain"
)

var errNoQuestionArray = errors.New("no JSON array of questions found in model response")

// stripThinking removes <think>...</think> blocks emitted by reasoning models.
func stripThinking(s string) string {
	for {
		start := strings.Index(s, "<think>")
		if start == -1 {
			break
		}
		end := strings.Index(s[start:], "</think>")
		if end == -1 {
			s = s[:start]
			break
		}
		s = s[:start] + s[start+end+len("</think>"):]
	}
	return strings.TrimSpace(s)
}

// looseText accepts strings, booleans and numbers. Models often emit
// true/false or 42 unquoted for correctAnswer.
type looseText string

func (t *looseText) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		*t = looseText(x)
	case bool:
		if x {
			*t = "True"
		} else {
			*t = "False"
		}
	case float64:
		*t = looseText(strconv.FormatFloat(x, 'f', -1, 64))
	case nil:
		*t = ""
	default:
		return fmt.Errorf("unsupported JSON value %s", string(b))
	}
	return nil
}

type rawQuestion struct {
	QuestionText  string      `json:"questionText"`
	QuestionType  string      `json:"questionType"`
	Options       []looseText `json:"options"`
	CorrectAnswer looseText   `json:"correctAnswer"`
	Explanation   string      `json:"explanation"`
}

func (r rawQuestion) toDomain() domain.GeneratedQuestion {
	var options []string
	for _, o := range r.Options {
		options = append(options, string(o))
	}
	return domain.GeneratedQuestion{
		QuestionText:  strings.TrimSpace(r.QuestionText),
		QuestionType:  strings.TrimSpace(r.QuestionType),
		Options:       options,
		CorrectAnswer: strings.TrimSpace(string(r.CorrectAnswer)),
		Explanation:   strings.TrimSpace(r.Explanation),
	}
}

// parseQuestionArray returns the first well-formed JSON array of question
// objects in text. Arrays that decode to nothing are only used when no
// non-empty one exists.
func parseQuestionArray(text string) ([]domain.GeneratedQuestion, error) {
	cleaned := stripThinking(text)
	foundEmpty := false

	for i := 0; i < len(cleaned); i++ {
		if cleaned[i] != '[' {
			continue
		}
		var items []rawQuestion
		if err := json.NewDecoder(strings.NewReader(cleaned[i:])).Decode(&items); err != nil {
			continue
		}
		if len(items) == 0 {
			foundEmpty = true
			continue
		}
		out := make([]domain.GeneratedQuestion, 0, len(items))
		for _, item := range items {
			out = append(out, item.toDomain())
		}
		return out, nil
	}

	if foundEmpty {
		return []domain.GeneratedQuestion{}, nil
	}
	return nil, errNoQuestionArray
}

// interpretJudgment reads a short-answer verdict. "incorrect" contains
// "correct", so both substrings are checked.
func interpretJudgment(response string) bool {
	lower := strings.ToLower(stripThinking(response))
	return strings.Contains(lower, "correct") && !strings.Contains(lower, "incorrect")
}
