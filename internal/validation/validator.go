package validation

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"studyhub/internal/domain"
	"studyhub/internal/dto"
	"studyhub/internal/util"
)

var (
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,50}$`)
)

const (
	maxTitleLength  = 255
	maxAnswerLength = 2000
	maxUserIDLength = 128
)

// Validator provides request validation functionality
type Validator struct {
	maxQuestions int
}

// NewValidator creates a validator that accepts up to maxQuestions per quiz.
func NewValidator(maxQuestions int) *Validator {
	return &Validator{maxQuestions: maxQuestions}
}

// ValidateID checks a path parameter holding a generated entity id.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !util.IsULID(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}
	return errors
}

// ValidateUserID checks an owner id. Owner ids may be issued elsewhere, so
// only presence and length are enforced.
func (v *Validator) ValidateUserID(field, userID string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(userID) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if len(userID) > maxUserIDLength {
		errors = append(errors, domain.NewOutOfRangeError(field, len(userID), 1, maxUserIDLength))
	}
	return errors
}

// ValidateCreateQuizRequest validates the optional settings of a new quiz
func (v *Validator) ValidateCreateQuizRequest(req *dto.CreateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(req.Title) > maxTitleLength {
		errors = append(errors, domain.NewOutOfRangeError("title", len(req.Title), 1, maxTitleLength))
	}
	if req.Difficulty != "" {
		if _, err := domain.ParseDifficulty(req.Difficulty); err != nil {
			errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
		}
	}
	if req.QuestionType != "" {
		if _, err := domain.ParseQuestionType(req.QuestionType); err != nil {
			errors = append(errors, domain.NewInvalidFormatError("questionType", req.QuestionType))
		}
	}
	if req.TotalQuestions != nil && (*req.TotalQuestions < 1 || *req.TotalQuestions > v.maxQuestions) {
		errors = append(errors, domain.NewOutOfRangeError("totalQuestions", *req.TotalQuestions, 1, v.maxQuestions))
	}
	if len(req.UserID) > maxUserIDLength {
		errors = append(errors, domain.NewOutOfRangeError("userId", len(req.UserID), 1, maxUserIDLength))
	}

	return errors
}

type submittedAnswer struct {
	QuestionID string          `json:"questionId"`
	Answer     json.RawMessage `json:"answer"`
}

// answerText reads an answer given as a string, a boolean or a number.
// Booleans become "True" or "False". Null or absent means unanswered.
func answerText(raw json.RawMessage) (*string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, true
	}

	var text string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, false
		}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, false
		}
		text = "False"
		if b {
			text = "True"
		}
	case '{', '[':
		return nil, false
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, false
		}
		text = n.String()
	}
	return &text, true
}

// DecodeAnswers parses the answers field of a submission. Anything other
// than a JSON array is rejected.
func (v *Validator) DecodeAnswers(raw json.RawMessage) ([]dto.AnswerInput, domain.ValidationErrors) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("answers")}
	}
	if trimmed[0] != '[' {
		return nil, domain.ValidationErrors{domain.NewFieldError("answers", "answers must be an array")}
	}

	var submitted []submittedAnswer
	if err := json.Unmarshal(trimmed, &submitted); err != nil {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("answers", string(trimmed))}
	}

	answers := make([]dto.AnswerInput, 0, len(submitted))
	for _, sa := range submitted {
		text, ok := answerText(sa.Answer)
		if !ok {
			return nil, domain.ValidationErrors{domain.NewInvalidFormatError("answer", string(sa.Answer))}
		}
		answers = append(answers, dto.AnswerInput{QuestionID: sa.QuestionID, Answer: text})
	}

	var errors domain.ValidationErrors
	for _, a := range answers {
		if a.Answer != nil && len(*a.Answer) > maxAnswerLength {
			errors = append(errors, domain.NewOutOfRangeError("answer", len(*a.Answer), 0, maxAnswerLength))
			break
		}
	}
	return answers, errors
}

// ValidateTotalTime rejects negative durations.
func (v *Validator) ValidateTotalTime(totalTime int) domain.ValidationErrors {
	if totalTime < 0 {
		return domain.ValidationErrors{domain.NewFieldError("totalTime", "totalTime must not be negative")}
	}
	return nil
}

// ValidateCreateMaterialRequest validates a material registration
func (v *Validator) ValidateCreateMaterialRequest(req *dto.CreateMaterialRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = append(errors, v.ValidateUserID("userId", req.UserID)...)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	} else if len(title) > maxTitleLength {
		errors = append(errors, domain.NewOutOfRangeError("title", len(title), 1, maxTitleLength))
	}

	if strings.TrimSpace(req.FileType) == "" {
		errors = append(errors, domain.NewMissingFieldError("fileType"))
	} else if !domain.IsSupportedFileType(req.FileType) {
		errors = append(errors, domain.NewInvalidFormatError("fileType", req.FileType))
	}

	return errors
}

// ValidateCreateUserRequest validates a user registration
func (v *Validator) ValidateCreateUserRequest(req *dto.CreateUserRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Username) == "" {
		errors = append(errors, domain.NewMissingFieldError("username"))
	} else if !usernamePattern.MatchString(req.Username) {
		errors = append(errors, domain.NewInvalidFormatError("username", req.Username))
	}

	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	} else if !emailPattern.MatchString(req.Email) {
		errors = append(errors, domain.NewInvalidFormatError("email", req.Email))
	}

	return errors
}
