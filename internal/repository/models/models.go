package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringSlice stores a list of strings as a JSON array in a text column.
type StringSlice []string

// Value writes NULL for an empty slice.
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	jsonData, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (s *StringSlice) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("StringSlice Scan: unsupported type %T", value)
	}

	// 빈 문자열과 "null"은 빈 슬라이스로
	if len(raw) == 0 || string(raw) == "null" {
		*s = nil
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(s))
}

type User struct {
	ID          string         `db:"id"`
	Username    string         `db:"username"`
	Email       string         `db:"email"`
	DisplayName sql.NullString `db:"display_name"`
	PhotoURL    sql.NullString `db:"photo_url"`
	IsAdmin     int            `db:"is_admin"`
	Provider    string         `db:"provider"`
	CreatedAt   time.Time      `db:"created_at"`
}

type Material struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	FileType    string         `db:"file_type"`
	Content     sql.NullString `db:"content"`
	FileURL     sql.NullString `db:"file_url"`
	Subject     sql.NullString `db:"subject"`
	CreatedAt   time.Time      `db:"created_at"`
}

type Summary struct {
	ID         string         `db:"id"`
	UserID     string         `db:"user_id"`
	MaterialID string         `db:"material_id"`
	Title      string         `db:"title"`
	Content    string         `db:"content"`
	PDFURL     sql.NullString `db:"pdf_url"`
	CreatedAt  time.Time      `db:"created_at"`
}

type Quiz struct {
	ID                 string         `db:"id"`
	UserID             string         `db:"user_id"`
	MaterialID         string         `db:"material_id"`
	Title              string         `db:"title"`
	Description        sql.NullString `db:"description"`
	Difficulty         string         `db:"difficulty"`
	TotalQuestions     int            `db:"total_questions"`
	RequestedQuestions int            `db:"requested_questions"`
	QuestionType       string         `db:"question_type"`
	CreatedAt          time.Time      `db:"created_at"`
}

type Question struct {
	ID            string         `db:"id"`
	QuizID        string         `db:"quiz_id"`
	Position      int            `db:"position"`
	QuestionText  string         `db:"question_text"`
	QuestionType  string         `db:"question_type"`
	Options       StringSlice    `db:"options"`
	CorrectAnswer string         `db:"correct_answer"`
	Explanation   sql.NullString `db:"explanation"`
}

// QuizAttempt keeps completed as 0/1 so the same column type works on
// Oracle NUMBER(1) and Postgres SMALLINT.
type QuizAttempt struct {
	ID          string        `db:"id"`
	UserID      string        `db:"user_id"`
	QuizID      string        `db:"quiz_id"`
	Score       sql.NullInt64 `db:"score"`
	TotalTime   sql.NullInt64 `db:"total_time"`
	Completed   int           `db:"completed"`
	StartedAt   time.Time     `db:"started_at"`
	CompletedAt sql.NullTime  `db:"completed_at"`
}

type UserAnswer struct {
	ID         string         `db:"id"`
	AttemptID  string         `db:"attempt_id"`
	QuestionID string         `db:"question_id"`
	UserAnswer sql.NullString `db:"user_answer"`
	IsCorrect  int            `db:"is_correct"`
	CreatedAt  time.Time      `db:"created_at"`
}
