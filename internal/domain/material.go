package domain

import (
	"strings"
	"time"
)

// Material is an uploaded document together with its extracted text.
type Material struct {
	ID          string
	UserID      string
	Title       string
	Description string
	FileType    string
	Content     string
	FileURL     string
	Subject     string
	CreatedAt   time.Time
}

// HasContent reports whether quizzes or summaries can be generated from m.
func (m *Material) HasContent() bool {
	return strings.TrimSpace(m.Content) != ""
}

// SupportedFileTypes are the upload extensions accepted for materials.
var SupportedFileTypes = []string{"pdf", "docx", "doc", "txt", "jpg", "jpeg", "png", "ppt", "pptx"}

func IsSupportedFileType(fileType string) bool {
	ft := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(fileType)), ".")
	for _, s := range SupportedFileTypes {
		if s == ft {
			return true
		}
	}
	return false
}

type Summary struct {
	ID         string
	UserID     string
	MaterialID string
	Title      string
	Content    string
	PDFURL     string
	CreatedAt  time.Time
}
