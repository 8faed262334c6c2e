// Package extract reads plain text out of stored material files.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"studyhub/internal/domain"
)

// PlainTextExtractor handles text-based formats. Binary formats such as
// pdf or docx need a dedicated extractor and are rejected here.
type PlainTextExtractor struct {
	maxBytes int64
}

var textTypes = map[string]bool{
	"txt":      true,
	"md":       true,
	"markdown": true,
	"csv":      true,
}

func NewPlainTextExtractor(maxBytes int64) *PlainTextExtractor {
	return &PlainTextExtractor{maxBytes: maxBytes}
}

var _ domain.ContentExtractor = (*PlainTextExtractor)(nil)

// FileType derives the extension-based file type used for materials.
func FileType(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func (e *PlainTextExtractor) Extract(ctx context.Context, path, fileType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ft := strings.TrimPrefix(strings.ToLower(fileType), ".")
	if !textTypes[ft] {
		return "", fmt.Errorf("unsupported file type for text extraction: %q", fileType)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if e.maxBytes > 0 && info.Size() > e.maxBytes {
		return "", fmt.Errorf("file %s is %d bytes, limit is %d", path, info.Size(), e.maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file %s is not valid UTF-8 text", path)
	}

	text := strings.TrimPrefix(string(data), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimSpace(text), nil
}
