package utils

import (
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// ErrEmptyContent is returned when trimmed content has no characters left.
var ErrEmptyContent = errors.New("content is empty")

// ErrContentTooLarge is returned when content exceeds the configured limit.
var ErrContentTooLarge = errors.New("content exceeds maximum length")

// ContentSanitizer normalizes untrusted input before it reaches the engine:
// trim, UTF-8 repair, and the 1..maxLength size gate.
type ContentSanitizer struct {
	maxLength int
	logger    *zap.Logger
}

// NewContentSanitizer creates a sanitizer with the given character limit.
func NewContentSanitizer(maxLength int, logger *zap.Logger) *ContentSanitizer {
	return &ContentSanitizer{
		maxLength: maxLength,
		logger:    logger,
	}
}

// Sanitize trims and UTF-8-repairs content and enforces the length bounds.
// The engine itself performs no further sanitization.
func (s *ContentSanitizer) Sanitize(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrEmptyContent
	}
	if s.maxLength > 0 && len(trimmed) > s.maxLength {
		s.logger.Debug("Rejected oversized content",
			zap.Int("size", len(trimmed)),
			zap.Int("max_size", s.maxLength))
		return "", ErrContentTooLarge
	}
	return sanitizeUTF8(trimmed), nil
}

// sanitizeUTF8 drops invalid UTF-8 sequences, keeping everything else as is.
func sanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				continue
			}
		}
		result = append(result, r)
	}
	return string(result)
}
