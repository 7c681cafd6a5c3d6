package util

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
)

const maxFileNameLen = 128

// ErrInvalidFileName is returned for empty names or ".." path segments.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName removes path separators and control characters, rejects
// traversal patterns and caps the length while keeping the extension.
func SanitizeFileName(name string) (string, error) {
	if hasParentSegment(name) {
		return "", ErrInvalidFileName
	}
	s := strings.TrimSpace(name)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "", ErrInvalidFileName
	}
	if len(s) > maxFileNameLen {
		ext := filepath.Ext(s)
		if len(ext) > 16 {
			ext = ""
		}
		s = strings.ToValidUTF8(s[:maxFileNameLen-len(ext)], "") + ext
	}
	return s, nil
}

func hasParentSegment(name string) bool {
	segments := strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' })
	for _, seg := range segments {
		if strings.TrimSpace(seg) == ".." {
			return true
		}
	}
	return false
}
