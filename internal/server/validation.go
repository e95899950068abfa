package server

import (
	"fmt"
	"strings"
)

const (
	maxDrawingNameLength = 40
	maxUsersPerEntry     = 10
)

func validateDrawingName(name string) (string, bool) {
	trimmed := normalizeText(name)
	if trimmed == "" {
		return "drawing name is required", false
	}
	if len(trimmed) > maxDrawingNameLength {
		return fmt.Sprintf("drawing name must be %d characters or fewer", maxDrawingNameLength), false
	}
	if !isSafeText(trimmed) {
		return "drawing name contains unsupported characters", false
	}
	return "", true
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}

func isSafeText(text string) bool {
	for _, r := range text {
		if r > 127 {
			return false
		}
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		switch r {
		case ' ', '-', '_', '\'', '.', ',', '!', '?', ':', '&', '(', ')':
			continue
		default:
			return false
		}
	}
	return true
}
