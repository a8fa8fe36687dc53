package ui

import (
	"strings"
	"unicode/utf8"
)

const (
	maxToastLines  = 2
	truncationMark = "..."
)

// wrapMessage word-wraps a message to maxWidth columns and keeps at most
// maxLines lines, marking the cut with "..."
func wrapMessage(message string, maxWidth, maxLines int) string {
	maxWidth = max(maxWidth, 10)
	words := strings.Fields(message)
	if len(words) == 0 {
		return message
	}

	var lines []string
	var current strings.Builder
	truncated := false
	for _, word := range words {
		length := utf8.RuneCountInString(current.String())
		if length > 0 && length+1+utf8.RuneCountInString(word) > maxWidth {
			lines = append(lines, current.String())
			current.Reset()
			if len(lines) == maxLines {
				truncated = true
				break
			}
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if !truncated && current.Len() > 0 {
		lines = append(lines, current.String())
	}

	if truncated {
		last := []rune(lines[maxLines-1])
		keep := maxWidth - utf8.RuneCountInString(truncationMark)
		if len(last) > keep {
			last = last[:keep]
		}
		lines[maxLines-1] = string(last) + truncationMark
	}
	return strings.Join(lines, "\n")
}
