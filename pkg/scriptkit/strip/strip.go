// Package strip removes comments and blank lines from script text.
//
// Both passes are simple linear scans. They know nothing about expressions:
// a comment token inside an expression is removed like any other.
package strip

import (
	"strings"
)

const (
	lf = "\n"
	cr = "\r"
)

// Comments removes multi-line comments, from multiOpen to the next
// multiClose (or to the end of text when unclosed), then one-line comments,
// from oneLine up to but excluding the next CR or LF.
//
// An empty oneLine disables one-line comments; an empty multiOpen or
// multiClose disables multi-line comments.
func Comments(text, oneLine, multiOpen, multiClose string) string {
	if multiOpen != "" && multiClose != "" {
		text = multiLine(text, multiOpen, multiClose)
	}
	if oneLine != "" {
		text = singleLine(text, oneLine)
	}
	return text
}

func multiLine(text, open, closing string) string {
	if !strings.Contains(text, open) {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for {
		start := strings.Index(text, open)
		if start < 0 {
			sb.WriteString(text)
			break
		}
		sb.WriteString(text[:start])

		rest := text[start+len(open):]
		end := strings.Index(rest, closing)
		if end < 0 {
			break
		}
		text = rest[end+len(closing):]
	}
	return sb.String()
}

func singleLine(text, token string) string {
	if !strings.Contains(text, token) {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for {
		start := strings.Index(text, token)
		if start < 0 {
			sb.WriteString(text)
			break
		}
		sb.WriteString(text[:start])

		rest := text[start:]
		end := strings.IndexAny(rest, "\r\n")
		if end < 0 {
			break
		}
		text = rest[end:]
	}
	return sb.String()
}

// BlankLines removes lines whose content is only whitespace, then removes
// one trailing line terminator.
//
// When text mixes CR and LF, every CR is dropped first and LF terminates
// lines. Otherwise whichever of the two occurs is the terminator.
func BlankLines(text string) string {
	hasLF := strings.Contains(text, lf)
	hasCR := strings.Contains(text, cr)

	nl := lf
	switch {
	case hasLF && hasCR:
		text = strings.ReplaceAll(text, cr, "")
	case hasCR:
		nl = cr
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for {
		end := strings.Index(text, nl)
		if end < 0 {
			sb.WriteString(text)
			break
		}
		if line := text[:end]; strings.TrimSpace(line) != "" {
			sb.WriteString(line)
			sb.WriteString(nl)
		}
		text = text[end+len(nl):]
	}
	return strings.TrimSuffix(sb.String(), nl)
}
