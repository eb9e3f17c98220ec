package agent

import "strings"

const fence = "```"

// ExtractCode pulls the first markdown-fenced code block out of model output.
// It returns ok=false when no fence delimiter is present, or when the fenced
// block is empty. A leading language tag on the opening fence is stripped. An
// unclosed fence yields everything after the opening delimiter.
func ExtractCode(text string) (string, bool) {
	open := strings.Index(text, fence)
	if open < 0 {
		return "", false
	}
	rest := text[open+len(fence):]

	// Drop the language tag line ("```kotlin") if one is present.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		if isLanguageTag(strings.TrimSpace(rest[:nl])) {
			rest = rest[nl+1:]
		}
	} else if isLanguageTag(strings.TrimSpace(rest)) {
		rest = ""
	}

	if end := strings.Index(rest, fence); end >= 0 {
		rest = rest[:end]
	}

	code := strings.TrimSpace(rest)
	if code == "" {
		return "", false
	}
	return code, true
}

// isLanguageTag reports whether s looks like a fence language tag rather than
// the first line of code.
func isLanguageTag(s string) bool {
	if len(s) > 20 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '+' || r == '#' || r == '-' || r == '.':
		default:
			return false
		}
	}
	return true
}
