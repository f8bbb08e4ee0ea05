package generation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	arrayPattern  = regexp.MustCompile(`(?s)\[.*?\]`)
	objectPattern = regexp.MustCompile(`(?s)\{.*?\}`)
)

const previewLen = 500

// ExtractJSON pulls the first JSON value out of free-form model output.
//
// Extraction proceeds in stages: a non-greedy array match, a non-greedy
// object match, then a balance scan that walks the text counting bracket
// depth while honoring string literals and escapes (array first, then
// object). The first stage whose candidate parses wins. Model chatter around
// the value is ignored.
func ExtractJSON(raw string) (json.RawMessage, error) {
	if candidate := arrayPattern.FindString(raw); candidate != "" {
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}
	if candidate := objectPattern.FindString(raw); candidate != "" {
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}

	for _, open := range []byte{'[', '{'} {
		if candidate := balancedSlice(raw, open); candidate != "" {
			if json.Valid([]byte(candidate)) {
				return json.RawMessage(candidate), nil
			}
		}
	}

	preview := raw
	if len(preview) > previewLen {
		preview = preview[:previewLen] + "..."
	}
	return nil, fmt.Errorf("no valid JSON object or array in response: %s", preview)
}

// ExtractInto extracts the first JSON value and unmarshals it into out.
func ExtractInto(raw string, out any) error {
	value, err := ExtractJSON(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(value, out); err != nil {
		return fmt.Errorf("decode extracted JSON: %w", err)
	}
	return nil
}

// balancedSlice returns the substring from the first occurrence of open to
// its matching close bracket, tracking nesting depth and skipping bracket
// characters inside string literals. Returns "" when no balanced structure
// exists.
func balancedSlice(text string, open byte) string {
	var closing byte = '}'
	if open == '[' {
		closing = ']'
	}

	start := strings.IndexByte(text, open)
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escapeNext := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' {
			escapeNext = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
