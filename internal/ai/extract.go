package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls a JSON document out of a model response and unmarshals it
// into v. Models routinely wrap the JSON they were asked for in markdown
// fences or a sentence of prose, so a strict json.Unmarshal on the raw
// content is not enough: we strip fences first, then fall back to the first
// balanced '{'..'}' or '['..']' span.
func ExtractJSON(content string, v interface{}) error {
	candidate := stripFences(content)

	if err := json.Unmarshal([]byte(candidate), v); err == nil {
		return nil
	}

	span, ok := firstJSONSpan(candidate)
	if !ok {
		return fmt.Errorf("%w: no JSON found in model response", ErrMalformedOutput)
	}

	if err := json.Unmarshal([]byte(span), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// firstJSONSpan returns the first balanced object or array in s. Brackets
// inside string literals are ignored.
func firstJSONSpan(s string) (string, bool) {
	start := -1
	var open, close byte
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			start = i
			open = s[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
