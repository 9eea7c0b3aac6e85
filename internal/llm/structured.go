package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Validator checks a decoded value beyond what the JSON schema expresses.
type Validator[T any] func(T) error

// Decode unmarshals a structured response into T and applies validate when
// non-nil. Failures are reported as *ErrInvalidResponse.
func Decode[T any](resp *Response, validate Validator[T]) (T, error) {
	var zero T
	if resp == nil {
		return zero, &ErrInvalidResponse{Err: errors.New("empty response")}
	}
	return ExtractJSON(string(resp.Content), validate)
}

// ExtractJSON pulls the first JSON object or array out of raw model text.
// It tolerates markdown fences, surrounding prose, comments and numbers
// written as ".5".
func ExtractJSON[T any](raw string, validate Validator[T]) (T, error) {
	var zero T

	cleaned, err := CleanJSON(raw)
	if err != nil {
		return zero, err
	}

	var result T
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return zero, &ErrInvalidResponse{Content: json.RawMessage(cleaned), Err: err}
	}
	if validate != nil {
		if err := validate(result); err != nil {
			return zero, &ErrInvalidResponse{Content: json.RawMessage(cleaned), Err: fmt.Errorf("validation failed: %w", err)}
		}
	}
	return result, nil
}

// CleanJSON returns the first balanced JSON value in raw with comments and
// leading-decimal numbers repaired.
func CleanJSON(raw string) (string, error) {
	block := extractJSONBlock(stripCodeFences(raw))
	if block == "" {
		return "", &ErrInvalidResponse{Content: textContent(raw), Err: errors.New("no JSON value found in response")}
	}
	return normalizeLeadingDecimalNumbers(stripJSONComments(block)), nil
}

// stripCodeFences drops markdown fence lines (```json, ```).
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// stringState tracks whether a byte-wise walk over JSON text is inside a
// string literal. step reports true for bytes that belong to a string,
// including its quotes.
type stringState struct {
	in      bool
	escaped bool
}

func (st *stringState) step(c byte) bool {
	switch {
	case st.escaped:
		st.escaped = false
		return true
	case st.in && c == '\\':
		st.escaped = true
		return true
	case c == '"':
		st.in = !st.in
		return true
	}
	return st.in
}

// extractJSONBlock returns the first balanced {...} or [...] in s.
func extractJSONBlock(s string) string {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return ""
	}
	var st stringState
	depth := 0
	for i := start; i < len(s); i++ {
		if st.step(s[i]) {
			continue
		}
		switch s[i] {
		case '{', '[':
			depth++
		case '}', ']':
			if depth--; depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// stripJSONComments removes // and /* */ comments outside string values.
// Models add them despite being told not to.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var st stringState
	for i := 0; i < len(s); i++ {
		c := s[i]
		if st.step(c) || c != '/' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		switch s[i+1] {
		case '/':
			if end := strings.IndexByte(s[i:], '\n'); end >= 0 {
				i += end - 1
			} else {
				i = len(s)
			}
		case '*':
			if end := strings.Index(s[i+2:], "*/"); end >= 0 {
				i += end + 3
			} else {
				i = len(s)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// normalizeLeadingDecimalNumbers rewrites ".8" and "-.3" outside strings
// as "0.8" and "-0.3".
func normalizeLeadingDecimalNumbers(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	var st stringState
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !st.step(c) && c == '.' && i+1 < len(s) && isDigit(s[i+1]) && startsNumber(lastNonSpace(s[:i])) {
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func lastNonSpace(s string) byte {
	t := strings.TrimRight(s, " \t\r\n")
	if t == "" {
		return 0
	}
	return t[len(t)-1]
}

// startsNumber reports whether a value may begin right after c.
func startsNumber(c byte) bool {
	return c == 0 || strings.IndexByte(":,[{-", c) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
