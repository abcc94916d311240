package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ParseJSON decodes a JSON string into v.
func ParseJSON(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v, false)
}

// ParseJSONStrict decodes a JSON string into v, rejecting unknown fields.
func ParseJSONStrict(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v, true)
}

// ParseJSONBytes decodes a JSON byte slice into v.
func ParseJSONBytes(data []byte, v interface{}) error {
	return decodeJSON(bytes.NewReader(data), v, false)
}

// DecodeJSON decodes JSON from r with the shared decoder settings.
func DecodeJSON(r io.Reader, v interface{}) error {
	return decodeJSON(r, v, false)
}

func decodeJSON(r io.Reader, v interface{}, disallowUnknown bool) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if disallowUnknown {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(v); err != nil {
		return err
	}

	// Reject trailing data after the first value.
	for {
		t, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if t != nil {
			return fmt.Errorf("unexpected extra JSON data")
		}
	}
}

var codeFenceOpen = regexp.MustCompile("(?i)^```(?:json)?[ \\t]*\\r?\\n?")

// StripCodeFences removes markdown code-fence markers around raw model
// output. Prose before the opening fence is dropped with it.
func StripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx:]
		s = codeFenceOpen.ReplaceAllString(s, "")
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
	}
	return strings.TrimSpace(s)
}

// ExtractJSONObject returns the substring from the first "{" to its matching
// "}" using brace-depth counting, so nested objects and arrays inside the
// payload do not truncate it. Returns false when no object is present.
// Braces inside string literals are not tracked, matching the tolerance of
// the upstream producers this is written for.
func ExtractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	// Unterminated object: take everything from the first brace.
	return raw[start:], true
}

// ExtractFirstJSON trims leading prose before the first JSON delimiter and
// trailing content after the last one, for payloads that may be an object or
// an array.
func ExtractFirstJSON(raw string) (string, bool) {
	objIdx := strings.Index(raw, "{")
	arrIdx := strings.Index(raw, "[")
	start := objIdx
	open, close := byte('{'), byte('}')
	if start < 0 || (arrIdx >= 0 && arrIdx < start) {
		start = arrIdx
		open, close = '[', ']'
	}
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(raw); i++ {
		switch raw[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return raw[start:], true
}

// ToJSON encodes v as a JSON string.
func ToJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
