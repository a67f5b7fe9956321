package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bryanwahyu/udyamsakhi/internal/apperr"
)

// ErrParse marks a model answer that could not be turned into the requested
// object. Nothing is persisted when it is returned.
var ErrParse = errors.New("could not parse AI response")

// arrayFixer is implemented by report types whose array fields must never be null.
type arrayFixer interface {
	EnsureArrays()
}

// ExtractJSON returns the span from the first '{' to the last '}' of text.
// Markdown fences and prose around the object are discarded.
func ExtractJSON(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return "", fmt.Errorf("%w: no JSON object found", ErrParse)
	}
	return text[start : end+1], nil
}

// Normalize converts raw model text into T. It either returns a complete
// object (every required key present and non-null, arrays non-nil) or fails
// with ErrParse wrapped as an apperr parse error.
func Normalize[T any](raw string, required []string) (T, error) {
	const op = "ai.Normalize"
	var zero T

	span, err := ExtractJSON(raw)
	if err != nil {
		return zero, apperr.Wrap(apperr.KindParse, op, ErrParse.Error(), err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &keys); err != nil {
		return zero, apperr.Wrap(apperr.KindParse, op, ErrParse.Error(), fmt.Errorf("%w: %v", ErrParse, err))
	}
	for _, k := range required {
		v, ok := keys[k]
		if !ok || string(v) == "null" {
			return zero, apperr.Wrap(apperr.KindParse, op, ErrParse.Error(), fmt.Errorf("%w: missing key %q", ErrParse, k))
		}
	}

	var out T
	if err := json.Unmarshal([]byte(span), &out); err != nil {
		return zero, apperr.Wrap(apperr.KindParse, op, ErrParse.Error(), fmt.Errorf("%w: %v", ErrParse, err))
	}
	if f, ok := any(&out).(arrayFixer); ok {
		f.EnsureArrays()
	}
	return out, nil
}
