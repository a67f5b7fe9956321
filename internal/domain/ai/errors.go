package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrTimeout is returned when the provider did not answer within the gateway deadline.
var ErrTimeout = errors.New("ai request timed out")

// ErrEmptyResponse is returned when the provider answered without any text.
var ErrEmptyResponse = errors.New("ai returned an empty response")
