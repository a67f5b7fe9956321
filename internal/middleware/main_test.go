package middleware

import (
	"testing"

	"go.uber.org/goleak"
)

// rate limiter cleanup goroutines must stop on Close
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
