// Package validate holds input checks shared by the HTTP layer and the
// use-cases.
package validate

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const MinPasswordLength = 8

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	idPattern    = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
)

// Email checks the basic local@domain.tld shape.
func Email(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

func Password(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// URL accepts absolute http(s) URLs whose host is not local, private or
// link-local. Literal IPs are checked by range, v4 and v6 alike.
func URL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %s (allowed: http, https)", u.Scheme)
	}
	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	if host == "" {
		return fmt.Errorf("URL must include a host")
	}
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return fmt.Errorf("localhost/internal hosts are not allowed")
	}

	if ip := net.ParseIP(host); ip != nil {
		switch {
		case ip.IsLoopback(), ip.IsUnspecified():
			return fmt.Errorf("localhost/internal hosts are not allowed")
		case ip.IsPrivate(), ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast():
			return fmt.Errorf("private IP ranges are not allowed")
		}
	}
	return nil
}

// ID checks a path identifier (uuid or seed slug).
func ID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("invalid id format")
	}
	return nil
}

// Sanitize removes null bytes and control characters, then trims.
func Sanitize(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}
