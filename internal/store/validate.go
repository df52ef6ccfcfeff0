package store

import (
	"fmt"
	"net/url"
	"strings"
)

const maxURLLength = 2048

// ValidationError is a local input error; it never reaches the
// gateway and is surfaced as field-level text.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrEmptyURL is returned when a submission has no URL.
var ErrEmptyURL = &ValidationError{Field: "url", Message: "url is required"}

// NormalizeURL validates a user-entered URL and normalizes it for
// submission: trims whitespace and defaults the scheme to https.
func NormalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrEmptyURL
	}

	if len(rawURL) > maxURLLength {
		return "", &ValidationError{Field: "url", Message: "url too long (max 2048 characters)"}
	}

	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", &ValidationError{Field: "url", Message: fmt.Sprintf("invalid url format: %v", err)}
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", &ValidationError{Field: "url", Message: fmt.Sprintf("unsupported scheme '%s': only http and https are allowed", u.Scheme)}
	}

	if u.Host == "" {
		return "", &ValidationError{Field: "url", Message: "hostname is required"}
	}

	return u.String(), nil
}
