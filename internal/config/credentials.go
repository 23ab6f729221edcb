package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMissingCredential is returned when the API key file is absent or empty.
var ErrMissingCredential = errors.New("api key not configured")

// LoadAPIKey reads a single-line API key from path.
func LoadAPIKey(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: no key file given", ErrMissingCredential)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: key file %s not found", ErrMissingCredential, path)
		}
		return "", fmt.Errorf("read key file %s: %w", path, err)
	}
	key := strings.TrimSpace(string(data))
	if i := strings.IndexAny(key, "\r\n"); i >= 0 {
		key = strings.TrimSpace(key[:i])
	}
	if key == "" {
		return "", fmt.Errorf("%w: key file %s is empty", ErrMissingCredential, path)
	}
	return key, nil
}
