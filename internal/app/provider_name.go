package app

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/bestlines/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving from instance when not explicitly configured.
// Keeps naming consistent in metrics/logs.
func normalizeProviderName(raw string, provider providers.OddsProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
