package utils

import (
	"fmt"
	"net/url"
)

// ParseStoreURL accepts only absolute http(s) URLs with a host.
func ParseStoreURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported store URL scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("store URL %q has no host", raw)
	}
	return parsed, nil
}
