package utils

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// NormalizeURL prepends https:// when no scheme is given and checks the
// result is an absolute http(s) URL.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("URL is empty")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("invalid URL %q: missing host", raw)
	}

	return u.String(), nil
}

// ExtractDomain turns a URL into a filename-safe host, e.g.
// "https://www.example.com/x" becomes "www_example_com".
func ExtractDomain(raw string) string {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "screenshot"
	}
	return strings.ReplaceAll(u.Hostname(), ".", "_")
}

// AutoFilename builds domain_YYYYMMDD_HHMMSS.ext.
func AutoFilename(rawURL, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", ExtractDomain(rawURL), now.Format("20060102_150405"), ext)
}

// BatchFilename builds NNN_domain.ext for the zero-based index.
func BatchFilename(index int, rawURL, ext string) string {
	return fmt.Sprintf("%03d_%s.%s", index+1, ExtractDomain(rawURL), ext)
}
