package common

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// [text](url) -> url
	markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

	// http(s), a plausible host, optional path/query/fragment
	urlPattern = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](:[0-9]+)?([/?#][^\s]*)?$`)

	trailingChars = []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"}
	leadingChars  = []string{"(", "[", "<", "\"", "'"}
)

// ContentHash returns the hex SHA256 of data.
func ContentHash(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// SanitizeURL cleans up copy-paste damage: surrounding whitespace, markdown
// links, and stray punctuation at either end.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	for _, char := range trailingChars {
		cleaned = strings.TrimSuffix(cleaned, char)
	}
	for _, char := range leadingChars {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// SanitizeAndValidateURLs returns the sanitized valid URLs in input order,
// dropping duplicates, and the raw inputs that were rejected.
func SanitizeAndValidateURLs(urls []string) ([]string, []string) {
	sanitized := make([]string, 0, len(urls))
	var invalidURLs []string
	seen := make(map[string]struct{}, len(urls))

	for _, rawURL := range urls {
		cleaned := SanitizeURL(rawURL)
		if !isValidURL(cleaned) {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		sanitized = append(sanitized, cleaned)
	}

	return sanitized, invalidURLs
}

func isValidURL(cleaned string) bool {
	// Spaces must arrive pre-encoded as %20
	if cleaned == "" || strings.Contains(cleaned, " ") {
		return false
	}
	if !urlPattern.MatchString(cleaned) {
		return false
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if parsed.Host == "" || strings.ContainsAny(parsed.Host, "{}[]<>\"'") {
		return false
	}
	return true
}

// SplitURLs accepts a comma separated flag value and drops empty entries.
func SplitURLs(value string) []string {
	var urls []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			urls = append(urls, part)
		}
	}
	return urls
}

// Marshal renders v as indented JSON or, when format is "yaml", as YAML.
func Marshal(v any, format string) ([]byte, error) {
	if strings.EqualFold(format, "yaml") {
		return yaml.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
