package redact

import "regexp"

// Rule pairs a sensitive-data pattern with its replacement token.
// Placeholders contain only uppercase letters, underscores and
// brackets, which no rule can match, so redaction is idempotent.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Placeholder string
}

// DefaultRules returns the process-wide rule table. Order is the
// precedence: most specific shapes first, so a connection URL is
// swallowed whole before the email or IP rules can chew on its pieces.
// The slice is freshly allocated per call; callers treat it as
// read-only after handing it to a Filter.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:        "db_url",
			Pattern:     regexp.MustCompile(`\b(?:postgres(?:ql)?|mysql|mariadb|mongodb(?:\+srv)?|redis|amqps?|sqlserver)://[^\s"']+`),
			Placeholder: "[REDACTED_DB_URL]",
		},
		{
			Name:        "password_kv",
			Pattern:     regexp.MustCompile(`(?i)\b(?:password|passwd|pwd)\s*[=:]\s*[^\s;,&"']+`),
			Placeholder: "[REDACTED_PASSWORD]",
		},
		{
			Name:        "cloud_key_id",
			Pattern:     regexp.MustCompile(`\b(?:AKIA|ASIA|AGPA|AIDA|AROA|ANPA)[0-9A-Z]{16}\b`),
			Placeholder: "[REDACTED_CLOUD_KEY]",
		},
		{
			Name:        "cloud_secret_kv",
			Pattern:     regexp.MustCompile(`(?i)\baws_?secret(?:_access)?_?key\s*[=:]\s*[A-Za-z0-9/+=]{30,}`),
			Placeholder: "[REDACTED_CLOUD_SECRET]",
		},
		{
			Name:        "bearer",
			Pattern:     regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._~+/-]+=*`),
			Placeholder: "[REDACTED_TOKEN]",
		},
		{
			Name:        "jwt",
			Pattern:     regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]*`),
			Placeholder: "[REDACTED_TOKEN]",
		},
		{
			Name:        "api_key_kv",
			Pattern:     regexp.MustCompile(`(?i)\b(?:api[_-]?key|secret|token|access[_-]?key)\s*[=:]\s*["']?[A-Za-z0-9_\-]{12,}["']?`),
			Placeholder: "[REDACTED_KEY]",
		},
		{
			Name:        "card",
			Pattern:     regexp.MustCompile(`\b(?:4\d{3}|5[1-5]\d{2}|3[47]\d{2}|6(?:011|5\d{2}))(?:[ -]?\d{4}){2}[ -]?\d{1,4}\b`),
			Placeholder: "[REDACTED_CARD]",
		},
		{
			Name:        "email",
			Pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
			Placeholder: "[REDACTED_EMAIL]",
		},
		{
			Name:        "ipv6",
			Pattern:     regexp.MustCompile(`\b(?:[0-9A-Fa-f]{1,4}:){3,7}[0-9A-Fa-f]{1,4}\b`),
			Placeholder: "[REDACTED_IP]",
		},
		{
			Name:        "ipv4",
			Pattern:     regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
			Placeholder: "[REDACTED_IP]",
		},
		{
			Name:        "phone",
			Pattern:     regexp.MustCompile(`\+\d{1,3}[ -]?\(?\d{2,4}\)?[ .-]?\d{3,4}[ .-]?\d{3,4}\b|\b\(?\d{3}\)?[ .-]\d{3}[ .-]\d{4}\b`),
			Placeholder: "[REDACTED_PHONE]",
		},
		{
			Name:        "unix_path",
			Pattern:     regexp.MustCompile(`/(?:home|var|etc|usr|tmp|opt|srv|root|data)(?:/[A-Za-z0-9._-]+)+`),
			Placeholder: "[REDACTED_PATH]",
		},
		{
			Name:        "windows_path",
			Pattern:     regexp.MustCompile(`\b[A-Za-z]:\\(?:[^\s\\"']+\\)*[^\s\\"']+`),
			Placeholder: "[REDACTED_PATH]",
		},
	}
}
