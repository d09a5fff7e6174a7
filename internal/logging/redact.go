package logging

import (
	"encoding/json"
	"regexp"
	"strings"
)

// DefaultRedactPatterns matches payload keys whose values must never reach the logs.
// Secret data and application env maps travel under "data" and "env".
const DefaultRedactPatterns = "password,token,authorization,credential,bearer,apikey,api_key,private,data,env"

const redactedValue = "***"

var globalRedactRegex = ParseRedactPatterns(DefaultRedactPatterns)

// ParseRedactPatterns compiles a comma separated list of key fragments into a
// case-insensitive matcher. It returns nil when the list is empty.
func ParseRedactPatterns(patterns string) *regexp.Regexp {
	var parts []string
	for _, p := range strings.Split(patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, regexp.QuoteMeta(p))
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return regexp.MustCompile("(?i)(" + strings.Join(parts, "|") + ")")
}

// SetRedactPatterns replaces the patterns used by RedactPayload.
func SetRedactPatterns(patterns string) {
	globalRedactRegex = ParseRedactPatterns(patterns)
}

// RedactPayload returns a JSON-shaped copy of v with sensitive keys masked,
// suitable for zap.Any. Values that cannot be marshaled are replaced by a marker.
func RedactPayload(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return "<unserializable>"
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return "<unserializable>"
	}
	return redactValue(generic)
}

func redactValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			if globalRedactRegex != nil && globalRedactRegex.MatchString(k) {
				t[k] = redactedValue
				continue
			}
			t[k] = redactValue(inner)
		}
		return t
	case []any:
		for i := range t {
			t[i] = redactValue(t[i])
		}
		return t
	default:
		return v
	}
}
