package xquery

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseString returns the trimmed query value or defaultValue when it is blank.
func ParseString(query url.Values, name string, defaultValue string) string {
	value := strings.TrimSpace(query.Get(name))
	if value == "" {
		return defaultValue
	}
	return value
}

// ParseID parses a positive numeric id as used by the recruitment API.
func ParseID(value string) (int, bool) {
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
