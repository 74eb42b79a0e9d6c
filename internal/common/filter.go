package common

import (
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// CheckFilterKeys rejects an empty filter payload and any key outside the
// allow-list, naming the offending keys.
func CheckFilterKeys(values url.Values, allowed ...string) error {
	if len(values) == 0 {
		return NewError(CodeValidation, "filter requires at least one criterion", nil)
	}
	permitted := make(map[string]struct{}, len(allowed))
	for _, key := range allowed {
		permitted[key] = struct{}{}
	}
	var unknown []string
	for key := range values {
		if _, ok := permitted[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	fields := make(map[string]string, len(unknown))
	for _, key := range unknown {
		fields[key] = "unknown filter " + key
	}
	return NewValidationError("invalid filter: "+strings.Join(unknown, ", "), fields)
}

// StringParam returns the first value of key, or nil when absent.
func StringParam(values url.Values, key string) *string {
	if _, ok := values[key]; !ok {
		return nil
	}
	value := values.Get(key)
	return &value
}

// IntParam coerces the first value of key to an integer that fits an
// INTEGER column.
func IntParam(values url.Values, key string) (*int, error) {
	raw := StringParam(values, key)
	if raw == nil {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(*raw), 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, NewValidationError("invalid filter "+key, map[string]string{key: key + " is out of range"})
		}
		return nil, NewValidationError("invalid filter "+key, map[string]string{key: key + " must be an integer"})
	}
	value := int(parsed)
	return &value, nil
}
