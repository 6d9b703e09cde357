package server

import (
	"net/url"
	"strconv"
	"strings"
)

// filter is one query parameter of a list request. field=value matches
// documents whose field equals value; field_like=value matches a substring for
// strings and a member for arrays. Repeated values are alternatives.
type filter struct {
	field  string
	like   bool
	values []string
}

// parseFilters turns query parameters into filters. Parameters starting with
// an underscore are reserved and skipped.
func parseFilters(query url.Values) []filter {
	var filters []filter
	for key, values := range query {
		if key == "" || strings.HasPrefix(key, "_") {
			continue
		}
		f := filter{field: key, values: values}
		if field, ok := strings.CutSuffix(key, "_like"); ok && field != "" {
			f.field, f.like = field, true
		}
		filters = append(filters, f)
	}
	return filters
}

func (f filter) match(doc Document) bool {
	value, ok := doc[f.field]
	if !ok {
		return false
	}
	for _, want := range f.values {
		if f.matchOne(value, want) {
			return true
		}
	}
	return false
}

func (f filter) matchOne(value any, want string) bool {
	if items, ok := value.([]any); ok {
		for _, item := range items {
			if stringify(item) == want {
				return true
			}
		}
		return false
	}
	got := stringify(value)
	if f.like {
		return strings.Contains(strings.ToLower(got), strings.ToLower(want))
	}
	return got == want
}

func matchAll(doc Document, filters []filter) bool {
	for _, f := range filters {
		if !f.match(doc) {
			return false
		}
	}
	return true
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}
