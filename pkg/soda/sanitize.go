package soda

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
)

// SanitizeParams returns a copy of params without the entries whose value is
// unset: nil, or a nil pointer. Empty strings, zeros and false are kept, so a
// caller explicitly passing them gets them transmitted.
func SanitizeParams(params map[string]any) map[string]any {
	result := make(map[string]any, len(params))

	for key, value := range params {
		if isUnset(value) {
			continue
		}

		result[key] = value
	}

	return result
}

func isUnset(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// FormatParam renders a sanitized value as a query parameter value.
func FormatParam(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case *string:
		return *v
	case int:
		return strconv.Itoa(v)
	case *int:
		return strconv.Itoa(*v)
	case bool:
		return strconv.FormatBool(v)
	case *bool:
		return strconv.FormatBool(*v)
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		return fmt.Sprint(rv.Elem().Interface())
	}

	return fmt.Sprint(value)
}

// EncodeParams sanitizes params and converts them to url.Values.
func EncodeParams(params map[string]any) url.Values {
	values := url.Values{}

	clean := SanitizeParams(params)

	keys := make([]string, 0, len(clean))
	for key := range clean {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		values.Set(key, FormatParam(clean[key]))
	}

	return values
}
