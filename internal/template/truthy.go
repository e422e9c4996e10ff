package template

import "strconv"

// Truthy reports whether a looked-up value should render a conditional
// body. The value kinds a Data record can yield form a closed set:
// absent values, empty strings, zero numbers, false, and empty slices
// are falsy; everything else is truthy.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case []string:
		return len(x) > 0
	default:
		return true
	}
}

// Stringify converts a looked-up value to its rendered form. Absent
// values and false render as the empty string; slices join on newlines.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return ""
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []string:
		out := ""
		for i, s := range x {
			if i > 0 {
				out += "\n"
			}
			out += s
		}
		return out
	default:
		return ""
	}
}
