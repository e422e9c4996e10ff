package template

import (
	"sort"
	"strconv"
	"strings"

	"github.com/voss/kohl/internal/dateutil"
	"github.com/voss/kohl/internal/strutil"
)

// Filter is one registered transform. Apply must be pure: the same
// value and argument always produce the same output.
type Filter struct {
	Description string
	RequiresArg bool
	Apply       func(value, arg string) string
}

// registry is the closed, process-wide filter set, read-only after
// package initialization. Names referenced in templates that do not
// appear here fall through as identity.
var registry = map[string]Filter{
	"stripHTML": {
		Description: "Remove HTML tags and decode entities",
		Apply:       func(v, _ string) string { return strutil.StripHTML(v) },
	},
	"truncate": {
		Description: "Cut the value to N characters, appending an ellipsis",
		RequiresArg: true,
		Apply:       truncateFilter,
	},
	"br2nl": {
		Description: "Replace <br> tags with newlines",
		Apply:       func(v, _ string) string { return strutil.Br2NL(v) },
	},
	"quote": {
		Description: "Prefix every line with a Markdown quote marker",
		Apply:       func(v, _ string) string { return strutil.QuoteLines(v) },
	},
	"lower": {
		Description: "Lowercase the value",
		Apply:       func(v, _ string) string { return strings.ToLower(v) },
	},
	"upper": {
		Description: "Uppercase the value",
		Apply:       func(v, _ string) string { return strings.ToUpper(v) },
	},
	"escape": {
		Description: "Backslash-escape Markdown special characters",
		Apply:       func(v, _ string) string { return strutil.EscapeMarkdown(v) },
	},
	"escapeHtml": {
		Description: "Escape HTML special characters",
		Apply:       func(v, _ string) string { return strutil.EscapeHTML(v) },
	},
	"unescapeHtml": {
		Description: "Decode HTML entities",
		Apply:       func(v, _ string) string { return strutil.UnescapeHTML(v) },
	},
	"dateFormat": {
		Description: "Format a timestamp (pattern, \"locale\", or \"daily-note\")",
		RequiresArg: true,
		Apply:       func(v, arg string) string { return dateutil.Format(v, arg) },
	},
}

// truncateFilter hard-cuts the value at n characters. A malformed or
// negative argument means no truncation.
func truncateFilter(value, arg string) string {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= n {
		return value
	}
	return string(runes[:n]) + "…"
}

// LookupFilter returns the filter registered under name.
func LookupFilter(name string) (Filter, bool) {
	f, ok := registry[name]
	return f, ok
}

// FilterNames returns the sorted names of every registered filter.
func FilterNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
