package template

import (
	"fmt"
	"strconv"
	"strings"
)

// Result is the structured outcome of template validation. Warnings
// and suggestions never affect IsValid.
type Result struct {
	IsValid     bool     `json:"isValid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// Validate statically inspects a template for required variables and
// unknown or misused filters. Findings are advisory: rendering an
// invalid template still succeeds, callers decide whether to accept it.
func Validate(tpl string) Result {
	keys := map[string]struct{}{}
	var specs []string
	collectRefs(Tokenize(tpl), keys, &specs)

	res := Result{
		Errors:      []string{},
		Warnings:    []string{},
		Suggestions: []string{},
	}

	if !hasKey(keys, "highlight") && !hasKey(keys, "highlightPlain") {
		res.Errors = append(res.Errors, "template must reference {{highlight}} or {{highlightPlain}}")
	}
	if !hasKey(keys, "pageno") {
		res.Errors = append(res.Errors, "template must reference {{pageno}}")
	}

	seen := map[string]struct{}{}
	for _, spec := range specs {
		name, arg, hasArg := strings.Cut(spec, ":")
		name = strings.TrimSpace(name)
		arg = strings.TrimSpace(arg)

		f, known := LookupFilter(name)
		if !known {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			res.Errors = append(res.Errors, fmt.Sprintf("unknown filter %q", name))
			res.Warnings = append(res.Warnings, fmt.Sprintf("filter %q is not registered and will be ignored", name))
			continue
		}
		if f.RequiresArg && (!hasArg || arg == "") {
			res.Warnings = append(res.Warnings, fmt.Sprintf("filter %q expects an argument, e.g. %s:value", name, name))
		}
		if name == "truncate" && hasArg && arg != "" {
			if _, err := strconv.Atoi(arg); err != nil {
				res.Warnings = append(res.Warnings, fmt.Sprintf("truncate argument %q is not a number; no truncation will occur", arg))
			}
		}
	}

	if !hasKey(keys, "note") {
		res.Suggestions = append(res.Suggestions, "add {{note}} inside a {{#note}}...{{/note}} block to include your own annotations")
	}
	if !hasKey(keys, "chapter") {
		res.Suggestions = append(res.Suggestions, "reference {{chapter}} to group highlights under chapter headings")
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

// collectRefs gathers every variable/condition key and filter spec in
// the tree, including nested block bodies.
func collectRefs(tokens []Token, keys map[string]struct{}, specs *[]string) {
	for _, t := range tokens {
		switch t.Kind {
		case TokenVar:
			keys[t.Key] = struct{}{}
			*specs = append(*specs, t.Filters...)
		case TokenCond:
			keys[t.Key] = struct{}{}
			collectRefs(t.Body, keys, specs)
		}
	}
}

func hasKey(keys map[string]struct{}, key string) bool {
	_, ok := keys[key]
	return ok
}
