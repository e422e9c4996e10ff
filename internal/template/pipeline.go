package template

import "strings"

// Pipeline is a compiled filter chain applied left to right.
type Pipeline func(string) string

// PipelineCache is the injected cache capability for compiled filter
// chains, keyed by the joined spec string. Implementations must be
// safe for concurrent use; a duplicate build on a racing miss is
// harmless because Set is an idempotent overwrite.
type PipelineCache interface {
	Get(key string) (Pipeline, bool)
	Set(key string, p Pipeline)
}

// ApplyFilters stringifies value and runs it through the chain
// described by specs. With no specs the string is returned unchanged.
// cache may be nil.
func ApplyFilters(value any, specs []string, cache PipelineCache) string {
	s := Stringify(value)
	if len(specs) == 0 {
		return s
	}
	return BuildPipeline(specs, cache)(s)
}

// BuildPipeline compiles specs into one composed function, reusing a
// cached pipeline when the same spec list has been built before.
func BuildPipeline(specs []string, cache PipelineCache) Pipeline {
	key := strings.Join(specs, "|")
	if cache != nil {
		if p, ok := cache.Get(key); ok {
			return p
		}
	}
	steps := make([]Pipeline, len(specs))
	for i, spec := range specs {
		steps[i] = filterStep(spec)
	}
	p := func(s string) string {
		for _, step := range steps {
			s = step(s)
		}
		return s
	}
	if cache != nil {
		cache.Set(key, p)
	}
	return p
}

// filterStep resolves one "name" or "name:arg" spec. Unknown names
// become the identity step.
func filterStep(spec string) Pipeline {
	name, arg, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	arg = strings.TrimSpace(arg)
	f, ok := LookupFilter(name)
	if !ok {
		return func(s string) string { return s }
	}
	return func(s string) string { return f.Apply(s, arg) }
}
