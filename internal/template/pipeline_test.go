package template

import (
	"sync"
	"testing"
)

func TestApplyFilters_NoSpecs(t *testing.T) {
	if got := ApplyFilters("abc", nil, nil); got != "abc" {
		t.Errorf("got %q, want abc", got)
	}
	if got := ApplyFilters(nil, nil, nil); got != "" {
		t.Errorf("nil value = %q, want empty", got)
	}
}

func TestApplyFilters_Chains(t *testing.T) {
	tests := []struct {
		name  string
		value string
		specs []string
		want  string
	}{
		{"upper then truncate", "abcdef", []string{"upper", "truncate:3"}, "ABC…"},
		{"order sensitive: truncate then upper", "ab", []string{"truncate:1", "upper"}, "A…"},
		{"order sensitive: upper then truncate", "ab", []string{"upper", "truncate:1"}, "A…"},
		{"truncate exact length", "abc", []string{"truncate:3"}, "abc"},
		{"truncate bad arg passes through", "abcdef", []string{"truncate:abc"}, "abcdef"},
		{"lower", "ABC", []string{"lower"}, "abc"},
		{"quote", "a\n\nb", []string{"quote"}, "> a\n>\n> b"},
		{"br2nl", "a<br>b<br/>c<br />d", []string{"br2nl"}, "a\nb\nc\nd"},
		{"stripHTML", "<p>a &amp; b</p>", []string{"stripHTML"}, "a & b"},
		{"escape", "a*b_c", []string{"escape"}, `a\*b\_c`},
		{"escapeHtml", `<a href="x">`, []string{"escapeHtml"}, "&lt;a href=&#34;x&#34;&gt;"},
		{"unescapeHtml", "a &lt;b&gt;", []string{"unescapeHtml"}, "a <b>"},
		{"unknown filter is identity", "abc", []string{"sparkle"}, "abc"},
		{"unknown inside chain", "abc", []string{"upper", "sparkle", "truncate:2"}, "AB…"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ApplyFilters(tc.value, tc.specs, nil); got != tc.want {
				t.Errorf("ApplyFilters(%q, %v) = %q, want %q", tc.value, tc.specs, got, tc.want)
			}
		})
	}
}

func TestApplyFilters_DateFormat(t *testing.T) {
	got := ApplyFilters("2024-03-09 21:14:05", []string{"dateFormat:YYYY/MM/DD"}, nil)
	if got != "2024/03/09" {
		t.Errorf("got %q, want 2024/03/09", got)
	}
	// Unparseable values pass through unchanged.
	got = ApplyFilters("not a date", []string{"dateFormat:YYYY"}, nil)
	if got != "not a date" {
		t.Errorf("got %q, want passthrough", got)
	}
}

// countingCache wraps a map and counts hits so tests can assert reuse.
type countingCache struct {
	mu    sync.Mutex
	store map[string]Pipeline
	hits  int
	sets  int
}

func newCountingCache() *countingCache {
	return &countingCache{store: map[string]Pipeline{}}
}

func (c *countingCache) Get(key string) (Pipeline, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.store[key]
	if ok {
		c.hits++
	}
	return p, ok
}

func (c *countingCache) Set(key string, p Pipeline) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.store[key] = p
}

func TestBuildPipeline_CacheReuse(t *testing.T) {
	cc := newCountingCache()

	if got := ApplyFilters("abc", []string{"upper"}, cc); got != "ABC" {
		t.Fatalf("first call = %q", got)
	}
	if cc.sets != 1 || cc.hits != 0 {
		t.Fatalf("after first call: sets=%d hits=%d", cc.sets, cc.hits)
	}

	if got := ApplyFilters("def", []string{"upper"}, cc); got != "DEF" {
		t.Fatalf("second call = %q", got)
	}
	if cc.sets != 1 {
		t.Errorf("pipeline recomputed: sets=%d, want 1", cc.sets)
	}
	if cc.hits != 1 {
		t.Errorf("hits=%d, want 1", cc.hits)
	}
}

func TestFilterRegistry_Metadata(t *testing.T) {
	f, ok := LookupFilter("truncate")
	if !ok || !f.RequiresArg {
		t.Errorf("truncate = %+v ok=%v, want RequiresArg", f, ok)
	}
	if _, ok := LookupFilter("upper"); !ok {
		t.Error("upper not registered")
	}
	if _, ok := LookupFilter("Upper"); ok {
		t.Error("filter names should be case-sensitive")
	}
	names := FilterNames()
	if len(names) != 10 {
		t.Errorf("len(FilterNames()) = %d, want 10", len(names))
	}
}
