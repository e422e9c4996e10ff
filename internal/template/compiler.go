package template

import (
	"regexp"
	"strings"

	"github.com/voss/kohl/internal/strutil"
)

// QuoteStyle says who is responsible for blockquoting rendered notes.
type QuoteStyle uint8

const (
	// QuoteAuto blockquotes every line of the rendered note.
	QuoteAuto QuoteStyle = iota
	// QuoteManual leaves quoting to the template author.
	QuoteManual
)

var notePlaceholderRe = regexp.MustCompile(`\{\{\s*note\b`)

// Template is a compiled template ready to render against per-group
// data. A compiled template is immutable and safe for concurrent use.
type Template struct {
	tokens []Token
	quote  QuoteStyle
	cache  PipelineCache
}

// Option configures compilation.
type Option func(*Template)

// WithCache injects a pipeline cache shared across renders.
func WithCache(c PipelineCache) Option {
	return func(t *Template) { t.cache = c }
}

// Compile tokenizes tpl once and detects the note-quoting style: when
// any template line holding a note placeholder already starts with a
// quote marker, quoting is the template author's responsibility;
// otherwise rendered notes are blockquoted automatically.
func Compile(tpl string, opts ...Option) *Template {
	t := &Template{
		tokens: Tokenize(tpl),
		quote:  detectQuoteStyle(tpl),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func detectQuoteStyle(tpl string) QuoteStyle {
	for _, line := range strings.Split(tpl, "\n") {
		if notePlaceholderRe.MatchString(line) && strings.HasPrefix(strings.TrimSpace(line), ">") {
			return QuoteManual
		}
	}
	return QuoteAuto
}

// Tokens exposes the compiled token tree.
func (t *Template) Tokens() []Token { return t.tokens }

// QuoteStyle reports the detected note-quoting style.
func (t *Template) QuoteStyle() QuoteStyle { return t.quote }

// Render evaluates the token tree against data. Evaluation is pure
// apart from pipeline-cache writes; it always returns a string.
func (t *Template) Render(data *Data) string {
	var b strings.Builder
	t.renderSeq(&b, t.tokens, data)
	return b.String()
}

func (t *Template) renderSeq(b *strings.Builder, tokens []Token, data *Data) {
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenText:
			b.WriteString(tok.Value)

		case TokenVar:
			v, _ := data.Lookup(tok.Key)
			if tok.Key == "note" && t.quote == QuoteAuto {
				if s := Stringify(v); s != "" {
					v = strutil.QuoteLines(s)
				}
			}
			b.WriteString(ApplyFilters(v, tok.Filters, t.cache))

		case TokenCond:
			v, _ := data.Lookup(tok.Key)
			if Truthy(v) {
				t.renderSeq(b, tok.Body, data)
			}
		}
	}
}
