// Package template implements the highlight-note templating language:
// a tokenizer, a filter pipeline, a compiler, and a static validator.
//
// The syntax is deliberately small. {{key}} references a variable,
// optionally followed by a |-delimited filter chain, and
// {{#key}}...{{/key}} (or {{#if key}}...{{/if}}) renders its body only
// when the key's value is truthy. Anything that does not parse as one
// of these forms stays in the output as literal text: rendering is
// total and never fails on malformed input.
package template

import "strings"

// TokenKind discriminates the variants of a parsed template token.
type TokenKind uint8

const (
	// TokenText is a literal text run.
	TokenText TokenKind = iota
	// TokenVar is a variable reference with an optional filter chain.
	TokenVar
	// TokenCond is a conditional block with a fully parsed body.
	TokenCond
)

// Token is one parsed unit of a template. Only the fields relevant to
// its Kind are set: Value for TokenText, Key and Filters for TokenVar,
// Key and Body for TokenCond. A Cond body is always fully parsed
// before the token exists; half-open blocks never reach the tree.
type Token struct {
	Kind    TokenKind
	Value   string
	Key     string
	Filters []string
	Body    []Token
}

// Serialize renders a token tree back to canonical template syntax:
// variables with their filter chains and blocks in the
// {{#key}}...{{/key}} form. Tokenizing the result reproduces the tree.
func Serialize(tokens []Token) string {
	var b strings.Builder
	writeTokens(&b, tokens)
	return b.String()
}

func writeTokens(b *strings.Builder, tokens []Token) {
	for _, t := range tokens {
		switch t.Kind {
		case TokenText:
			b.WriteString(t.Value)
		case TokenVar:
			b.WriteString("{{")
			b.WriteString(t.Key)
			for _, f := range t.Filters {
				b.WriteString("|")
				b.WriteString(f)
			}
			b.WriteString("}}")
		case TokenCond:
			b.WriteString("{{#")
			b.WriteString(t.Key)
			b.WriteString("}}")
			writeTokens(b, t.Body)
			b.WriteString("{{/")
			b.WriteString(t.Key)
			b.WriteString("}}")
		}
	}
}
