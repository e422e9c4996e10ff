package template

import (
	"regexp"
	"strings"
)

// MaxDepth is the default nesting limit for conditional blocks.
// Opening tags beyond this depth degrade to literal text.
const MaxDepth = 20

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

var keyRe = regexp.MustCompile(`^\w+$`)

// frame tracks one open conditional block during parsing. The frame
// owns its body buffer; on close the buffer is moved into the Cond
// token, never copied.
type frame struct {
	closerKey  string
	condKey    string
	body       []Token
	openOffset int // byte offset of the opening "{{" in the template
	parentLen  int // parent sequence length when the block opened
}

// Tokenize parses a template into its token tree using MaxDepth as the
// nesting limit.
func Tokenize(tpl string) []Token { return TokenizeDepth(tpl, MaxDepth) }

// TokenizeDepth parses a template into an ordered token tree. It never
// fails: unmatched closers, over-deep nesting, malformed keys, and
// unterminated tags all degrade to literal text.
func TokenizeDepth(tpl string, maxDepth int) []Token {
	var root []Token
	var stack []*frame

	current := func() *[]Token {
		if len(stack) > 0 {
			return &stack[len(stack)-1].body
		}
		return &root
	}
	emitText := func(s string) {
		if s == "" {
			return
		}
		seq := current()
		*seq = append(*seq, Token{Kind: TokenText, Value: s})
	}

	pos := 0
	for pos < len(tpl) {
		open := strings.Index(tpl[pos:], openDelim)
		if open < 0 {
			emitText(tpl[pos:])
			pos = len(tpl)
			break
		}
		open += pos
		emitText(tpl[pos:open])

		end := strings.Index(tpl[open+len(openDelim):], closeDelim)
		if end < 0 {
			// No closing delimiter: the rest is literal text.
			emitText(tpl[open:])
			pos = len(tpl)
			break
		}
		end += open + len(openDelim)
		raw := tpl[open : end+len(closeDelim)]
		inner := strings.TrimSpace(tpl[open+len(openDelim) : end])
		pos = end + len(closeDelim)

		switch {
		case strings.HasPrefix(inner, "#"):
			closerKey, condKey := splitOpener(inner[1:])
			if condKey == "" || len(stack) >= maxDepth {
				emitText(raw)
				continue
			}
			stack = append(stack, &frame{
				closerKey:  closerKey,
				condKey:    condKey,
				openOffset: open,
				parentLen:  len(*current()),
			})

		case strings.HasPrefix(inner, "/"):
			name := strings.TrimSpace(inner[1:])
			if len(stack) == 0 || stack[len(stack)-1].closerKey != name {
				emitText(raw)
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			seq := current()
			*seq = append(*seq, Token{Kind: TokenCond, Key: top.condKey, Body: top.body})

		default:
			key, filters, ok := splitVar(inner)
			if !ok {
				emitText(raw)
				continue
			}
			seq := current()
			*seq = append(*seq, Token{Kind: TokenVar, Key: key, Filters: filters})
		}
	}

	if len(stack) > 0 {
		// Unterminated blocks: drop the partial structure and keep the
		// raw text from the first unmatched opener to end of input.
		// The bottom frame's parent is always the root sequence.
		first := stack[0]
		root = append(root[:first.parentLen], Token{Kind: TokenText, Value: tpl[first.openOffset:]})
	}
	return root
}

// splitOpener resolves the two opener forms. "#if key" expects the
// {{/if}} closer; "#key" expects {{/key}}. An empty condKey marks the
// opener invalid.
func splitOpener(s string) (closerKey, condKey string) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "if"); ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
		return "if", strings.TrimSpace(rest)
	}
	return s, s
}

// splitVar parses a variable tag body: |-delimited segments, trimmed,
// empties dropped; the first segment is the key and must be a word.
func splitVar(inner string) (key string, filters []string, ok bool) {
	var segs []string
	for _, seg := range strings.Split(inner, "|") {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	if len(segs) == 0 || !keyRe.MatchString(segs[0]) {
		return "", nil, false
	}
	return segs[0], segs[1:], true
}
