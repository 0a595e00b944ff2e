// tokenizer.go implements a single-pass, non-validating markup tokenizer.
package mlang

import (
	"iter"
	"regexp"
	"strings"
)

// Regex patterns for markup scanning
var (
	// Matches the next <...> run. Deliberately naive: no '>' may appear inside.
	tagPattern = regexp.MustCompile(`<[^>]*>`)
	// Matches the tag name right after '<'
	tagNamePattern = regexp.MustCompile(`^<([\w:-]+)`)
	// Matches one attribute with an optional double-quoted, single-quoted or bare value
	attrPattern = regexp.MustCompile(`([^\s"'<>/=]+)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'=<>` + "`" + `]+)))?`)

	// Closing sequences of inline-code blocks, matched case-insensitively
	commentEnd = regexp.MustCompile(`-->`)
	scriptEnd  = regexp.MustCompile(`(?i)</script\s*>`)
	styleEnd   = regexp.MustCompile(`(?i)</style\s*>`)

	// Opening sequences of inline-code blocks that may lack a closing '>'
	inlineCodeStart = regexp.MustCompile(`(?i)<!--|<script|<style`)
)

// attribute value kinds, ranked by precedence on key collision
const (
	attrBare = iota
	attrDouble
	attrSingle
)

// Tokenizer scans markup left to right and yields tokens on demand.
// It is not restartable.
type Tokenizer struct {
	input   string
	pos     int
	pending *Token
}

// NewTokenizer creates a tokenizer over input.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Next returns the next token. ok is false once the input is exhausted.
func (z *Tokenizer) Next() (tok Token, ok bool) {
	if z.pending != nil {
		tok, z.pending = *z.pending, nil
		return tok, true
	}
	if z.pos >= len(z.input) {
		return Token{}, false
	}

	remaining := z.input[z.pos:]
	loc := tagPattern.FindStringIndex(remaining)
	if loc == nil {
		// No further complete tag. An opened inline-code block still runs to
		// the end of input, anything else is text.
		open := inlineCodeStart.FindStringIndex(remaining)
		if open == nil {
			tok = Token{Type: TokenText, Raw: remaining, Position: z.pos}
			z.pos = len(z.input)
			return tok, true
		}
		rest := remaining[open[0]:]
		tag, n := scanTag(rest, rest, z.pos+open[0])
		return z.emit(remaining[:open[0]], tag, n), true
	}

	tag, n := scanTag(remaining[loc[0]:loc[1]], remaining[loc[0]:], z.pos+loc[0])
	return z.emit(remaining[:loc[0]], tag, n), true
}

// emit returns the text preceding a tag, holding the tag back, or the tag
// itself when no text precedes it. n is the number of bytes the tag consumed.
func (z *Tokenizer) emit(text string, tag Token, n int) Token {
	start := z.pos
	z.pos = tag.Position + n
	if text == "" {
		return tag
	}
	z.pending = &tag
	return Token{Type: TokenText, Raw: text, Position: start}
}

// All returns an iterator over the remaining tokens.
func (z *Tokenizer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := z.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Tokenize scans input and returns the complete token stream.
func Tokenize(input string) []Token {
	var tokens []Token
	for tok := range NewTokenizer(input).All() {
		tokens = append(tokens, tok)
	}
	return tokens
}

// scanTag classifies a matched <...> run. rest starts at the match and runs to
// the end of input so inline-code blocks can extend past the first '>'.
// Returns the token and the number of bytes consumed.
func scanTag(match, rest string, pos int) (Token, int) {
	lower := strings.ToLower(match)

	switch {
	case strings.HasPrefix(lower, "<!--"):
		return scanInlineCode(TokenComment, rest, commentEnd, len("<!--"), pos)
	case strings.HasPrefix(lower, "<script"):
		return scanInlineCode(TokenScript, rest, scriptEnd, len(match), pos)
	case strings.HasPrefix(lower, "<style"):
		return scanInlineCode(TokenStyle, rest, styleEnd, len(match), pos)
	}

	if len(match) > 1 && match[1] == '/' {
		return Token{
			Type:     TokenCloseTag,
			Name:     strings.ToLower(strings.TrimSpace(match[2 : len(match)-1])),
			Raw:      match,
			Position: pos,
		}, len(match)
	}

	tok := Token{Type: TokenOpenTag, Raw: match, Position: pos}
	body := match[1 : len(match)-1]
	if m := tagNamePattern.FindStringSubmatch(match); m != nil {
		tok.Name = strings.ToLower(m[1])
		body = match[len(m[0]) : len(match)-1]
	}
	tok.Attrs = parseAttributes(body)
	return tok, len(match)
}

// scanInlineCode consumes a comment, script or style block up to and including
// its closing sequence, searching from offset. An unterminated block runs to
// the end of input.
func scanInlineCode(typ TokenType, rest string, end *regexp.Regexp, offset, pos int) (Token, int) {
	n := len(rest)
	if offset <= len(rest) {
		if loc := end.FindStringIndex(rest[offset:]); loc != nil {
			n = offset + loc[1]
		}
	}
	tok := Token{Type: typ, Raw: rest[:n], Position: pos}
	switch typ {
	case TokenScript:
		tok.Name = "script"
	case TokenStyle:
		tok.Name = "style"
	}
	return tok, n
}

// parseAttributes extracts attributes from the part of an open tag after its
// name. Single-quoted values win over double-quoted ones on key collision,
// and any value wins over a bare boolean attribute.
func parseAttributes(s string) Attributes {
	var attrs Attributes
	kinds := make(map[string]int)

	for _, m := range attrPattern.FindAllStringSubmatchIndex(s, -1) {
		key := s[m[2]:m[3]]
		attr := Attr{Key: key}
		kind := attrBare

		switch {
		case m[4] >= 0:
			attr.Value, attr.HasValue, kind = s[m[4]:m[5]], true, attrDouble
		case m[6] >= 0:
			attr.Value, attr.HasValue, kind = s[m[6]:m[7]], true, attrSingle
		case m[8] >= 0:
			attr.Value, attr.HasValue, kind = s[m[8]:m[9]], true, attrDouble
		}

		if prev, seen := kinds[key]; seen && kind < prev {
			continue
		}
		kinds[key] = kind
		attrs.set(attr)
	}
	return attrs
}
