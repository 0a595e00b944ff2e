// strip.go turns rendered marker elements back into persisted marker text.
package mlang

import (
	"slices"
	"strings"
)

// StripOptions configures the reverse pass.
type StripOptions struct {
	// LegacyDir adds a dir attribute to reconstructed legacy spans.
	LegacyDir bool
	// RTLLanguages are the language codes that get dir="rtl".
	RTLLanguages []string
}

// DefaultRTLLanguages are right-to-left languages known to the editor.
var DefaultRTLLanguages = []string{"ar", "fa", "he", "ps", "ur", "yi", "dv", "ckb"}

// Strip replaces every rendered marker element with its lowercased label.
// A fallback begin marker and the content up to its sibling end marker are
// turned back into a legacy <span class="multilang"> element. If no sibling
// end marker exists the fallback marker is left in place.
func Strip(markup string, opts StripOptions) string {
	if !strings.Contains(markup, ClassBegin) && !strings.Contains(markup, ClassEnd) {
		return markup
	}
	s := &stripper{tokens: Tokenize(markup), opts: opts}
	return s.run(0, len(s.tokens))
}

type stripper struct {
	tokens []Token
	opts   StripOptions
}

// run strips the tokens in [from, to).
func (s *stripper) run(from, to int) string {
	var sb strings.Builder

	for i := from; i < to; i++ {
		tok := s.tokens[i]
		kind := classifyMarker(tok)
		if kind == notMarker {
			sb.WriteString(tok.Raw)
			continue
		}

		end := spanEnd(s.tokens, i, to)
		label := s.raw(i+1, end)

		if kind == beginMarker && hasClass(tok.Attrs, ClassFallback) {
			if legacy, next, ok := s.legacySpan(label, end+1, to); ok {
				sb.WriteString(legacy)
				i = next - 1
				continue
			}
			// No matching end marker, keep the element as it is
			sb.WriteString(s.raw(i, min(end+1, to)))
			i = end
			continue
		}

		sb.WriteString(strings.ToLower(label))
		i = end
	}
	return sb.String()
}

// legacySpan walks the siblings following a fallback begin marker until its
// matching fallback end marker on the same level. It returns the reconstructed legacy span
// and the index after the end marker element.
func (s *stripper) legacySpan(label string, from, to int) (string, int, bool) {
	m := beginMarkerPattern.FindStringSubmatch(label)
	if m == nil {
		return "", 0, false
	}
	lang := m[1]

	// nested counts fallback begin markers met on the same level, so each
	// fallback end marker closes the innermost one first. Plain markers are
	// content.
	level, nested := 0, 0
	for i := from; i < to; i++ {
		tok := s.tokens[i]
		switch tok.Type {
		case TokenOpenTag:
			if level == 0 && hasClass(tok.Attrs, ClassFallback) {
				switch classifyMarker(tok) {
				case beginMarker:
					nested++
				case endMarker:
					if nested == 0 {
						content := s.run(from, i)
						return s.legacyOpenTag(lang) + content + "</span>", spanEnd(s.tokens, i, to) + 1, true
					}
					nested--
				}
			}
			if !tok.SelfClosing() && !isVoidTag(tok.Name) {
				level++
			}
		case TokenCloseTag:
			if level == 0 {
				// The parent element ends before an end marker was found
				return "", 0, false
			}
			level--
		}
	}
	return "", 0, false
}

func (s *stripper) legacyOpenTag(lang string) string {
	tag := `<span class="` + ClassLegacy + `" lang="` + lang + `"`
	if s.opts.LegacyDir {
		dir := "ltr"
		if slices.Contains(s.opts.RTLLanguages, strings.ToLower(lang)) {
			dir = "rtl"
		}
		tag += ` dir="` + dir + `"`
	}
	return tag + ">"
}

// raw concatenates the source text of tokens in [from, to).
func (s *stripper) raw(from, to int) string {
	if from >= to {
		return ""
	}
	var sb strings.Builder
	for _, tok := range s.tokens[from:to] {
		sb.WriteString(tok.Raw)
	}
	return sb.String()
}
