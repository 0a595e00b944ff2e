// markers.go defines the rendered marker elements and the marker literal syntax.
package mlang

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// ClassBegin and ClassEnd identify rendered begin and end markers.
	ClassBegin = "multilang-begin"
	ClassEnd   = "multilang-end"
	// ClassNonEditable is the editor class that keeps a marker from being edited.
	ClassNonEditable = "mceNonEditable"
	// ClassFallback marks markers that were migrated from a legacy span.
	ClassFallback = "fallback"
	// ClassLegacy is the class of the legacy <span class="multilang"> element.
	ClassLegacy = "multilang"

	// LangOther is the language code of the fallback block.
	LangOther = "other"

	// langPlaceholder is substituted with the language code, attrPlaceholder
	// with its attribute-escaped form.
	langPlaceholder = "%lang"
	attrPlaceholder = "%attr"

	spanFixedAttrs = `<span contenteditable="false" class="` + ClassBegin + ` ` + ClassNonEditable + `" data-mce-contenteditable="false"`

	beginTemplate = spanFixedAttrs + ` lang="` + attrPlaceholder + `" xml:lang="` + attrPlaceholder + `">{mlang ` + langPlaceholder + `}</span>`
)

var (
	endTemplate = strings.Replace(spanFixedAttrs, "begin", "end", 1) + `>{mlang}</span>`

	// Signatures that identify already rendered content.
	renderedSignatures = []string{
		ClassBegin + " " + ClassNonEditable,
		ClassEnd + " " + ClassNonEditable,
	}

	// Matches {mlang xx} and {mlang}; group 2 holds the language code if present.
	markerPattern = regexp.MustCompile(`(?i)\{\s*mlang(\s+([^}\s][^}]*?))?\s*\}`)
	// Matches only the opening form {mlang xx}; group 1 holds the language code.
	beginMarkerPattern = regexp.MustCompile(`(?i)\{\s*mlang\s+([^}\s][^}]*?)\s*\}`)
)

// BeginSpan returns the rendered begin marker for lang. The visible label
// keeps lang as written, the attributes carry it escaped.
func BeginSpan(lang string) string {
	return strings.NewReplacer(
		attrPlaceholder, html.EscapeString(lang),
		langPlaceholder, lang,
	).Replace(beginTemplate)
}

// EndSpan returns the rendered end marker.
func EndSpan() string {
	return endTemplate
}

// FallbackBeginSpan returns the begin marker variant used for migrated legacy spans.
func FallbackBeginSpan(lang string) string {
	return asFallback(BeginSpan(lang))
}

// FallbackEndSpan returns the end marker variant used for migrated legacy spans.
func FallbackEndSpan() string {
	return asFallback(endTemplate)
}

func asFallback(span string) string {
	return strings.Replace(span, ClassNonEditable, ClassNonEditable+" "+ClassFallback, 1)
}

// IsRendered reports whether markup already contains rendered markers.
func IsRendered(markup string) bool {
	for _, sig := range renderedSignatures {
		if strings.Contains(markup, sig) {
			return true
		}
	}
	return false
}

// blockTags are the elements a language block must not silently span.
var blockTags = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Blockquote: true,
	atom.Dd:         true,
	atom.Div:        true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Figcaption: true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Li:         true,
	atom.Ol:         true,
	atom.P:          true,
	atom.Pre:        true,
	atom.Section:    true,
	atom.Tfoot:      true,
	atom.Ul:         true,
}

// voidTags never have a closing tag.
var voidTags = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// IsBlockTag reports whether name is a block-level element.
func IsBlockTag(name string) bool {
	return blockTags[atom.Lookup([]byte(strings.ToLower(name)))]
}

// isVoidTag reports whether name is an element without content.
func isVoidTag(name string) bool {
	return voidTags[atom.Lookup([]byte(name))]
}

// hasClass reports whether the class attribute contains the class token.
func hasClass(attrs Attributes, class string) bool {
	for _, c := range strings.Fields(attrs.Get("class")) {
		if c == class {
			return true
		}
	}
	return false
}

// markerKind classifies a token as a rendered begin or end marker.
type markerKind int

const (
	notMarker markerKind = iota
	beginMarker
	endMarker
)

func classifyMarker(tok Token) markerKind {
	if tok.Type != TokenOpenTag || tok.Name != "span" {
		return notMarker
	}
	switch {
	case hasClass(tok.Attrs, ClassBegin):
		return beginMarker
	case hasClass(tok.Attrs, ClassEnd):
		return endMarker
	}
	return notMarker
}

// spanEnd returns the index of the close tag matching the span opened at
// tokens[start], or to when the span is never closed before index to.
func spanEnd(tokens []Token, start, to int) int {
	if tokens[start].SelfClosing() {
		return start
	}
	level := 0
	for i := start + 1; i < to; i++ {
		tok := tokens[i]
		switch {
		case tok.Type == TokenOpenTag && tok.Name == "span" && !tok.SelfClosing():
			level++
		case tok.Type == TokenCloseTag && tok.Name == "span":
			if level == 0 {
				return i
			}
			level--
		}
	}
	return to
}
