// render.go turns persisted {mlang xx}...{mlang} text into highlighted marker elements.
package mlang

import (
	"strings"

	"golang.org/x/net/html"
)

// RenderOptions configures the marker rendering pass.
type RenderOptions struct {
	// FallbackSpan migrates legacy <span class="multilang"> elements to
	// fallback marker pairs.
	FallbackSpan bool
	// SplitAtBlocks closes an open language block at the end of the enclosing
	// block element and reopens stray closes with the "other" language.
	SplitAtBlocks bool
}

// Render converts marker literals in markup to rendered marker elements.
// Markup that already contains rendered markers is returned unchanged.
func Render(markup string, opts RenderOptions) string {
	if IsRendered(markup) {
		return markup
	}

	result := Highlight(markup, opts)

	if opts.FallbackSpan {
		result = MigrateLegacySpans(result)
	}
	return result
}

// Highlight runs the marker pass over markup without checking whether it was
// rendered before. Begin and end markers that are already rendered are
// tracked so that literals around them nest correctly.
func Highlight(markup string, opts RenderOptions) string {
	h := &highlighter{split: opts.SplitAtBlocks}
	h.out = make([]byte, 0, len(markup)+len(markup)/2)

	for tok := range NewTokenizer(markup).All() {
		switch tok.Type {
		case TokenOpenTag:
			h.openTag(tok)
		case TokenCloseTag:
			h.closeTag(tok)
		case TokenText:
			h.text(tok.Raw)
		default:
			// Comments, scripts and styles are never scanned for markers
			h.write(tok.Raw)
		}
	}
	return string(h.out)
}

// highlighter holds the state of one marker pass.
type highlighter struct {
	out     []byte
	depth   int
	inBegin bool // inside the label of a rendered begin marker
	inClose bool // inside the label of a rendered end marker
	split   bool
	// output offsets of end markers that closed nothing in the current block
	strayEnds []int
	// enclosing block elements in split mode, innermost last
	blocks []blockFrame
}

// blockFrame saves the marker state of the block around a nested block
// element while the nested one is scanned.
type blockFrame struct {
	name      string
	depth     int
	strayEnds []int
}

func (h *highlighter) write(s string) {
	h.out = append(h.out, s...)
}

func (h *highlighter) insert(at int, s string) {
	h.out = append(h.out[:at], append([]byte(s), h.out[at:]...)...)
}

func (h *highlighter) openTag(tok Token) {
	if h.split && IsBlockTag(tok.Name) && !tok.SelfClosing() && !isVoidTag(tok.Name) {
		h.blocks = append(h.blocks, blockFrame{name: tok.Name, depth: h.depth, strayEnds: h.strayEnds})
		h.depth = 0
		h.strayEnds = nil
	}
	if tok.Name == "span" {
		class := tok.Attrs.Get("class")
		switch {
		case strings.Contains(class, ClassBegin):
			h.depth++
			h.inBegin = !tok.SelfClosing()
		case strings.Contains(class, ClassEnd):
			h.depth--
			h.inClose = !tok.SelfClosing()
		}
	}
	h.write(tok.Raw)
}

func (h *highlighter) closeTag(tok Token) {
	if h.split && IsBlockTag(tok.Name) {
		h.closeBlock(tok.Name)
	}
	if tok.Name == "span" {
		h.inBegin = false
		h.inClose = false
	}
	h.write(tok.Raw)
}

// balanceBlock keeps language blocks from crossing a block element boundary.
// An open block is closed before the boundary; end markers that closed
// nothing inside the block get an "other" begin marker in front of them.
func (h *highlighter) balanceBlock() {
	switch {
	case h.depth > 0:
		h.write(EndSpan())
	case h.depth < 0:
		begin := BeginSpan(LangOther)
		for i := len(h.strayEnds) - 1; i >= 0; i-- {
			h.insert(h.strayEnds[i], begin)
		}
	}
	h.depth = 0
	h.strayEnds = nil
}

// closeBlock balances the block ending with a close tag for name and restores
// the marker state of the block around it. Unclosed block elements inside it
// are balanced first. A close tag without a matching open element only
// balances the current block.
func (h *highlighter) closeBlock(name string) {
	match := -1
	for i := len(h.blocks) - 1; i >= 0; i-- {
		if h.blocks[i].name == name {
			match = i
			break
		}
	}
	if match < 0 {
		h.balanceBlock()
		return
	}
	for len(h.blocks) > match {
		h.balanceBlock()
		top := h.blocks[len(h.blocks)-1]
		h.depth, h.strayEnds = top.depth, top.strayEnds
		h.blocks = h.blocks[:len(h.blocks)-1]
	}
}

// text scans a text run for marker literals. Each literal is replaced by its
// rendered element when it opens or closes the outermost block; nested
// literals are kept as they are. The scan advances past every replacement so
// a begin marker's own label is never matched again.
func (h *highlighter) text(text string) {
	if h.inClose || h.inBegin {
		h.write(text)
		return
	}

	last := 0
	for _, m := range markerPattern.FindAllStringSubmatchIndex(text, -1) {
		h.write(text[last:m[0]])
		literal := text[m[0]:m[1]]
		last = m[1]

		if m[4] < 0 {
			// {mlang} closes a block
			switch {
			case h.depth == 1:
				h.write(EndSpan())
			case h.split && h.depth <= 0:
				h.strayEnds = append(h.strayEnds, len(h.out))
				h.write(EndSpan())
			default:
				h.write(literal)
			}
			h.depth--
			continue
		}

		// {mlang xx} opens a block
		if h.depth == 0 {
			h.write(BeginSpan(text[m[4]:m[5]]))
		} else {
			h.write(literal)
		}
		h.depth++
	}
	h.write(text[last:])
}

// MigrateLegacySpans replaces every <span class="multilang" lang="xx">...</span>
// element with a fallback begin marker, the unchanged content and a fallback
// end marker. Legacy spans left open at the end of input are closed there.
func MigrateLegacySpans(markup string) string {
	var sb strings.Builder
	sb.Grow(len(markup))

	// one entry per open span, true if it is a legacy span
	var spans []bool

	for tok := range NewTokenizer(markup).All() {
		switch {
		case tok.Type == TokenOpenTag && tok.Name == "span":
			legacy := hasClass(tok.Attrs, ClassLegacy)
			if !legacy {
				if !tok.SelfClosing() {
					spans = append(spans, false)
				}
				sb.WriteString(tok.Raw)
				continue
			}
			lang := html.UnescapeString(tok.Attrs.Get("lang"))
			if lang == "" {
				lang = LangOther
			}
			sb.WriteString(FallbackBeginSpan(lang))
			if tok.SelfClosing() {
				sb.WriteString(FallbackEndSpan())
				continue
			}
			spans = append(spans, true)

		case tok.Type == TokenCloseTag && tok.Name == "span" && len(spans) > 0:
			legacy := spans[len(spans)-1]
			spans = spans[:len(spans)-1]
			if legacy {
				sb.WriteString(FallbackEndSpan())
			} else {
				sb.WriteString(tok.Raw)
			}

		default:
			sb.WriteString(tok.Raw)
		}
	}

	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i] {
			sb.WriteString(FallbackEndSpan())
		}
	}
	return sb.String()
}
