// apply.go wraps a selection in language markers, the way the editor menu does.
package mlang

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LangRemove is the pseudo language that removes all markers.
const LangRemove = "remove"

// Selection errors reported to the user before markers are inserted.
var (
	ErrNoLanguage          = errors.New("no language selected")
	ErrMultipleBlocks      = errors.New("selected text spans multiple paragraphs/block elements, please select one only")
	ErrLangTagsInSelection = errors.New("selected text contains language tags, please click on a tag to select it")
)

// ApplyOptions configures marker insertion.
type ApplyOptions struct {
	// Fallback inserts fallback markers, which are saved as legacy spans.
	// Used when the multilang2 filter is not available.
	Fallback bool
}

// ApplyLanguage wraps selection, a rendered markup fragment, in a language
// block for iso and returns the replacement fragment.
//
//   - iso "remove" removes every marker from the selection
//   - an empty selection yields an empty block ready for input
//   - a selection starting at a begin marker changes that marker's language
//   - a single block element keeps its tags and gets the markers inside
func ApplyLanguage(selection, iso string, opts ApplyOptions) (string, error) {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return "", ErrNoLanguage
	}
	if iso == LangRemove {
		return RemoveAll(selection), nil
	}

	begin, end := BeginSpan(iso), EndSpan()
	if opts.Fallback {
		begin, end = asFallback(begin), asFallback(end)
	}

	if strings.TrimSpace(selection) == "" {
		return begin + " " + end, nil
	}

	if relabeled, ok := relabel(selection, iso); ok {
		return relabeled, nil
	}

	if err := CheckSelection(selection); err != nil {
		return "", err
	}

	if openTag, inner, closeTag, ok := splitBlockElement(selection); ok {
		return openTag + begin + inner + end + closeTag, nil
	}
	return begin + selection + end, nil
}

// CheckSelection verifies that markers may be placed around selection.
// It fails with ErrLangTagsInSelection if the selection already holds
// markers, and with ErrMultipleBlocks if it covers more than one top-level
// node and at least one of them is a block element.
func CheckSelection(selection string) error {
	if strings.Contains(selection, ClassBegin) || strings.Contains(selection, ClassEnd) ||
		markerPattern.MatchString(selection) {
		return ErrLangTagsInSelection
	}

	nodes, err := parseFragment(selection)
	if err != nil {
		return fmt.Errorf("failed to parse selection: %w", err)
	}

	top, blocks := 0, 0
	for _, n := range nodes {
		switch n.Type {
		case html.CommentNode:
			continue
		case html.TextNode:
			if strings.TrimSpace(n.Data) == "" {
				continue
			}
		case html.ElementNode:
			if blockTags[n.DataAtom] {
				blocks++
			}
		}
		top++
	}
	if blocks > 0 && top > 1 {
		return ErrMultipleBlocks
	}
	return nil
}

// RemoveAll removes every rendered marker element from markup and keeps the
// content between them.
func RemoveAll(markup string) string {
	tokens := Tokenize(markup)
	var sb strings.Builder
	for i := 0; i < len(tokens); i++ {
		if classifyMarker(tokens[i]) != notMarker {
			i = spanEnd(tokens, i, len(tokens))
			continue
		}
		sb.WriteString(tokens[i].Raw)
	}
	return sb.String()
}

// relabel replaces a begin marker at the start of selection with a begin
// marker for iso. The fallback variant is kept.
func relabel(selection, iso string) (string, bool) {
	tokens := Tokenize(selection)

	first := 0
	for first < len(tokens) && tokens[first].Type == TokenText && strings.TrimSpace(tokens[first].Raw) == "" {
		first++
	}
	if first == len(tokens) || classifyMarker(tokens[first]) != beginMarker {
		return "", false
	}

	replacement := BeginSpan(iso)
	if hasClass(tokens[first].Attrs, ClassFallback) {
		replacement = asFallback(replacement)
	}

	end := spanEnd(tokens, first, len(tokens))
	var sb strings.Builder
	for _, tok := range tokens[:first] {
		sb.WriteString(tok.Raw)
	}
	sb.WriteString(replacement)
	for i := end + 1; i < len(tokens); i++ {
		sb.WriteString(tokens[i].Raw)
	}
	return sb.String(), true
}

// splitBlockElement splits a selection consisting of exactly one block
// element into its open tag, inner markup and close tag. Surrounding
// whitespace stays with the tags.
func splitBlockElement(selection string) (openTag, inner, closeTag string, ok bool) {
	nodes, err := parseFragment(selection)
	if err != nil {
		return "", "", "", false
	}
	var element *html.Node
	for _, n := range nodes {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}
		if element != nil || n.Type != html.ElementNode || !blockTags[n.DataAtom] {
			return "", "", "", false
		}
		element = n
	}
	if element == nil {
		return "", "", "", false
	}

	tokens := Tokenize(selection)
	first, last := 0, len(tokens)-1
	for first < last && tokens[first].Type == TokenText {
		first++
	}
	for last > first && tokens[last].Type == TokenText && strings.TrimSpace(tokens[last].Raw) == "" {
		last--
	}
	if tokens[first].Type != TokenOpenTag || tokens[last].Type != TokenCloseTag ||
		tokens[first].Name != element.Data || tokens[last].Name != element.Data {
		return "", "", "", false
	}

	var sb strings.Builder
	for _, tok := range tokens[:first+1] {
		sb.WriteString(tok.Raw)
	}
	openTag = sb.String()
	sb.Reset()
	for _, tok := range tokens[first+1 : last] {
		sb.WriteString(tok.Raw)
	}
	inner = sb.String()
	sb.Reset()
	for _, tok := range tokens[last:] {
		sb.WriteString(tok.Raw)
	}
	closeTag = sb.String()
	return openTag, inner, closeTag, true
}

// parseFragment parses markup as the content of a body element.
func parseFragment(markup string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(strings.NewReader(markup), body)
}
