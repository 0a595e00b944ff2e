// filter.go resolves persisted language blocks to a single language for previews.
package mlang

import (
	"regexp"
	"strings"
)

// Matches a complete {mlang xx}...{mlang} block; group 1 holds the languages,
// group 2 the content.
var blockPattern = regexp.MustCompile(`(?is)\{\s*mlang\s+([^}\s][^}]*?)\s*\}(.*?)\{\s*mlang\s*\}`)

// Filter returns persisted markup as a reader of lang would see it. Language
// blocks separated only by whitespace form a group; of each group the blocks
// listing lang are kept, or the "other" blocks when none matches. Content
// outside of blocks is kept. A block may list several languages separated by
// commas, e.g. {mlang en,de}.
func Filter(markup, lang string) string {
	matches := blockPattern.FindAllStringSubmatchIndex(markup, -1)
	if len(matches) == 0 {
		return markup
	}

	var sb strings.Builder
	last := 0
	for start := 0; start < len(matches); {
		end := start + 1
		for end < len(matches) && strings.TrimSpace(markup[matches[end-1][1]:matches[end][0]]) == "" {
			end++
		}

		sb.WriteString(markup[last:matches[start][0]])
		sb.WriteString(selectBlocks(markup, matches[start:end], lang))
		last = matches[end-1][1]
		start = end
	}
	sb.WriteString(markup[last:])
	return sb.String()
}

// selectBlocks returns the content of the blocks in group that match lang,
// falling back to the blocks marked "other".
func selectBlocks(markup string, group [][]int, lang string) string {
	var matched, other strings.Builder
	for _, m := range group {
		content := markup[m[4]:m[5]]
		for _, code := range strings.Split(markup[m[2]:m[3]], ",") {
			code = strings.TrimSpace(code)
			if strings.EqualFold(code, lang) {
				matched.WriteString(content)
				break
			}
			if strings.EqualFold(code, LangOther) {
				other.WriteString(content)
				break
			}
		}
	}
	if matched.Len() > 0 {
		return matched.String()
	}
	return other.String()
}
