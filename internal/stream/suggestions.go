package stream

import (
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
)

// The suggestions block arrives in one of several shapes depending on how
// literally the model followed its prompt: the tagged form, a labelled
// "Suggestions" line, or a bare trailing list literal.
var (
	tagBlockRE  = regexp.MustCompile(`(?s)<suggestions>\s*(\[.*?\])\s*</suggestions>`)
	labelLineRE = regexp.MustCompile(`(?is)(?:^|\n)[ \t]*\**suggestions\**[ \t]*:?[ \t]*\n?[ \t]*(\[.*?\])[ \t]*$`)
	trailingRE  = regexp.MustCompile(`(?s)\n[ \t]*(\[[^\[\]]*\])[ \t]*$`)
)

// ExtractSuggestions pulls the follow-up suggestions block out of the
// assembled visible text, returning the cleaned text and the list. A
// malformed or absent block degrades to an empty list, never an error.
func ExtractSuggestions(text string) (string, []string) {
	text = strings.TrimSpace(text)

	for _, re := range []*regexp.Regexp{tagBlockRE, labelLineRE, trailingRE} {
		m := re.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}

		var suggestions []string
		if err := sonic.Unmarshal([]byte(text[m[2]:m[3]]), &suggestions); err != nil {
			return text, []string{}
		}
		if suggestions == nil {
			suggestions = []string{}
		}

		clean := strings.TrimSpace(text[:m[0]] + text[m[1]:])
		return clean, suggestions
	}

	return text, []string{}
}
