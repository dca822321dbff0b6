package speech

import "strings"

// entityReplacer unescapes the predefined XML entities left behind once the
// markup itself is removed.
var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

// StripSSML removes SSML markup from an utterance, keeping only the
// character data. The synthesis engine understands plain text only, so tags
// like <speak> or <break/> must not reach its standard input.
func StripSSML(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	inTag := false
	for _, r := range text {
		switch {
		case inTag:
			if r == '>' {
				inTag = false
			}
		case r == '<':
			inTag = true
		default:
			b.WriteRune(r)
		}
	}
	return entityReplacer.Replace(b.String())
}
