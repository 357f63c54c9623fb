package assistant

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/minjae/job-coach/internal/llm"
)

// rewriteCitationBody replaces every occurrence of each annotation's
// literal text with its bracketed index marker. A single left-to-right
// scan keeps indexing stable even when one annotation's text repeats or
// overlaps another's: at any position the earliest-declared matching
// annotation wins.
func rewriteCitationBody(text string, annotations []llm.Annotation) string {
	if len(annotations) == 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))

	for i := 0; i < len(text); {
		matched := false
		for idx, ann := range annotations {
			if ann.Text == "" || !strings.HasPrefix(text[i:], ann.Text) {
				continue
			}
			fmt.Fprintf(&sb, "[%d]", idx)
			i += len(ann.Text)
			matched = true
			break
		}
		if !matched {
			_, size := utf8.DecodeRuneInString(text[i:])
			sb.WriteString(text[i : i+size])
			i += size
		}
	}

	return sb.String()
}
