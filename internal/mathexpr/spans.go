package mathexpr

import "strings"

// Span is a balanced [...] region of an expression.
type Span struct {
	Content string // text strictly between the outer brackets
	Full    string // the bracketed text itself
	Start   int    // byte offset of the opening bracket
	End     int    // byte offset just past the closing bracket
}

// ExtractSpans returns the outermost balanced bracket spans of text, left to
// right. Nested spans stay inside Content. A span that never closes is
// dropped, and a closing bracket with nothing open is ignored.
func ExtractSpans(text string) []Span {
	var spans []Span
	depth, start := 0, -1

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '[':
			if depth == 0 {
				start = i
			}
			depth++
		case ']':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				spans = append(spans, Span{
					Content: text[start+1 : i],
					Full:    text[start : i+1],
					Start:   start,
					End:     i + 1,
				})
			}
		}
	}

	return spans
}

// SplitArguments splits an argument list on commas that are not nested
// inside brackets. Each argument is trimmed. Empty or blank input gives no
// arguments, and neither does a blank tail after the last comma.
func SplitArguments(text string) []string {
	var args []string
	var current strings.Builder
	depth := 0

	for _, r := range text {
		switch r {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		}

		if r == ',' && depth == 0 {
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}

	if last := strings.TrimSpace(current.String()); last != "" {
		args = append(args, last)
	}

	return args
}
