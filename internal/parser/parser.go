// Package parser splits chat messages into a command keyword and its arguments.
//
// Commands are written as a keyword followed by arguments, each separated by
// the delimiter:
//
//	convert < 1024 kb < mb
package parser

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Delimiter separates the keyword from the arguments and the arguments from
// each other. It cannot be escaped.
const Delimiter = '<'

// Command is a parsed message: the keyword and its arguments in source order.
type Command struct {
	Keyword string
	Args    []string
}

// Tokenize splits text on every delimiter. The first trimmed segment is the
// keyword, the remaining trimmed segments are the arguments. When foldCase is
// set both keyword and arguments are lower-cased.
func Tokenize(text string, foldCase bool) Command {
	segments := strings.Split(text, string(Delimiter))
	for i, s := range segments {
		s = strings.TrimSpace(s)
		if foldCase {
			s = strings.ToLower(s)
		}
		segments[i] = s
	}

	cmd := Command{Keyword: segments[0]}
	if len(segments) > 1 {
		cmd.Args = segments[1:]
	}
	return cmd
}

// Keyword returns the lower-cased keyword of text.
func Keyword(text string) string {
	return Tokenize(text, true).Keyword
}

// TryTokenizeArguments returns the lower-cased arguments of text and whether
// there was at least one.
func TryTokenizeArguments(text string) ([]string, bool) {
	args := Tokenize(text, true).Args
	return args, len(args) > 0
}

// Remainder returns everything after the first delimiter, trimmed but
// otherwise untouched. It is empty when text has no delimiter.
func Remainder(text string) string {
	idx := strings.IndexRune(text, Delimiter)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(text[idx+1:])
}

// EditDistance is the Levenshtein distance between s and t, counted in runes.
func EditDistance(s, t string) int {
	return levenshtein.ComputeDistance(s, t)
}

// Closest returns the candidate with the smallest edit distance to input.
// Ties go to the candidate seen first. It reports false for no candidates.
func Closest(input string, candidates []string) (string, bool) {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := EditDistance(input, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist >= 0
}
