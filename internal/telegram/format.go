package telegram

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is the longest text Telegram accepts in one message.
const MaxMessageLength = 4096

// MarkdownV2 special characters that need escaping
const markdownV2SpecialChars = `_*[]()~` + "`" + `>#+-=|{}.!`

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	var result strings.Builder
	for _, r := range text {
		if strings.ContainsRune(markdownV2SpecialChars, r) {
			result.WriteRune('\\')
		}
		result.WriteRune(r)
	}
	return result.String()
}

// escapeCode escapes the characters that stay special inside code: ` and \
func escapeCode(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	return strings.ReplaceAll(text, "`", "\\`")
}

// markdownRule rewrites one markdown construct into its MarkdownV2 form.
type markdownRule struct {
	name    string
	pattern *regexp.Regexp
	render  func(groups []string) string
}

var markdownRules = []markdownRule{
	{
		name:    "CODEBLOCK",
		pattern: regexp.MustCompile("(?s)```([a-zA-Z]*)\\n?(.*?)```"),
		render: func(g []string) string {
			if g[1] != "" {
				return fmt.Sprintf("```%s\n%s```", g[1], escapeCode(g[2]))
			}
			return fmt.Sprintf("```\n%s```", escapeCode(g[2]))
		},
	},
	{
		name:    "CODE",
		pattern: regexp.MustCompile("`([^`]+)`"),
		render:  func(g []string) string { return "`" + escapeCode(g[1]) + "`" },
	},
	{
		name:    "LINK",
		pattern: regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`),
		render: func(g []string) string {
			// only ) and \ are special inside the URL part
			url := strings.ReplaceAll(g[2], "\\", "\\\\")
			url = strings.ReplaceAll(url, ")", "\\)")
			return fmt.Sprintf("[%s](%s)", escapeMarkdownV2(g[1]), url)
		},
	},
	{
		name:    "BOLD",
		pattern: regexp.MustCompile(`\*\*(.+?)\*\*`),
		render:  func(g []string) string { return "*" + escapeMarkdownV2(g[1]) + "*" },
	},
	{
		name:    "STRIKE",
		pattern: regexp.MustCompile(`~~(.+?)~~`),
		render:  func(g []string) string { return "~" + escapeMarkdownV2(g[1]) + "~" },
	},
}

// FormatMarkdownV2 converts standard markdown to Telegram MarkdownV2 format.
// Formatted spans are swapped for placeholders so the remaining plain text
// can be escaped in one pass.
func FormatMarkdownV2(text string) string {
	type placeholder struct{ key, value string }
	var saved []placeholder

	for _, rule := range markdownRules {
		text = rule.pattern.ReplaceAllStringFunc(text, func(match string) string {
			key := fmt.Sprintf("\x00%s%d\x00", rule.name, len(saved))
			saved = append(saved, placeholder{key, rule.render(rule.pattern.FindStringSubmatch(match))})
			return key
		})
	}

	text = escapeMarkdownV2(text)
	// later spans may wrap earlier ones, so restore them first
	for i := len(saved) - 1; i >= 0; i-- {
		text = strings.ReplaceAll(text, saved[i].key, saved[i].value)
	}
	return strings.TrimSpace(text)
}

// SplitText breaks text into chunks of at most limit runes, preferring to
// cut at line breaks.
func SplitText(text string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
