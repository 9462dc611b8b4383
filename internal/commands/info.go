package commands

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// InfoCommand handles info - describes a file
type InfoCommand struct{}

func NewInfoCommand() *InfoCommand { return &InfoCommand{} }

func (c *InfoCommand) Descriptor() Descriptor {
	return Descriptor{
		Keyword:     "info",
		Syntax:      "info",
		Description: "shows general information about a file. Text files also get character, word and line counts",
		Capability:  FileOnly,
	}
}

func (c *InfoCommand) ExecuteFile(ctx context.Context, req *Request, file *File) (*Response, error) {
	if file.Kind() != "text" {
		return Reply(Describe(file)), nil
	}

	data, err := file.Read(ctx)
	if err != nil {
		return nil, err
	}
	s := TextStats(string(data))
	return Replyf("Characters: %d\nWords: %d\nLines: %d", s.Chars, s.Words, s.Lines), nil
}

// Describe lists the metadata of a file.
func Describe(file *File) string {
	var sb strings.Builder
	if file.Name != "" {
		fmt.Fprintf(&sb, "Name: %s\n", file.Name)
	}
	if file.ID != "" {
		fmt.Fprintf(&sb, "ID: %s\n", file.ID)
	}
	mime := file.MimeType
	if mime == "" {
		mime = "unknown"
	}
	fmt.Fprintf(&sb, "Type: %s\nSize: %s", mime, FormatSize(file.Size))
	return sb.String()
}

// Stats counts the contents of a text.
type Stats struct {
	Chars int
	Words int
	Lines int
}

// TextStats counts characters, words and lines. Words are separated by
// whitespace and punctuation.
func TextStats(text string) Stats {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(" \r\n\t,;.!?", r)
	})
	return Stats{
		Chars: utf8.RuneCountInString(text),
		Words: len(words),
		Lines: strings.Count(text, "\n") + 1,
	}
}
