package commands

import (
	"context"
	"strings"
	"unicode"
)

const notEnoughParams = "Not enough parameters!"

// TransformCommand applies a string transformation to the text after the
// keyword, or to the contents of a text file sent back as a new file.
type TransformCommand struct {
	desc      Descriptor
	transform func(string) string
}

func newTransform(keyword, description string, transform func(string) string) *TransformCommand {
	return &TransformCommand{
		desc: Descriptor{
			Keyword:     keyword,
			Syntax:      keyword + " < text",
			Description: description,
			Capability:  Both,
			FileKind:    "text",
		},
		transform: transform,
	}
}

// NewUppercaseCommand converts text to upper case.
func NewUppercaseCommand() *TransformCommand {
	return newTransform("uppercase", "converts text to upper case", strings.ToUpper)
}

// NewLowercaseCommand converts text to lower case.
func NewLowercaseCommand() *TransformCommand {
	return newTransform("lowercase", "converts text to lower case", strings.ToLower)
}

// NewSnakeCaseCommand replaces spaces with underscores.
func NewSnakeCaseCommand() *TransformCommand {
	return newTransform("snakecase", "replaces spaces with underscores", SnakeCase)
}

// NewCamelCaseCommand removes spaces and capitalizes each following word.
func NewCamelCaseCommand() *TransformCommand {
	return newTransform("camelcase", "removes spaces and capitalizes every word after the first", CamelCase)
}

// NewReverseCommand reverses text.
func NewReverseCommand() *TransformCommand {
	return newTransform("reverse", "reverses text", Reverse)
}

func (c *TransformCommand) Descriptor() Descriptor { return c.desc }

func (c *TransformCommand) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	text := req.Remainder()
	if text == "" {
		return Reply(notEnoughParams), nil
	}
	return Reply(c.transform(text)), nil
}

func (c *TransformCommand) ExecuteFile(ctx context.Context, req *Request, file *File) (*Response, error) {
	data, err := file.Read(ctx)
	if err != nil {
		return nil, err
	}
	return fileReply(file, c.transform(string(data))), nil
}

func fileReply(file *File, contents string) *Response {
	name := file.Name
	if name == "" {
		name = "result.txt"
	}
	return &Response{File: &OutputFile{Name: name, Data: []byte(contents)}}
}

// SnakeCase replaces every space with an underscore.
func SnakeCase(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}

// CamelCase drops spaces, upper-cases the letter after each space and
// lower-cases everything else.
func CamelCase(s string) string {
	var sb strings.Builder
	nextUpper := false
	for _, r := range s {
		switch {
		case r == ' ':
			nextUpper = true
		case nextUpper:
			sb.WriteRune(unicode.ToUpper(r))
			nextUpper = false
		default:
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}

// Reverse reverses s rune by rune.
func Reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// SplitCommand handles split - puts every part of a string on its own line
type SplitCommand struct{}

func NewSplitCommand() *SplitCommand { return &SplitCommand{} }

func (c *SplitCommand) Descriptor() Descriptor {
	return Descriptor{
		Keyword: "split",
		Syntax:  "split < splitter < text",
		Description: "splits text by splitter and writes every part on its own line. " +
			"With a text file only the splitter is needed. The splitter may be quoted, like \", \"",
		Capability: Both,
		FileKind:   "text",
	}
}

func (c *SplitCommand) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	args := req.RawArgs()
	if len(args) < 2 {
		return Reply(notEnoughParams), nil
	}
	splitter := Splitter(args[0])
	if splitter == "" {
		return Reply("The splitter is empty!"), nil
	}
	return Reply(SplitLines(args[1], splitter)), nil
}

func (c *SplitCommand) ExecuteFile(ctx context.Context, req *Request, file *File) (*Response, error) {
	args := req.RawArgs()
	if len(args) < 1 {
		return Reply(notEnoughParams), nil
	}
	splitter := Splitter(args[0])
	if splitter == "" {
		return Reply("The splitter is empty!"), nil
	}

	data, err := file.Read(ctx)
	if err != nil {
		return nil, err
	}
	return fileReply(file, SplitLines(string(data), splitter)+"\n"), nil
}

// Splitter unwraps a splitter written in double quotes. Unquoted input is
// returned as is.
func Splitter(arg string) string {
	_, rest, ok := strings.Cut(arg, `"`)
	if !ok {
		return arg
	}
	inner, _, _ := strings.Cut(rest, `"`)
	return inner
}

// SplitLines splits s by sep and joins the trimmed parts with newlines.
func SplitLines(s, sep string) string {
	parts := strings.Split(s, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, "\n")
}
