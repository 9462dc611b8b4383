package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/codegangsta/mimic/internal/parser"
)

// Capability tells which kinds of messages a command accepts.
type Capability int

const (
	TextOnly Capability = iota + 1
	FileOnly
	Both
)

func (c Capability) String() string {
	switch c {
	case TextOnly:
		return "text"
	case FileOnly:
		return "file"
	case Both:
		return "text, file"
	}
	return "unknown"
}

// Accepts reports whether a command with this capability can handle a
// message of the given modality.
func (c Capability) Accepts(m Modality) bool {
	switch c {
	case Both:
		return true
	case TextOnly:
		return m == Text
	case FileOnly:
		return m == File
	}
	return false
}

// Modality is the kind of message that triggered a dispatch.
type Modality int

const (
	// Text is a plain text message.
	Text Modality = iota + 1
	// File is a document whose caption holds the command.
	File
)

func (m Modality) String() string {
	if m == File {
		return "file"
	}
	return "text"
}

// Descriptor identifies a command and documents how to call it.
type Descriptor struct {
	Keyword     string
	Syntax      string
	Description string
	Capability  Capability
	// FileKind restricts file handling to one MIME major type such as
	// "text" or "image". Empty accepts any file.
	FileKind string
}

// Matches reports whether keyword selects this command. The keyword only has
// to contain the command keyword, ignoring case.
func (d Descriptor) Matches(keyword string) bool {
	return strings.Contains(strings.ToLower(keyword), strings.ToLower(d.Keyword))
}

// AcceptsFile reports whether the command handles files of the given MIME type.
func (d Descriptor) AcceptsFile(mimeType string) bool {
	return d.FileKind == "" || d.FileKind == FileKindOf(mimeType)
}

// Command is anything that can be registered. A command must also implement
// TextCommand, FileCommand or both, as declared by its capability.
type Command interface {
	Descriptor() Descriptor
}

// TextCommand handles plain text messages.
type TextCommand interface {
	Command
	ExecuteText(ctx context.Context, req *Request) (*Response, error)
}

// FileCommand handles documents sent with a command caption.
type FileCommand interface {
	Command
	ExecuteFile(ctx context.Context, req *Request, file *File) (*Response, error)
}

// Request is a single incoming message, parsed.
type Request struct {
	ID       string
	ChatID   int64
	UserID   int64
	Username string

	// Text is the raw message text, or the caption for files.
	Text     string
	Keyword  string
	Args     []string
	Modality Modality
	File     *File
}

// NewRequest parses text into a request of the given modality. Keyword and
// arguments are lower-cased; commands that need the original case read Text.
func NewRequest(text string, modality Modality) *Request {
	cmd := parser.Tokenize(text, true)
	return &Request{
		Text:     text,
		Keyword:  cmd.Keyword,
		Args:     cmd.Args,
		Modality: modality,
	}
}

// Remainder is the raw text after the keyword, case preserved.
func (r *Request) Remainder() string {
	return parser.Remainder(r.Text)
}

// RawArgs are the arguments with their original case.
func (r *Request) RawArgs() []string {
	return parser.Tokenize(r.Text, false).Args
}

// Response represents the result of executing a command
type Response struct {
	Text     string
	Markdown bool // Text uses markdown and is formatted for the chat
	Silent   bool // If true, don't play notification sound

	File    *OutputFile
	Sticker string // sticker file id
	Dice    bool   // send the chat's native dice
}

// OutputFile is a document sent back to the chat.
type OutputFile struct {
	Name    string
	Data    []byte
	Caption string
}

// Reply is a plain text response.
func Reply(text string) *Response {
	return &Response{Text: text}
}

// Replyf is a plain text response built from a format string.
func Replyf(format string, args ...any) *Response {
	return &Response{Text: fmt.Sprintf(format, args...)}
}
