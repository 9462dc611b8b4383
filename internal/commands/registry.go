// Package commands provides the registry of chat commands and dispatches
// parsed messages to them.
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/codegangsta/mimic/internal/parser"
)

// Registry is the ordered list of known commands. Order decides which command
// wins when several match. A Registry is never modified after NewRegistry
// returns, so it is safe for concurrent use.
type Registry struct {
	commands []Command
}

// NewRegistry creates a registry holding cmds in the given order. It fails
// when a command has no keyword or does not implement the handlers its
// capability promises.
func NewRegistry(cmds ...Command) (*Registry, error) {
	r := &Registry{commands: make([]Command, 0, len(cmds))}
	for _, cmd := range cmds {
		if err := validate(cmd); err != nil {
			return nil, err
		}
		r.commands = append(r.commands, cmd)
	}
	return r, nil
}

func validate(cmd Command) error {
	d := cmd.Descriptor()
	if strings.TrimSpace(d.Keyword) == "" {
		return fmt.Errorf("command %T has no keyword", cmd)
	}

	_, isText := cmd.(TextCommand)
	_, isFile := cmd.(FileCommand)

	switch d.Capability {
	case TextOnly:
		if !isText {
			return fmt.Errorf("command %q is text-capable but has no ExecuteText", d.Keyword)
		}
	case FileOnly:
		if !isFile {
			return fmt.Errorf("command %q is file-capable but has no ExecuteFile", d.Keyword)
		}
	case Both:
		if !isText || !isFile {
			return fmt.Errorf("command %q must implement both ExecuteText and ExecuteFile", d.Keyword)
		}
	default:
		return fmt.Errorf("command %q has no capability", d.Keyword)
	}
	return nil
}

// All returns every command in registration order.
func (r *Registry) All() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Eligible returns the commands able to handle the modality, in order.
func (r *Registry) Eligible(m Modality) []Command {
	var out []Command
	for _, cmd := range r.commands {
		if cmd.Descriptor().Capability.Accepts(m) {
			out = append(out, cmd)
		}
	}
	return out
}

// Keywords returns the keywords of the commands eligible for the modality.
func (r *Registry) Keywords(m Modality) []string {
	eligible := r.Eligible(m)
	keywords := make([]string, len(eligible))
	for i, cmd := range eligible {
		keywords[i] = cmd.Descriptor().Keyword
	}
	return keywords
}

// Lookup returns the command whose keyword equals keyword, ignoring case.
func (r *Registry) Lookup(keyword string) (Command, bool) {
	keyword = strings.TrimSpace(keyword)
	for _, cmd := range r.commands {
		if strings.EqualFold(cmd.Descriptor().Keyword, keyword) {
			return cmd, true
		}
	}
	return nil, false
}

// Has reports whether a command with exactly this keyword is registered.
func (r *Registry) Has(keyword string) bool {
	_, ok := r.Lookup(keyword)
	return ok
}

// Outcome describes what Dispatch did with a request.
type Outcome struct {
	// Matched is set when a command ran. Keyword is then its keyword, and
	// Response and Err are what it returned.
	Matched  bool
	Keyword  string
	Response *Response
	Err      error

	// Suggestion is the closest known keyword when nothing matched. It is
	// empty when no command can handle the modality at all.
	Suggestion string
}

// Dispatcher runs the first command of a registry that matches a request.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a dispatcher over registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Registry returns the registry commands are dispatched from.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Dispatch runs at most one command for req. A command matches when the
// request keyword contains its keyword and it accepts the request modality;
// for files its FileKind must also accept the document. Without a match the
// outcome carries a suggestion instead.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) Outcome {
	for _, cmd := range d.registry.commands {
		desc := cmd.Descriptor()
		if !desc.Matches(req.Keyword) || !desc.Capability.Accepts(req.Modality) {
			continue
		}

		switch req.Modality {
		case Text:
			resp, err := cmd.(TextCommand).ExecuteText(ctx, req)
			return Outcome{Matched: true, Keyword: desc.Keyword, Response: resp, Err: err}
		case File:
			if req.File == nil || !desc.AcceptsFile(req.File.MimeType) {
				continue
			}
			resp, err := cmd.(FileCommand).ExecuteFile(ctx, req, req.File)
			return Outcome{Matched: true, Keyword: desc.Keyword, Response: resp, Err: err}
		}
	}

	suggestion, _ := parser.Closest(req.Keyword, d.registry.Keywords(req.Modality))
	return Outcome{Suggestion: suggestion}
}
