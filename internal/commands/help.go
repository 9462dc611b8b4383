package commands

import (
	"context"
	"fmt"
	"strings"
)

const generalHelp = "Hi! I am a bot that works with commands.\n" +
	"Text commands are sent as plain messages, file commands are written in the caption of a document. " +
	"Every command looks like this:\n" +
	"```\ncommand < arg1 < arg2\n```\n" +
	"The first part is the **keyword**, everything after `<` are **arguments**.\n\n" +
	"Send `help < list` to see every command, or `help < command` to learn about one of them.\n" +
	"In the list, optional arguments are in parentheses: `command (< arg1)`, " +
	"and alternatives are separated by a slash: `command < arg1/arg2`.\n" +
	"Commands that work with both text and files are marked `: text, file`.\n\n" +
	"A few to try:\n" +
	"`random < 10` picks a number from 0 to 9\n" +
	"`hardchoice < tea or coffee` helps you decide\n" +
	"`math < 2 + 2 * 2` solves an expression\n" +
	"`help < convert` explains a command"

// HelpCommand handles help - general help, the command list, or one command
type HelpCommand struct {
	registry *Registry
}

// NewHelpCommand creates a help command. The registry it describes is
// attached with Attach once every command is registered.
func NewHelpCommand() *HelpCommand {
	return &HelpCommand{}
}

// Attach sets the registry listed by help.
func (c *HelpCommand) Attach(r *Registry) {
	c.registry = r
}

func (c *HelpCommand) Descriptor() Descriptor {
	return Descriptor{
		Keyword:     "help",
		Syntax:      "help (< command/list)",
		Description: "general help. With list shows every command, with a command name describes that command",
		Capability:  TextOnly,
	}
}

func (c *HelpCommand) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	if len(req.Args) == 0 || req.Args[0] == "" {
		return &Response{Text: generalHelp, Markdown: true}, nil
	}
	if c.registry == nil {
		return nil, fmt.Errorf("help has no registry attached")
	}

	arg := req.Args[0]
	if arg == "list" {
		return &Response{Text: c.list(), Markdown: true}, nil
	}

	cmd, ok := c.registry.Lookup(arg)
	if !ok {
		return Replyf("There is no command %q. Send help < list to see them all.", arg), nil
	}
	d := cmd.Descriptor()
	return &Response{Text: fmt.Sprintf("`%s` - %s", d.Syntax, d.Description), Markdown: true}, nil
}

// list groups commands by capability in registration order.
func (c *HelpCommand) list() string {
	var sb strings.Builder
	section := func(title string, capability Capability, suffix bool) {
		sb.WriteString("**--- " + title + " ---**\n")
		for _, cmd := range c.registry.All() {
			d := cmd.Descriptor()
			if d.Capability != capability {
				continue
			}
			if suffix {
				fmt.Fprintf(&sb, "| `%s` : %s\n", d.Syntax, d.Capability)
			} else {
				fmt.Fprintf(&sb, "| `%s`\n", d.Syntax)
			}
		}
	}

	section("Text", TextOnly, false)
	sb.WriteString("\n")
	section("File", FileOnly, false)
	sb.WriteString("\n")
	section("Mixed", Both, true)
	return strings.TrimRight(sb.String(), "\n")
}
