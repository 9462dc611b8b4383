package commands

import (
	"net/http"

	"github.com/codegangsta/mimic/internal/mathexpr"
)

// Options configures the built-in commands. The zero value is usable.
type Options struct {
	Rand              IntN
	HTTPClient        *http.Client
	ShortenerEndpoint string
	StickerID         string
	Evaluator         *mathexpr.Evaluator
}

// Default builds the registry of built-in commands. Mixed commands come
// first so they win over text and file commands with similar keywords.
func Default(opts Options) (*Registry, error) {
	help := NewHelpCommand()

	registry, err := NewRegistry(
		// text and file
		NewUppercaseCommand(),
		NewLowercaseCommand(),
		NewSnakeCaseCommand(),
		NewCamelCaseCommand(),
		NewReverseCommand(),
		NewSplitCommand(),
		NewKeyboardCommand(),

		// text
		help,
		NewRandomCommand(opts.Rand),
		NewD20Command(opts.Rand),
		NewYippeeCommand(opts.StickerID),
		NewHardChoiceCommand(opts.Rand),
		NewEightBallCommand(opts.Rand),
		NewFlipCoinCommand(opts.Rand),
		NewConvertCommand(),
		NewMathCommand(opts.Evaluator),
		NewShortenCommand(opts.HTTPClient, opts.ShortenerEndpoint),
		NewChatIDCommand(),

		// file
		NewInfoCommand(),
	)
	if err != nil {
		return nil, err
	}

	help.Attach(registry)
	return registry, nil
}
