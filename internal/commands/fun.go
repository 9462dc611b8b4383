package commands

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// IntN returns a pseudo-random number in [0, n). It must be safe for
// concurrent use; rand.IntN is the default.
type IntN func(n int) int

func orDefault(intn IntN) IntN {
	if intn == nil {
		return rand.IntN
	}
	return intn
}

// RandomCommand handles random - a number in a range, or a dice without arguments
type RandomCommand struct {
	intn IntN
}

func NewRandomCommand(intn IntN) *RandomCommand {
	return &RandomCommand{intn: orDefault(intn)}
}

func (c *RandomCommand) Descriptor() Descriptor {
	return Descriptor{
		Keyword:     "random",
		Syntax:      "random (< x (< y))",
		Description: "picks a random number from 0 to x, or from x to y, excluding the upper bound. Without arguments rolls a Telegram dice",
		Capability:  TextOnly,
	}
}

func (c *RandomCommand) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	switch len(req.Args) {
	case 0:
		return &Response{Dice: true}, nil
	case 1:
		hi, err := strconv.Atoi(req.Args[0])
		if err != nil {
			return Replyf("%q is not a whole number", req.Args[0]), nil
		}
		if hi <= 0 {
			return Reply("The upper bound must be greater than zero"), nil
		}
		return Reply(strconv.Itoa(c.intn(hi))), nil
	case 2:
		lo, err := strconv.Atoi(req.Args[0])
		if err != nil {
			return Replyf("%q is not a whole number", req.Args[0]), nil
		}
		hi, err := strconv.Atoi(req.Args[1])
		if err != nil {
			return Replyf("%q is not a whole number", req.Args[1]), nil
		}
		if hi <= lo {
			return Reply("The upper bound must be greater than the lower one"), nil
		}
		return Reply(strconv.Itoa(lo + c.intn(hi-lo))), nil
	}
	return Reply("Too many parameters! Syntax: random (< x (< y))"), nil
}

// D20Command handles d20 - rolls a twenty-sided die
type D20Command struct {
	intn IntN
}

func NewD20Command(intn IntN) *D20Command {
	return &D20Command{intn: orDefault(intn)}
}

func (c *D20Command) Descriptor() Descriptor {
	return Descriptor{Keyword: "d20", Syntax: "d20", Description: "rolls a twenty-sided die!", Capability: TextOnly}
}

func (c *D20Command) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	roll := c.intn(20) + 1
	switch roll {
	case 20:
		return Replyf("Luck is on your side today, you rolled %d!", roll), nil
	case 1:
		return Replyf("The die shows %d. The world is cruel indeed!", roll), nil
	}

	phrases := []string{
		"You rolled... one second... %d!",
		"You clearly did not want to see %d, but that's your result.",
		"%d, who would have thought?",
		"Fate told the die to show %d!",
		"They say %d is a lucky number, but not in your case ;)",
		"And the die shows %d. Off to the casino now!",
	}
	if n := c.intn(len(phrases) + 1); n < len(phrases) {
		return Replyf(phrases[n], roll), nil
	}
	return Replyf("The die showed %d %d times in a row! Maybe it's destiny?", roll, c.intn(10)+5), nil
}

// DefaultStickerID is the sticker sent by yippee.
const DefaultStickerID = "CAACAgIAAxkBAAIf7mXo8Gy_9IY06mQJX7jkFZIVx28XAAL0RAACIzXgSsRXoaZZaRjrNAQ"

// YippeeCommand handles yippee - sends a very happy sticker
type YippeeCommand struct {
	stickerID string
}

func NewYippeeCommand(stickerID string) *YippeeCommand {
	if stickerID == "" {
		stickerID = DefaultStickerID
	}
	return &YippeeCommand{stickerID: stickerID}
}

func (c *YippeeCommand) Descriptor() Descriptor {
	return Descriptor{Keyword: "yippee", Syntax: "yippee", Description: "a sticker of pure happiness!", Capability: TextOnly}
}

func (c *YippeeCommand) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	return &Response{Sticker: c.stickerID}, nil
}

// HardChoiceCommand handles hardchoice - picks one of several options
type HardChoiceCommand struct {
	intn IntN
}

func NewHardChoiceCommand(intn IntN) *HardChoiceCommand {
	return &HardChoiceCommand{intn: orDefault(intn)}
}

func (c *HardChoiceCommand) Descriptor() Descriptor {
	return Descriptor{
		Keyword:     "hardchoice",
		Syntax:      "hardchoice < option1 </,/or option2...",
		Description: "helps when a choice is hard! Takes any number of options",
		Capability:  TextOnly,
	}
}

var choicePhrases = []string{
	"Did you think I'd pick anything but **%s**?",
	"The bot is thinking... drum roll... and your choice is **%s**!",
	"After long thought and a few magic rituals I chose **%s**.",
	"Decision made! Your lucky answer: **%s**!",
	"My intuition says you should go with **%s**!",
	"**%s** sounds awful, but I'm picking it just to spite you!",
	"Fate has chosen **%s** for you.",
	"My binary heart beats for **%s**!",
	"What about **%s**?",
	"According to public polls, 64.9%% chose **%s**!",
}

func (c *HardChoiceCommand) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	options := ChoiceOptions(req.RawArgs())
	if len(options) == 0 {
		return Reply(notEnoughParams), nil
	}

	picked := strings.TrimRight(options[c.intn(len(options))], "?")
	phrase := choicePhrases[c.intn(len(choicePhrases))]
	return &Response{Text: fmt.Sprintf(phrase, picked), Markdown: true}, nil
}

// ChoiceOptions collects the options of a choice. Several arguments are used
// as they are; a single argument is split on " or " or on commas.
func ChoiceOptions(args []string) []string {
	if len(args) == 1 {
		sep := ","
		for _, word := range []string{" or ", " или "} {
			if strings.Contains(args[0], word) {
				sep = word
				break
			}
		}
		args = strings.Split(args[0], sep)
	}

	var options []string
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			options = append(options, a)
		}
	}
	return options
}

// EightBallCommand handles 8ball - the magic eight ball
type EightBallCommand struct {
	intn IntN
}

func NewEightBallCommand(intn IntN) *EightBallCommand {
	return &EightBallCommand{intn: orDefault(intn)}
}

func (c *EightBallCommand) Descriptor() Descriptor {
	return Descriptor{Keyword: "8ball", Syntax: "8ball", Description: "the magic eight ball!", Capability: TextOnly}
}

var eightBallAnswers = []string{
	"It is certain", "Without a doubt", "Yes, definitely", "Most likely",
	"Signs point to yes", "Yes", "Outlook good", "Yes, but be careful",
	"Reply hazy, try again", "Ask again later", "Better not tell you now",
	"Cannot predict now", "Concentrate and ask again", "Don't count on it",
	"My reply is no", "My sources say no", "Outlook not so good",
	"Very doubtful", "Unlikely",
}

func (c *EightBallCommand) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	return Reply(eightBallAnswers[c.intn(len(eightBallAnswers))]), nil
}

// FlipCoinCommand handles flipcoin - heads or tails
type FlipCoinCommand struct {
	intn IntN
}

func NewFlipCoinCommand(intn IntN) *FlipCoinCommand {
	return &FlipCoinCommand{intn: orDefault(intn)}
}

func (c *FlipCoinCommand) Descriptor() Descriptor {
	return Descriptor{Keyword: "flipcoin", Syntax: "flipcoin", Description: "flips a coin, nothing more!", Capability: TextOnly}
}

func (c *FlipCoinCommand) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	if c.intn(2) == 0 {
		return Reply("Heads!"), nil
	}
	return Reply("Tails!"), nil
}

// ChatIDCommand handles chatid - replies with the id of the current chat
type ChatIDCommand struct{}

func NewChatIDCommand() *ChatIDCommand { return &ChatIDCommand{} }

func (c *ChatIDCommand) Descriptor() Descriptor {
	return Descriptor{Keyword: "chatid", Syntax: "chatid", Description: "shows the chat id", Capability: TextOnly}
}

func (c *ChatIDCommand) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	return Reply(strconv.FormatInt(req.ChatID, 10)), nil
}
