package commands

import (
	"context"
	"strings"
)

// layoutPairs maps ЙЦУКЕН keys to the QWERTY keys in the same position.
var layoutPairs = [][2]rune{
	{'й', 'q'}, {'Й', 'Q'}, {'ц', 'w'}, {'Ц', 'W'}, {'у', 'e'}, {'У', 'E'},
	{'к', 'r'}, {'К', 'R'}, {'е', 't'}, {'Е', 'T'}, {'н', 'y'}, {'Н', 'Y'},
	{'г', 'u'}, {'Г', 'U'}, {'ш', 'i'}, {'Ш', 'I'}, {'щ', 'o'}, {'Щ', 'O'},
	{'з', 'p'}, {'З', 'P'}, {'х', '['}, {'Х', '{'}, {'ъ', ']'}, {'Ъ', '}'},
	{'ф', 'a'}, {'Ф', 'A'}, {'ы', 's'}, {'Ы', 'S'}, {'в', 'd'}, {'В', 'D'},
	{'а', 'f'}, {'А', 'F'}, {'п', 'g'}, {'П', 'G'}, {'р', 'h'}, {'Р', 'H'},
	{'о', 'j'}, {'О', 'J'}, {'л', 'k'}, {'Л', 'K'}, {'д', 'l'}, {'Д', 'L'},
	{'ж', ';'}, {'Ж', ':'}, {'э', '\''}, {'Э', '"'}, {'я', 'z'}, {'Я', 'Z'},
	{'ч', 'x'}, {'Ч', 'X'}, {'с', 'c'}, {'С', 'C'}, {'м', 'v'}, {'М', 'V'},
	{'и', 'b'}, {'И', 'B'}, {'т', 'n'}, {'Т', 'N'}, {'ь', 'm'}, {'Ь', 'M'},
	{'б', ','}, {'Б', '<'}, {'ю', '.'}, {'Ю', '>'}, {'.', '/'}, {',', '?'},
	{'"', '@'}, {'№', '#'}, {';', '$'}, {':', '^'}, {'?', '&'},
}

var (
	toRussian = make(map[rune]rune, len(layoutPairs))
	toEnglish = make(map[rune]rune, len(layoutPairs))
)

func init() {
	for _, p := range layoutPairs {
		toEnglish[p[0]] = p[1]
		toRussian[p[1]] = p[0]
	}
}

// SwitchLayout retypes s as if it had been typed on the other keyboard
// layout. lang is the target layout, "ru" or "en"; it reports false for any
// other value.
func SwitchLayout(s, lang string) (string, bool) {
	var table map[rune]rune
	switch strings.ToLower(lang) {
	case "ru":
		table = toRussian
	case "en":
		table = toEnglish
	default:
		return s, false
	}

	var sb strings.Builder
	for _, r := range s {
		if mapped, ok := table[r]; ok {
			r = mapped
		}
		sb.WriteRune(r)
	}
	return sb.String(), true
}

// KeyboardCommand handles keyboard - fixes text typed in the wrong layout
type KeyboardCommand struct{}

func NewKeyboardCommand() *KeyboardCommand { return &KeyboardCommand{} }

func (c *KeyboardCommand) Descriptor() Descriptor {
	return Descriptor{
		Keyword:     "keyboard",
		Syntax:      "keyboard < ru/en < text",
		Description: "retypes text in the other keyboard layout, like йцукен -> qwerty. Files only need the language",
		Capability:  Both,
		FileKind:    "text",
	}
}

const unknownLayout = "Could not recognize the layout, use ru or en"

func (c *KeyboardCommand) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	args := req.RawArgs()
	if len(args) < 2 {
		return Reply(notEnoughParams), nil
	}
	out, ok := SwitchLayout(args[1], args[0])
	if !ok {
		return Reply(unknownLayout), nil
	}
	return Reply(out), nil
}

func (c *KeyboardCommand) ExecuteFile(ctx context.Context, req *Request, file *File) (*Response, error) {
	args := req.RawArgs()
	if len(args) < 1 {
		return Reply(notEnoughParams), nil
	}
	data, err := file.Read(ctx)
	if err != nil {
		return nil, err
	}
	out, ok := SwitchLayout(string(data), args[0])
	if !ok {
		return Reply(unknownLayout), nil
	}
	return fileReply(file, out), nil
}
