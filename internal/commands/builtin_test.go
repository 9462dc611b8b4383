package commands

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// highest always picks the largest value rand could return.
func highest(n int) int { return n - 1 }

func lowest(int) int { return 0 }

func newTestDispatcher(t *testing.T, opts Options) *Dispatcher {
	t.Helper()
	r, err := Default(opts)
	require.NoError(t, err)
	return NewDispatcher(r)
}

func run(t *testing.T, d *Dispatcher, text string) *Response {
	t.Helper()
	out := d.Dispatch(context.Background(), NewRequest(text, Text))
	require.True(t, out.Matched, "no command matched %q (suggestion %q)", text, out.Suggestion)
	require.NoError(t, out.Err)
	require.NotNil(t, out.Response)
	return out.Response
}

func runFile(t *testing.T, d *Dispatcher, caption string, file *File) *Response {
	t.Helper()
	req := NewRequest(caption, File)
	req.File = file
	out := d.Dispatch(context.Background(), req)
	require.True(t, out.Matched, "no command matched %q", caption)
	require.NoError(t, out.Err)
	return out.Response
}

func TestDefaultRegistrationOrder(t *testing.T) {
	r, err := Default(Options{})
	require.NoError(t, err)

	seen := map[Capability]bool{}
	last := Both
	for _, cmd := range r.All() {
		c := cmd.Descriptor().Capability
		seen[c] = true
		switch last {
		case TextOnly:
			assert.NotEqual(t, Both, c, "mixed command %s registered after text commands", cmd.Descriptor().Keyword)
		case FileOnly:
			assert.Equal(t, FileOnly, c)
		}
		last = c
	}
	assert.Len(t, seen, 3)
}

func TestTextTransforms(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	tests := []struct {
		text string
		want string
	}{
		{"uppercase < Hello World", "HELLO WORLD"},
		{"lowercase < Hello World", "hello world"},
		{"snakecase < make it snake", "make_it_snake"},
		{"camelcase < Hello big World", "helloBigWorld"},
		{"reverse < abc ды", "ыд cba"},
		{"split < \", \" < a, b, c", "a\nb\nc"},
		{"split < ; < one;two", "one\ntwo"},
		{"keyboard < ru < ghbdtn", "привет"},
		{"keyboard < en < руддщ", "hello"},
		{"keyboard < de < text", unknownLayout},
		{"uppercase", notEnoughParams},
		{"split < ,", notEnoughParams},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, run(t, d, tt.text).Text)
		})
	}
}

func TestFileTransforms(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	resp := runFile(t, d, "uppercase", NewFile("notes.txt", "text/plain", []byte("shout")))
	require.NotNil(t, resp.File)
	assert.Equal(t, "notes.txt", resp.File.Name)
	assert.Equal(t, "SHOUT", string(resp.File.Data))

	resp = runFile(t, d, "split < |", NewFile("list.txt", "text/plain", []byte("a | b")))
	require.NotNil(t, resp.File)
	assert.Equal(t, "a\nb\n", string(resp.File.Data))

	resp = runFile(t, d, "keyboard < en", NewFile("k.txt", "text/plain", []byte("йцукен")))
	require.NotNil(t, resp.File)
	assert.Equal(t, "qwerty", string(resp.File.Data))
}

func TestTransformOnlyAcceptsTextFiles(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	req := NewRequest("uppercase", File)
	req.File = NewFile("cat.png", "image/png", []byte{0x89})
	out := d.Dispatch(context.Background(), req)
	assert.False(t, out.Matched)
}

func TestSplitter(t *testing.T) {
	assert.Equal(t, ", ", Splitter(`", "`))
	assert.Equal(t, ";", Splitter(";"))
	assert.Equal(t, " x", Splitter(`" x`))
}

func TestRandom(t *testing.T) {
	d := newTestDispatcher(t, Options{Rand: highest})

	assert.True(t, run(t, d, "random").Dice)
	assert.Equal(t, "9", run(t, d, "random < 10").Text)
	assert.Equal(t, "7", run(t, d, "random < 5 < 8").Text)
	assert.Contains(t, run(t, d, "random < ten").Text, "not a whole number")
	assert.Contains(t, run(t, d, "random < 8 < 5").Text, "greater")
	assert.Contains(t, run(t, d, "random < 0").Text, "greater than zero")
}

func TestDice(t *testing.T) {
	assert.Contains(t, run(t, newTestDispatcher(t, Options{Rand: highest}), "d20").Text, "20")
	assert.Contains(t, run(t, newTestDispatcher(t, Options{Rand: lowest}), "d20").Text, "cruel")
	assert.Equal(t, "Tails!", run(t, newTestDispatcher(t, Options{Rand: highest}), "flipcoin").Text)
	assert.Equal(t, "Heads!", run(t, newTestDispatcher(t, Options{Rand: lowest}), "flipcoin").Text)
	assert.Equal(t, eightBallAnswers[0], run(t, newTestDispatcher(t, Options{Rand: lowest}), "8ball").Text)
}

func TestYippee(t *testing.T) {
	assert.Equal(t, DefaultStickerID, run(t, newTestDispatcher(t, Options{}), "yippee").Sticker)
	assert.Equal(t, "custom", run(t, newTestDispatcher(t, Options{StickerID: "custom"}), "yippee").Sticker)
}

func TestHardChoice(t *testing.T) {
	d := newTestDispatcher(t, Options{Rand: lowest})

	resp := run(t, d, "hardchoice < Tea? or coffee")
	assert.True(t, resp.Markdown)
	assert.Contains(t, resp.Text, "**Tea**")

	assert.Equal(t, notEnoughParams, run(t, d, "hardchoice").Text)
}

func TestChoiceOptions(t *testing.T) {
	assert.Equal(t, []string{"tea", "coffee"}, ChoiceOptions([]string{"tea or coffee"}))
	assert.Equal(t, []string{"a", "b", "c"}, ChoiceOptions([]string{"a, b,, c"}))
	assert.Equal(t, []string{"a, b", "c"}, ChoiceOptions([]string{"a, b", "c"}))
	assert.Equal(t, []string{"чай", "кофе"}, ChoiceOptions([]string{"чай или кофе"}))
	assert.Empty(t, ChoiceOptions(nil))
}

func TestConvert(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	tests := []struct {
		text string
		want string
	}{
		{"convert < 1024 kb < mb", "1024 kb = 1 mb"},
		{"convert < 500 g < kg", "500 g = 0.5 kg"},
		{"convert < 1 h < min", "1 h = 60 min"},
		{"convert < 1,5 km < m", "1.5 km = 1500 m"},
		{"convert < 250 ms < sec", "250 ms = 0.25 sec"},
		{"convert < 1 kg < m", "Unit m is not a mass unit"},
		{"convert < 1 parsec < m", "Unknown unit parsec"},
		{"convert < x kg < g", `"x" is not a number`},
		{"convert < 5 kg", notEnoughParams},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, run(t, d, tt.text).Text)
		})
	}
}

func TestConvertUnitsError(t *testing.T) {
	_, err := ConvertUnits(dec(1), "mb", "l")
	var unitErr *UnitError
	require.True(t, errors.As(err, &unitErr))
	assert.Equal(t, "l", unitErr.Unit)
	assert.Equal(t, "file size", unitErr.Want)
}

func TestMath(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	assert.Equal(t, "6", run(t, d, "math < 2 + 2 * 2").Text)
	assert.Equal(t, "17", run(t, d, "math < [pow < 2, [sqrt < 16]] + 1").Text)
	assert.Contains(t, run(t, d, "math < all").Text, "pow < x, y")
	assert.Equal(t, "Could not compute!", run(t, d, "math < two").Text)
}

func TestHelp(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	general := run(t, d, "help")
	assert.True(t, general.Markdown)
	assert.Contains(t, general.Text, "help < list")

	list := run(t, d, "help < list").Text
	assert.Contains(t, list, "**--- Text ---**")
	assert.Contains(t, list, "| `convert < value from < to`\n")
	assert.Contains(t, list, "| `info`")
	assert.Contains(t, list, "| `split < splitter < text` : text, file")

	assert.Contains(t, run(t, d, "help < Convert").Text, "`convert < value from < to` - converts")
	assert.Contains(t, run(t, d, "help < nope").Text, "There is no command")
}

func TestChatID(t *testing.T) {
	d := newTestDispatcher(t, Options{})
	req := NewRequest("chatid", Text)
	req.ChatID = -100123

	out := d.Dispatch(context.Background(), req)
	require.True(t, out.Matched)
	assert.Equal(t, "-100123", out.Response.Text)
}

func TestInfo(t *testing.T) {
	d := newTestDispatcher(t, Options{})

	resp := runFile(t, d, "info", NewFile("a.txt", "text/plain", []byte("hello world\nbye")))
	assert.Equal(t, "Characters: 15\nWords: 3\nLines: 2", resp.Text)

	resp = runFile(t, d, "info", NewFile("pic.png", "image/png", make([]byte, 2048)))
	assert.Contains(t, resp.Text, "Name: pic.png")
	assert.Contains(t, resp.Text, "Type: image/png")
	assert.Contains(t, resp.Text, "Size: 2.00 KB")
}

func TestTextStats(t *testing.T) {
	s := TextStats("One, two. Three!\n\nfour")
	assert.Equal(t, 4, s.Words)
	assert.Equal(t, 3, s.Lines)
	assert.Equal(t, Stats{Chars: 0, Words: 0, Lines: 1}, TextStats(""))
}

func TestShorten(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://example.com/a?b=c", r.URL.Query().Get("url"))
		w.Write([]byte("https://tiny.example/xyz\n"))
	}))
	defer srv.Close()

	d := newTestDispatcher(t, Options{HTTPClient: srv.Client(), ShortenerEndpoint: srv.URL})
	resp := run(t, d, "shorten < https://example.com/a?b=c")
	assert.True(t, resp.Markdown)
	assert.Equal(t, "`https://tiny.example/xyz`", resp.Text)
}

func TestShortenFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	d := newTestDispatcher(t, Options{HTTPClient: srv.Client(), ShortenerEndpoint: srv.URL})
	out := d.Dispatch(context.Background(), NewRequest("shorten < https://example.com", Text))
	assert.True(t, out.Matched)
	assert.Error(t, out.Err)
}
