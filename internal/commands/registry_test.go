package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textStub struct {
	keyword string
	err     error
}

func (c textStub) Descriptor() Descriptor {
	return Descriptor{Keyword: c.keyword, Capability: TextOnly}
}

func (c textStub) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	if c.err != nil {
		return nil, c.err
	}
	return Reply("text:" + c.keyword), nil
}

type fileStub struct {
	keyword string
	kind    string
}

func (c fileStub) Descriptor() Descriptor {
	return Descriptor{Keyword: c.keyword, Capability: FileOnly, FileKind: c.kind}
}

func (c fileStub) ExecuteFile(ctx context.Context, req *Request, file *File) (*Response, error) {
	return Reply("file:" + c.keyword), nil
}

// liar claims both capabilities but only handles text.
type liar struct{ textStub }

func (c liar) Descriptor() Descriptor {
	return Descriptor{Keyword: c.keyword, Capability: Both}
}

func TestNewRegistryValidates(t *testing.T) {
	_, err := NewRegistry(textStub{keyword: ""})
	assert.Error(t, err)

	_, err = NewRegistry(textStub{keyword: "   "})
	assert.Error(t, err)

	_, err = NewRegistry(liar{textStub{keyword: "both"}})
	assert.Error(t, err)

	r, err := NewRegistry(textStub{keyword: "a"}, fileStub{keyword: "b"})
	require.NoError(t, err)
	assert.Len(t, r.All(), 2)
}

func TestRegistryQueries(t *testing.T) {
	r, err := NewRegistry(
		textStub{keyword: "alpha"},
		fileStub{keyword: "beta"},
		NewReverseCommand(),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "reverse"}, r.Keywords(Text))
	assert.Equal(t, []string{"beta", "reverse"}, r.Keywords(File))
	assert.Len(t, r.Eligible(File), 2)

	cmd, ok := r.Lookup("ALPHA")
	require.True(t, ok)
	assert.Equal(t, "alpha", cmd.Descriptor().Keyword)

	assert.True(t, r.Has("beta"))
	assert.False(t, r.Has("bet"))
}

func TestDispatchFirstMatchWins(t *testing.T) {
	r, err := NewRegistry(textStub{keyword: "a"}, textStub{keyword: "ab"})
	require.NoError(t, err)

	out := NewDispatcher(r).Dispatch(context.Background(), NewRequest("ab < x", Text))
	require.True(t, out.Matched)
	assert.Equal(t, "a", out.Keyword)
	assert.Equal(t, "text:a", out.Response.Text)
}

func TestDispatchSubstringMatch(t *testing.T) {
	r, err := NewRegistry(textStub{keyword: "math"})
	require.NoError(t, err)

	out := NewDispatcher(r).Dispatch(context.Background(), NewRequest("MyMath < 1", Text))
	assert.True(t, out.Matched)
	assert.Equal(t, "math", out.Keyword)
}

func TestDispatchRespectsModality(t *testing.T) {
	r, err := NewRegistry(fileStub{keyword: "info"}, textStub{keyword: "info"})
	require.NoError(t, err)
	d := NewDispatcher(r)

	out := d.Dispatch(context.Background(), NewRequest("info", Text))
	require.True(t, out.Matched)
	assert.Equal(t, "text:info", out.Response.Text)

	req := NewRequest("info", File)
	req.File = NewFile("a.txt", "text/plain", []byte("x"))
	out = d.Dispatch(context.Background(), req)
	require.True(t, out.Matched)
	assert.Equal(t, "file:info", out.Response.Text)
}

func TestDispatchFileKind(t *testing.T) {
	r, err := NewRegistry(fileStub{keyword: "show", kind: "image"}, fileStub{keyword: "show", kind: "text"})
	require.NoError(t, err)

	req := NewRequest("show", File)
	req.File = NewFile("notes.txt", "text/plain", nil)
	out := NewDispatcher(r).Dispatch(context.Background(), req)
	require.True(t, out.Matched)
	assert.Equal(t, "show", out.Keyword)

	req.File = NewFile("clip.mp4", "video/mp4", nil)
	out = NewDispatcher(r).Dispatch(context.Background(), req)
	assert.False(t, out.Matched)
	assert.Equal(t, "show", out.Suggestion)
}

func TestDispatchSuggestion(t *testing.T) {
	r, err := NewRegistry(textStub{keyword: "xray"}, textStub{keyword: "abc"}, fileStub{keyword: "xyzfile"})
	require.NoError(t, err)

	out := NewDispatcher(r).Dispatch(context.Background(), NewRequest("xyz", Text))
	assert.False(t, out.Matched)
	assert.Nil(t, out.Response)
	assert.Equal(t, "xray", out.Suggestion)
}

func TestDispatchEmptyPool(t *testing.T) {
	r, err := NewRegistry(fileStub{keyword: "info"})
	require.NoError(t, err)

	out := NewDispatcher(r).Dispatch(context.Background(), NewRequest("hello", Text))
	assert.False(t, out.Matched)
	assert.Empty(t, out.Suggestion)
}

func TestDispatchHandlerError(t *testing.T) {
	boom := errors.New("boom")
	r, err := NewRegistry(textStub{keyword: "fail", err: boom})
	require.NoError(t, err)

	out := NewDispatcher(r).Dispatch(context.Background(), NewRequest("fail", Text))
	assert.True(t, out.Matched)
	assert.ErrorIs(t, out.Err, boom)
}
