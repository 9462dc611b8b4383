package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// FileSource downloads file contents by id. The Telegram bot implements it;
// local files are served from memory.
type FileSource interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// File is a document attached to a request. Its contents are fetched lazily
// on the first Read.
type File struct {
	ID       string
	Name     string
	MimeType string
	Size     int64

	source FileSource
	data   []byte
}

// NewRemoteFile describes a file whose contents live behind source.
func NewRemoteFile(source FileSource, id, name, mimeType string, size int64) *File {
	return &File{ID: id, Name: name, MimeType: mimeType, Size: size, source: source}
}

// NewFile wraps contents that are already in memory.
func NewFile(name, mimeType string, data []byte) *File {
	return &File{Name: name, MimeType: mimeType, Size: int64(len(data)), data: data}
}

// Kind is the lower-cased MIME major type of the file.
func (f *File) Kind() string {
	return FileKindOf(f.MimeType)
}

// Read returns the file contents, downloading them once if needed.
func (f *File) Read(ctx context.Context) ([]byte, error) {
	if f.data != nil {
		return f.data, nil
	}
	if f.source == nil {
		return nil, errors.New("file has no contents")
	}

	data, err := f.source.Download(ctx, f.ID)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", f.Name, err)
	}
	f.data = data
	return data, nil
}

// FileKindOf returns the major type of a MIME type: "text" for "text/plain".
func FileKindOf(mimeType string) string {
	major, _, _ := strings.Cut(mimeType, "/")
	return strings.ToLower(strings.TrimSpace(major))
}

// FormatSize renders a byte count for humans.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	kb := float64(bytes) / 1024
	mb := kb / 1024
	gb := mb / 1024

	switch {
	case gb >= 1:
		return fmt.Sprintf("%.2f GB", gb)
	case mb >= 1:
		return fmt.Sprintf("%.2f MB", mb)
	case kb >= 1:
		return fmt.Sprintf("%.2f KB", kb)
	}
	return fmt.Sprintf("%d B", bytes)
}
