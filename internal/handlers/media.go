package handlers

import (
	"fmt"

	"github.com/codegangsta/mimic/internal/commands"
	"github.com/codegangsta/mimic/internal/telegram"
)

// Telegram sends photos re-encoded as JPEG.
const photoMimeType = "image/jpeg"

// DescribeSticker lists the metadata of a sticker.
func DescribeSticker(s *telegram.Sticker) string {
	mime := "image/webp"
	switch {
	case s.IsVideo:
		mime = "video/webm"
	case s.IsAnimated:
		mime = "application/x-tgsticker"
	}
	file := commands.NewRemoteFile(nil, s.FileID, "", mime, s.FileSize)
	return fmt.Sprintf("%s\nUnique ID: %s\nAnimated: %t\nVideo: %t",
		commands.Describe(file), s.FileUniqueID, s.IsAnimated, s.IsVideo)
}

// DescribePhoto lists the metadata of the largest size of a photo.
func DescribePhoto(p *telegram.Photo) string {
	file := commands.NewRemoteFile(nil, p.FileID, "", photoMimeType, p.FileSize)
	return fmt.Sprintf("%s\nUnique ID: %s\nResolution: %dx%d",
		commands.Describe(file), p.FileUniqueID, p.Width, p.Height)
}

func DescribeVideo(v *telegram.Video) string {
	file := commands.NewRemoteFile(nil, v.FileID, v.FileName, v.MimeType, v.FileSize)
	return fmt.Sprintf("%s\nUnique ID: %s\nDuration: %ds\nResolution: %dx%d",
		commands.Describe(file), v.FileUniqueID, v.Duration, v.Width, v.Height)
}
