package telegram

import "github.com/PaulSonOfLars/gotgbot/v2"

// Message is the part of an incoming Telegram message the bot acts on.
type Message struct {
	ID       int64
	ChatID   int64
	UserID   int64
	Username string

	Text     string
	Caption  string
	Document *Document
	Dice     *Dice
	Sticker  *Sticker
	Photo    *Photo
	Video    *Video
}

// Document is a file sent as a document.
type Document struct {
	FileID       string
	FileUniqueID string
	FileName     string
	MimeType     string
	FileSize     int64
}

// Dice is an animated emoji with a random value.
type Dice struct {
	Emoji string
	Value int64
}

// Sticker is a sticker message.
type Sticker struct {
	FileID       string
	FileUniqueID string
	FileSize     int64
	Emoji        string
	IsAnimated   bool
	IsVideo      bool
}

// Photo is the largest size of a sent photo.
type Photo struct {
	FileID       string
	FileUniqueID string
	FileSize     int64
	Width        int64
	Height       int64
}

// Video is a video sent as a video, not as a document.
type Video struct {
	FileID       string
	FileUniqueID string
	FileName     string
	MimeType     string
	FileSize     int64
	Duration     int64 // seconds
	Width        int64
	Height       int64
}

// Kind names what the message carries, for logging.
func (m *Message) Kind() string {
	switch {
	case m.Document != nil:
		return "document"
	case m.Dice != nil:
		return "dice"
	case m.Sticker != nil:
		return "sticker"
	case m.Photo != nil:
		return "photo"
	case m.Video != nil:
		return "video"
	case m.Text != "":
		return "text"
	}
	return "other"
}

// convertMessage copies the fields the bot uses out of a gotgbot message.
func convertMessage(msg *gotgbot.Message) *Message {
	m := &Message{
		ID:      msg.MessageId,
		ChatID:  msg.Chat.Id,
		Text:    msg.Text,
		Caption: msg.Caption,
	}
	if msg.From != nil {
		m.UserID = msg.From.Id
		m.Username = msg.From.Username
	}
	if d := msg.Document; d != nil {
		m.Document = &Document{
			FileID:       d.FileId,
			FileUniqueID: d.FileUniqueId,
			FileName:     d.FileName,
			MimeType:     d.MimeType,
			FileSize:     d.FileSize,
		}
	}
	if d := msg.Dice; d != nil {
		m.Dice = &Dice{Emoji: d.Emoji, Value: d.Value}
	}
	if st := msg.Sticker; st != nil {
		m.Sticker = &Sticker{
			FileID:       st.FileId,
			FileUniqueID: st.FileUniqueId,
			FileSize:     st.FileSize,
			Emoji:        st.Emoji,
			IsAnimated:   st.IsAnimated,
			IsVideo:      st.IsVideo,
		}
	}
	// sizes are sent smallest first
	if n := len(msg.Photo); n > 0 {
		p := msg.Photo[n-1]
		m.Photo = &Photo{
			FileID:       p.FileId,
			FileUniqueID: p.FileUniqueId,
			FileSize:     p.FileSize,
			Width:        p.Width,
			Height:       p.Height,
		}
	}
	if v := msg.Video; v != nil {
		m.Video = &Video{
			FileID:       v.FileId,
			FileUniqueID: v.FileUniqueId,
			FileName:     v.FileName,
			MimeType:     v.MimeType,
			FileSize:     v.FileSize,
			Duration:     v.Duration,
			Width:        v.Width,
			Height:       v.Height,
		}
	}
	return m
}
