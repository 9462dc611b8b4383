// Package handlers routes incoming chat messages to commands and sends the
// results back.
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/codegangsta/mimic/internal/commands"
	"github.com/codegangsta/mimic/internal/telegram"
)

// Sender delivers a response to a chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, resp *commands.Response) error
}

// Limiter decides whether a user may send another message now.
type Limiter interface {
	Allow(userID int64) bool
}

// SupportedMimeTypes are the document types the bot accepts with a command.
var SupportedMimeTypes = map[string]bool{
	"text/plain": true,
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

const unknownMessage = "What is this message?"

// DefaultStickerReplies answers the yippee sticker with itself.
var DefaultStickerReplies = map[string]string{
	"AgAD9EQAAiM14Eo": commands.DefaultStickerID,
}

// Options configures a Router. Nil fields disable the matching check.
type Options struct {
	// Allowed reports whether a user may use the bot at all
	Allowed func(userID int64) bool
	Limiter Limiter
	// Files downloads documents for file commands
	Files       commands.FileSource
	MaxFileSize int64
	// StickerReplies maps a sticker's unique id to the sticker to answer
	// with; nil means DefaultStickerReplies
	StickerReplies map[string]string
	Logger         *slog.Logger
}

// Router turns messages into requests, dispatches them and replies.
type Router struct {
	dispatcher  *commands.Dispatcher
	sender      Sender
	files       commands.FileSource
	allowed     func(int64) bool
	limiter     Limiter
	maxFileSize int64
	stickers    map[string]string
	logger      *slog.Logger

	count atomic.Int64
}

// NewRouter creates a router sending replies through sender.
func NewRouter(dispatcher *commands.Dispatcher, sender Sender, opts Options) *Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stickers := opts.StickerReplies
	if stickers == nil {
		stickers = DefaultStickerReplies
	}
	return &Router{
		dispatcher:  dispatcher,
		sender:      sender,
		files:       opts.Files,
		allowed:     opts.Allowed,
		limiter:     opts.Limiter,
		maxFileSize: opts.MaxFileSize,
		stickers:    stickers,
		logger:      logger,
	}
}

// Count is the number of messages routed so far, including ignored ones.
func (r *Router) Count() int64 {
	return r.count.Load()
}

// Route handles one message. Errors are delivery failures; command failures
// are reported to the chat and logged.
func (r *Router) Route(ctx context.Context, msg *telegram.Message) error {
	r.count.Add(1)

	id := uuid.NewString()
	logger := r.logger.With(
		"request_id", id,
		"chat_id", msg.ChatID,
		"user_id", msg.UserID,
	)

	if r.allowed != nil && !r.allowed(msg.UserID) {
		logger.Debug("ignoring message from non-allowed user", "username", msg.Username)
		return nil
	}
	if r.limiter != nil && msg.UserID != 0 && !r.limiter.Allow(msg.UserID) {
		logger.Debug("dropping message within cooldown", "username", msg.Username)
		return nil
	}

	logger.Info("processing message", "kind", msg.Kind(), "username", msg.Username)

	switch {
	case msg.Document != nil:
		return r.routeDocument(ctx, logger, id, msg)
	case msg.Dice != nil:
		return r.reply(ctx, msg.ChatID, commands.Reply(strconv.FormatInt(msg.Dice.Value, 10)))
	case msg.Sticker != nil:
		if reply, ok := r.stickers[msg.Sticker.FileUniqueID]; ok {
			return r.reply(ctx, msg.ChatID, &commands.Response{Sticker: reply})
		}
		return r.reply(ctx, msg.ChatID, commands.Reply(DescribeSticker(msg.Sticker)))
	case msg.Photo != nil:
		return r.reply(ctx, msg.ChatID, commands.Reply(DescribePhoto(msg.Photo)))
	case msg.Video != nil:
		return r.reply(ctx, msg.ChatID, commands.Reply(DescribeVideo(msg.Video)))
	case msg.Text != "":
		req := r.newRequest(id, msg, msg.Text, commands.Text)
		return r.dispatch(ctx, logger, req)
	}
	return r.reply(ctx, msg.ChatID, commands.Reply(unknownMessage))
}

func (r *Router) routeDocument(ctx context.Context, logger *slog.Logger, id string, msg *telegram.Message) error {
	doc := msg.Document
	file := commands.NewRemoteFile(r.files, doc.FileID, doc.FileName, doc.MimeType, doc.FileSize)

	if msg.Caption == "" {
		logger.Debug("document without caption", "file_name", doc.FileName, "size", doc.FileSize)
		return r.reply(ctx, msg.ChatID, commands.Reply(commands.Describe(file)))
	}

	if problem := ValidateDocument(doc, r.maxFileSize); problem != "" {
		logger.Info("rejected document", "file_name", doc.FileName, "mime_type", doc.MimeType, "reason", problem)
		return r.reply(ctx, msg.ChatID, commands.Reply(problem))
	}

	req := r.newRequest(id, msg, msg.Caption, commands.File)
	req.File = file
	return r.dispatch(ctx, logger, req)
}

func (r *Router) newRequest(id string, msg *telegram.Message, text string, modality commands.Modality) *commands.Request {
	req := commands.NewRequest(text, modality)
	req.ID = id
	req.ChatID = msg.ChatID
	req.UserID = msg.UserID
	req.Username = msg.Username
	return req
}

func (r *Router) dispatch(ctx context.Context, logger *slog.Logger, req *commands.Request) error {
	out := r.dispatcher.Dispatch(ctx, req)

	switch {
	case !out.Matched:
		logger.Info("no command matched", "keyword", req.Keyword, "suggestion", out.Suggestion)
		return r.reply(ctx, req.ChatID, SuggestionReply(out.Suggestion))
	case out.Err != nil:
		logger.Error("command failed", "keyword", out.Keyword, "error", out.Err)
		return r.reply(ctx, req.ChatID, &commands.Response{
			Text:     fmt.Sprintf("Command **%s** failed: %v", out.Keyword, out.Err),
			Markdown: true,
		})
	}

	logger.Info("command executed", "keyword", out.Keyword, "modality", req.Modality)
	return r.reply(ctx, req.ChatID, out.Response)
}

func (r *Router) reply(ctx context.Context, chatID int64, resp *commands.Response) error {
	if resp == nil {
		return nil
	}
	if err := r.sender.Send(ctx, chatID, resp); err != nil {
		return fmt.Errorf("replying to chat %d: %w", chatID, err)
	}
	return nil
}

// SuggestionReply answers a message no command matched.
func SuggestionReply(suggestion string) *commands.Response {
	if suggestion == "" {
		return &commands.Response{Text: "Hmm, there is no such command. Send `help < list` to see them all.", Markdown: true}
	}
	return &commands.Response{
		Text:     fmt.Sprintf("Hmm, there is no such command. Did you mean `%s`?", suggestion),
		Markdown: true,
	}
}

// ValidateDocument checks a captioned document before a file command runs.
// It returns the problem to tell the user, or "" when the document is fine.
func ValidateDocument(doc *telegram.Document, maxBytes int64) string {
	switch {
	case doc.MimeType == "":
		return "The file has no type"
	case maxBytes > 0 && doc.FileSize > maxBytes:
		return fmt.Sprintf("The file is larger than the %s limit", commands.FormatSize(maxBytes))
	case !SupportedMimeTypes[doc.MimeType]:
		return "This file type is not supported"
	}
	return ""
}
