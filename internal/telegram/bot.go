package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"

	"github.com/codegangsta/mimic/internal/commands"
)

const apiURL = "https://api.telegram.org"

// MessageHandler is called for every incoming message. ctx expires after the
// per-message timeout.
type MessageHandler func(ctx context.Context, msg *Message)

// Bot wraps the Telegram bot functionality
type Bot struct {
	bot        *gotgbot.Bot
	updater    *ext.Updater
	handler    MessageHandler
	logger     *slog.Logger
	timeout    time.Duration
	httpClient *http.Client
	maxFile    int64

	// base is the context of Start; message contexts derive from it
	base context.Context
}

// New creates a new Telegram bot. timeout bounds the handling of one message
// and maxFile the size of a downloaded document.
func New(token string, timeout time.Duration, maxFile int64, logger *slog.Logger) (*Bot, error) {
	// Create HTTP client with longer timeout for long-polling
	httpClient := http.Client{
		Timeout: 60 * time.Second,
	}

	bot, err := gotgbot.NewBot(token, &gotgbot.BotOpts{
		BotClient: &gotgbot.BaseBotClient{
			Client: httpClient,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating bot: %w", err)
	}

	return &Bot{
		bot:        bot,
		logger:     logger,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		maxFile:    maxFile,
		base:       context.Background(),
	}, nil
}

// SetHandler sets the message handler function
func (b *Bot) SetHandler(h MessageHandler) {
	b.handler = h
}

// Username is the bot's Telegram username.
func (b *Bot) Username() string {
	return b.bot.Username
}

// Start begins polling for updates and blocks until context is cancelled
func (b *Bot) Start(ctx context.Context) error {
	b.base = ctx

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(bot *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			b.logger.Error("dispatcher error", "error", err)
			return ext.DispatcherActionNoop
		},
	})

	b.updater = ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewMessage(nil, b.handleMessage))

	err := b.updater.StartPolling(b.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout:        30,
			AllowedUpdates: []string{"message"},
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: 60 * time.Second,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("starting polling: %w", err)
	}

	b.logger.Info("telegram bot started", "username", b.bot.Username)

	<-ctx.Done()

	b.updater.Stop()
	b.logger.Info("telegram bot stopped")

	return nil
}

// handleMessage converts the update and hands it to the handler
func (b *Bot) handleMessage(bot *gotgbot.Bot, ctx *ext.Context) error {
	msg := ctx.EffectiveMessage
	if msg == nil || b.handler == nil {
		return nil
	}

	msgCtx, cancel := context.WithTimeout(b.base, b.timeout)
	defer cancel()

	b.handler(msgCtx, convertMessage(msg))
	return nil
}

// StartTyping shows the typing indicator in a chat
func (b *Bot) StartTyping(chatID int64) {
	_, _ = b.bot.SendChatAction(chatID, "typing", nil)
}

// Send delivers a command response to a chat. A response may carry text, a
// file, a sticker and a dice at once; they are sent in that order.
func (b *Bot) Send(ctx context.Context, chatID int64, resp *commands.Response) error {
	if resp == nil {
		return nil
	}
	reqOpts := b.requestOpts(ctx)

	if resp.Text != "" {
		if err := b.sendText(chatID, resp.Text, resp.Markdown, resp.Silent, reqOpts); err != nil {
			return err
		}
	}

	if f := resp.File; f != nil {
		_, err := b.bot.SendDocument(chatID, gotgbot.InputFileByReader(f.Name, bytes.NewReader(f.Data)), &gotgbot.SendDocumentOpts{
			Caption:             f.Caption,
			DisableNotification: resp.Silent,
			RequestOpts:         reqOpts,
		})
		if err != nil {
			return fmt.Errorf("sending document: %w", err)
		}
	}

	if resp.Sticker != "" {
		_, err := b.bot.SendSticker(chatID, gotgbot.InputFileByID(resp.Sticker), &gotgbot.SendStickerOpts{
			DisableNotification: resp.Silent,
			RequestOpts:         reqOpts,
		})
		if err != nil {
			return fmt.Errorf("sending sticker: %w", err)
		}
	}

	if resp.Dice {
		if _, err := b.bot.SendDice(chatID, &gotgbot.SendDiceOpts{RequestOpts: reqOpts}); err != nil {
			return fmt.Errorf("sending dice: %w", err)
		}
	}
	return nil
}

// sendText sends text in as many messages as needed. Markdown that Telegram
// rejects is resent as plain text.
func (b *Bot) sendText(chatID int64, text string, markdown, silent bool, reqOpts *gotgbot.RequestOpts) error {
	for _, chunk := range SplitText(text, MaxMessageLength) {
		opts := &gotgbot.SendMessageOpts{
			DisableNotification: silent,
			RequestOpts:         reqOpts,
		}
		if markdown {
			opts.ParseMode = "MarkdownV2"
			_, err := b.bot.SendMessage(chatID, FormatMarkdownV2(chunk), opts)
			if err == nil {
				continue
			}
			b.logger.Warn("markdown rejected, sending plain text", "chat_id", chatID, "error", err)
			opts.ParseMode = ""
		}
		if _, err := b.bot.SendMessage(chatID, chunk, opts); err != nil {
			return fmt.Errorf("sending message: %w", err)
		}
	}
	return nil
}

// requestOpts bounds a request by what is left of ctx.
func (b *Bot) requestOpts(ctx context.Context) *gotgbot.RequestOpts {
	timeout := b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	return &gotgbot.RequestOpts{Timeout: timeout}
}

// Download fetches the contents of a file sent to the bot.
func (b *Bot) Download(ctx context.Context, fileID string) ([]byte, error) {
	f, err := b.bot.GetFile(fileID, &gotgbot.GetFileOpts{RequestOpts: b.requestOpts(ctx)})
	if err != nil {
		return nil, fmt.Errorf("getting file: %w", err)
	}

	url := fmt.Sprintf("%s/file/bot%s/%s", apiURL, b.bot.Token, f.FilePath)
	return fetch(ctx, b.httpClient, url, b.maxFile)
}

// fetch downloads url, refusing bodies larger than limit bytes.
func fetch(ctx context.Context, client *http.Client, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading file: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("file is larger than %d bytes", limit)
	}
	return data, nil
}
