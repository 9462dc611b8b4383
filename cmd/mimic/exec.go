package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codegangsta/mimic/internal/commands"
	"github.com/codegangsta/mimic/internal/config"
	"github.com/codegangsta/mimic/internal/handlers"
	"github.com/codegangsta/mimic/internal/telegram"
)

var (
	execFile string
	execOut  string
)

var execCmd = &cobra.Command{
	Use:   "exec <message>",
	Short: "Answer one message locally and print the reply",
	Example: `  mimic exec "uppercase < hello"
  mimic exec --file notes.txt "split < ,"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return execLine(ctx, cmd.OutOrStdout(), strings.Join(args, " "))
	},
}

func init() {
	execCmd.Flags().StringVarP(&execFile, "file", "f", "", "send this file with the message as its caption")
	execCmd.Flags().StringVarP(&execOut, "out", "o", "", "directory for files in the reply (default: print them)")
	rootCmd.AddCommand(execCmd)
}

func execLine(ctx context.Context, stdout io.Writer, line string) error {
	cfg, err := config.Read(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := setupLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	registry, err := commands.Default(commands.Options{
		ShortenerEndpoint: cfg.Shortener.Endpoint,
		StickerID:         cfg.Commands.StickerID,
	})
	if err != nil {
		return fmt.Errorf("registering commands: %w", err)
	}

	router := handlers.NewRouter(commands.NewDispatcher(registry), &printSender{w: stdout, dir: execOut}, handlers.Options{
		Files:          localFiles{},
		MaxFileSize:    cfg.Files.MaxBytes(),
		StickerReplies: cfg.Commands.StickerReplies,
		Logger:         logger,
	})

	msg := &telegram.Message{Text: line}
	if execFile != "" {
		doc, err := localDocument(execFile)
		if err != nil {
			return err
		}
		msg = &telegram.Message{Caption: line, Document: doc}
	}
	return router.Route(ctx, msg)
}

// localDocument describes a file on disk the way Telegram describes an
// uploaded document.
func localDocument(path string) (*telegram.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &telegram.Document{
		FileID:   path,
		FileName: filepath.Base(path),
		MimeType: detectMimeType(path, data),
		FileSize: int64(len(data)),
	}, nil
}

// detectMimeType guesses from the extension first and the contents second,
// dropping parameters like charset.
func detectMimeType(path string, data []byte) string {
	t := mime.TypeByExtension(filepath.Ext(path))
	if t == "" {
		t = http.DetectContentType(data)
	}
	mediaType, _, err := mime.ParseMediaType(t)
	if err != nil {
		return t
	}
	return mediaType
}

// localFiles serves document contents from the local disk; file ids are paths.
type localFiles struct{}

func (localFiles) Download(ctx context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

// printSender writes replies to a terminal instead of a chat.
type printSender struct {
	w   io.Writer
	dir string
}

func (s *printSender) Send(ctx context.Context, chatID int64, resp *commands.Response) error {
	if resp.Text != "" {
		fmt.Fprintln(s.w, resp.Text)
	}
	if f := resp.File; f != nil {
		if err := s.writeFile(f); err != nil {
			return err
		}
	}
	if resp.Sticker != "" {
		fmt.Fprintf(s.w, "[sticker %s]\n", resp.Sticker)
	}
	if resp.Dice {
		fmt.Fprintln(s.w, "[dice]")
	}
	return nil
}

func (s *printSender) writeFile(f *commands.OutputFile) error {
	if s.dir == "" {
		fmt.Fprintf(s.w, "--- %s ---\n%s", f.Name, f.Data)
		if len(f.Data) > 0 && f.Data[len(f.Data)-1] != '\n' {
			fmt.Fprintln(s.w)
		}
		return nil
	}

	path := filepath.Join(s.dir, filepath.Base(f.Name))
	if err := os.WriteFile(path, f.Data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(s.w, "wrote %s (%s)\n", path, commands.FormatSize(int64(len(f.Data))))
	return nil
}
