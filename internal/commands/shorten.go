package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultShortenerEndpoint answers a GET with ?url= by the short link as plain text.
const DefaultShortenerEndpoint = "https://tinyurl.com/api-create.php"

// ShortenCommand handles shorten - shortens a link
type ShortenCommand struct {
	client   *http.Client
	endpoint string
}

func NewShortenCommand(client *http.Client, endpoint string) *ShortenCommand {
	if client == nil {
		client = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultShortenerEndpoint
	}
	return &ShortenCommand{client: client, endpoint: endpoint}
}

func (c *ShortenCommand) Descriptor() Descriptor {
	return Descriptor{Keyword: "shorten", Syntax: "shorten < url", Description: "shortens links!", Capability: TextOnly}
}

func (c *ShortenCommand) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	link := req.Remainder()
	if link == "" {
		return Reply(notEnoughParams), nil
	}

	short, err := c.Shorten(ctx, link)
	if err != nil {
		return nil, err
	}
	return &Response{Text: "`" + short + "`", Markdown: true}, nil
}

// Shorten asks the shortener endpoint for a short version of link.
func (c *ShortenCommand) Shorten(ctx context.Context, link string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing shortener endpoint: %w", err)
	}
	q := u.Query()
	q.Set("url", link)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("creating shortener request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling shortener: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("reading shortener response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shortener returned %s", resp.Status)
	}
	return strings.TrimSpace(string(body)), nil
}
