package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

const (
	fetchTimeout = 30 * time.Second
	maxFetchBody = 4 << 20
)

// Fetch returns a tool that performs an HTTP GET and converts HTML responses
// to markdown, with paginated output.
func Fetch() Tool {
	type args struct {
		URL    string `json:"url"`
		Start  int    `json:"start"`
		Length int    `json:"length"`
	}
	client := &http.Client{Timeout: fetchTimeout}

	return Tool{
		Def: Def(
			"fetch",
			"Fetch a URL via HTTP GET. HTML is converted to markdown.",
			objectSchema(map[string]any{
				"url":    stringProp("URL to fetch"),
				"start":  intProp("Optional start character index (default: 0)"),
				"length": intProp("Optional length in characters (default: 5000)"),
			}, "url"),
		),
		Invoke: func(ctx context.Context, raw json.RawMessage) (string, error) {
			var a args
			if err := json.Unmarshal(raw, &a); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}
			content, err := FetchURL(ctx, client, a.URL)
			if err != nil {
				return fmt.Sprintf("Error fetching %s: %v", a.URL, err), nil
			}
			return Paginate(content, a.Start, a.Length), nil
		},
	}
}

// FetchURL performs the GET and returns the body, converted to markdown when
// the response is HTML. Also used by the lua tool bridge.
func FetchURL(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBody))
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	content := string(body)
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		converted, convErr := md.NewConverter("", true, nil).ConvertString(content)
		if convErr == nil {
			content = converted
		}
	}
	return content, nil
}
