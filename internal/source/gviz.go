package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/customerlookup/internal/config"
)

// GvizSource downloads a sheet tab through the public Google visualization
// CSV export. The spreadsheet must be shared as "anyone with the link".
type GvizSource struct {
	client        *http.Client
	baseURL       string
	spreadsheetID string
	sheet         string
	timeout       time.Duration
	maxBytes      int64
}

// NewGvizSource creates a gviz source. client may be nil.
func NewGvizSource(cfg config.SheetConfig, client *http.Client) *GvizSource {
	if client == nil {
		client = &http.Client{}
	}
	return &GvizSource{
		client:        client,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		spreadsheetID: cfg.SpreadsheetID,
		sheet:         cfg.Name,
		timeout:       cfg.FetchTimeout,
		maxBytes:      cfg.MaxBytes,
	}
}

// URL returns the export address:
// {base}/{id}/gviz/tq?tqx=out:csv&sheet={name}
func (g *GvizSource) URL() string {
	q := url.Values{}
	q.Set("tqx", "out:csv")
	q.Set("sheet", g.sheet)
	return fmt.Sprintf("%s/%s/gviz/tq?%s", g.baseURL, url.PathEscape(g.spreadsheetID), q.Encode())
}

// Fetch downloads the current sheet contents.
func (g *GvizSource) Fetch(ctx context.Context) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.URL(), nil)
	if err != nil {
		return "", fmt.Errorf("build gviz request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gviz export returned status %s", resp.Status)
	}

	return readSheet(resp.Body, g.maxBytes)
}

// Describe implements core.Source.
func (g *GvizSource) Describe() string {
	return fmt.Sprintf("gviz sheet %s/%s", g.spreadsheetID, g.sheet)
}
