// Package source implements the places a customer sheet can be read from:
// the public gviz CSV export, the Sheets API and local files.
//
// Every source returns the raw CSV text on each Fetch. Nothing is cached;
// the lookup service parses a fresh table per request.
package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/customerlookup/internal/config"
	"github.com/JonMunkholm/customerlookup/internal/core"
)

var (
	_ core.Source = (*GvizSource)(nil)
	_ core.Source = (*SheetsAPISource)(nil)
	_ core.Source = (*FileSource)(nil)
	_ core.Source = StaticSource{}
)

// New returns the source selected by cfg.Source.
func New(ctx context.Context, cfg config.SheetConfig) (core.Source, error) {
	switch strings.ToLower(cfg.Source) {
	case config.SourceGviz, "":
		if cfg.SpreadsheetID == "" {
			return nil, fmt.Errorf("gviz source: spreadsheet id is required")
		}
		return NewGvizSource(cfg, http.DefaultClient), nil
	case config.SourceAPI:
		if cfg.SpreadsheetID == "" {
			return nil, fmt.Errorf("sheets api source: spreadsheet id is required")
		}
		return NewSheetsAPISource(ctx, cfg)
	case config.SourceFile:
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("file source: path is required")
		}
		return NewFileSource(cfg.FilePath, cfg.MaxBytes), nil
	default:
		return nil, fmt.Errorf("unknown sheet source %q", cfg.Source)
	}
}
