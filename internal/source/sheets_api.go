package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/customerlookup/internal/config"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsAPISource reads a tab through the Google Sheets API v4. It works
// for private sheets shared with a service account.
type SheetsAPISource struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	sheet         string
	timeout       time.Duration
	maxBytes      int64
}

// NewSheetsAPISource creates a Sheets API client from cfg. Extra options are
// appended after the credential options, so callers (tests) can override
// the endpoint or HTTP client.
func NewSheetsAPISource(ctx context.Context, cfg config.SheetConfig, opts ...option.ClientOption) (*SheetsAPISource, error) {
	var clientOpts []option.ClientOption
	switch {
	case cfg.CredentialsFile != "":
		clientOpts = append(clientOpts,
			option.WithCredentialsFile(cfg.CredentialsFile),
			option.WithScopes(sheets.SpreadsheetsReadonlyScope),
		)
	case cfg.APIKey != "":
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	return &SheetsAPISource{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		sheet:         cfg.Name,
		timeout:       cfg.FetchTimeout,
		maxBytes:      cfg.MaxBytes,
	}, nil
}

// Fetch reads every populated cell of the tab and renders it as CSV text.
func (s *SheetsAPISource) Fetch(ctx context.Context) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.values.Get(s.spreadsheetID, s.sheet).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("sheets values.get: %w", err)
	}

	return valuesToCSV(resp.Values, s.maxBytes)
}

// Describe implements core.Source.
func (s *SheetsAPISource) Describe() string {
	return fmt.Sprintf("sheets api %s/%s", s.spreadsheetID, s.sheet)
}

// cellLineBreaks flattens multi-line cells. The table builder splits on
// every newline, so a quoted multi-line record would become two rows.
var cellLineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// valuesToCSV renders a cell grid as CSV, one line per row. Rows keep their
// ragged length; the table builder tolerates short rows.
func valuesToCSV(values [][]interface{}, maxBytes int64) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	for _, row := range values {
		record := make([]string, len(row))
		for i, cell := range row {
			if cell != nil {
				record[i] = cellLineBreaks.Replace(fmt.Sprint(cell))
			}
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	if maxBytes > 0 && int64(buf.Len()) > maxBytes {
		return "", fmt.Errorf("%w: more than %d bytes", ErrSheetTooLarge, maxBytes)
	}
	return buf.String(), nil
}
