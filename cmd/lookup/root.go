package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/JonMunkholm/customerlookup/internal/config"
	"github.com/JonMunkholm/customerlookup/internal/core"
	"github.com/JonMunkholm/customerlookup/internal/logging"
	"github.com/JonMunkholm/customerlookup/internal/source"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	file     string
	logLevel string
}

// loadDotEnv reads .env into the environment. Real variables win.
var loadDotEnv = func() error { return godotenv.Load() }

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "lookup",
		Short:        "Look up customers in the configured sheet",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Missing .env is fine; the environment may already be set.
			_ = loadDotEnv()
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "read the sheet from a local CSV file instead of Google Sheets")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(newFindCmd(opts), newColumnsCmd(opts), newAuditCmd(opts))
	return root
}

func newFindCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "find <phone-or-email>",
		Short: "Find the customer matching a phone number or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			src, err := source.New(cmd.Context(), cfg.Sheet)
			if err != nil {
				return err
			}
			return runFind(cmd.Context(), cmd.OutOrStdout(), src, cfg.Lookup, args[0])
		},
	}
}

func newColumnsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "Show which columns resolve to phone, email and name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			src, err := source.New(cmd.Context(), cfg.Sheet)
			if err != nil {
				return err
			}
			return runColumns(cmd.Context(), cmd.OutOrStdout(), src)
		},
	}
}

// loadConfig reads the environment, applies flag overrides, then validates.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, err
	}
	if opts.file != "" {
		cfg.Sheet.Source = config.SourceFile
		cfg.Sheet.FilePath = opts.file
	}
	cfg.Logging.Level = opts.logLevel
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	slog.SetDefault(logging.New(stderr, cfg.Logging.Level, cfg.Logging.Format))
	return cfg, nil
}

func runFind(ctx context.Context, w io.Writer, src core.Source, cfg config.LookupConfig, value string) error {
	service, err := core.NewService(src, nil, cfg)
	if err != nil {
		return err
	}
	out, err := service.Lookup(ctx, value)
	if err != nil {
		return err
	}
	return writeJSON(w, out)
}

type columnsReport struct {
	Source  string           `json:"source"`
	Headers []string         `json:"headers"`
	Rows    int              `json:"rows"`
	Columns core.ColumnIndex `json:"columns"`
}

func runColumns(ctx context.Context, w io.Writer, src core.Source) error {
	text, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch sheet: %w", err)
	}
	table, err := core.BuildTable(text)
	if err != nil {
		return err
	}
	return writeJSON(w, columnsReport{
		Source:  src.Describe(),
		Headers: table.Header,
		Rows:    len(table.Rows),
		Columns: table.Columns(),
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
