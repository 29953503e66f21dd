package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/JonMunkholm/customerlookup/internal/admin"
	"github.com/JonMunkholm/customerlookup/internal/config"
	"github.com/JonMunkholm/customerlookup/internal/database"
	"github.com/JonMunkholm/customerlookup/internal/logging"
	"github.com/spf13/cobra"
)

var errAuditDisabled = errors.New("audit log is disabled: set DATABASE_URL")

func newAuditCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Maintain the lookup audit log",
	}

	var days int
	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete audit entries older than the retention period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAuditConfig(opts)
			if err != nil {
				return err
			}
			if days <= 0 {
				days = cfg.Audit.RetentionDays
			}

			m, closeFn, err := openMaintenance(cmd, cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := m.Purge(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d entries older than %d days\n", n, days)
			return nil
		},
	}
	purge.Flags().IntVarP(&days, "days", "d", 0, "retention in days (default AUDIT_RETENTION_DAYS)")

	var confirm bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete every audit entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("refusing to reset the audit log without --yes")
			}
			cfg, err := loadAuditConfig(opts)
			if err != nil {
				return err
			}

			m, closeFn, err := openMaintenance(cmd, cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := m.ResetAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "audit log reset")
			return nil
		},
	}
	reset.Flags().BoolVarP(&confirm, "yes", "y", false, "confirm the reset")

	cmd.AddCommand(purge, reset)
	return cmd
}

// loadAuditConfig skips sheet validation; maintenance never reads the sheet.
func loadAuditConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logging.New(stderr, opts.logLevel, cfg.Logging.Format))

	if !cfg.Audit.Enabled() {
		return nil, errAuditDisabled
	}
	return cfg, nil
}

func openMaintenance(cmd *cobra.Command, cfg *config.Config) (*admin.Maintenance, func(), error) {
	pool, err := database.Connect(cmd.Context(), cfg.Audit)
	if err != nil {
		return nil, nil, err
	}
	return &admin.Maintenance{Store: database.NewLookupStore(pool)}, pool.Close, nil
}
