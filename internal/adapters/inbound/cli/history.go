package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ff6editor/pluginvet/internal/adapters/outbound/history"
	"github.com/ff6editor/pluginvet/internal/adapters/outbound/tui"
	"github.com/ff6editor/pluginvet/internal/domain"
)

// ErrNoHistoryDB is returned by history when no database is configured.
var ErrNoHistoryDB = errors.New("no history database configured (set history_db in .pluginvet.yaml or pass --history-db)")

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history [plugin]",
		Short: "Show recent validation runs",
		Long:  "List validation runs recorded in the history database, newest first. Without a plugin ID every plugin is listed. The database is the one validate records to (history_db or --history-db); it is never created here.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, flags)
			if err != nil {
				return err
			}
			dbPath := e.cfg.HistoryDB
			if dbPath == "" {
				return ErrNoHistoryDB
			}

			plugin := ""
			if len(args) > 0 {
				plugin = args[0]
			}

			entries := []domain.HistoryEntry{}
			if _, err := os.Stat(dbPath); err == nil {
				store, err := history.NewStore(dbPath)
				if err != nil {
					return fmt.Errorf("opening history: %w", err)
				}
				defer store.Close()

				if entries, err = store.List(plugin, limit); err != nil {
					return err
				}
			} else if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("opening history: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")
	return cmd
}
