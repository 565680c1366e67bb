package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/bodycomp-cli/internal/history"
	"github.com/spf13/cobra"
)

var hlLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded extraction runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var runs []history.Run
		err := withHistory(cmdContext(cmd), func(ctx context.Context, db *history.DB) error {
			var err error
			runs, err = db.List(ctx, hlLimit)
			return err
		})
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("(no runs)")
			return nil
		}
		for _, r := range runs {
			who := r.Subject
			if r.Name != "" && r.Name != r.Subject {
				who += " " + r.Name
			}
			fmt.Printf("- %s: %s from %s (recorded %s, run %s)\n",
				who, orDash(r.TestTime), filepath.Base(r.Source),
				r.CreatedAt.Format("2006-01-02 15:04"), shortID(r.ID))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().IntVarP(&hlLimit, "limit", "n", 20, "maximum runs to list (0 = all)")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
