package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/bodycomp-cli/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var exFlags extractFlags

var extractCmd = &cobra.Command{
	Use:   "extract <csv>",
	Short: "Extract an InBody CSV export into summaries and a report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := exFlags.settings(cmd)
		if err != nil {
			return err
		}
		ctx := logging.WithRunID(cmdContext(cmd), uuid.NewString())
		res, err := runExtract(ctx, args[0], s.outDir, s)
		if err != nil {
			return err
		}
		printResult(args[0], res)
		if s.history {
			fmt.Println("✓ Recorded run in history")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	exFlags.register(extractCmd)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printResult(path string, res *extractResult) {
	fmt.Printf("✓ Extracted %d metrics (%d with values) from %s [%s]\n",
		res.Record.Len(), res.Record.Present(), filepath.Base(path), res.Encoding)
	for _, f := range res.Files {
		fmt.Printf("  → %s\n", f)
	}
	if n := len(res.Unbound); n > 0 {
		headers := make([]string, 0, n)
		for _, b := range res.Unbound {
			headers = append(headers, b.Header)
		}
		const show = 5
		more := ""
		if n > show {
			headers, more = headers[:show], fmt.Sprintf(" (+%d more)", n-show)
		}
		fmt.Printf("⚠ %d columns not mapped: %s%s\n", n, strings.Join(headers, ", "), more)
	}
}
