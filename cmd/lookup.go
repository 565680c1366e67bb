package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/KaramelBytes/bodycomp-cli/internal/history"
	"github.com/KaramelBytes/bodycomp-cli/internal/metrics"
	"github.com/KaramelBytes/bodycomp-cli/internal/store"
	"github.com/spf13/cobra"
)

var (
	lkSubject string
	lkRules   string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [summary] <query...>",
	Short: "Look up metrics by key, label or alias in a saved summary or the run history",
	Long: `Look up metrics by canonical key, label or alias. Queries match loosely:
"內臟脂肪", "VFA" and "visceral_fat_area" all find the visceral fat area.
The first argument is a summary.json or summary.csv unless --subject is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary := ""
		queries := args
		if lkSubject == "" {
			if len(args) < 2 {
				return errors.New("need a summary file and at least one query (or --subject)")
			}
			summary, queries = args[0], args[1:]
		}
		s, err := schemaFor(lkRules)
		if err != nil {
			return err
		}
		st, err := openStore(cmdContext(cmd), s, summary, lkSubject)
		if err != nil {
			return err
		}

		found := 0
		for _, q := range queries {
			e, ok := st.Lookup(q)
			if !ok {
				fmt.Printf("⚠ %s: no match\n", q)
				continue
			}
			found++
			label := string(e.Key)
			unit := e.Value.Unit
			if d, ok := s.Def(e.Key); ok {
				label = d.Label
				if unit == "" && e.Value.Kind == metrics.Number {
					unit = d.Unit
				}
			}
			line := fmt.Sprintf("%s: %s", label, e.Value.String())
			if unit != "" {
				line += " " + unit
			}
			fmt.Printf("✓ %s  [%s]\n", line, e.Key)
		}
		if found == 0 {
			return errors.New("no metric matched")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().StringVarP(&lkSubject, "subject", "s", "", "use the latest history run for this subject id or name")
	lookupCmd.Flags().StringVar(&lkRules, "rules", "", "YAML rule schema overriding the built-in key catalog")
}

// schemaFor loads rules when given, else the configured schema.
func schemaFor(rules string) (*metrics.Schema, error) {
	if rules != "" {
		return metrics.LoadSchema(rules)
	}
	return currentConfig().Schema()
}

// openStore builds a metric store from a summary file, or from the latest
// history run for subject.
func openStore(ctx context.Context, s *metrics.Schema, summary, subject string) (*store.Store, error) {
	if subject == "" {
		return store.Load(s, summary)
	}
	var st *store.Store
	err := withHistory(ctx, func(ctx context.Context, db *history.DB) error {
		run, err := db.Latest(ctx, subject)
		if err != nil {
			return err
		}
		st = run.Store(s)
		return nil
	})
	return st, err
}
