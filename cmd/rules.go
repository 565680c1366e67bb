package cmd

import (
	"fmt"

	"github.com/KaramelBytes/bodycomp-cli/internal/metrics"
	"github.com/KaramelBytes/bodycomp-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	rlOutput    string
	rlRules     string
	rlEncodings []string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and audit the column-matching rules",
}

var rulesDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the built-in rule schema as YAML, ready to edit and pass via --rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := schemaFor(rlRules)
		if err != nil {
			return err
		}
		b, err := s.YAML()
		if err != nil {
			return err
		}
		if rlOutput == "" {
			fmt.Print(string(b))
			return nil
		}
		if err := utils.SafeWriteFile(utils.ExpandHome(rlOutput), b); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote rules to %s\n", rlOutput)
		return nil
	},
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check <csv>",
	Short: "Show how each header of a CSV export maps to metric keys",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := schemaFor(rlRules)
		if err != nil {
			return err
		}
		r := currentConfig().Resolver()
		if len(rlEncodings) > 0 {
			r.Encodings = rlEncodings
		}
		t, err := r.ReadFile(args[0])
		if err != nil {
			return err
		}

		m := metrics.NewMatcher(s)
		mapping := m.Match(t.Header)
		chosen := mapping.Columns()
		fmt.Printf("Encoding: %s, %d columns\n", t.Encoding, len(t.Header))
		for _, b := range mapping.Bindings {
			switch {
			case b.Excluded:
				fmt.Printf("  - [%d] %s (normal-range column, ignored)\n", b.Index+1, b.Header)
			case !b.Bound():
				fmt.Printf("  · [%d] %s (not mapped)\n", b.Index+1, b.Header)
			case chosen[b.Key] != b.Index:
				fmt.Printf("  ⚠ [%d] %s → %s (shadowed by column %d)\n", b.Index+1, b.Header, b.Key, chosen[b.Key]+1)
			default:
				fmt.Printf("  ✓ [%d] %s → %s (%q)\n", b.Index+1, b.Header, b.Key, b.Pattern)
			}
		}

		issues := m.Check(t.Header)
		for _, e := range issues {
			fmt.Printf("✗ %v\n", e)
		}
		if len(issues) > 0 {
			return fmt.Errorf("%d ambiguous header(s); reorder rules so longer patterns come first", len(issues))
		}
		fmt.Printf("✓ %d of %d columns mapped\n", len(chosen), len(t.Header))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesDumpCmd)
	rulesCmd.AddCommand(rulesCheckCmd)
	rulesCmd.PersistentFlags().StringVar(&rlRules, "rules", "", "YAML rule schema to use instead of the built-in one")
	rulesDumpCmd.Flags().StringVarP(&rlOutput, "output", "o", "", "write YAML to a file instead of stdout")
	rulesCheckCmd.Flags().StringSliceVar(&rlEncodings, "encoding", nil, "candidate encodings in order (default utf-8-sig,big5,cp950)")
}
