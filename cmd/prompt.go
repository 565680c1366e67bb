package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/KaramelBytes/bodycomp-cli/internal/prompt"
	"github.com/KaramelBytes/bodycomp-cli/internal/reference"
	"github.com/KaramelBytes/bodycomp-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	prSubject      string
	prRules        string
	prReference    string
	prInstructions string
	prPromptLimit  int
	prTopK         int
	prChunkTokens  int
	prOutput       string
)

var promptCmd = &cobra.Command{
	Use:   "prompt [summary]",
	Short: "Assemble an LLM prompt from a summary and reference material",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && prSubject == "" {
			return errors.New("need a summary file or --subject")
		}
		summary := ""
		if len(args) == 1 {
			summary = args[0]
		}
		c := currentConfig()
		s, err := schemaFor(prRules)
		if err != nil {
			return err
		}
		ctx := cmdContext(cmd)
		st, err := openStore(ctx, s, summary, prSubject)
		if err != nil {
			return err
		}

		refPath := c.ReferenceDir
		if cmd.Flags().Changed("reference") {
			refPath = prReference
		}
		var passages []reference.Section
		if refPath != "" {
			sections, err := reference.LoadSections(utils.ExpandHome(refPath), prChunkTokens)
			if err != nil {
				return err
			}
			passages = reference.Select(sections, prompt.ScoringTerms(st), prTopK)
		}

		instructions := c.Instructions
		if cmd.Flags().Changed("instructions") {
			instructions = prInstructions
		}
		limit := c.PromptLimit
		if cmd.Flags().Changed("prompt-limit") {
			limit = prPromptLimit
		}

		p, err := prompt.Build(prompt.Input{
			Store:        st,
			Passages:     passages,
			Instructions: instructions,
			TokenLimit:   limit,
		})
		if err != nil {
			return err
		}

		if prOutput == "" {
			fmt.Print(p.Text)
		} else {
			if err := utils.SafeWriteFile(utils.ExpandHome(prOutput), []byte(p.Text)); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote prompt to %s\n", prOutput)
		}
		fmt.Fprintf(os.Stderr, "Prompt tokens: %d (profile %d, passages %d from %d sections)\n",
			p.Tokens, p.Breakdown["profile"], p.Breakdown["passages"], len(passages))
		if p.Truncated {
			fmt.Fprintf(os.Stderr, "⚠ Prompt truncated to %d tokens\n", limit)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().StringVarP(&prSubject, "subject", "s", "", "use the latest history run for this subject id or name")
	promptCmd.Flags().StringVar(&prRules, "rules", "", "YAML rule schema overriding the built-in key catalog")
	promptCmd.Flags().StringVarP(&prReference, "reference", "r", "", "reference file or directory (.md/.txt) to draw passages from")
	promptCmd.Flags().StringVarP(&prInstructions, "instructions", "i", "", "report instructions (default: Traditional Chinese InBody report)")
	promptCmd.Flags().IntVar(&prPromptLimit, "prompt-limit", 0, "truncate the prompt to this many tokens (0 = no limit)")
	promptCmd.Flags().IntVar(&prTopK, "top-k", 4, "number of reference passages to include")
	promptCmd.Flags().IntVar(&prChunkTokens, "chunk-tokens", reference.DefaultMaxTokens, "maximum tokens per reference passage")
	promptCmd.Flags().StringVarP(&prOutput, "output", "o", "", "write the prompt to a file instead of stdout")
}
