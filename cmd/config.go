package cmd

import (
	"fmt"
	"strings"

	cfgpkg "github.com/KaramelBytes/bodycomp-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set bodycomp configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("encodings: %s\n", strings.Join(cfg.Encodings, ", "))
		if cfg.Delimiter != "" {
			fmt.Printf("delimiter: %q\n", cfg.Delimiter)
		}
		if cfg.DecimalSeparator != "" {
			fmt.Printf("decimal_separator: %q\n", cfg.DecimalSeparator)
		}
		if cfg.ThousandsSeparator != "" {
			fmt.Printf("thousands_separator: %q\n", cfg.ThousandsSeparator)
		}
		if cfg.RulesFile != "" {
			fmt.Printf("rules_file: %s\n", cfg.RulesFile)
		}
		if cfg.OutputDir != "" {
			fmt.Printf("output_dir: %s\n", cfg.OutputDir)
		}
		fmt.Printf("html_report: %t\n", cfg.HTMLReport)
		if cfg.ReferenceDir != "" {
			fmt.Printf("reference_dir: %s\n", cfg.ReferenceDir)
		}
		if cfg.Instructions != "" {
			fmt.Printf("instructions: %s\n", cfg.Instructions)
		}
		fmt.Printf("prompt_limit: %d\n", cfg.PromptLimit)
		fmt.Printf("history_db: %s\n", cfg.HistoryDB)
		fmt.Printf("history_timeout_sec: %d\n", cfg.HistoryTimeoutSec)
		fmt.Printf("log_level: %s\n", cfg.LogLevel)
		fmt.Printf("log_format: %s\n", cfg.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
