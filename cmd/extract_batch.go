package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/bodycomp-cli/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	ebFlags    extractFlags
	ebQuiet    bool
	ebContinue bool
)

var extractBatchCmd = &cobra.Command{
	Use:   "extract-batch <files...>",
	Short: "Extract many InBody CSV exports with progress, one output directory per file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		s, err := ebFlags.settings(cmd)
		if err != nil {
			return err
		}
		ctx := logging.WithRunID(cmdContext(cmd), uuid.NewString())

		total := len(files)
		failed := 0
		used := map[string]int{}
		for i, path := range files {
			if !ebQuiet {
				fmt.Printf("[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			outDir := ""
			if s.outDir != "" {
				outDir = batchOutputDir(s.outDir, path, used)
			}
			res, err := runExtract(ctx, path, outDir, s)
			if err != nil {
				if !ebContinue {
					return err
				}
				failed++
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", filepath.Base(path), err)
				continue
			}
			if !ebQuiet {
				printResult(path, res)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, total)
		}
		if !ebQuiet {
			fmt.Printf("✓ Processed %d files\n", total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractBatchCmd)
	ebFlags.register(extractBatchCmd)
	extractBatchCmd.Flags().BoolVarP(&ebQuiet, "quiet", "q", false, "suppress progress output")
	extractBatchCmd.Flags().BoolVar(&ebContinue, "keep-going", false, "continue past files that fail and report them at the end")
}

// expandInputs resolves globs and literal paths into a sorted, de-duplicated
// file list.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

// batchOutputDir gives each input its own directory under root, suffixing
// __2, __3... when two inputs share a basename.
func batchOutputDir(root, path string, used map[string]int) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	used[name]++
	if n := used[name]; n > 1 {
		name = fmt.Sprintf("%s__%d", name, n)
	}
	return filepath.Join(root, name)
}
