package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	cfgpkg "github.com/KaramelBytes/bodycomp-cli/internal/config"
	"github.com/KaramelBytes/bodycomp-cli/internal/history"
	"github.com/KaramelBytes/bodycomp-cli/internal/ingest"
	"github.com/KaramelBytes/bodycomp-cli/internal/logging"
	"github.com/KaramelBytes/bodycomp-cli/internal/metrics"
	"github.com/KaramelBytes/bodycomp-cli/internal/output"
	"github.com/KaramelBytes/bodycomp-cli/internal/utils"
	"github.com/spf13/cobra"
)

// extractFlags are shared by extract and extract-batch.
type extractFlags struct {
	encodings []string
	rules     string
	delimiter string
	decimal   string
	thousands string
	outputDir string
	html      bool
	history   bool
}

func (f *extractFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.encodings, "encoding", nil, "candidate encodings in order (default utf-8-sig,big5,cp950)")
	cmd.Flags().StringVar(&f.rules, "rules", "", "YAML rule schema overriding the built-in column rules")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed if omitted)")
	cmd.Flags().StringVar(&f.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	cmd.Flags().StringVar(&f.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "directory for summaries (default <csv dir>/<csv name>_inbody)")
	cmd.Flags().BoolVar(&f.html, "html", false, "also render the report as HTML")
	cmd.Flags().BoolVar(&f.history, "history", false, "record the run in the local history database")
}

// extractSettings is the resolved pipeline configuration: flags over config
// over defaults.
type extractSettings struct {
	resolver ingest.Resolver
	schema   *metrics.Schema
	number   metrics.NumberFormat
	outDir   string
	html     bool
	history  bool
}

func (f *extractFlags) settings(cmd *cobra.Command) (extractSettings, error) {
	c := currentConfig()
	s := extractSettings{
		resolver: c.Resolver(),
		number:   c.NumberFormat(),
		outDir:   c.OutputDir,
		html:     c.HTMLReport,
		history:  f.history,
	}
	if len(f.encodings) > 0 {
		s.resolver.Encodings = f.encodings
	}
	if f.delimiter != "" {
		d, err := cfgpkg.ParseDelimiter(f.delimiter)
		if err != nil {
			return s, fmt.Errorf("--delimiter: %w", err)
		}
		s.resolver.Delimiter = d
	}
	if f.decimal != "" {
		d, err := cfgpkg.ParseDecimalSeparator(f.decimal)
		if err != nil {
			return s, fmt.Errorf("--decimal: %w", err)
		}
		s.number.DecimalSeparator = d
	}
	if f.thousands != "" {
		t, err := cfgpkg.ParseThousandsSeparator(f.thousands)
		if err != nil {
			return s, fmt.Errorf("--thousands: %w", err)
		}
		s.number.ThousandsSeparator = t
	}
	if cmd.Flags().Changed("output-dir") {
		s.outDir = f.outputDir
	}
	if cmd.Flags().Changed("html") {
		s.html = f.html
	}

	var err error
	if f.rules != "" {
		s.schema, err = metrics.LoadSchema(f.rules)
	} else {
		s.schema, err = c.Schema()
	}
	if err != nil {
		return s, err
	}
	return s, nil
}

// extractResult describes one processed file.
type extractResult struct {
	Encoding string
	Record   *metrics.Record
	Unbound  []metrics.ColumnBinding
	Files    []string
}

// defaultOutputDir places outputs next to the input: data/x.csv → data/x_inbody.
func defaultOutputDir(path string) string {
	base := filepath.Base(path)
	return filepath.Join(filepath.Dir(path), strings.TrimSuffix(base, filepath.Ext(base))+"_inbody")
}

// runExtract decodes and extracts one file, records the run when asked, then
// writes the summaries.
func runExtract(ctx context.Context, path, outDir string, s extractSettings) (*extractResult, error) {
	log := logging.WithFields(ctx, "file", path)
	t, err := s.resolver.ReadFile(path)
	if err != nil {
		return nil, err
	}
	log.Debug("decoded input", "encoding", t.Encoding, "columns", len(t.Header), "rows", len(t.Rows))

	x := metrics.NewExtractor(s.schema, metrics.ExtractOptions{Number: s.number})
	rec, err := x.Extract(t)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}
	res := &extractResult{
		Encoding: t.Encoding,
		Record:   rec,
		Unbound:  x.Matcher().Match(t.Header).Unbound(),
	}
	for _, b := range res.Unbound {
		log.Debug("column not mapped", "index", b.Index, "header", b.Header)
	}

	// History goes first so a failed run leaves no summaries behind.
	if s.history {
		if err := saveHistory(ctx, history.NewRun(s.schema, rec, path)); err != nil {
			return nil, err
		}
	}

	if outDir == "" {
		outDir = defaultOutputDir(path)
	}
	outDir = utils.ExpandHome(outDir)
	res.Files, err = output.WriteAll(s.schema, rec, outDir, output.WriteOptions{HTML: s.html})
	if err != nil {
		return nil, err
	}
	log.Info("extraction finished", "metrics", rec.Len(), "present", rec.Present(), "out", outDir)
	return res, nil
}

// withHistory opens the configured run log for the duration of fn, bounded by
// history_timeout_sec.
func withHistory(ctx context.Context, fn func(context.Context, *history.DB) error) error {
	c := currentConfig()
	if c.HistoryDB == "" {
		return fmt.Errorf("history_db is not configured")
	}
	path := utils.ExpandHome(c.HistoryDB)
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	db, err := history.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	timeout := time.Duration(c.HistoryTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx, db)
}

func saveHistory(ctx context.Context, run history.Run) error {
	return withHistory(ctx, func(ctx context.Context, db *history.DB) error {
		if err := db.Save(ctx, run); err != nil {
			return err
		}
		logging.FromContext(ctx).Debug("run recorded", "history_run", run.ID, "subject", run.Subject)
		return nil
	})
}
