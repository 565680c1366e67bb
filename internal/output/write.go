package output

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/bodycomp-cli/internal/metrics"
	"github.com/KaramelBytes/bodycomp-cli/internal/utils"
)

// Output file names inside a run directory.
const (
	SummaryCSV   = "inbody_summary.csv"
	SummaryJSON  = "inbody_summary.json"
	ReportMD     = "inbody_report.md"
	ReportHTML   = "inbody_report.html"
	defaultTitle = "InBody 量測摘要"
)

// WriteOptions selects optional renderers.
type WriteOptions struct {
	HTML bool
}

// WriteAll writes the flat CSV, nested JSON and Markdown summaries (and the
// HTML report when requested) into dir. Each file is replaced atomically.
// It returns the written paths in write order.
func WriteAll(s *metrics.Schema, rec *metrics.Record, dir string, opts WriteOptions) ([]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	var written []string
	put := func(name string, data []byte) error {
		path := filepath.Join(dir, name)
		if err := utils.SafeWriteFile(path, data); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	var csvBuf bytes.Buffer
	if err := WriteCSV(&csvBuf, Flatten(s, rec)); err != nil {
		return nil, err
	}
	if err := put(SummaryCSV, csvBuf.Bytes()); err != nil {
		return written, err
	}

	var jsonBuf bytes.Buffer
	if err := WriteJSON(&jsonBuf, Nest(s, rec)); err != nil {
		return written, err
	}
	if err := put(SummaryJSON, jsonBuf.Bytes()); err != nil {
		return written, err
	}

	md := Markdown(s, rec)
	if err := put(ReportMD, []byte(md)); err != nil {
		return written, err
	}
	if opts.HTML {
		page, err := HTML(defaultTitle, md)
		if err != nil {
			return written, err
		}
		if err := put(ReportHTML, page); err != nil {
			return written, err
		}
	}
	return written, nil
}
