package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/bodycomp-cli/internal/ingest"
	"github.com/KaramelBytes/bodycomp-cli/internal/metrics"
)

const dirName = ".bodycomp"

// Global configuration structure.
type Global struct {
	// Input decoding
	Encodings          []string `mapstructure:"encodings" yaml:"encodings"`
	Delimiter          string   `mapstructure:"delimiter" yaml:"delimiter,omitempty"`
	DecimalSeparator   string   `mapstructure:"decimal_separator" yaml:"decimal_separator,omitempty"`
	ThousandsSeparator string   `mapstructure:"thousands_separator" yaml:"thousands_separator,omitempty"`
	RulesFile          string   `mapstructure:"rules_file" yaml:"rules_file,omitempty"`

	// Outputs
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
	HTMLReport bool   `mapstructure:"html_report" yaml:"html_report"`

	// Prompt assembly
	ReferenceDir string `mapstructure:"reference_dir" yaml:"reference_dir,omitempty"`
	Instructions string `mapstructure:"instructions" yaml:"instructions,omitempty"`
	PromptLimit  int    `mapstructure:"prompt_limit" yaml:"prompt_limit"`

	// Run history
	HistoryDB         string `mapstructure:"history_db" yaml:"history_db"`
	HistoryTimeoutSec int    `mapstructure:"history_timeout_sec" yaml:"history_timeout_sec"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Resolver builds the encoding resolver described by the configuration.
func (c *Global) Resolver() ingest.Resolver {
	r := ingest.Resolver{Encodings: c.Encodings}
	if len(r.Encodings) == 0 {
		r.Encodings = append([]string(nil), ingest.DefaultEncodings...)
	}
	r.Delimiter, _ = ParseDelimiter(c.Delimiter)
	return r
}

// NumberFormat returns the configured separators; unset means auto-detect.
func (c *Global) NumberFormat() metrics.NumberFormat {
	dec, _ := ParseDecimalSeparator(c.DecimalSeparator)
	thou, _ := ParseThousandsSeparator(c.ThousandsSeparator)
	return metrics.NumberFormat{DecimalSeparator: dec, ThousandsSeparator: thou}
}

// Schema loads the configured rule file, or the default rules.
func (c *Global) Schema() (*metrics.Schema, error) {
	if c.RulesFile == "" {
		return metrics.DefaultSchema(), nil
	}
	return metrics.LoadSchema(c.RulesFile)
}

// ParseDelimiter reads a CSV delimiter setting. Empty means sniff.
func ParseDelimiter(s string) (rune, error) {
	if s == "\t" {
		return '\t', nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case `\t`, "tab":
		return '\t', nil
	}
	return 0, fmt.Errorf("unsupported delimiter %q (use ',', ';' or 'tab')", s)
}

// ParseDecimalSeparator reads a decimal separator setting. Empty means
// auto-detect per value.
func ParseDecimalSeparator(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ".", "dot":
		return '.', nil
	}
	return 0, fmt.Errorf("unsupported decimal separator %q (use '.' or 'comma')", s)
}

// ParseThousandsSeparator reads a thousands separator setting. Empty means
// auto-detect per value.
func ParseThousandsSeparator(s string) (rune, error) {
	if s == " " || s == "\u00A0" {
		return ' ', nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ".", "dot":
		return '.', nil
	case "space":
		return ' ', nil
	}
	return 0, fmt.Errorf("unsupported thousands separator %q (use ',', '.' or 'space')", s)
}

// validate rejects separator values the parsers above do not know.
func (c *Global) validate() error {
	if _, err := ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	if _, err := ParseDecimalSeparator(c.DecimalSeparator); err != nil {
		return err
	}
	_, err := ParseThousandsSeparator(c.ThousandsSeparator)
	return err
}

// Set assigns a configuration key from its string form.
func (c *Global) Set(key, val string) error {
	switch key {
	case "encodings":
		var out []string
		for _, e := range strings.Split(val, ",") {
			if e = strings.TrimSpace(e); e != "" {
				out = append(out, e)
			}
		}
		c.Encodings = out
	case "delimiter":
		if _, err := ParseDelimiter(val); err != nil {
			return err
		}
		c.Delimiter = val
	case "decimal_separator":
		if _, err := ParseDecimalSeparator(val); err != nil {
			return err
		}
		c.DecimalSeparator = val
	case "thousands_separator":
		if _, err := ParseThousandsSeparator(val); err != nil {
			return err
		}
		c.ThousandsSeparator = val
	case "rules_file":
		c.RulesFile = val
	case "output_dir":
		c.OutputDir = val
	case "html_report":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for html_report: %v", val)
		}
		c.HTMLReport = b
	case "reference_dir":
		c.ReferenceDir = val
	case "instructions":
		c.Instructions = val
	case "prompt_limit":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for prompt_limit: %v", val)
		}
		c.PromptLimit = i
	case "history_db":
		c.HistoryDB = val
	case "history_timeout_sec":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for history_timeout_sec: %v", val)
		}
		c.HistoryTimeoutSec = i
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	case "log_format":
		switch strings.ToLower(val) {
		case "text", "json":
			c.LogFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_format: %s (use text or json)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.bodycomp/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := homeDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("BODYCOMP")
	v.AutomaticEnv()

	v.SetDefault("encodings", append([]string(nil), ingest.DefaultEncodings...))
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("rules_file", "")
	v.SetDefault("output_dir", "")
	v.SetDefault("html_report", false)
	v.SetDefault("reference_dir", "")
	v.SetDefault("instructions", "")
	v.SetDefault("prompt_limit", 0)
	v.SetDefault("history_db", "")
	v.SetDefault("history_timeout_sec", 10)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := homeDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	// Resolve history_db default: ~/.bodycomp/history.db
	if c.HistoryDB == "" {
		dir, err := homeDir()
		if err != nil {
			return nil, err
		}
		c.HistoryDB = filepath.Join(dir, "history.db")
	}
	return &c, nil
}

func homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName), nil
}
