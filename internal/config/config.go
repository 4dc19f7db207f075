package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the wire format spoken by the print service.
type Format string

const (
	FormatREST    Format = "rest"
	FormatGraphQL Format = "graphql"
)

// LabelMode selects how REST labels are filled.
type LabelMode string

const (
	// ModeStructured emits name, barcode and date under mapped keys.
	ModeStructured LabelMode = "structured"
	// ModeSingle emits the whole pasted line under field_name.
	ModeSingle LabelMode = "single"
)

// Config captures everything labelprint reads from its config file.
type Config struct {
	Path           string
	AppTitle       string
	Printers       []string
	Format         Format `validate:"oneof=rest graphql"`
	PMBURL         string `validate:"omitempty,url"`
	PrintService   string `validate:"omitempty,url"`
	Proxy          string
	TemplateID     int       `validate:"gte=0"`
	LabelMode      LabelMode `validate:"oneof=structured single"`
	FieldNames     map[string]string
	Fields         []string `validate:"dive,oneof=name barcode date"`
	WarmUp         bool
	TemplateFile   string
	Template       string
	RequestTimeout time.Duration `validate:"gt=0"`
	LogLevel       string        `validate:"oneof=debug info warn error"`
	LogFile        string

	entries []Entry
}

// Entry is one raw key/value pair as written in the config file.
type Entry struct {
	Key   string
	Value string
}

const (
	defaultConfigPath = "~/.config/labelprint/config.toml"
	defaultLogFile    = "~/.local/share/labelprint/labelprint.log"
	defaultAppTitle   = "Print tool"
	defaultTimeout    = 30 * time.Second
	defaultLogLevel   = "info"
)

// ErrMissing matches every *MissingError.
var ErrMissing = errors.New("missing config")

// MissingError reports a setting that must be present before printing.
type MissingError struct {
	Key string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing config for %s", e.Key)
}

// Is lets errors.Is(err, ErrMissing) match.
func (e *MissingError) Is(target error) bool {
	return target == ErrMissing
}

type rawConfig struct {
	AppTitle       string `toml:"app_title" yaml:"app_title"`
	Printers       any    `toml:"printers" yaml:"printers"`
	Format         string `toml:"format" yaml:"format"`
	PMBURL         string `toml:"pmb_url" yaml:"pmb_url"`
	PrintService   string `toml:"print_service" yaml:"print_service"`
	Proxy          string `toml:"proxy" yaml:"proxy"`
	TemplateID     int    `toml:"template_id" yaml:"template_id"`
	LabelMode      string `toml:"label_mode" yaml:"label_mode"`
	FieldName      string `toml:"field_name" yaml:"field_name"`
	FieldBarcode   string `toml:"field_barcode" yaml:"field_barcode"`
	FieldDate      string `toml:"field_date" yaml:"field_date"`
	Fields         any    `toml:"fields" yaml:"fields"`
	WarmUp         bool   `toml:"warm_up" yaml:"warm_up"`
	TemplateFile   string `toml:"template_file" yaml:"template_file"`
	RequestTimeout string `toml:"request_timeout" yaml:"request_timeout"`
	LogLevel       string `toml:"log_level" yaml:"log_level"`
	LogFile        string `toml:"log_file" yaml:"log_file"`
}

var validate = validator.New()

// Load reads and validates the config at path, or at the default location
// when path is empty. The layout template, if configured, is read as well.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	var all map[string]any
	if isYAML(resolved) {
		err = yaml.Unmarshal(bytes, &raw)
		if err == nil {
			err = yaml.Unmarshal(bytes, &all)
		}
	} else {
		err = toml.Unmarshal(bytes, &raw)
		if err == nil {
			err = toml.Unmarshal(bytes, &all)
		}
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg, err := fromRaw(raw, filepath.Dir(resolved))
	if err != nil {
		return Config{}, err
	}
	cfg.Path = resolved
	cfg.entries = flatten(all)

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	if cfg.TemplateFile != "" {
		tmpl, err := os.ReadFile(cfg.TemplateFile)
		if err != nil {
			return Config{}, fmt.Errorf("read template: %w", err)
		}
		cfg.Template = string(tmpl)
	}
	return cfg, nil
}

func fromRaw(raw rawConfig, dir string) (Config, error) {
	cfg := Config{
		AppTitle:     strings.TrimSpace(raw.AppTitle),
		PMBURL:       strings.TrimSpace(raw.PMBURL),
		PrintService: strings.TrimSpace(raw.PrintService),
		Proxy:        strings.TrimSpace(raw.Proxy),
		TemplateID:   raw.TemplateID,
		LabelMode:    LabelMode(strings.ToLower(strings.TrimSpace(raw.LabelMode))),
		WarmUp:       raw.WarmUp,
		FieldNames: map[string]string{
			"name":    strings.TrimSpace(raw.FieldName),
			"barcode": strings.TrimSpace(raw.FieldBarcode),
			"date":    strings.TrimSpace(raw.FieldDate),
		},
		LogLevel: strings.ToLower(strings.TrimSpace(raw.LogLevel)),
	}
	if cfg.AppTitle == "" {
		cfg.AppTitle = defaultAppTitle
	}
	if cfg.LabelMode == "" {
		cfg.LabelMode = ModeStructured
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	cfg.Format = Format(strings.ToLower(strings.TrimSpace(raw.Format)))
	if cfg.Format == "" {
		cfg.Format = FormatREST
		if cfg.PrintService != "" {
			cfg.Format = FormatGraphQL
		}
	}

	var err error
	if cfg.Printers, err = splitList(raw.Printers, ","); err != nil {
		return Config{}, fmt.Errorf("parse printers: %w", err)
	}
	fields, err := splitList(raw.Fields, ", \t")
	if err != nil {
		return Config{}, fmt.Errorf("parse fields: %w", err)
	}
	for _, f := range fields {
		cfg.Fields = append(cfg.Fields, strings.ToLower(f))
	}

	cfg.RequestTimeout = defaultTimeout
	if t := strings.TrimSpace(raw.RequestTimeout); t != "" {
		if cfg.RequestTimeout, err = time.ParseDuration(t); err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
	}

	logFile := strings.TrimSpace(raw.LogFile)
	if logFile == "" {
		logFile = defaultLogFile
	}
	if cfg.LogFile, err = expandPath(logFile); err != nil {
		return Config{}, fmt.Errorf("resolve log_file: %w", err)
	}

	if tf := strings.TrimSpace(raw.TemplateFile); tf != "" {
		if !strings.HasPrefix(tf, "~") && !filepath.IsAbs(tf) {
			tf = filepath.Join(dir, tf)
		}
		if cfg.TemplateFile, err = expandPath(tf); err != nil {
			return Config{}, fmt.Errorf("resolve template_file: %w", err)
		}
	}
	return cfg, nil
}

// Endpoint returns the service URL for the configured format.
func (c Config) Endpoint() (string, error) {
	if c.Format == FormatGraphQL {
		if c.PrintService == "" {
			return "", &MissingError{Key: "print_service"}
		}
		return c.PrintService, nil
	}
	if c.PMBURL == "" {
		return "", &MissingError{Key: "pmb_url"}
	}
	return c.PMBURL, nil
}

// Ready reports the first setting that printing requires but is missing.
func (c Config) Ready() error {
	if _, err := c.Endpoint(); err != nil {
		return err
	}
	switch c.Format {
	case FormatGraphQL:
		if strings.TrimSpace(c.Template) == "" {
			return &MissingError{Key: "template_file"}
		}
	default:
		if c.TemplateID <= 0 {
			return &MissingError{Key: "template_id"}
		}
		if c.LabelMode == ModeSingle && c.FieldNames["name"] == "" {
			return &MissingError{Key: "field_name"}
		}
	}
	return nil
}

// FieldEnabled reports whether the named table column is enabled.
func (c Config) FieldEnabled(name string) bool {
	for _, f := range c.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Entries returns the raw settings sorted by key.
func (c Config) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func flatten(all map[string]any) []Entry {
	entries := make([]Entry, 0, len(all))
	for k, v := range all {
		var value string
		switch typed := v.(type) {
		case []any:
			parts := make([]string, 0, len(typed))
			for _, p := range typed {
				parts = append(parts, fmt.Sprint(p))
			}
			value = strings.Join(parts, ", ")
		default:
			value = fmt.Sprint(typed)
		}
		entries = append(entries, Entry{Key: k, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// splitList accepts either a delimited string or a list of strings.
func splitList(v any, seps string) ([]string, error) {
	var items []string
	switch typed := v.(type) {
	case nil:
		return nil, nil
	case string:
		items = strings.FieldsFunc(typed, func(r rune) bool { return strings.ContainsRune(seps, r) })
	case []any:
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected %T in list", item)
			}
			items = append(items, s)
		}
	default:
		return nil, fmt.Errorf("unexpected %T, want string or list", v)
	}
	out := items[:0]
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// DefaultPath returns the config location used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
