package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fiplan/goal-tracker/internal/domain"
)

// ErrUnsupportedFormat is returned when no formatter matches a requested name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *domain.PlanReport) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.PlanReport) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.PlanReport) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                { return ff.ID }

var nowFunc = time.Now

// WriteFormatted runs a formatter and writes output to a timestamped file
// named after the formatter, with extension ext, inside dir. An empty dir
// means the working directory.
func WriteFormatted(f Formatter, report *domain.PlanReport, dir, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("fiplan_%s_%s.%s", f.Name(), nowFunc().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	ConsoleLiteFormatter{},
	CSVGoalsFormatter{},
	CSVDetailedExporter{},
	HTMLFormatter{},
	JSONFormatter{},
	MarkdownFormatter{},
	YAMLFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"table":        "console",
	"text":         "console-lite",
	"lite":         "console-lite",
	"goals-csv":    "csv",
	"csv-detailed": "detailed-csv",
	"html-report":  "html",
	"json-pretty":  "json",
	"md":           "markdown",
	"yml":          "yaml",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extension returns the file extension used when writing a format to disk.
func Extension(name string) string {
	switch n := NormalizeFormatName(name); {
	case strings.HasPrefix(n, "console"):
		return "txt"
	case strings.Contains(n, "csv"):
		return "csv"
	case n == "markdown":
		return "md"
	default:
		return n
	}
}
