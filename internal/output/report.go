package output

import (
	"fmt"
	"strings"

	"github.com/fiplan/goal-tracker/internal/domain"
)

// GenerateReport writes report in the requested format to a timestamped file
// in dir and returns the written paths. "all" writes the console table and
// both CSV exports.
func GenerateReport(report *domain.PlanReport, format, dir string) ([]string, error) {
	if f := GetFormatterByName(format); f != nil {
		path, err := WriteFormatted(f, report, dir, Extension(f.Name()))
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, f := range []Formatter{ConsoleLiteFormatter{}, CSVGoalsFormatter{}, CSVDetailedExporter{}} {
			path, err := WriteFormatted(f, report, dir, Extension(f.Name()))
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
