package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ruralsim/property-calculator/internal/domain"
)

// Report bundles everything a formatter needs for one projection run.
type Report struct {
	RunID       string                   `json:"run_id"`
	GeneratedAt time.Time                `json:"generated_at"`
	Scenario    *domain.ScenarioInput    `json:"scenario"`
	Result      *domain.ProjectionResult `json:"result"`
	Stress      []domain.StressResult    `json:"stress,omitempty"`
}

// NewReport stamps a projection run with an ID and timestamp.
func NewReport(scenario *domain.ScenarioInput, result *domain.ProjectionResult, stress []domain.StressResult) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Scenario:    scenario,
		Result:      result,
		Stress:      stress,
	}
}

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// builtInFormatters stores available formatters (extended incrementally).
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVDetailedExporter{},
	JSONFormatter{},
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"pretty":       "console",
	"text":         "console",
	"csv-detailed": "csv",
	"json-pretty":  "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// GetFormatterByName fetches a registered formatter, resolving aliases.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
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

// WriteFormatted runs a formatter and writes its output to path; an empty
// path falls back to a timestamped file named after the format.
func WriteFormatted(f Formatter, report *Report, path string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = fmt.Sprintf("property_projection_%s.%s",
			time.Now().Format("20060102_150405"), fileExtension(f.Name()))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func fileExtension(format string) string {
	switch format {
	case "csv":
		return "csv"
	case "json":
		return "json"
	default:
		return "txt"
	}
}
