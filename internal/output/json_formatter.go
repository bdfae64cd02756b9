package output

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// JSONFormatter serializes the full report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}
	return json.MarshalIndent(report, "", "  ")
}
