package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const exampleHeader = `# Property purchase projection configuration.
# All dollar amounts are AUD; rates are annual percentages.
`

// WriteExample writes a fully populated example configuration to path. It
// refuses to overwrite an existing file.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file %s already exists", path)
	}

	data, err := yaml.Marshal(LoadDefaults())
	if err != nil {
		return fmt.Errorf("failed to marshal example configuration: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(exampleHeader), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
