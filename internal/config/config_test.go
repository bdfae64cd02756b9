package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
property:
  purchase_price: 1500000
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	assert.Equal(t, 1500000.0, cfg.Property.PurchasePrice)
	// Everything else falls back to defaults.
	assert.Equal(t, 6.0, cfg.Financing.InterestRate)
	assert.Equal(t, 25, cfg.Financing.LoanTermYears)
	assert.Equal(t, 25, cfg.Assumptions.ProjectionYears)
	assert.True(t, cfg.Income.Rental.Include)
	assert.Equal(t, 90.0, cfg.Income.Rental.OccupancyPercent)
	assert.Equal(t, "console", cfg.Output.Format)
}

func TestLoadOverridesNested(t *testing.T) {
	path := writeTempConfig(t, `
financing:
  interest_rate: 7.25
  loan_term_years: 30
events:
  super:
    include: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	assert.Equal(t, 7.25, cfg.Financing.InterestRate)
	assert.Equal(t, 30, cfg.Financing.LoanTermYears)
	assert.False(t, cfg.Events.Super.Include)
	// Sibling defaults inside an overridden section survive.
	assert.Equal(t, 7, cfg.Events.Super.UserRetireYear)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero price", "property:\n  purchase_price: 0\n"},
		{"negative price", "property:\n  purchase_price: -100\n"},
		{"rate out of range", "financing:\n  interest_rate: 30\n"},
		{"term too long", "financing:\n  loan_term_years: 50\n"},
		{"occupancy over 100", "income:\n  rental:\n    occupancy_percent: 120\n"},
		{"horizon too long", "assumptions:\n  projection_years: 60\n"},
		{"bad log level", "logging:\n  level: loud\n"},
		{"bad output format", "output:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTempConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadDefaultsValidate(t *testing.T) {
	cfg := LoadDefaults()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 1700000.0, cfg.Property.PurchasePrice)
	assert.Equal(t, 700000.0, cfg.Events.Super.UserSuperAmount)
}

func TestToScenario(t *testing.T) {
	cfg := LoadDefaults()
	override := 1000000.0
	cfg.Financing.LoanAmountOverride = &override

	input := cfg.ToScenario()
	assert.True(t, input.Property.PurchasePrice.Equal(decimal.NewFromInt(1700000)))
	assert.True(t, input.Financing.InterestRate.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, 25, input.Financing.LoanTermYears)
	assert.True(t, input.Events.EducationChange.YearsUntilChange.Equal(decimal.NewFromFloat(3.5)))
	if input.Financing.LoanAmountOverride == nil {
		t.Fatal("expected loan amount override to carry through")
	}
	assert.True(t, input.Financing.LoanAmountOverride.Equal(decimal.NewFromInt(1000000)))

	// Derived annual figures line up with the configured cadence values.
	assert.True(t, input.Income.AnnualUserEmployment().Equal(decimal.NewFromInt(65000)))
	assert.True(t, input.Income.Rental.Annual().Equal(decimal.NewFromFloat(21060)))
	assert.True(t, input.Income.Agistment.Annual().Equal(decimal.NewFromInt(8320)))
}

func TestWriteExampleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	if err := WriteExample(path); err != nil {
		t.Fatalf("write example failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("example config should load cleanly: %v", err)
	}
	assert.Equal(t, LoadDefaults().Property.PurchasePrice, cfg.Property.PurchasePrice)

	// A second write must not clobber the file.
	assert.Error(t, WriteExample(path))
}
