// Package config loads and validates the scenario configuration file and
// converts it into the domain types used by the projection engine.
package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/ruralsim/property-calculator/internal/domain"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// PROPCALC_FINANCING_INTEREST_RATE.
const EnvPrefix = "PROPCALC"

// FileConfig mirrors the YAML configuration document. Viper decodes through
// mapstructure, which cannot target decimal.Decimal, so money and rate
// fields are plain float64 here and are converted in ToScenario.
type FileConfig struct {
	Property    PropertySection    `mapstructure:"property" yaml:"property"`
	Financing   FinancingSection   `mapstructure:"financing" yaml:"financing"`
	Income      IncomeSection      `mapstructure:"income" yaml:"income"`
	Expenses    ExpensesSection    `mapstructure:"expenses" yaml:"expenses"`
	Events      EventsSection      `mapstructure:"events" yaml:"events"`
	Assumptions AssumptionsSection `mapstructure:"assumptions" yaml:"assumptions"`
	Logging     LoggingSection     `mapstructure:"logging" yaml:"logging,omitempty"`
	Output      OutputSection      `mapstructure:"output" yaml:"output,omitempty"`
}

type PropertySection struct {
	PurchasePrice     float64 `mapstructure:"purchase_price" yaml:"purchase_price"`
	CurrentHomeValue  float64 `mapstructure:"current_home_value" yaml:"current_home_value"`
	OtherUpfrontCosts float64 `mapstructure:"other_upfront_costs" yaml:"other_upfront_costs"`
}

type FinancingSection struct {
	UseEquity          bool     `mapstructure:"use_equity" yaml:"use_equity"`
	EquityPercent      float64  `mapstructure:"equity_percent" yaml:"equity_percent"`
	AdditionalDeposit  float64  `mapstructure:"additional_deposit" yaml:"additional_deposit"`
	DepositPercent     float64  `mapstructure:"deposit_percent" yaml:"deposit_percent"`
	CapitalizeLMI      bool     `mapstructure:"capitalize_lmi" yaml:"capitalize_lmi"`
	LoanAmountOverride *float64 `mapstructure:"loan_amount_override" yaml:"loan_amount_override,omitempty"`
	InterestRate       float64  `mapstructure:"interest_rate" yaml:"interest_rate"`
	LoanTermYears      int      `mapstructure:"loan_term_years" yaml:"loan_term_years"`
}

type IncomeSection struct {
	UserFortnightly    float64          `mapstructure:"user_fortnightly" yaml:"user_fortnightly"`
	PartnerFortnightly float64          `mapstructure:"partner_fortnightly" yaml:"partner_fortnightly"`
	Rental             RentalSection    `mapstructure:"rental" yaml:"rental"`
	Agistment          AgistmentSection `mapstructure:"agistment" yaml:"agistment"`
}

type RentalSection struct {
	Include          bool    `mapstructure:"include" yaml:"include"`
	WeeklyRent       float64 `mapstructure:"weekly_rent" yaml:"weekly_rent"`
	OccupancyPercent float64 `mapstructure:"occupancy_percent" yaml:"occupancy_percent"`
}

type AgistmentSection struct {
	Include         bool    `mapstructure:"include" yaml:"include"`
	Head            int     `mapstructure:"head" yaml:"head"`
	RatePerHeadWeek float64 `mapstructure:"rate_per_head_week" yaml:"rate_per_head_week"`
}

type ExpensesSection struct {
	FortnightlyLiving float64 `mapstructure:"fortnightly_living" yaml:"fortnightly_living"`
	Children          int     `mapstructure:"children" yaml:"children"`
	AnnualFeePerChild float64 `mapstructure:"annual_fee_per_child" yaml:"annual_fee_per_child"`
	CouncilRates      float64 `mapstructure:"council_rates" yaml:"council_rates"`
	Insurance         float64 `mapstructure:"insurance" yaml:"insurance"`
	Maintenance       float64 `mapstructure:"maintenance" yaml:"maintenance"`
	AgistmentCosts    float64 `mapstructure:"agistment_costs" yaml:"agistment_costs"`
	OtherProperty     float64 `mapstructure:"other_property" yaml:"other_property"`
}

type EventsSection struct {
	Super           SuperSection           `mapstructure:"super" yaml:"super"`
	EducationChange EducationChangeSection `mapstructure:"education_change" yaml:"education_change"`
}

type SuperSection struct {
	Include                     bool    `mapstructure:"include" yaml:"include"`
	UserRetireYear              int     `mapstructure:"user_retire_year" yaml:"user_retire_year"`
	UserSuperAmount             float64 `mapstructure:"user_super_amount" yaml:"user_super_amount"`
	UserPostRetirementIncome    float64 `mapstructure:"user_post_retirement_income" yaml:"user_post_retirement_income"`
	PartnerRetireYear           int     `mapstructure:"partner_retire_year" yaml:"partner_retire_year"`
	PartnerSuperAmount          float64 `mapstructure:"partner_super_amount" yaml:"partner_super_amount"`
	PartnerPostRetirementIncome float64 `mapstructure:"partner_post_retirement_income" yaml:"partner_post_retirement_income"`
	ApplyUserSuperToMortgage    bool    `mapstructure:"apply_user_super_to_mortgage" yaml:"apply_user_super_to_mortgage"`
}

type EducationChangeSection struct {
	Include              bool    `mapstructure:"include" yaml:"include"`
	YearsUntilChange     float64 `mapstructure:"years_until_change" yaml:"years_until_change"`
	NewAnnualFeePerChild float64 `mapstructure:"new_annual_fee_per_child" yaml:"new_annual_fee_per_child"`
	DurationYears        int     `mapstructure:"duration_years" yaml:"duration_years"`
}

type AssumptionsSection struct {
	InflationRate      float64 `mapstructure:"inflation_rate" yaml:"inflation_rate"`
	PropertyGrowthRate float64 `mapstructure:"property_growth_rate" yaml:"property_growth_rate"`
	IncomeGrowthRate   float64 `mapstructure:"income_growth_rate" yaml:"income_growth_rate"`
	RentalGrowthRate   float64 `mapstructure:"rental_growth_rate" yaml:"rental_growth_rate"`
	ProjectionYears    int     `mapstructure:"projection_years" yaml:"projection_years"`
}

// LoggingSection configures the zap logger.
type LoggingSection struct {
	Level  string `mapstructure:"level" yaml:"level,omitempty"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format,omitempty"` // json, console
}

// OutputSection selects the default report format.
type OutputSection struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // console, csv, json
	File   string `mapstructure:"file" yaml:"file,omitempty"`
}

// Load reads, decodes, and validates a configuration file. Unset fields
// take the documented defaults; PROPCALC_* environment variables override
// file values.
func Load(path string) (*FileConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadDefaults returns the default configuration without reading a file.
func LoadDefaults() *FileConfig {
	v := viper.New()
	setDefaults(v)
	var cfg FileConfig
	// Decoding pure defaults cannot fail.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("property.purchase_price", 1700000.0)
	v.SetDefault("property.current_home_value", 1300000.0)
	v.SetDefault("property.other_upfront_costs", 5000.0)

	v.SetDefault("financing.use_equity", true)
	v.SetDefault("financing.equity_percent", 80.0)
	v.SetDefault("financing.additional_deposit", 50000.0)
	v.SetDefault("financing.deposit_percent", 20.0)
	v.SetDefault("financing.capitalize_lmi", true)
	v.SetDefault("financing.interest_rate", 6.0)
	v.SetDefault("financing.loan_term_years", 25)

	v.SetDefault("income.user_fortnightly", 2500.0)
	v.SetDefault("income.partner_fortnightly", 2500.0)
	v.SetDefault("income.rental.include", true)
	v.SetDefault("income.rental.weekly_rent", 450.0)
	v.SetDefault("income.rental.occupancy_percent", 90.0)
	v.SetDefault("income.agistment.include", true)
	v.SetDefault("income.agistment.head", 20)
	v.SetDefault("income.agistment.rate_per_head_week", 8.0)

	v.SetDefault("expenses.fortnightly_living", 3000.0)
	v.SetDefault("expenses.children", 1)
	v.SetDefault("expenses.annual_fee_per_child", 50000.0)
	v.SetDefault("expenses.council_rates", 2500.0)
	v.SetDefault("expenses.insurance", 2000.0)
	v.SetDefault("expenses.maintenance", 6000.0)
	v.SetDefault("expenses.agistment_costs", 2000.0)
	v.SetDefault("expenses.other_property", 1000.0)

	v.SetDefault("events.super.include", true)
	v.SetDefault("events.super.user_retire_year", 7)
	v.SetDefault("events.super.user_super_amount", 700000.0)
	v.SetDefault("events.super.user_post_retirement_income", 50000.0)
	v.SetDefault("events.super.partner_retire_year", 10)
	v.SetDefault("events.super.partner_super_amount", 600000.0)
	v.SetDefault("events.super.partner_post_retirement_income", 0.0)
	v.SetDefault("events.super.apply_user_super_to_mortgage", true)
	v.SetDefault("events.education_change.include", true)
	v.SetDefault("events.education_change.years_until_change", 3.5)
	v.SetDefault("events.education_change.new_annual_fee_per_child", 15000.0)
	v.SetDefault("events.education_change.duration_years", 4)

	v.SetDefault("assumptions.inflation_rate", 2.5)
	v.SetDefault("assumptions.property_growth_rate", 4.0)
	v.SetDefault("assumptions.income_growth_rate", 3.0)
	v.SetDefault("assumptions.rental_growth_rate", 3.5)
	v.SetDefault("assumptions.projection_years", 25)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("output.format", "console")
}

// Validate checks the configuration for values the engine cannot project.
func (c *FileConfig) Validate() error {
	if c.Property.PurchasePrice <= 0 {
		return fmt.Errorf("property.purchase_price must be positive")
	}
	if c.Property.CurrentHomeValue < 0 {
		return fmt.Errorf("property.current_home_value cannot be negative")
	}
	if c.Property.OtherUpfrontCosts < 0 {
		return fmt.Errorf("property.other_upfront_costs cannot be negative")
	}

	if c.Financing.EquityPercent < 0 || c.Financing.EquityPercent > 100 {
		return fmt.Errorf("financing.equity_percent must be between 0 and 100")
	}
	if c.Financing.DepositPercent < 0 || c.Financing.DepositPercent > 100 {
		return fmt.Errorf("financing.deposit_percent must be between 0 and 100")
	}
	if c.Financing.AdditionalDeposit < 0 {
		return fmt.Errorf("financing.additional_deposit cannot be negative")
	}
	if c.Financing.InterestRate < 0 || c.Financing.InterestRate > 25 {
		return fmt.Errorf("financing.interest_rate must be between 0 and 25")
	}
	if c.Financing.LoanTermYears < 1 || c.Financing.LoanTermYears > 40 {
		return fmt.Errorf("financing.loan_term_years must be between 1 and 40")
	}
	if o := c.Financing.LoanAmountOverride; o != nil && *o < 0 {
		return fmt.Errorf("financing.loan_amount_override cannot be negative")
	}

	if c.Income.Rental.OccupancyPercent < 0 || c.Income.Rental.OccupancyPercent > 100 {
		return fmt.Errorf("income.rental.occupancy_percent must be between 0 and 100")
	}
	if c.Income.Agistment.Head < 0 {
		return fmt.Errorf("income.agistment.head cannot be negative")
	}

	if c.Expenses.Children < 0 {
		return fmt.Errorf("expenses.children cannot be negative")
	}
	if c.Expenses.AnnualFeePerChild < 0 {
		return fmt.Errorf("expenses.annual_fee_per_child cannot be negative")
	}

	if c.Events.Super.UserRetireYear < 0 || c.Events.Super.PartnerRetireYear < 0 {
		return fmt.Errorf("events.super retirement years cannot be negative")
	}
	if c.Events.EducationChange.YearsUntilChange < 0 {
		return fmt.Errorf("events.education_change.years_until_change cannot be negative")
	}
	if c.Events.EducationChange.DurationYears < 0 {
		return fmt.Errorf("events.education_change.duration_years cannot be negative")
	}

	if c.Assumptions.InflationRate < -10 {
		return fmt.Errorf("assumptions.inflation_rate cannot be less than -10%% (extreme deflation)")
	}
	if c.Assumptions.PropertyGrowthRate < -100 {
		return fmt.Errorf("assumptions.property_growth_rate cannot be less than -100%%")
	}
	if c.Assumptions.ProjectionYears < 1 || c.Assumptions.ProjectionYears > 50 {
		return fmt.Errorf("assumptions.projection_years must be between 1 and 50")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Output.Format {
	case "", "console", "csv", "json":
	default:
		return fmt.Errorf("output.format must be one of console, csv, json")
	}
	return nil
}

// ToScenario converts the file document into the decimal-based domain input.
func (c *FileConfig) ToScenario() *domain.ScenarioInput {
	input := &domain.ScenarioInput{
		Property: domain.Property{
			PurchasePrice:     decimal.NewFromFloat(c.Property.PurchasePrice),
			CurrentHomeValue:  decimal.NewFromFloat(c.Property.CurrentHomeValue),
			OtherUpfrontCosts: decimal.NewFromFloat(c.Property.OtherUpfrontCosts),
		},
		Financing: domain.Financing{
			UseEquity:         c.Financing.UseEquity,
			EquityPercent:     decimal.NewFromFloat(c.Financing.EquityPercent),
			AdditionalDeposit: decimal.NewFromFloat(c.Financing.AdditionalDeposit),
			DepositPercent:    decimal.NewFromFloat(c.Financing.DepositPercent),
			CapitalizeLMI:     c.Financing.CapitalizeLMI,
			InterestRate:      decimal.NewFromFloat(c.Financing.InterestRate),
			LoanTermYears:     c.Financing.LoanTermYears,
		},
		Income: domain.Income{
			UserFortnightly:    decimal.NewFromFloat(c.Income.UserFortnightly),
			PartnerFortnightly: decimal.NewFromFloat(c.Income.PartnerFortnightly),
			Rental: domain.RentalIncome{
				Include:          c.Income.Rental.Include,
				WeeklyRent:       decimal.NewFromFloat(c.Income.Rental.WeeklyRent),
				OccupancyPercent: decimal.NewFromFloat(c.Income.Rental.OccupancyPercent),
			},
			Agistment: domain.AgistmentIncome{
				Include:         c.Income.Agistment.Include,
				Head:            c.Income.Agistment.Head,
				RatePerHeadWeek: decimal.NewFromFloat(c.Income.Agistment.RatePerHeadWeek),
			},
		},
		Expenses: domain.Expenses{
			FortnightlyLiving: decimal.NewFromFloat(c.Expenses.FortnightlyLiving),
			Education: domain.EducationCosts{
				Children:          c.Expenses.Children,
				AnnualFeePerChild: decimal.NewFromFloat(c.Expenses.AnnualFeePerChild),
			},
			CouncilRates:   decimal.NewFromFloat(c.Expenses.CouncilRates),
			Insurance:      decimal.NewFromFloat(c.Expenses.Insurance),
			Maintenance:    decimal.NewFromFloat(c.Expenses.Maintenance),
			AgistmentCosts: decimal.NewFromFloat(c.Expenses.AgistmentCosts),
			OtherProperty:  decimal.NewFromFloat(c.Expenses.OtherProperty),
		},
		Events: domain.Events{
			Super: domain.SuperEvents{
				Include:                     c.Events.Super.Include,
				UserRetireYear:              c.Events.Super.UserRetireYear,
				UserSuperAmount:             decimal.NewFromFloat(c.Events.Super.UserSuperAmount),
				UserPostRetirementIncome:    decimal.NewFromFloat(c.Events.Super.UserPostRetirementIncome),
				PartnerRetireYear:           c.Events.Super.PartnerRetireYear,
				PartnerSuperAmount:          decimal.NewFromFloat(c.Events.Super.PartnerSuperAmount),
				PartnerPostRetirementIncome: decimal.NewFromFloat(c.Events.Super.PartnerPostRetirementIncome),
				ApplyUserSuperToMortgage:    c.Events.Super.ApplyUserSuperToMortgage,
			},
			EducationChange: domain.EducationChange{
				Include:              c.Events.EducationChange.Include,
				YearsUntilChange:     decimal.NewFromFloat(c.Events.EducationChange.YearsUntilChange),
				NewAnnualFeePerChild: decimal.NewFromFloat(c.Events.EducationChange.NewAnnualFeePerChild),
				DurationYears:        c.Events.EducationChange.DurationYears,
			},
		},
		Assumptions: domain.Assumptions{
			InflationRate:      decimal.NewFromFloat(c.Assumptions.InflationRate),
			PropertyGrowthRate: decimal.NewFromFloat(c.Assumptions.PropertyGrowthRate),
			IncomeGrowthRate:   decimal.NewFromFloat(c.Assumptions.IncomeGrowthRate),
			RentalGrowthRate:   decimal.NewFromFloat(c.Assumptions.RentalGrowthRate),
			ProjectionYears:    c.Assumptions.ProjectionYears,
		},
	}
	if o := c.Financing.LoanAmountOverride; o != nil {
		override := decimal.NewFromFloat(*o)
		input.Financing.LoanAmountOverride = &override
	}
	return input
}
