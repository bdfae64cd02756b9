package domain

import (
	"github.com/shopspring/decimal"
)

// Cadence multipliers for the pay and billing cycles used by the inputs.
var (
	fortnightsPerYear = decimal.NewFromInt(26)
	weeksPerYear      = decimal.NewFromInt(52)
	hundred           = decimal.NewFromInt(100)
)

// ScenarioInput is the immutable record of all user-controlled quantities
// for one projection run. The engine never mutates it; every projection is
// rebuilt from scratch from one of these.
type ScenarioInput struct {
	Property    Property    `json:"property"`
	Financing   Financing   `json:"financing"`
	Income      Income      `json:"income"`
	Expenses    Expenses    `json:"expenses"`
	Events      Events      `json:"events"`
	Assumptions Assumptions `json:"assumptions"`
}

// Property describes the purchase target and the funds tied to it.
type Property struct {
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	CurrentHomeValue  decimal.Decimal `json:"current_home_value"`
	OtherUpfrontCosts decimal.Decimal `json:"other_upfront_costs"` // legal, inspections etc.
}

// Financing describes the deposit composition and the loan terms.
type Financing struct {
	UseEquity         bool            `json:"use_equity"`
	EquityPercent     decimal.Decimal `json:"equity_percent"`     // % of current home value released as deposit
	AdditionalDeposit decimal.Decimal `json:"additional_deposit"` // cash on top of equity
	DepositPercent    decimal.Decimal `json:"deposit_percent"`    // used when UseEquity is false
	CapitalizeLMI     bool            `json:"capitalize_lmi"`
	// LoanAmountOverride, when set, replaces the derived final loan amount.
	LoanAmountOverride *decimal.Decimal `json:"loan_amount_override,omitempty"`
	InterestRate       decimal.Decimal  `json:"interest_rate"` // annual %, fixed for the life of the loan
	LoanTermYears      int              `json:"loan_term_years"`
}

// Income groups the household income streams.
type Income struct {
	UserFortnightly    decimal.Decimal `json:"user_fortnightly"`    // after-tax
	PartnerFortnightly decimal.Decimal `json:"partner_fortnightly"` // after-tax
	Rental             RentalIncome    `json:"rental"`
	Agistment          AgistmentIncome `json:"agistment"`
}

// RentalIncome models a weekly rental stream with partial occupancy.
type RentalIncome struct {
	Include          bool            `json:"include"`
	WeeklyRent       decimal.Decimal `json:"weekly_rent"`
	OccupancyPercent decimal.Decimal `json:"occupancy_percent"`
}

// AgistmentIncome models per-head-per-week grazing income.
type AgistmentIncome struct {
	Include         bool            `json:"include"`
	Head            int             `json:"head"`
	RatePerHeadWeek decimal.Decimal `json:"rate_per_head_week"`
}

// Expenses groups the recurring outgoings.
type Expenses struct {
	FortnightlyLiving decimal.Decimal `json:"fortnightly_living"`
	Education         EducationCosts  `json:"education"`
	CouncilRates      decimal.Decimal `json:"council_rates"`
	Insurance         decimal.Decimal `json:"insurance"`
	Maintenance       decimal.Decimal `json:"maintenance"`
	AgistmentCosts    decimal.Decimal `json:"agistment_costs"` // fencing, water etc.
	OtherProperty     decimal.Decimal `json:"other_property"`
}

// EducationCosts holds the initial per-child education fee structure.
type EducationCosts struct {
	Children          int             `json:"children"`
	AnnualFeePerChild decimal.Decimal `json:"annual_fee_per_child"`
}

// Events groups the optional future financial events.
type Events struct {
	Super           SuperEvents     `json:"super"`
	EducationChange EducationChange `json:"education_change"`
}

// SuperEvents describes the two earners' retirements: the projection year in
// which each stops work, the one-time superannuation lump sum accessed that
// year, and the constant (non-indexed) income earned afterwards.
type SuperEvents struct {
	Include                     bool            `json:"include"`
	UserRetireYear              int             `json:"user_retire_year"`
	UserSuperAmount             decimal.Decimal `json:"user_super_amount"`
	UserPostRetirementIncome    decimal.Decimal `json:"user_post_retirement_income"`
	PartnerRetireYear           int             `json:"partner_retire_year"`
	PartnerSuperAmount          decimal.Decimal `json:"partner_super_amount"`
	PartnerPostRetirementIncome decimal.Decimal `json:"partner_post_retirement_income"`
	// ApplyUserSuperToMortgage routes the user's lump sum to loan payoff.
	ApplyUserSuperToMortgage bool `json:"apply_user_super_to_mortgage"`
}

// EducationChange phases the education cost: the initial fee applies through
// floor(YearsUntilChange), the new fee for DurationYears starting the year
// after, and nothing beyond that window.
type EducationChange struct {
	Include              bool            `json:"include"`
	YearsUntilChange     decimal.Decimal `json:"years_until_change"` // may be fractional, e.g. 3.5
	NewAnnualFeePerChild decimal.Decimal `json:"new_annual_fee_per_child"`
	DurationYears        int             `json:"duration_years"`
}

// Assumptions holds the growth rates and the projection horizon.
type Assumptions struct {
	InflationRate      decimal.Decimal `json:"inflation_rate"`       // annual %
	PropertyGrowthRate decimal.Decimal `json:"property_growth_rate"` // annual %, may be negative
	IncomeGrowthRate   decimal.Decimal `json:"income_growth_rate"`   // annual %
	RentalGrowthRate   decimal.Decimal `json:"rental_growth_rate"`   // annual %
	ProjectionYears    int             `json:"projection_years"`
}

// AnnualUserEmployment returns the user's base annual after-tax income.
func (i Income) AnnualUserEmployment() decimal.Decimal {
	return i.UserFortnightly.Mul(fortnightsPerYear)
}

// AnnualPartnerEmployment returns the partner's base annual after-tax income.
func (i Income) AnnualPartnerEmployment() decimal.Decimal {
	return i.PartnerFortnightly.Mul(fortnightsPerYear)
}

// Annual returns the expected annual rental income after occupancy.
func (r RentalIncome) Annual() decimal.Decimal {
	if !r.Include {
		return decimal.Zero
	}
	return r.WeeklyRent.Mul(weeksPerYear).Mul(r.OccupancyPercent.Div(hundred))
}

// Annual returns the annual agistment income at full head count.
func (a AgistmentIncome) Annual() decimal.Decimal {
	if !a.Include {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(a.Head)).Mul(a.RatePerHeadWeek).Mul(weeksPerYear)
}

// AnnualLiving returns the base annual living expenses.
func (e Expenses) AnnualLiving() decimal.Decimal {
	return e.FortnightlyLiving.Mul(fortnightsPerYear)
}

// AnnualBase returns the initial education cost across all children.
func (ec EducationCosts) AnnualBase() decimal.Decimal {
	return ec.AnnualFeePerChild.Mul(decimal.NewFromInt(int64(ec.Children)))
}

// AnnualPropertyRunning returns the base annual property running costs,
// excluding the mortgage, living, and education.
func (e Expenses) AnnualPropertyRunning() decimal.Decimal {
	return e.CouncilRates.Add(e.Insurance).Add(e.Maintenance).
		Add(e.AgistmentCosts).Add(e.OtherProperty)
}

// DepositFunds returns the funds available toward the deposit: either a
// slice of equity plus cash, or a straight percentage of the price.
func (s *ScenarioInput) DepositFunds() decimal.Decimal {
	if s.Financing.UseEquity {
		return s.EquityContribution().Add(s.Financing.AdditionalDeposit)
	}
	return s.Property.PurchasePrice.Mul(s.Financing.DepositPercent.Div(hundred))
}

// EquityContribution returns the equity part of the deposit funds.
func (s *ScenarioInput) EquityContribution() decimal.Decimal {
	if !s.Financing.UseEquity {
		return decimal.Zero
	}
	return s.Property.CurrentHomeValue.Mul(s.Financing.EquityPercent.Div(hundred))
}
