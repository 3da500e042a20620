package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType represents the asset class used for grouping and allocation targets
type AssetType string

const (
	AssetTypeFixedIncome    AssetType = "FIXED_INCOME"
	AssetTypeVariableIncome AssetType = "VARIABLE_INCOME"
	AssetTypeCrypto         AssetType = "CRYPTO"
)

// AssetSubtype is a finer-grained classification tag, used only in reports
type AssetSubtype string

const (
	AssetSubtypeCRI      AssetSubtype = "CRI"
	AssetSubtypeCRA      AssetSubtype = "CRA"
	AssetSubtypeCDB      AssetSubtype = "CDB"
	AssetSubtypeLCI      AssetSubtype = "LCI"
	AssetSubtypeLCA      AssetSubtype = "LCA"
	AssetSubtypeTesouro  AssetSubtype = "TESOURO"
	AssetSubtypeStock    AssetSubtype = "ACAO"
	AssetSubtypeFII      AssetSubtype = "FII"
	AssetSubtypeETF      AssetSubtype = "ETF"
	AssetSubtypeCrypto   AssetSubtype = "CRYPTO"
	AssetSubtypeBitcoin  AssetSubtype = "BITCOIN"
	AssetSubtypeEthereum AssetSubtype = "ETHEREUM"
	AssetSubtypeOther    AssetSubtype = "OUTROS"
)

// YieldIndicator is the index a fixed-income asset tracks (reporting only)
type YieldIndicator string

const (
	IndicatorCDI   YieldIndicator = "CDI"
	IndicatorIPCA  YieldIndicator = "IPCA"
	IndicatorSELIC YieldIndicator = "SELIC"
	IndicatorPre   YieldIndicator = "PRE"
	IndicatorOther YieldIndicator = "OUTROS"
)

// PaymentFrequency determines the accrual mode of an asset.
// AT_MATURITY selects compound accrual, every other variant selects
// simple (linear) accrual over the monthly effective rate.
type PaymentFrequency string

const (
	PaymentMonthly      PaymentFrequency = "MONTHLY"
	PaymentQuarterly    PaymentFrequency = "QUARTERLY"
	PaymentSemiannually PaymentFrequency = "SEMIANNUALLY"
	PaymentAnnually     PaymentFrequency = "ANNUALLY"
	PaymentAtMaturity   PaymentFrequency = "AT_MATURITY"
)

// Asset represents an investment entity in the domain layer.
// The valuation engine treats it as an immutable snapshot: all derived
// values (current value, maturity value, dividends) are computed on read
// and never written back.
type Asset struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Name             string
	Type             AssetType
	Subtype          AssetSubtype
	Indicator        YieldIndicator // empty unless the asset tracks an index
	YieldRate        float64        // annual nominal %
	InvestedAmount   decimal.Decimal
	AllocationDate   time.Time
	MaturityDate     time.Time
	PaymentFrequency PaymentFrequency
	DividendYield    float64 // annual %, 0 when the asset pays no dividends

	// Stored pass-through for reporting; none of these enter the valuation math.
	TaxExempt      bool
	IncomeTax      decimal.Decimal // %
	AdminFee       decimal.Decimal // %
	PerformanceFee decimal.Decimal // %
	FGCGuaranty    bool
}

// Validate ensures the asset adheres to domain rules.
// Returns an error if validation fails. This is the form-input line of
// defense; the valuation engine itself degrades gracefully on bad data.
func (a *Asset) Validate() error {
	if a.Name == "" {
		return errors.New("asset name cannot be empty")
	}

	if !a.Type.valid() {
		return errors.New("asset type must be FIXED_INCOME, VARIABLE_INCOME, or CRYPTO")
	}

	if !a.PaymentFrequency.valid() {
		return errors.New("payment frequency must be MONTHLY, QUARTERLY, SEMIANNUALLY, ANNUALLY, or AT_MATURITY")
	}

	if a.InvestedAmount.IsNegative() {
		return errors.New("invested amount cannot be negative")
	}

	if a.YieldRate < 0 {
		return errors.New("yield rate cannot be negative")
	}

	if a.DividendYield < 0 {
		return errors.New("dividend yield cannot be negative")
	}

	// A maturity before allocation is valued as a degenerate 1-month
	// instrument, but new input should not carry one.
	if !a.MaturityDate.IsZero() && !a.AllocationDate.IsZero() && a.MaturityDate.Before(a.AllocationDate) {
		return errors.New("maturity date cannot be before allocation date")
	}

	return nil
}

func (t AssetType) valid() bool {
	switch t {
	case AssetTypeFixedIncome, AssetTypeVariableIncome, AssetTypeCrypto:
		return true
	}
	return false
}

func (f PaymentFrequency) valid() bool {
	switch f {
	case PaymentMonthly, PaymentQuarterly, PaymentSemiannually, PaymentAnnually, PaymentAtMaturity:
		return true
	}
	return false
}

// AssetTypes lists every asset class, in the order allocation targets are reported.
func AssetTypes() []AssetType {
	return []AssetType{AssetTypeFixedIncome, AssetTypeVariableIncome, AssetTypeCrypto}
}
