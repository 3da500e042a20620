package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetDraft is the partial asset record produced by the AI extraction
// collaborator. It is untrusted input: every field goes through the same
// validation as a hand-filled form before an Asset comes out of it.
type AssetDraft struct {
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Subtype          string  `json:"subtype"`
	YieldRate        float64 `json:"yieldRate"`
	InvestedAmount   float64 `json:"investedAmount"`
	AllocationDate   string  `json:"allocationDate"` // YYYY-MM-DD
	MaturityDate     string  `json:"maturityDate"`   // YYYY-MM-DD
	PaymentFrequency string  `json:"paymentFrequency"`
	DividendYield    float64 `json:"dividendYield"`
}

// ToAsset converts the draft into a validated Asset owned by the given
// user. Missing dates decode to the zero time (the valuation engine treats
// those as zero-duration); a missing payment frequency defaults to monthly
// simple accrual.
func (d *AssetDraft) ToAsset(userID uuid.UUID) (*Asset, error) {
	if d == nil {
		return nil, errors.New("empty asset draft")
	}

	assetType, ok := parseAssetType(d.Type)
	if !ok {
		return nil, errors.New("asset draft has an unknown asset type")
	}

	frequency := parsePaymentFrequency(d.PaymentFrequency)

	asset := &Asset{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             strings.TrimSpace(d.Name),
		Type:             assetType,
		Subtype:          parseAssetSubtype(d.Subtype),
		YieldRate:        d.YieldRate,
		InvestedAmount:   decimal.NewFromFloat(d.InvestedAmount),
		AllocationDate:   parseDraftDate(d.AllocationDate),
		MaturityDate:     parseDraftDate(d.MaturityDate),
		PaymentFrequency: frequency,
		DividendYield:    d.DividendYield,
	}

	if err := asset.Validate(); err != nil {
		return nil, err
	}

	return asset, nil
}

// parseAssetType accepts both the canonical codes and the display labels
// the extraction model occasionally echoes back.
func parseAssetType(s string) (AssetType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FIXED_INCOME", "RENDA FIXA":
		return AssetTypeFixedIncome, true
	case "VARIABLE_INCOME", "RENDA VARIÁVEL", "RENDA VARIAVEL":
		return AssetTypeVariableIncome, true
	case "CRYPTO", "CRIPTO":
		return AssetTypeCrypto, true
	}
	return "", false
}

func parseAssetSubtype(s string) AssetSubtype {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRI":
		return AssetSubtypeCRI
	case "CRA":
		return AssetSubtypeCRA
	case "CDB":
		return AssetSubtypeCDB
	case "LCI":
		return AssetSubtypeLCI
	case "LCA":
		return AssetSubtypeLCA
	case "TESOURO":
		return AssetSubtypeTesouro
	case "ACAO", "AÇÕES", "ACOES":
		return AssetSubtypeStock
	case "FII", "FUNDOS IMOBILIÁRIOS", "FUNDOS IMOBILIARIOS":
		return AssetSubtypeFII
	case "ETF", "ETFS":
		return AssetSubtypeETF
	case "CRYPTO", "CRIPTOMOEDAS":
		return AssetSubtypeCrypto
	case "BITCOIN":
		return AssetSubtypeBitcoin
	case "ETHEREUM":
		return AssetSubtypeEthereum
	}
	return AssetSubtypeOther
}

func parsePaymentFrequency(s string) PaymentFrequency {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "QUARTERLY", "TRIMESTRAL":
		return PaymentQuarterly
	case "SEMIANNUALLY", "SEMESTRAL":
		return PaymentSemiannually
	case "ANNUALLY", "ANUAL":
		return PaymentAnnually
	case "AT_MATURITY", "NO VENCIMENTO":
		return PaymentAtMaturity
	}
	return PaymentMonthly
}

// parseDraftDate decodes a YYYY-MM-DD string, returning the zero time for
// anything unparsable rather than failing the whole draft.
func parseDraftDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}
