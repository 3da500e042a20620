package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finanza-app/finanza-backend/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	db *DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB) domain.AssetRepository {
	return &assetRepository{db: db}
}

const assetColumns = `
	id, user_id, name, asset_type, asset_subtype, indicator,
	yield_rate, invested_amount, allocation_date, maturity_date,
	payment_frequency, dividend_yield, tax_exempt, income_tax,
	admin_fee, performance_fee, fgc_guaranty
`

// Create creates a new asset
func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.ExecContext(ctx, query,
		asset.ID,
		asset.UserID,
		asset.Name,
		string(asset.Type),
		string(asset.Subtype),
		string(asset.Indicator),
		asset.YieldRate,
		asset.InvestedAmount.String(),
		asset.AllocationDate,
		asset.MaturityDate,
		string(asset.PaymentFrequency),
		asset.DividendYield,
		asset.TaxExempt,
		asset.IncomeTax.String(),
		asset.AdminFee.String(),
		asset.PerformanceFee.String(),
		asset.FGCGuaranty,
	)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

// GetByID retrieves an asset by its ID, scoped to the owning user
func (r *assetRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE id = $1 AND user_id = $2
	`

	asset, err := scanAsset(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("asset not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get asset by ID: %w", err)
	}

	return asset, nil
}

// ListByUser retrieves all assets owned by the given user
func (r *assetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE user_id = $1
		ORDER BY allocation_date, name
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate asset rows: %w", err)
	}

	return assets, nil
}

// Update replaces an existing asset
func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	query := `
		UPDATE assets
		SET name = $3, asset_type = $4, asset_subtype = $5, indicator = $6,
			yield_rate = $7, invested_amount = $8, allocation_date = $9,
			maturity_date = $10, payment_frequency = $11, dividend_yield = $12,
			tax_exempt = $13, income_tax = $14, admin_fee = $15,
			performance_fee = $16, fgc_guaranty = $17
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		asset.ID,
		asset.UserID,
		asset.Name,
		string(asset.Type),
		string(asset.Subtype),
		string(asset.Indicator),
		asset.YieldRate,
		asset.InvestedAmount.String(),
		asset.AllocationDate,
		asset.MaturityDate,
		string(asset.PaymentFrequency),
		asset.DividendYield,
		asset.TaxExempt,
		asset.IncomeTax.String(),
		asset.AdminFee.String(),
		asset.PerformanceFee.String(),
		asset.FGCGuaranty,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("asset not found: %w", sql.ErrNoRows)
	}

	return nil
}

// Delete removes an asset, scoped to the owning user
func (r *assetRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM assets WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("asset not found: %w", sql.ErrNoRows)
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAsset(row rowScanner) (*domain.Asset, error) {
	var asset domain.Asset
	var investedStr, incomeTaxStr, adminFeeStr, performanceFeeStr string
	var allocationDate, maturityDate sql.NullTime

	err := row.Scan(
		&asset.ID,
		&asset.UserID,
		&asset.Name,
		&asset.Type,
		&asset.Subtype,
		&asset.Indicator,
		&asset.YieldRate,
		&investedStr,
		&allocationDate,
		&maturityDate,
		&asset.PaymentFrequency,
		&asset.DividendYield,
		&asset.TaxExempt,
		&incomeTaxStr,
		&adminFeeStr,
		&performanceFeeStr,
		&asset.FGCGuaranty,
	)
	if err != nil {
		return nil, err
	}

	// Dates are nullable: a missing date values as zero duration.
	if allocationDate.Valid {
		asset.AllocationDate = allocationDate.Time
	}
	if maturityDate.Valid {
		asset.MaturityDate = maturityDate.Time
	}

	// Parse DECIMAL columns
	for _, field := range []struct {
		src  string
		dst  *decimal.Decimal
		name string
	}{
		{investedStr, &asset.InvestedAmount, "invested_amount"},
		{incomeTaxStr, &asset.IncomeTax, "income_tax"},
		{adminFeeStr, &asset.AdminFee, "admin_fee"},
		{performanceFeeStr, &asset.PerformanceFee, "performance_fee"},
	} {
		value, err := decimal.NewFromString(field.src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", field.name, err)
		}
		*field.dst = value
	}

	return &asset, nil
}
