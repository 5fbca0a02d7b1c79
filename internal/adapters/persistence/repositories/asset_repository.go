package repositories

import (
	"context"
	"errors"

	"campus-assetdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ErrAssetReferenced is returned when an asset still has checkout requests.
var ErrAssetReferenced = errors.New("asset is referenced by existing requests")

// AssetRepository handles asset data access
type AssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create creates a new asset
func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

// GetByID gets an asset by ID
func (r *AssetRepository) GetByID(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).First(&asset, id).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// List lists all assets
func (r *AssetRepository) List(ctx context.Context) ([]*models.Asset, error) {
	var assets []*models.Asset
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&assets).Error
	return assets, err
}

// ListByStatus lists assets with the given status
func (r *AssetRepository) ListByStatus(ctx context.Context, status string) ([]*models.Asset, error) {
	var assets []*models.Asset
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&assets).Error
	return assets, err
}

// Update saves an asset
func (r *AssetRepository) Update(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

// Delete soft deletes an asset. The asset row is locked and the reference
// count is taken in the same transaction, so the delete cannot interleave
// with a concurrent request insert for this asset.
func (r *AssetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := forUpdate(tx).
			First(&asset, id).Error; err != nil {
			return err
		}

		var refs int64
		if err := tx.Model(&models.Request{}).
			Where("asset_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrAssetReferenced
		}

		return tx.Delete(&models.Asset{}, id).Error
	})
}
