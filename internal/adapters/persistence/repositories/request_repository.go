package repositories

import (
	"context"
	"errors"

	"campus-assetdesk/internal/adapters/persistence/models"
	"campus-assetdesk/internal/core/domain"

	"gorm.io/gorm"
)

// ErrAssetAlreadyReserved is returned when a second request for the same
// asset is moved to APPROVED while another approved request exists.
var ErrAssetAlreadyReserved = errors.New("asset already has an approved request")

// RequestRepository handles checkout request data access
type RequestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a new request. The referenced user and asset rows are
// locked inside the transaction, serializing creation against concurrent
// user/asset deletion (which takes the same locks before its reference
// check). Returns gorm.ErrRecordNotFound if either side is gone.
func (r *RequestRepository) Create(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := forUpdate(tx).
			First(&user, request.UserID).Error; err != nil {
			return err
		}

		var asset models.Asset
		if err := forUpdate(tx).
			First(&asset, request.AssetID).Error; err != nil {
			return err
		}

		return tx.Create(request).Error
	})
}

// GetByID gets a request by ID with its user and asset
func (r *RequestRepository) GetByID(ctx context.Context, id uint) (*models.Request, error) {
	var request models.Request
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Asset").
		First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// List lists all requests
func (r *RequestRepository) List(ctx context.Context) ([]*models.Request, error) {
	var requests []*models.Request
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Asset").
		Order("request_date DESC").
		Find(&requests).Error
	return requests, err
}

// ListByStatus lists requests with the given status
func (r *RequestRepository) ListByStatus(ctx context.Context, status string) ([]*models.Request, error) {
	var requests []*models.Request
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Asset").
		Where("status = ?", status).
		Order("request_date DESC").
		Find(&requests).Error
	return requests, err
}

// ListByUser lists requests owned by a user
func (r *RequestRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Request, error) {
	var requests []*models.Request
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Asset").
		Where("user_id = ?", userID).
		Order("request_date DESC").
		Find(&requests).Error
	return requests, err
}

// ListByUserAndStatus lists a user's requests with the given status
func (r *RequestRepository) ListByUserAndStatus(ctx context.Context, userID uint, status string) ([]*models.Request, error) {
	var requests []*models.Request
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Asset").
		Where("user_id = ?", userID).
		Where("status = ?", status).
		Order("request_date DESC").
		Find(&requests).Error
	return requests, err
}

// UpdateStatus moves a request to newStatus as one atomic check-and-set.
//
// The referenced asset row is locked for the whole transaction, so two
// concurrent approvals for the same asset serialize: the second one sees
// the first approval committed and fails with ErrAssetAlreadyReserved.
// Approval marks the asset RESERVED; leaving APPROVED frees it back to
// AVAILABLE.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id uint, newStatus domain.RequestStatus, comments string) (*models.Request, error) {
	var updated *models.Request

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.Request
		if err := tx.First(&request, id).Error; err != nil {
			return err
		}

		var asset models.Asset
		if err := forUpdate(tx).
			First(&asset, request.AssetID).Error; err != nil {
			return err
		}

		previous := domain.RequestStatus(request.Status)

		if newStatus == domain.RequestApproved && previous != domain.RequestApproved {
			var approved int64
			if err := tx.Model(&models.Request{}).
				Where("asset_id = ?", request.AssetID).
				Where("status = ?", string(domain.RequestApproved)).
				Where("id <> ?", request.ID).
				Count(&approved).Error; err != nil {
				return err
			}
			if approved > 0 {
				return ErrAssetAlreadyReserved
			}

			asset.Status = string(domain.AssetReserved)
			if err := tx.Save(&asset).Error; err != nil {
				return err
			}
		}

		if previous == domain.RequestApproved && newStatus != domain.RequestApproved {
			asset.Status = string(domain.AssetAvailable)
			if err := tx.Save(&asset).Error; err != nil {
				return err
			}
		}

		request.Status = string(newStatus)
		if comments != "" {
			request.Comments = comments
		}
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		updated = &request
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, updated.ID)
}

// Delete soft deletes a request. Deleting an approved request frees the
// asset in the same transaction so the reservation does not leak.
func (r *RequestRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.Request
		if err := tx.First(&request, id).Error; err != nil {
			return err
		}

		if request.IsApproved() {
			var asset models.Asset
			if err := forUpdate(tx).
				First(&asset, request.AssetID).Error; err != nil {
				return err
			}
			asset.Status = string(domain.AssetAvailable)
			if err := tx.Save(&asset).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Request{}, id).Error
	})
}

// CountByUserID counts requests owned by a user
func (r *RequestRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Request{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountByAssetID counts requests referencing an asset
func (r *RequestRepository) CountByAssetID(ctx context.Context, assetID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Request{}).Where("asset_id = ?", assetID).Count(&count).Error
	return count, err
}
