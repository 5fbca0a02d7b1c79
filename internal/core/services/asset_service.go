package services

import (
	"context"
	"errors"
	"strings"

	"campus-assetdesk/internal/adapters/persistence/models"
	"campus-assetdesk/internal/adapters/persistence/repositories"
	"campus-assetdesk/internal/core/domain"

	"gorm.io/gorm"
)

// Asset service errors
var (
	ErrAssetNotFound      = errors.New("asset not found")
	ErrAssetNameRequired  = errors.New("asset name is required")
	ErrAssetDescRequired  = errors.New("asset description is required")
	ErrAssetInvalidStatus = errors.New("asset status must be AVAILABLE, RESERVED or MAINTENANCE")
	ErrAssetHasRequests   = errors.New("asset cannot be deleted: existing requests reference it")
)

// AssetService handles asset catalog business logic
type AssetService struct {
	assetRepo *repositories.AssetRepository
}

// NewAssetService creates a new asset service
func NewAssetService(assetRepo *repositories.AssetRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo}
}

// AssetInput represents create/update asset input
type AssetInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (in *AssetInput) validate() (domain.AssetStatus, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", ErrAssetNameRequired
	}
	if strings.TrimSpace(in.Description) == "" {
		return "", ErrAssetDescRequired
	}
	status, err := domain.ParseAssetStatus(in.Status)
	if err != nil {
		return "", ErrAssetInvalidStatus
	}
	return status, nil
}

// List lists all assets
func (s *AssetService) List(ctx context.Context) ([]*models.Asset, error) {
	return s.assetRepo.List(ctx)
}

// ListByStatus lists assets with the given status. An unknown status
// value is a validation error, not an empty result.
func (s *AssetService) ListByStatus(ctx context.Context, status string) ([]*models.Asset, error) {
	parsed, err := domain.ParseAssetStatus(status)
	if err != nil {
		return nil, ErrAssetInvalidStatus
	}
	return s.assetRepo.ListByStatus(ctx, string(parsed))
}

// GetByID gets an asset by ID
func (s *AssetService) GetByID(ctx context.Context, id uint) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

// Create creates a new asset
func (s *AssetService) Create(ctx context.Context, input *AssetInput) (*models.Asset, error) {
	status, err := input.validate()
	if err != nil {
		return nil, err
	}

	asset := &models.Asset{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Status:      string(status),
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}

	return asset, nil
}

// Update replaces an asset's name, description and status
func (s *AssetService) Update(ctx context.Context, id uint, input *AssetInput) (*models.Asset, error) {
	status, err := input.validate()
	if err != nil {
		return nil, err
	}

	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	asset.Name = strings.TrimSpace(input.Name)
	asset.Description = strings.TrimSpace(input.Description)
	asset.Status = string(status)

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}

	return asset, nil
}

// Delete deletes an asset. Fails with ErrAssetHasRequests while any
// checkout request still references it; nothing is cascaded.
func (s *AssetService) Delete(ctx context.Context, id uint) error {
	err := s.assetRepo.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrAssetNotFound
	case errors.Is(err, repositories.ErrAssetReferenced):
		return ErrAssetHasRequests
	default:
		return err
	}
}
