package services

import (
	"context"
	"errors"
	"time"

	"campus-assetdesk/internal/adapters/persistence/models"
	"campus-assetdesk/internal/adapters/persistence/repositories"
	"campus-assetdesk/internal/core/domain"

	"gorm.io/gorm"
)

// Request service errors
var (
	ErrRequestNotFound      = errors.New("request not found")
	ErrRequestInvalidStatus = errors.New("request status must be PENDING, APPROVED or REJECTED")
	ErrRequestNotOwner      = errors.New("request belongs to another user")
	ErrAdminOnly            = errors.New("operation requires admin role")
	ErrAssetAlreadyReserved = errors.New("asset already has an approved request")
)

// Caller carries the authenticated identity into every workflow
// operation. Claims are threaded explicitly; there is no ambient
// session state.
type Caller struct {
	UserID uint
	Role   domain.Role
}

// IsAdmin reports whether the caller holds the admin role
func (c Caller) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}

// RequestService handles the checkout request workflow
type RequestService struct {
	requestRepo *repositories.RequestRepository
	assetRepo   *repositories.AssetRepository
	userRepo    repositories.UserRepository
}

// NewRequestService creates a new request service
func NewRequestService(
	requestRepo *repositories.RequestRepository,
	assetRepo *repositories.AssetRepository,
	userRepo repositories.UserRepository,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		assetRepo:   assetRepo,
		userRepo:    userRepo,
	}
}

// Create files a checkout request for the caller. The server is
// authoritative: status starts at PENDING and the request date is
// stamped here, whatever the client sent. Creation is lock-free with
// respect to availability; conflicts surface at approval time.
func (s *RequestService) Create(ctx context.Context, caller Caller, assetID uint) (*models.Request, error) {
	if _, err := s.assetRepo.GetByID(ctx, assetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	request := &models.Request{
		UserID:      caller.UserID,
		AssetID:     assetID,
		Status:      string(domain.RequestPending),
		RequestDate: time.Now(),
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// user or asset vanished between the check and the insert
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	return s.requestRepo.GetByID(ctx, request.ID)
}

// List lists requests visible to the caller: admins see everything,
// students only their own.
func (s *RequestService) List(ctx context.Context, caller Caller) ([]*models.Request, error) {
	if caller.IsAdmin() {
		return s.requestRepo.List(ctx)
	}
	return s.requestRepo.ListByUser(ctx, caller.UserID)
}

// ListByStatus lists requests with the given status, scoped to the caller
func (s *RequestService) ListByStatus(ctx context.Context, caller Caller, status string) ([]*models.Request, error) {
	parsed, err := domain.ParseRequestStatus(status)
	if err != nil {
		return nil, ErrRequestInvalidStatus
	}
	if caller.IsAdmin() {
		return s.requestRepo.ListByStatus(ctx, string(parsed))
	}
	return s.requestRepo.ListByUserAndStatus(ctx, caller.UserID, string(parsed))
}

// ListByUser lists requests owned by userID. Students may only query
// their own requests.
func (s *RequestService) ListByUser(ctx context.Context, caller Caller, userID uint) ([]*models.Request, error) {
	if !caller.IsAdmin() && caller.UserID != userID {
		return nil, ErrRequestNotOwner
	}
	return s.requestRepo.ListByUser(ctx, userID)
}

// GetByID gets a request, visible to its owner or an admin
func (s *RequestService) GetByID(ctx context.Context, caller Caller, id uint) (*models.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if !caller.IsAdmin() && request.UserID != caller.UserID {
		return nil, ErrRequestNotOwner
	}
	return request, nil
}

// UpdateStatus moves a request to a new status. Admin only. Approval is
// an atomic check-and-set: at most one APPROVED request may reference an
// asset at a time, and approval/unapproval keeps the asset's own status
// (RESERVED/AVAILABLE) in step.
func (s *RequestService) UpdateStatus(ctx context.Context, caller Caller, id uint, status, comments string) (*models.Request, error) {
	if !caller.IsAdmin() {
		return nil, ErrAdminOnly
	}

	parsed, err := domain.ParseRequestStatus(status)
	if err != nil {
		return nil, ErrRequestInvalidStatus
	}

	request, err := s.requestRepo.UpdateStatus(ctx, id, parsed, comments)
	switch {
	case err == nil:
		return request, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrRequestNotFound
	case errors.Is(err, repositories.ErrAssetAlreadyReserved):
		return nil, ErrAssetAlreadyReserved
	default:
		return nil, err
	}
}

// Delete removes a request. Allowed for its owner or an admin.
func (s *RequestService) Delete(ctx context.Context, caller Caller, id uint) error {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	if !caller.IsAdmin() && request.UserID != caller.UserID {
		return ErrRequestNotOwner
	}

	return s.requestRepo.Delete(ctx, id)
}
