package services

import (
	"context"
	"errors"
	"testing"

	"campus-assetdesk/internal/adapters/persistence/repositories"
	"campus-assetdesk/internal/core/domain"
)

func newAssetService(t *testing.T) (*AssetService, *RequestService) {
	t.Helper()
	db := newTestDB(t)
	return NewAssetService(repositories.NewAssetRepository(db)), newRequestService(db)
}

func TestAssetCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(repositories.NewAssetRepository(db))
	ctx := context.Background()

	asset, err := svc.Create(ctx, &AssetInput{
		Name:        "  Projector  ",
		Description: "Epson EB-X06",
		Status:      "AVAILABLE",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if asset.ID == 0 {
		t.Error("asset was not assigned an ID")
	}
	if asset.Name != "Projector" {
		t.Errorf("Name = %q, want trimmed %q", asset.Name, "Projector")
	}

	got, err := svc.GetByID(ctx, asset.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != string(domain.AssetAvailable) {
		t.Errorf("Status = %q", got.Status)
	}
}

func TestAssetCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(repositories.NewAssetRepository(db))
	ctx := context.Background()

	tests := []struct {
		name  string
		input AssetInput
		want  error
	}{
		{"empty name", AssetInput{Name: "  ", Description: "d", Status: "AVAILABLE"}, ErrAssetNameRequired},
		{"empty description", AssetInput{Name: "n", Description: "", Status: "AVAILABLE"}, ErrAssetDescRequired},
		{"bad status", AssetInput{Name: "n", Description: "d", Status: "BROKEN"}, ErrAssetInvalidStatus},
		{"lowercase status", AssetInput{Name: "n", Description: "d", Status: "available"}, ErrAssetInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, &tt.input); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAssetListByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(repositories.NewAssetRepository(db))
	ctx := context.Background()

	seedAsset(t, db, "laptop", domain.AssetAvailable)
	seedAsset(t, db, "camera", domain.AssetAvailable)
	seedAsset(t, db, "drone", domain.AssetMaintenance)

	available, err := svc.ListByStatus(ctx, "AVAILABLE")
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(available) != 2 {
		t.Errorf("len(available) = %d, want 2", len(available))
	}

	if _, err := svc.ListByStatus(ctx, "BOGUS"); !errors.Is(err, ErrAssetInvalidStatus) {
		t.Errorf("error = %v, want ErrAssetInvalidStatus", err)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
}

func TestAssetUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssetService(repositories.NewAssetRepository(db))
	ctx := context.Background()

	asset := seedAsset(t, db, "tripod", domain.AssetAvailable)

	updated, err := svc.Update(ctx, asset.ID, &AssetInput{
		Name:        "tripod (heavy duty)",
		Description: "manfrotto",
		Status:      "MAINTENANCE",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != string(domain.AssetMaintenance) {
		t.Errorf("Status = %q", updated.Status)
	}

	if _, err := svc.Update(ctx, 9999, &AssetInput{Name: "n", Description: "d", Status: "AVAILABLE"}); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("error = %v, want ErrAssetNotFound", err)
	}
}

func TestAssetDeleteBlockedByRequests(t *testing.T) {
	db := newTestDB(t)
	assetSvc := NewAssetService(repositories.NewAssetRepository(db))
	requestSvc := newRequestService(db)
	ctx := context.Background()

	student := seedUser(t, db, "student1", domain.RoleStudent)
	asset := seedAsset(t, db, "microscope", domain.AssetAvailable)

	request, err := requestSvc.Create(ctx, asCaller(student), asset.ID)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	if err := assetSvc.Delete(ctx, asset.ID); !errors.Is(err, ErrAssetHasRequests) {
		t.Fatalf("Delete error = %v, want ErrAssetHasRequests", err)
	}

	// The asset must still exist after the failed delete.
	if _, err := assetSvc.GetByID(ctx, asset.ID); err != nil {
		t.Fatalf("asset disappeared after blocked delete: %v", err)
	}

	if err := requestSvc.Delete(ctx, asCaller(student), request.ID); err != nil {
		t.Fatalf("delete request: %v", err)
	}

	if err := assetSvc.Delete(ctx, asset.ID); err != nil {
		t.Fatalf("Delete after clearing requests: %v", err)
	}
	if _, err := assetSvc.GetByID(ctx, asset.ID); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("GetByID error = %v, want ErrAssetNotFound", err)
	}
}

func TestAssetDeleteNotFound(t *testing.T) {
	svc, _ := newAssetService(t)

	if err := svc.Delete(context.Background(), 12345); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("error = %v, want ErrAssetNotFound", err)
	}
}
