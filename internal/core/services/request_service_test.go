package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"campus-assetdesk/internal/adapters/persistence/models"
	"campus-assetdesk/internal/core/domain"

	"gorm.io/gorm"
)

func assetStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var asset models.Asset
	if err := db.First(&asset, id).Error; err != nil {
		t.Fatalf("load asset %d: %v", id, err)
	}
	return asset.Status
}

func TestRequestCreateForcesPending(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	student := seedUser(t, db, "student1", domain.RoleStudent)
	asset := seedAsset(t, db, "laptop", domain.AssetAvailable)

	request, err := svc.Create(ctx, asCaller(student), asset.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if request.Status != string(domain.RequestPending) {
		t.Errorf("Status = %q, want PENDING", request.Status)
	}
	if request.UserID != student.ID {
		t.Errorf("UserID = %d, want %d", request.UserID, student.ID)
	}
	if request.RequestDate.IsZero() {
		t.Error("RequestDate was not stamped")
	}
	if request.Asset == nil || request.Asset.ID != asset.ID {
		t.Error("Asset relation not loaded")
	}
}

func TestRequestCreateMissingAsset(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)

	student := seedUser(t, db, "student1", domain.RoleStudent)

	if _, err := svc.Create(context.Background(), asCaller(student), 9999); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("error = %v, want ErrAssetNotFound", err)
	}
}

func TestRequestListScoping(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", domain.RoleStudent)
	bob := seedUser(t, db, "bob", domain.RoleStudent)
	admin := seedUser(t, db, "admin1", domain.RoleAdmin)
	asset := seedAsset(t, db, "camera", domain.AssetAvailable)

	if _, err := svc.Create(ctx, asCaller(alice), asset.ID); err != nil {
		t.Fatalf("alice create: %v", err)
	}
	if _, err := svc.Create(ctx, asCaller(bob), asset.ID); err != nil {
		t.Fatalf("bob create: %v", err)
	}

	aliceView, err := svc.List(ctx, asCaller(alice))
	if err != nil {
		t.Fatalf("alice list: %v", err)
	}
	if len(aliceView) != 1 || aliceView[0].UserID != alice.ID {
		t.Errorf("alice sees %d requests, want only her own", len(aliceView))
	}

	adminView, err := svc.List(ctx, asCaller(admin))
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(adminView) != 2 {
		t.Errorf("admin sees %d requests, want 2", len(adminView))
	}
}

func TestRequestListByUserOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", domain.RoleStudent)
	bob := seedUser(t, db, "bob", domain.RoleStudent)
	admin := seedUser(t, db, "admin1", domain.RoleAdmin)
	asset := seedAsset(t, db, "camera", domain.AssetAvailable)

	if _, err := svc.Create(ctx, asCaller(bob), asset.ID); err != nil {
		t.Fatalf("bob create: %v", err)
	}

	if _, err := svc.ListByUser(ctx, asCaller(alice), bob.ID); !errors.Is(err, ErrRequestNotOwner) {
		t.Errorf("student querying another user: error = %v, want ErrRequestNotOwner", err)
	}

	own, err := svc.ListByUser(ctx, asCaller(bob), bob.ID)
	if err != nil {
		t.Fatalf("bob querying himself: %v", err)
	}
	if len(own) != 1 {
		t.Errorf("bob sees %d requests, want 1", len(own))
	}

	if _, err := svc.ListByUser(ctx, asCaller(admin), bob.ID); err != nil {
		t.Errorf("admin querying bob: %v", err)
	}
}

func TestRequestGetByIDOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", domain.RoleStudent)
	bob := seedUser(t, db, "bob", domain.RoleStudent)
	asset := seedAsset(t, db, "camera", domain.AssetAvailable)

	request, err := svc.Create(ctx, asCaller(bob), asset.ID)
	if err != nil {
		t.Fatalf("bob create: %v", err)
	}

	if _, err := svc.GetByID(ctx, asCaller(alice), request.ID); !errors.Is(err, ErrRequestNotOwner) {
		t.Errorf("error = %v, want ErrRequestNotOwner", err)
	}
	if _, err := svc.GetByID(ctx, asCaller(bob), request.ID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, asCaller(alice), 9999); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("error = %v, want ErrRequestNotFound", err)
	}
}

func TestRequestApproveReservesAsset(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	student := seedUser(t, db, "student1", domain.RoleStudent)
	admin := seedUser(t, db, "admin1", domain.RoleAdmin)
	asset := seedAsset(t, db, "laptop", domain.AssetAvailable)

	request, err := svc.Create(ctx, asCaller(student), asset.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	approved, err := svc.UpdateStatus(ctx, asCaller(admin), request.ID, "APPROVED", "pick up at front desk")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if approved.Status != string(domain.RequestApproved) {
		t.Errorf("Status = %q, want APPROVED", approved.Status)
	}
	if approved.Comments != "pick up at front desk" {
		t.Errorf("Comments = %q", approved.Comments)
	}
	if got := assetStatus(t, db, asset.ID); got != string(domain.AssetReserved) {
		t.Errorf("asset status = %q, want RESERVED", got)
	}
}

func TestRequestSecondApprovalConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", domain.RoleStudent)
	bob := seedUser(t, db, "bob", domain.RoleStudent)
	admin := seedUser(t, db, "admin1", domain.RoleAdmin)
	asset := seedAsset(t, db, "projector", domain.AssetAvailable)

	first, err := svc.Create(ctx, asCaller(alice), asset.ID)
	if err != nil {
		t.Fatalf("alice create: %v", err)
	}
	second, err := svc.Create(ctx, asCaller(bob), asset.ID)
	if err != nil {
		t.Fatalf("bob create: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, asCaller(admin), first.ID, "APPROVED", ""); err != nil {
		t.Fatalf("first approval: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, asCaller(admin), second.ID, "APPROVED", ""); !errors.Is(err, ErrAssetAlreadyReserved) {
		t.Fatalf("second approval error = %v, want ErrAssetAlreadyReserved", err)
	}

	// The losing request is untouched.
	got, err := svc.GetByID(ctx, asCaller(admin), second.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != string(domain.RequestPending) {
		t.Errorf("losing request status = %q, want PENDING", got.Status)
	}
}

func TestRequestUpdateStatusAdminOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	student := seedUser(t, db, "student1", domain.RoleStudent)
	asset := seedAsset(t, db, "laptop", domain.AssetAvailable)

	request, err := svc.Create(ctx, asCaller(student), asset.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, asCaller(student), request.ID, "APPROVED", ""); !errors.Is(err, ErrAdminOnly) {
		t.Errorf("error = %v, want ErrAdminOnly", err)
	}
}

func TestRequestUpdateStatusValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin1", domain.RoleAdmin)

	if _, err := svc.UpdateStatus(ctx, asCaller(admin), 1, "SHIPPED", ""); !errors.Is(err, ErrRequestInvalidStatus) {
		t.Errorf("error = %v, want ErrRequestInvalidStatus", err)
	}
	if _, err := svc.UpdateStatus(ctx, asCaller(admin), 9999, "APPROVED", ""); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("error = %v, want ErrRequestNotFound", err)
	}
}

func TestRequestRejectAfterApproveFreesAsset(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	student := seedUser(t, db, "student1", domain.RoleStudent)
	admin := seedUser(t, db, "admin1", domain.RoleAdmin)
	asset := seedAsset(t, db, "laptop", domain.AssetAvailable)

	request, err := svc.Create(ctx, asCaller(student), asset.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, asCaller(admin), request.ID, "APPROVED", ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, asCaller(admin), request.ID, "REJECTED", "returned late"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	if got := assetStatus(t, db, asset.ID); got != string(domain.AssetAvailable) {
		t.Errorf("asset status = %q, want AVAILABLE after unapproval", got)
	}
}

func TestRequestDeleteApprovedFreesAsset(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	student := seedUser(t, db, "student1", domain.RoleStudent)
	admin := seedUser(t, db, "admin1", domain.RoleAdmin)
	asset := seedAsset(t, db, "laptop", domain.AssetAvailable)

	request, err := svc.Create(ctx, asCaller(student), asset.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, asCaller(admin), request.ID, "APPROVED", ""); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := svc.Delete(ctx, asCaller(student), request.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := assetStatus(t, db, asset.ID); got != string(domain.AssetAvailable) {
		t.Errorf("asset status = %q, want AVAILABLE after request deletion", got)
	}
}

func TestRequestDeleteOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", domain.RoleStudent)
	bob := seedUser(t, db, "bob", domain.RoleStudent)
	admin := seedUser(t, db, "admin1", domain.RoleAdmin)
	asset := seedAsset(t, db, "camera", domain.AssetAvailable)

	request, err := svc.Create(ctx, asCaller(bob), asset.ID)
	if err != nil {
		t.Fatalf("bob create: %v", err)
	}

	if err := svc.Delete(ctx, asCaller(alice), request.ID); !errors.Is(err, ErrRequestNotOwner) {
		t.Errorf("error = %v, want ErrRequestNotOwner", err)
	}
	if err := svc.Delete(ctx, asCaller(admin), request.ID); err != nil {
		t.Errorf("admin delete failed: %v", err)
	}
}

func TestRequestConcurrentApprovalSingleWinner(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin1", domain.RoleAdmin)
	asset := seedAsset(t, db, "telescope", domain.AssetAvailable)

	const contenders = 4
	ids := make([]uint, contenders)
	for i := 0; i < contenders; i++ {
		student := seedUser(t, db, "student"+string(rune('a'+i)), domain.RoleStudent)
		request, err := svc.Create(ctx, asCaller(student), asset.ID)
		if err != nil {
			t.Fatalf("create request %d: %v", i, err)
		}
		ids[i] = request.ID
	}

	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for _, id := range ids {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := svc.UpdateStatus(ctx, asCaller(admin), id, "APPROVED", "")
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrAssetAlreadyReserved):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Errorf("wins = %d, want exactly 1", wins)
	}
	if conflicts != contenders-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, contenders-1)
	}
	if got := assetStatus(t, db, asset.ID); got != string(domain.AssetReserved) {
		t.Errorf("asset status = %q, want RESERVED", got)
	}

	var approved int64
	if err := db.Model(&models.Request{}).
		Where("asset_id = ?", asset.ID).
		Where("status = ?", string(domain.RequestApproved)).
		Count(&approved).Error; err != nil {
		t.Fatalf("count approved: %v", err)
	}
	if approved != 1 {
		t.Errorf("approved requests = %d, want 1", approved)
	}
}
