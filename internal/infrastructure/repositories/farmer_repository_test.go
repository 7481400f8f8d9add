package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/infrastructure/database"
)

func newTestFarmerRepo(t *testing.T) domain.FarmerRepository {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&FarmerRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewFarmerRepository(db)
}

func TestFarmerRepository_CreateAndFind(t *testing.T) {
	repo := newTestFarmerRepo(t)
	ctx := context.Background()

	farmer := &domain.Farmer{ID: "farmer-1", Name: "Rajesh Kumar", Phone: "+919876543210", Location: "Alwar, Rajasthan"}
	if err := repo.Create(ctx, farmer); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if farmer.CreatedAt.IsZero() {
		t.Error("Create did not backfill CreatedAt")
	}

	byID, err := repo.FindByID(ctx, "farmer-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID.Name != "Rajesh Kumar" {
		t.Errorf("FindByID name = %q", byID.Name)
	}

	byPhone, err := repo.FindByPhone(ctx, "+919876543210")
	if err != nil {
		t.Fatalf("FindByPhone: %v", err)
	}
	if byPhone.ID != "farmer-1" {
		t.Errorf("FindByPhone id = %q", byPhone.ID)
	}
}

func TestFarmerRepository_NotFound(t *testing.T) {
	repo := newTestFarmerRepo(t)
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, "nope"); !errors.Is(err, domain.ErrFarmerNotFound) {
		t.Errorf("FindByID = %v, want ErrFarmerNotFound", err)
	}
	if _, err := repo.FindByPhone(ctx, "+910000000000"); !errors.Is(err, domain.ErrFarmerNotFound) {
		t.Errorf("FindByPhone = %v, want ErrFarmerNotFound", err)
	}
	if err := repo.Delete(ctx, "nope"); !errors.Is(err, domain.ErrFarmerNotFound) {
		t.Errorf("Delete = %v, want ErrFarmerNotFound", err)
	}
}

func TestFarmerRepository_ListOrder(t *testing.T) {
	repo := newTestFarmerRepo(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"farmer-b", "farmer-a", "farmer-c"} {
		f := &domain.Farmer{ID: id, Phone: "+9198765432" + id[len(id)-1:] + "0", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.Create(ctx, f); err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	// Registration order, not lexical order.
	want := []string{"farmer-b", "farmer-a", "farmer-c"}
	for i := range want {
		if list[i].ID != want[i] {
			t.Fatalf("list order = %v, want %v", list, want)
		}
	}
}

func TestFarmerRepository_Delete(t *testing.T) {
	repo := newTestFarmerRepo(t)
	ctx := context.Background()

	f := &domain.Farmer{ID: "farmer-1", Phone: "+919876543210"}
	if err := repo.Create(ctx, f); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, "farmer-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, "farmer-1"); !errors.Is(err, domain.ErrFarmerNotFound) {
		t.Errorf("FindByID after delete = %v, want ErrFarmerNotFound", err)
	}
}
