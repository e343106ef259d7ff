package userstore_test

import (
	"testing"

	userstore "github.com/dalemusser/memberhub/internal/app/store/users"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/dalemusser/memberhub/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{Name: "Ana", Mobile: "555", CreatedBy: "admin"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if created.MaritalStatus != "single" {
		t.Errorf("MaritalStatus: got %q, want single", created.MaritalStatus)
	}
	if created.CreatedAt == "" || created.UpdatedAt == "" {
		t.Error("expected timestamps to be set")
	}
	if created.UpdatedBy != "admin" {
		t.Errorf("UpdatedBy: got %q, want admin", created.UpdatedBy)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Name != "Ana" || found.Mobile != "555" || found.MaritalStatus != "single" {
		t.Errorf("round trip mismatch: %+v", found)
	}
	if found.NameCI == "" {
		t.Error("expected NameCI to be stored")
	}
}

func TestStore_Create_KeepsClientValues(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		ID:            "client-id",
		Name:          "Bo",
		MaritalStatus: "married",
		CreatedAt:     "2020-01-01",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID != "client-id" {
		t.Errorf("ID: got %q", created.ID)
	}
	if created.MaritalStatus != "married" {
		t.Errorf("MaritalStatus: got %q", created.MaritalStatus)
	}
	if created.CreatedAt != "2020-01-01" {
		t.Errorf("CreatedAt should be stored verbatim, got %q", created.CreatedAt)
	}
}

func TestStore_Create_DuplicateID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{ID: "dup", Name: "One"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.User{ID: "dup", Name: "Two"})
	if err != userstore.ErrDuplicateID {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, "missing"); err != userstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Zoe Adams")
	fixtures.CreateUser(ctx, "bruno Diaz")
	fixtures.CreateUser(ctx, "Ana Zoe")

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List: got %d users, want 3", len(all))
	}
	if all[0].Name != "Ana Zoe" || all[1].Name != "bruno Diaz" {
		t.Errorf("expected case-insensitive name order, got %q, %q, %q", all[0].Name, all[1].Name, all[2].Name)
	}

	// Search is case-insensitive and matches anywhere in the name.
	matched, err := store.List(ctx, "ZOE")
	if err != nil {
		t.Fatalf("List(q) failed: %v", err)
	}
	if len(matched) != 2 {
		t.Errorf("List(ZOE): got %d users, want 2", len(matched))
	}
}

func TestStore_List_EmptyIsNotNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if users == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ana")

	updated, err := store.Update(ctx, u.ID, models.UserPatch{
		Name:      strPtr("Ana  Maria"),
		Address:   strPtr("1 Main St"),
		UpdatedBy: strPtr("vol@x.com"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Ana Maria" {
		t.Errorf("Name: got %q, want normalized %q", updated.Name, "Ana Maria")
	}
	if updated.Address != "1 Main St" {
		t.Errorf("Address: got %q", updated.Address)
	}
	if updated.UpdatedBy != "vol@x.com" {
		t.Errorf("UpdatedBy: got %q", updated.UpdatedBy)
	}
	// Absent fields are untouched.
	if updated.MaritalStatus != "single" {
		t.Errorf("MaritalStatus changed to %q", updated.MaritalStatus)
	}
	if updated.CreatedAt != u.CreatedAt {
		t.Errorf("CreatedAt changed: %q -> %q", u.CreatedAt, updated.CreatedAt)
	}
}

func TestStore_Update_EmptyPatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ana")
	got, err := store.Update(ctx, u.ID, models.UserPatch{})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Name != "Ana" {
		t.Errorf("Name: got %q", got.Name)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Update(ctx, "missing", models.UserPatch{Name: strPtr("x")})
	if err != userstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Ana")
	if err := store.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, u.ID); err != userstore.ErrNotFound {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}
}

func TestStore_CountUpdatedAfter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUserUpdatedAt(ctx, "old", "2024-01-01T00:00:00.000000")
	fixtures.CreateUserUpdatedAt(ctx, "new", "2024-03-10T00:00:00.000000")
	// Date-only strings compare lexicographically: "2024-03-01" < "2024-03-01T...".
	fixtures.CreateUserUpdatedAt(ctx, "day", "2024-03-01")

	n, err := store.CountUpdatedAfter(ctx, "2024-03-01T00:00:00.000000")
	if err != nil {
		t.Fatalf("CountUpdatedAfter failed: %v", err)
	}
	if n != 1 {
		t.Errorf("CountUpdatedAfter: got %d, want 1", n)
	}

	total, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Count: got %d, want 3", total)
	}
}
