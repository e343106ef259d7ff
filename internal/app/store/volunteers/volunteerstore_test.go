package volunteerstore_test

import (
	"sync"
	"testing"

	volunteerstore "github.com/dalemusser/memberhub/internal/app/store/volunteers"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/dalemusser/memberhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func strPtr(s string) *string { return &s }

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Volunteer{
		Name:         "  Ana   Lima ",
		Email:        "  ana@x.com ",
		PasswordHash: "$2a$10$placeholder",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "ana@x.com" {
		t.Errorf("Email: got %q, want trimmed", created.Email)
	}
	if created.Name != "Ana Lima" {
		t.Errorf("Name: got %q", created.Name)
	}
	if created.MaritalStatus != "single" {
		t.Errorf("MaritalStatus: got %q", created.MaritalStatus)
	}
	if created.CreatedBy != volunteerstore.DefaultCreatedBy {
		t.Errorf("CreatedBy: got %q", created.CreatedBy)
	}
	if created.CreatedAt == "" || created.UpdatedAt == "" {
		t.Error("expected timestamps to be set")
	}

	found, err := store.GetByEmail(ctx, "ana@x.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("GetByEmail: got %q, want %q", found.ID, created.ID)
	}
	if found.PasswordHash != "$2a$10$placeholder" {
		t.Error("expected password hash to be stored")
	}
}

func TestStore_GetByEmail_CaseSensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateVolunteer(ctx, "Ana", "ana@x.com", "")

	if _, err := store.GetByEmail(ctx, "ANA@x.com"); err != volunteerstore.ErrNotFound {
		t.Errorf("expected ErrNotFound for different case, got %v", err)
	}
}

func TestStore_Create_Duplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Create(ctx, models.Volunteer{Name: "One", Email: "dup@x.com"})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err = store.Create(ctx, models.Volunteer{Name: "Two", Email: "dup@x.com"})
	if err != volunteerstore.ErrDuplicateEmail {
		t.Errorf("same email: expected ErrDuplicateEmail, got %v", err)
	}

	_, err = store.Create(ctx, models.Volunteer{ID: first.ID, Name: "Three", Email: "other@x.com"})
	if err != volunteerstore.ErrDuplicateID {
		t.Errorf("same id: expected ErrDuplicateID, got %v", err)
	}
}

func TestStore_Create_ConcurrentSameEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Create(ctx, models.Volunteer{Name: "Racer", Email: "race@x.com"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch err {
		case nil:
			ok++
		case volunteerstore.ErrDuplicateEmail:
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Errorf("expected exactly one successful insert, got %d", ok)
	}

	count, err := db.Collection("volunteers").CountDocuments(ctx, bson.M{"email": "race@x.com"})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("stored %d records with the same email", count)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	v := fixtures.CreateVolunteer(ctx, "Ana", "ana@x.com", "secret1")

	updated, err := store.Update(ctx, v.ID, volunteerstore.Update{
		Patch: models.VolunteerPatch{
			Mobile: strPtr("555"),
			// Patch email/password are ignored; only Update.Email/PasswordHash apply.
			Email: strPtr("ignored@x.com"),
		},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Mobile != "555" {
		t.Errorf("Mobile: got %q", updated.Mobile)
	}
	if updated.Email != "ana@x.com" {
		t.Errorf("Email should be unchanged, got %q", updated.Email)
	}
	if updated.PasswordHash != v.PasswordHash {
		t.Error("password hash should be unchanged")
	}

	updated, err = store.Update(ctx, v.ID, volunteerstore.Update{
		Email:        strPtr("new@x.com"),
		PasswordHash: strPtr("$2a$10$other"),
	})
	if err != nil {
		t.Fatalf("Update email failed: %v", err)
	}
	if updated.Email != "new@x.com" {
		t.Errorf("Email: got %q", updated.Email)
	}
	if updated.PasswordHash != "$2a$10$other" {
		t.Error("expected new password hash")
	}
}

func TestStore_Update_EmailConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateVolunteer(ctx, "Ana", "ana@x.com", "")
	bo := fixtures.CreateVolunteer(ctx, "Bo", "bo@x.com", "")

	_, err := store.Update(ctx, bo.ID, volunteerstore.Update{Email: strPtr("ana@x.com")})
	if err != volunteerstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Update(ctx, "missing", volunteerstore.Update{Patch: models.VolunteerPatch{Name: strPtr("x")}})
	if err != volunteerstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListDeleteCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateVolunteer(ctx, "Ana", "ana@x.com", "")
	fixtures.CreateVolunteer(ctx, "Bo", "bo@x.com", "")

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Ana" {
		t.Fatalf("List: got %+v", list)
	}

	if err := store.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, a.ID); err != volunteerstore.ErrNotFound {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count: got %d, want 1", n)
	}
}

func TestStore_CreatedAtValues(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateVolunteerAt(ctx, "A", "a@x.com", "", "2024-03-05T10:00:00")
	fixtures.CreateVolunteerAt(ctx, "B", "b@x.com", "", "garbage")
	// A raw document with a non-string createdAt.
	if _, err := db.Collection("volunteers").InsertOne(ctx, bson.M{"_id": "raw", "email": "raw@x.com", "createdAt": 42}); err != nil {
		t.Fatalf("insert raw failed: %v", err)
	}

	values, err := store.CreatedAtValues(ctx)
	if err != nil {
		t.Fatalf("CreatedAtValues failed: %v", err)
	}
	if len(values) != 3 {
		t.Fatalf("got %d values, want 3", len(values))
	}
	seen := map[string]bool{}
	for _, v := range values {
		seen[v] = true
	}
	for _, want := range []string{"2024-03-05T10:00:00", "garbage", ""} {
		if !seen[want] {
			t.Errorf("missing value %q in %v", want, values)
		}
	}
}
