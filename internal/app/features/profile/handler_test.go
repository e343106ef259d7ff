package profile_test

import (
	"errors"
	"net/http"
	"testing"

	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	"github.com/dalemusser/memberhub/internal/app/features/profile"
	adminstore "github.com/dalemusser/memberhub/internal/app/store/admins"
	"github.com/dalemusser/memberhub/internal/app/system/auth"
	"github.com/dalemusser/memberhub/internal/app/system/identity"
	"github.com/dalemusser/memberhub/internal/app/system/inputval"
	"github.com/dalemusser/memberhub/internal/app/system/token"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/dalemusser/memberhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type env struct {
	fx     *testutil.Fixtures
	admins *adminstore.Store
	tokens *token.Service
	router chi.Router
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	tokens, err := token.New([]byte("test-secret"))
	if err != nil {
		t.Fatalf("token.New: %v", err)
	}
	h := profile.NewHandler(db, inputval.New(inputval.Options{}), uierrors.NewErrorLogger(logger), logger)
	authn := auth.NewAuthenticator(tokens, identity.New(db), logger)
	return &env{
		fx:     testutil.NewFixtures(t, db),
		admins: adminstore.New(db),
		tokens: tokens,
		router: profile.Routes(h, authn),
	}
}

func (e *env) issue(t *testing.T, id string, role models.Role) string {
	t.Helper()
	tok, err := e.tokens.Issue(id, role)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return tok
}

func (e *env) do(t *testing.T, method, tok string, body any) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	e.router.ServeHTTP(rec, testutil.BearerRequest(t, method, "/", tok, body))
	return rec
}

func TestServeProfile(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	a := e.fx.CreateAdmin(ctx, "Root", "root@x.com", "pw")

	rec := e.do(t, "GET", e.issue(t, a.ID, models.RoleAdmin), nil)
	rec.AssertStatus(t, http.StatusOK)
	got := testutil.DecodeJSON[map[string]any](t, rec)
	if got["uid"] != a.ID || got["email"] != "root@x.com" || got["role"] != "admin" {
		t.Errorf("profile = %v", got)
	}
	if _, ok := got["passwordHash"]; ok {
		t.Error("profile leaked the password hash")
	}
}

func TestServeProfile_Denied(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	v := e.fx.CreateVolunteer(ctx, "Vee", "vee@x.com", "pw")

	e.do(t, "GET", e.issue(t, v.ID, models.RoleVolunteer), nil).AssertStatus(t, http.StatusForbidden)
	e.do(t, "GET", "", nil).AssertStatus(t, http.StatusUnauthorized)

	rec := e.do(t, "GET", e.issue(t, "ghost", models.RoleAdmin), nil)
	rec.AssertStatus(t, http.StatusNotFound)
	if msg := testutil.Message(t, rec); msg != "Admin profile not found" {
		t.Errorf("message = %q", msg)
	}
}

func TestUpdateProfile_Existing(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	a := e.fx.CreateAdmin(ctx, "Root", "root@x.com", "pw")

	rec := e.do(t, "PUT", e.issue(t, a.ID, models.RoleAdmin), map[string]string{"name": "Root Renamed", "mobile": "555"})
	rec.AssertStatus(t, http.StatusOK)
	got := testutil.DecodeJSON[map[string]any](t, rec)
	if got["name"] != "Root Renamed" || got["mobile"] != "555" || got["email"] != "root@x.com" {
		t.Errorf("updated = %v", got)
	}
	if got["updatedAt"] == "" {
		t.Error("expected updatedAt to be stamped")
	}
}

func TestUpdateProfile_LazyCreate(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	tok := e.issue(t, "fresh-admin", models.RoleAdmin)

	rec := e.do(t, "PUT", tok, map[string]string{"mobile": "555"})
	rec.AssertStatus(t, http.StatusOK)
	got := testutil.DecodeJSON[map[string]any](t, rec)
	if got["uid"] != "fresh-admin" || got["name"] != models.PlaceholderAdminName || got["email"] != models.PlaceholderAdminEmail {
		t.Errorf("created = %v", got)
	}

	stored, err := e.admins.GetByID(ctx, "fresh-admin")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Mobile != "555" {
		t.Errorf("mobile = %q", stored.Mobile)
	}

	// A second missing admin cannot also take the placeholder email.
	rec = e.do(t, "PUT", e.issue(t, "other-admin", models.RoleAdmin), map[string]string{"name": "Other"})
	rec.AssertStatus(t, http.StatusConflict)
}

func TestUpdateProfile_PlaceholderHeldByVolunteer(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fx.CreateVolunteer(ctx, "Squatter", models.PlaceholderAdminEmail, "pw")

	rec := e.do(t, "PUT", e.issue(t, "fresh-admin", models.RoleAdmin), map[string]string{"name": "New"})
	rec.AssertStatus(t, http.StatusConflict)
	got := testutil.DecodeJSON[map[string]any](t, rec)
	if got["message"] != "Email already in use" {
		t.Errorf("message = %v", got["message"])
	}
	if _, leaked := got["role"]; leaked {
		t.Errorf("conflict body must not name the holder's role: %v", got)
	}

	if _, err := e.admins.GetByID(ctx, "fresh-admin"); !errors.Is(err, adminstore.ErrNotFound) {
		t.Errorf("admin should not have been created, err = %v", err)
	}
}

func TestUpdateProfile_Rejects(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	a := e.fx.CreateAdmin(ctx, "Root", "root@x.com", "pw")
	v := e.fx.CreateVolunteer(ctx, "Vee", "vee@x.com", "pw")
	adminTok := e.issue(t, a.ID, models.RoleAdmin)

	e.do(t, "PUT", e.issue(t, v.ID, models.RoleVolunteer), map[string]string{"name": "X"}).AssertStatus(t, http.StatusForbidden)
	e.do(t, "PUT", "", map[string]string{"name": "X"}).AssertStatus(t, http.StatusUnauthorized)
	e.do(t, "PUT", adminTok, map[string]string{"name": " "}).AssertStatus(t, http.StatusBadRequest)
	e.do(t, "PUT", adminTok, "{bad").AssertStatus(t, http.StatusBadRequest)
}
