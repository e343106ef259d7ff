package dashboard_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/memberhub/internal/app/features/dashboard"
	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	metricsstore "github.com/dalemusser/memberhub/internal/app/store/metrics"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/dalemusser/memberhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*dashboard.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := dashboard.NewHandler(db, uierrors.NewErrorLogger(logger), logger)
	h.Now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	return h, testutil.NewFixtures(t, db)
}

func serve(h *dashboard.Handler, p *models.Principal) *testutil.ResponseRecorder {
	req := testutil.NewRequest("GET", "/")
	if p != nil {
		req = testutil.WithPrincipal(req, p)
	}
	rec := testutil.NewRecorder()
	dashboard.Routes(h).ServeHTTP(rec, req)
	return rec
}

func TestServeStats(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateVolunteerAt(ctx, "A", "a@x.com", "", "2024-03-01T00:00:00.000000")
	fx.CreateVolunteerAt(ctx, "B", "b@x.com", "", "2024-03-20T08:00:00.000000")
	fx.CreateVolunteerAt(ctx, "C", "c@x.com", "", "2024-02-29T23:59:59.000000")
	fx.CreateUserUpdatedAt(ctx, "Recent", "2024-03-10T00:00:00.000000")
	fx.CreateUserUpdatedAt(ctx, "Stale", "2024-01-01T00:00:00.000000")

	rec := serve(h, testutil.AdminPrincipal())
	rec.AssertStatus(t, http.StatusOK)
	got := testutil.DecodeJSON[metricsstore.Stats](t, rec)
	want := metricsstore.Stats{TotalVolunteers: 3, TotalUsers: 2, NewThisMonth: 2, ActiveUsers: 1}
	if got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
	for _, k := range []string{"totalVolunteers", "totalUsers", "newThisMonth", "activeUsers"} {
		rec.AssertContains(t, `"`+k+`"`)
	}
}

func TestServeStats_Empty(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h, testutil.AdminPrincipal())
	rec.AssertStatus(t, http.StatusOK)
	if got := testutil.DecodeJSON[metricsstore.Stats](t, rec); got != (metricsstore.Stats{}) {
		t.Errorf("stats = %+v, want zeros", got)
	}
}

func TestServeStats_AdminOnly(t *testing.T) {
	h, _ := newTestHandler(t)

	serve(h, testutil.VolunteerPrincipal("v1")).AssertStatus(t, http.StatusForbidden)
	serve(h, nil).AssertStatus(t, http.StatusUnauthorized)
}
