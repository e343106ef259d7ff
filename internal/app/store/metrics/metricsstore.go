package metricsstore

import (
	"context"
	"fmt"
	"time"

	userstore "github.com/dalemusser/memberhub/internal/app/store/users"
	volunteerstore "github.com/dalemusser/memberhub/internal/app/store/volunteers"
	"github.com/dalemusser/memberhub/internal/app/system/timestamp"
	"go.mongodb.org/mongo-driver/mongo"
)

// ActiveWindow is how far back an update counts a user as active.
const ActiveWindow = 30 * 24 * time.Hour

// Stats is the admin dashboard payload.
type Stats struct {
	TotalVolunteers int64 `json:"totalVolunteers"`
	TotalUsers      int64 `json:"totalUsers"`
	NewThisMonth    int64 `json:"newThisMonth"`
	ActiveUsers     int64 `json:"activeUsers"`
}

// FetchDashboardStats computes the dashboard counters relative to now.
// Unlike the per-record reads, any store error fails the whole call.
func FetchDashboardStats(ctx context.Context, db *mongo.Database, now time.Time) (Stats, error) {
	var out Stats
	var err error

	volunteers := volunteerstore.New(db)
	users := userstore.New(db)

	if out.TotalVolunteers, err = volunteers.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count volunteers: %w", err)
	}
	if out.TotalUsers, err = users.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count users: %w", err)
	}

	values, err := volunteers.CreatedAtValues(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("volunteer createdAt: %w", err)
	}
	out.NewThisMonth = CountNewThisMonth(values, now)

	// The cutoff is compared as a string, so values stored in another shape
	// (date-only, offset suffix) may be miscounted near the boundary.
	if out.ActiveUsers, err = users.CountUpdatedAfter(ctx, ActiveCutoff(now)); err != nil {
		return Stats{}, fmt.Errorf("count active users: %w", err)
	}
	return out, nil
}

// CountNewThisMonth counts values that parse to a time in the same calendar
// month and year as now. Values that do not parse are skipped.
func CountNewThisMonth(values []string, now time.Time) int64 {
	var n int64
	for _, v := range values {
		t, err := timestamp.Parse(v)
		if err != nil {
			continue
		}
		if timestamp.SameMonth(t, now) {
			n++
		}
	}
	return n
}

// ActiveCutoff is the updatedAt string a user must sort after to be active.
func ActiveCutoff(now time.Time) string {
	return timestamp.Format(now.Add(-ActiveWindow))
}
