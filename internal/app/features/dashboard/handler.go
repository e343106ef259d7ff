// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"
	"time"

	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	"github.com/dalemusser/memberhub/internal/app/policy/accesspolicy"
	metricsstore "github.com/dalemusser/memberhub/internal/app/store/metrics"
	"github.com/dalemusser/memberhub/internal/app/system/authz"
	"github.com/dalemusser/memberhub/internal/app/system/respond"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger

	// Now is the clock the month and activity windows are measured from.
	Now func() time.Time
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Now:    time.Now,
	}
}

// ServeStats handles GET /admin/dashboard-stats.
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	p, err := authz.Authorize(r, accesspolicy.OpDashboardStats, "")
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard stats")
	defer cancel()

	stats, err := metricsstore.FetchDashboardStats(ctx, h.DB, h.Now())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard stats failed", err)
		return
	}

	h.Log.Debug("dashboard stats served", zap.String("admin", p.ID))
	respond.JSON(w, http.StatusOK, stats)
}
