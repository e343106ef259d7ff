// Package respond writes JSON response bodies and classified errors.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/memberhub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]any{"message": msg})
}

// Error writes err as {"message": ..., <fields>} with the status of its kind.
// Unclassified errors become a StoreFailure: the cause is logged and the
// client only sees a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error, log *zap.Logger) {
	e := apperr.As(err)
	if e.Kind == apperr.StoreFailure && log != nil {
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(e.Err))
	}
	JSON(w, apperr.Status(e.Kind), map[string]string{"message": e.Message})
}

// DecodeJSON reads a JSON object body into dst. An empty or malformed body
// is a validation error carrying badBody as its message.
func DecodeJSON(r *http.Request, dst any, badBody string) error {
	if r.Body == nil {
		return apperr.ValidationError(badBody)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.ValidationError(badBody)
	}
	return nil
}
