// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/memberhub/internal/app/system/apperr"
	"github.com/dalemusser/memberhub/internal/app/system/respond"
	"go.uber.org/zap"
)

// Messages for router-level failures.
const (
	MsgNotFound         = "Not found"
	MsgMethodNotAllowed = "Method not allowed"
)

// ErrorLogger writes JSON error responses and logs the ones that are the
// server's fault. Client errors are not logged.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

// Respond writes err. apperr values keep their kind, message and fields;
// anything else is a 500 with a generic message and the cause logged.
func (e *ErrorLogger) Respond(w http.ResponseWriter, r *http.Request, err error) {
	respond.Error(w, r, err, e.Log)
}

// LogServerError logs msg with err and writes a generic 500.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	e.Log.Error(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	respond.Message(w, http.StatusInternalServerError, apperr.GenericMessage)
}

// Handler serves router-level error responses.
// No DB needed.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Message(w, http.StatusNotFound, MsgNotFound)
}

// MethodNotAllowed answers a known route with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.Message(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}
