// internal/app/system/limits/limits.go
package limits

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// Request body size limits for the JSON API.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBody is the largest request body any API route accepts.
	// Directory records are a handful of short strings.
	MaxJSONBody = 64 << 10 // 64 KB
)

// JSONBody caps request bodies at MaxJSONBody. A body over the cap fails
// to decode and is answered as a malformed request.
func JSONBody(next http.Handler) http.Handler {
	return middleware.RequestSize(MaxJSONBody)(next)
}
