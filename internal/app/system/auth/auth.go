package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/memberhub/internal/app/system/apperr"
	"github.com/dalemusser/memberhub/internal/app/system/respond"
	"github.com/dalemusser/memberhub/internal/app/system/token"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-principal helpers                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const principalKey ctxKey = "principal"

// CurrentPrincipal returns the principal resolved by the middleware.
func CurrentPrincipal(r *http.Request) (*models.Principal, bool) {
	p, ok := r.Context().Value(principalKey).(*models.Principal)
	return p, ok && p != nil
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// WithTestPrincipal injects p into the request context. Handler tests use
// it to skip token handling.
func WithTestPrincipal(r *http.Request, p *models.Principal) *http.Request {
	return r.WithContext(WithPrincipal(r.Context(), p))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Bearer middleware                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// ErrPrincipalNotFound is returned by a PrincipalLoader when the token's
// principal no longer exists.
var ErrPrincipalNotFound = errors.New("auth: principal not found")

// PrincipalLoader resolves the record behind validated token claims.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, id string, role models.Role) (*models.Principal, error)
}

// Messages returned by the middleware.
const (
	MsgUnauthenticated   = "Missing or invalid token"
	MsgPrincipalNotFound = "User not found"
)

// Authenticator turns a bearer token into a principal on the request context.
type Authenticator struct {
	Tokens *token.Service
	Loader PrincipalLoader
	Log    *zap.Logger
}

// NewAuthenticator wires the token service and principal loader.
func NewAuthenticator(tokens *token.Service, loader PrincipalLoader, logger *zap.Logger) *Authenticator {
	return &Authenticator{Tokens: tokens, Loader: loader, Log: logger}
}

// Middleware requires a valid token whose principal still exists.
//   - missing/invalid token: 401
//   - principal deleted:     404
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.claims(w, r)
		if !ok {
			return
		}
		p, err := a.Loader.LoadPrincipal(r.Context(), claims.UID, claims.Role)
		if err != nil {
			if errors.Is(err, ErrPrincipalNotFound) {
				respond.Error(w, r, apperr.PrincipalNotFoundError(MsgPrincipalNotFound), a.Log)
				return
			}
			respond.Error(w, r, apperr.Store(err), a.Log)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// TokenOnly requires a valid token but does not look the principal up. The
// principal carries only the id and role from the claims.
func (a *Authenticator) TokenOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.claims(w, r)
		if !ok {
			return
		}
		p := &models.Principal{ID: claims.UID, Role: claims.Role}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

func (a *Authenticator) claims(w http.ResponseWriter, r *http.Request) (*token.Claims, bool) {
	raw, ok := BearerToken(r)
	if !ok {
		respond.Error(w, r, apperr.UnauthenticatedError(MsgUnauthenticated), a.Log)
		return nil, false
	}
	claims, err := a.Tokens.Validate(raw)
	if err != nil {
		if a.Log != nil {
			a.Log.Debug("bearer token rejected", zap.String("path", r.URL.Path))
		}
		respond.Error(w, r, apperr.UnauthenticatedError(MsgUnauthenticated), a.Log)
		return nil, false
	}
	return claims, true
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, tok, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}
