// Package token issues and validates the signed bearer tokens that carry a
// principal's id and role.
//
// Tokens are HS256 JWTs signed with a server-held secret. They carry no
// expiry and stay valid until the secret is rotated; there is no server-side
// session and no revocation list.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers every validation failure: missing, malformed,
	// wrongly signed, or carrying unusable claims.
	ErrInvalidToken = errors.New("token: invalid or missing token")

	errNoSecret = errors.New("token: signing secret is empty")
)

// Claims binds a principal to a token.
type Claims struct {
	UID  string      `json:"uid"`
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and validates tokens. It holds no mutable state and is safe
// for concurrent use.
type Service struct {
	secret []byte
	now    func() time.Time
}

// New builds a Service for the given HMAC secret.
func New(secret []byte) (*Service, error) {
	if len(secret) == 0 {
		return nil, errNoSecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Service{secret: key, now: time.Now}, nil
}

// Issue signs a token for the principal id and role.
func (s *Service) Issue(id string, role models.Role) (string, error) {
	if id == "" || !role.Valid() {
		return "", fmt.Errorf("token: cannot issue for id=%q role=%q", id, role)
	}
	claims := &Claims{
		UID:  id,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  id,
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Validate checks the signature and decodes the bound claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.UID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
