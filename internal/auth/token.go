package auth

import (
	"time"

	"booth-pos-backend/internal/model"
	apperrors "booth-pos-backend/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
)

type tokenClaims struct {
	Role    model.Role        `json:"role"`
	Access  model.AccessScope `json:"access"`
	EventID *int              `json:"event_id,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs a JWT carrying the (role, access, event) triple.
func IssueToken(secret string, ttl time.Duration, claims model.Claims) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role:    claims.Role,
		Access:  claims.Access,
		EventID: claims.EventID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return token.SignedString([]byte(secret))
}

// ParseToken validates the signature and expiry and returns the verified
// claims. Any failure maps to ErrUnauthorized; callers never see parser
// internals.
func ParseToken(secret, tokenString string) (model.Claims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return model.Claims{}, apperrors.ErrUnauthorized
	}

	return model.Claims{
		Subject: claims.Subject,
		Role:    claims.Role,
		Access:  claims.Access,
		EventID: claims.EventID,
	}, nil
}
