// Package token issues and validates the signed session tokens used by
// the API. Tokens are stateless HS256 JWTs carrying the user identity;
// nothing is persisted.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// Lifetime is how long an issued session token stays valid.
	Lifetime = 24 * time.Hour

	issuer   = "locallens-api"
	audience = "locallens-client"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, wrong issuer or audience, and expiry. Callers get one
// uniform error so responses cannot distinguish the cause.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the decoded contents of a valid session token.
type Claims struct {
	UserID    uint
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer signs and verifies session tokens with a process-wide secret.
type Issuer struct {
	secret []byte
	// now is swappable for expiry tests
	now func() time.Time
}

// NewIssuer returns an Issuer signing with the given secret.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), now: time.Now}
}

// Issue produces a signed token over {userID, iat, exp=iat+24h}.
func (i *Issuer) Issue(userID uint) (string, error) {
	if len(i.secret) == 0 {
		return "", fmt.Errorf("session token secret not configured")
	}

	now := i.now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": issuer,
		"aud": audience,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": now.Add(Lifetime).Unix(),
		"jti": uuid.New().String(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Decode verifies the signature, expiry, issuer and audience of a token
// and returns its claims. It is a pure function of the token and the
// issuer's secret; every failure mode returns ErrInvalidToken.
func (i *Issuer) Decode(tokenString string) (Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{UserID: uint(userID)}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
