package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"food-order/internal/microservices/identity/models"
)

var errBadToken = errors.New("invalid session token")

type sessionClaims struct {
	jwt.RegisteredClaims
}

// TokenIssuer signs session tokens. The token only names the session; the
// session store decides whether it is still alive.
type TokenIssuer struct {
	secret []byte
	issuer string
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), issuer: "food-order"}
}

func (t *TokenIssuer) Issue(rec models.SessionRecord) (string, error) {
	claims := sessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        rec.ID,
		Subject:   rec.AccountID,
		Issuer:    t.issuer,
		IssuedAt:  jwt.NewNumericDate(rec.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(rec.ExpiresAt),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse returns the session and account ids carried by a valid token.
func (t *TokenIssuer) Parse(token string, now time.Time) (sessionID, accountID string, err error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !parsed.Valid || claims.ID == "" || claims.Subject == "" {
		return "", "", errBadToken
	}
	return claims.ID, claims.Subject, nil
}
