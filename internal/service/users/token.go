package users

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
)

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// Claims are the bearer token claims: sub = user id, jti = session id
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 bearer tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for u and returns it with its id and expiry
func (i *TokenIssuer) Issue(u *domain.User, now time.Time) (token, tokenID string, expiresAt time.Time, err error) {
	tokenID = uuid.NewString()
	expiresAt = now.Add(i.ttl)

	claims := Claims{
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, tokenID, expiresAt, nil
}

// Parse verifies the signature and expiry and returns the caller
func (i *TokenIssuer) Parse(token string) (domain.Actor, string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", errUnexpectedSigningMethod, t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return domain.Actor{}, "", err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || claims.ID == "" {
		return domain.Actor{}, "", fmt.Errorf("malformed claims")
	}
	return domain.Actor{UserID: userID, Role: domain.Role(claims.Role)}, claims.ID, nil
}
