// Package token issues and validates the HS256 caller-identity tokens the
// HTTP boundary uses to establish which ledger address a request acts as.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "ticketd/pkg/domain-errors"
	"ticketd/pkg/domain"
)

// Claims carries the caller's ledger address alongside the registered JWT
// claims.
type Claims struct {
	Address string `json:"addr"`
	jwt.RegisteredClaims
}

// Service signs and validates caller tokens.
type Service struct {
	signingKey []byte
	issuer     string
}

func NewService(signingKey, issuer string) *Service {
	return &Service{signingKey: []byte(signingKey), issuer: issuer}
}

// Issue signs a token binding the bearer to the given ledger address.
func (s *Service) Issue(addr domain.Address, expiresIn time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Address: addr.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	signed, err := t.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "sign caller token")
	}
	return signed, nil
}

// Validate parses the token and returns the caller address it binds.
//
// Errors: returns CodeUnauthorized for any invalid, expired, or mis-signed
// token; the concrete parse failure is wrapped for logs.
func (s *Service) Validate(tokenString string) (domain.Address, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		return domain.Address{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid caller token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return domain.Address{}, dErrors.Wrap(errors.New("unexpected claims type"), dErrors.CodeUnauthorized, "invalid caller token")
	}
	addr, err := domain.ParseAddress(claims.Address)
	if err != nil {
		return domain.Address{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "token carries no valid address")
	}
	return addr, nil
}
