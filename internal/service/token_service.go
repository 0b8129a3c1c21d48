package service

import (
	"errors"
	"fmt"
	"time"

	"dlt-orchestrator/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// sessionClaims is the portal session token: the subject is the portal
// user and account_id the Hedera account their wallet is connected to.
type sessionClaims struct {
	AccountID string `json:"account_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTTokenService validates HS256 session tokens issued by the portal.
// Generate exists for the operator CLI and tests; the engine never logs
// anyone in.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
	parser *jwt.Parser
}

func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// Generate signs a session token for userID.
func (s *JWTTokenService) Generate(userID uuid.UUID, accountID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate checks signature, issuer and expiry and returns the session.
func (s *JWTTokenService) Validate(tokenString string) (*ports.TokenClaims, error) {
	var claims sessionClaims
	if _, err := s.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("parsing session token: %w", err)
	}

	if claims.Subject == "" {
		return nil, errors.New("session token has no subject")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("session subject is not a user id: %w", err)
	}

	return &ports.TokenClaims{UserID: userID, AccountID: claims.AccountID}, nil
}
