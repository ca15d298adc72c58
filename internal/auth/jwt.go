package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Token issuer and audience baked into every token this service mints.
const (
	TokenIssuer   = "admin-platform"
	TokenAudience = "admin-platform-api"

	// ScopeAdmin is the only scope this system issues.
	ScopeAdmin = "admin"

	// Token types distinguish access tokens from refresh tokens.
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims holds JWT claims carried by admin tokens.
type Claims struct {
	Email     string `json:"email"`
	Scope     string `json:"scope"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// JWTService mints and validates admin tokens.
type JWTService struct {
	secret             []byte
	expireHours        int
	refreshExpireHours int
}

// NewJWTService creates a JWT service. expireHours bounds access tokens,
// refreshExpireHours bounds refresh tokens.
func NewJWTService(secret string, expireHours, refreshExpireHours int) *JWTService {
	return &JWTService{
		secret:             []byte(secret),
		expireHours:        expireHours,
		refreshExpireHours: refreshExpireHours,
	}
}

// GenerateAccess creates a new access token for the user. The token carries
// the admin scope; there is no finer-grained permission model.
func (s *JWTService) GenerateAccess(userID uuid.UUID, email string) (string, error) {
	return s.generate(userID, email, TypeAccess, time.Duration(s.expireHours)*time.Hour)
}

// GenerateRefresh creates a refresh token. No exchange endpoint exists
// server-side; the token is minted for client compatibility only.
func (s *JWTService) GenerateRefresh(userID uuid.UUID, email string) (string, error) {
	return s.generate(userID, email, TypeRefresh, time.Duration(s.refreshExpireHours)*time.Hour)
}

func (s *JWTService) generate(userID uuid.UUID, email, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     email,
		Scope:     ScopeAdmin,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and validates a token, returning claims or ErrInvalidToken.
// Signature, expiry, issuer, and audience are all checked.
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(TokenIssuer), jwt.WithAudience(TokenAudience))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SubjectID returns the user ID carried in the subject claim.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
