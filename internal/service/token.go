package service

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/schedulebob/auth/internal/errors"
	"golang.org/x/crypto/hkdf"
)

const signingKeyInfo = "schedulebob-auth-hs256"

// TokenConfig holds the signing secret and token lifetimes.
type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Claims is the payload of both token kinds. Refresh tokens leave Role empty.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenProvider issues and validates HS256 tokens with a key derived once at
// construction.
type TokenProvider struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
	parser     *jwt.Parser
}

type TokenOption func(*TokenProvider)

// WithClock replaces time.Now for issuing and validating.
func WithClock(now func() time.Time) TokenOption {
	return func(p *TokenProvider) {
		p.now = now
	}
}

func NewTokenProvider(cfg TokenConfig, opts ...TokenOption) (*TokenProvider, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive (access=%s, refresh=%s)", cfg.AccessTTL, cfg.RefreshTTL)
	}

	key, err := deriveSigningKey(cfg.Secret)
	if err != nil {
		return nil, err
	}

	p := &TokenProvider{
		key:        key,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return p.now() }),
	)

	return p, nil
}

// deriveSigningKey stretches the base64 form of the secret into a 32 byte
// HMAC key so short secrets still produce a full-width key.
func deriveSigningKey(secret string) ([]byte, error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(secret))
	reader := hkdf.New(sha256.New, []byte(encoded), nil, []byte(signingKeyInfo))

	key := make([]byte, 32)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}
	return key, nil
}

func (p *TokenProvider) AccessTTL() time.Duration { return p.accessTTL }
func (p *TokenProvider) RefreshTTL() time.Duration { return p.refreshTTL }

// IssueAccessToken signs {sub, role, iat, exp, jti} valid for the access TTL.
func (p *TokenProvider) IssueAccessToken(subject, role string) (string, error) {
	return p.issue(subject, role, p.accessTTL)
}

// IssueRefreshToken signs {sub, iat, exp, jti} valid for the refresh TTL.
func (p *TokenProvider) IssueRefreshToken(subject string) (string, error) {
	return p.issue(subject, "", p.refreshTTL)
}

func (p *TokenProvider) issue(subject, role string, ttl time.Duration) (string, error) {
	now := p.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate reports whether the token is well formed, signed with our key and
// not yet expired.
func (p *TokenProvider) Validate(token string) bool {
	_, err := p.parse(token)
	return err == nil
}

func (p *TokenProvider) Subject(token string) (string, error) {
	claims, err := p.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Role returns "" for refresh tokens.
func (p *TokenProvider) Role(token string) (string, error) {
	claims, err := p.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

func (p *TokenProvider) Expiry(token string) (time.Time, error) {
	claims, err := p.parse(token)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt.Time, nil
}

func (p *TokenProvider) parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := p.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return p.key, nil
	})
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrMalformedToken, err)
	}
	return claims, nil
}
