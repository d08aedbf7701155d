package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/schedulebob/auth/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTokenProvider(t *testing.T, clock *fakeClock) *TokenProvider {
	t.Helper()

	p, err := NewTokenProvider(TokenConfig{
		Secret:     "test-secret",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 14 * 24 * time.Hour,
	}, WithClock(clock.Now))
	require.NoError(t, err)
	return p
}

func TestNewTokenProvider_RejectsBadConfig(t *testing.T) {
	_, err := NewTokenProvider(TokenConfig{AccessTTL: time.Minute, RefreshTTL: time.Hour})
	assert.Error(t, err)

	_, err = NewTokenProvider(TokenConfig{Secret: "s", AccessTTL: 0, RefreshTTL: time.Hour})
	assert.Error(t, err)

	_, err = NewTokenProvider(TokenConfig{Secret: "s", AccessTTL: time.Minute, RefreshTTL: -time.Hour})
	assert.Error(t, err)
}

func TestTokenProvider_AccessTokenRoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	p := newTestTokenProvider(t, clock)

	token, err := p.IssueAccessToken("a@x.com", "USER")
	require.NoError(t, err)

	assert.True(t, p.Validate(token))

	subject, err := p.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)

	role, err := p.Role(token)
	require.NoError(t, err)
	assert.Equal(t, "USER", role)

	expiry, err := p.Expiry(token)
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(30*time.Minute), expiry.UTC())
}

func TestTokenProvider_RefreshTokenHasNoRole(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	p := newTestTokenProvider(t, clock)

	token, err := p.IssueRefreshToken("a@x.com")
	require.NoError(t, err)

	role, err := p.Role(token)
	require.NoError(t, err)
	assert.Empty(t, role)

	expiry, err := p.Expiry(token)
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(14*24*time.Hour), expiry.UTC())
}

func TestTokenProvider_Expiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	p := newTestTokenProvider(t, clock)

	token, err := p.IssueAccessToken("a@x.com", "USER")
	require.NoError(t, err)

	clock.Advance(30*time.Minute - time.Second)
	assert.True(t, p.Validate(token))

	clock.Advance(time.Second)
	assert.False(t, p.Validate(token))

	_, err = p.Subject(token)
	assert.ErrorIs(t, err, apperrors.ErrMalformedToken)
}

func TestTokenProvider_TamperedSignature(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	p := newTestTokenProvider(t, clock)

	token, err := p.IssueAccessToken("a@x.com", "USER")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	assert.False(t, p.Validate(tampered))
}

func TestTokenProvider_RejectsForeignTokens(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	p := newTestTokenProvider(t, clock)

	other, err := NewTokenProvider(TokenConfig{
		Secret:     "another-secret",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
	require.NoError(t, err)

	foreign, err := other.IssueAccessToken("a@x.com", "ADMIN")
	require.NoError(t, err)
	assert.False(t, p.Validate(foreign))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "a@x.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	assert.False(t, p.Validate(unsigned))

	for _, garbage := range []string{"", "abc", "a.b.c", "Bearer x"} {
		assert.False(t, p.Validate(garbage), garbage)
		_, err := p.Role(garbage)
		assert.ErrorIs(t, err, apperrors.ErrMalformedToken)
	}
}

func TestTokenProvider_RequiresExpiration(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	p := newTestTokenProvider(t, clock)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "a@x.com"}).
		SignedString(p.key)
	require.NoError(t, err)

	assert.False(t, p.Validate(noExp))
}

func TestTokenProvider_TokensIssuedTogetherDiffer(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	p := newTestTokenProvider(t, clock)

	first, err := p.IssueAccessToken("a@x.com", "USER")
	require.NoError(t, err)
	second, err := p.IssueAccessToken("a@x.com", "USER")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
