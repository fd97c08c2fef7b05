package jwtinfra

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind discriminates access tokens from refresh tokens. A token only
// ever verifies against its own kind; this is what stops a long-lived refresh
// token being replayed as an access token.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims holds the JWT payload fields.
type Claims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs with a process-wide shared secret.
type Provider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewProvider(secret string, accessTTL, refreshTTL time.Duration) *Provider {
	return &Provider{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccess mints an access token with the configured short TTL.
func (p *Provider) IssueAccess(userID int64) (string, error) {
	return p.Issue(userID, KindAccess, p.accessTTL)
}

// IssueRefresh mints a refresh token with the configured long TTL.
func (p *Provider) IssueRefresh(userID int64) (string, error) {
	return p.Issue(userID, KindRefresh, p.refreshTTL)
}

// VerifyAccess verifies tokenStr as an access-kind token.
func (p *Provider) VerifyAccess(tokenStr string) (int64, bool) {
	return p.Verify(tokenStr, KindAccess)
}

// VerifyRefresh verifies tokenStr as a refresh-kind token.
func (p *Provider) VerifyRefresh(tokenStr string) (int64, bool) {
	return p.Verify(tokenStr, KindRefresh)
}

// Issue signs a token encoding {subject, kind, issued-at, expiry}.
func (p *Provider) Issue(userID int64, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Kind: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify fails closed: any signature mismatch, structural corruption, elapsed
// expiry or kind mismatch yields ok=false. It never panics and never returns
// an error to discriminate between the causes.
func (p *Provider) Verify(tokenStr string, expectedKind TokenKind) (int64, bool) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return p.secret, nil
	})
	if err != nil {
		return 0, false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, false
	}
	if claims.Kind != string(expectedKind) {
		return 0, false
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}
