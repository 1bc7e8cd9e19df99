package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/regex"
)

// DefaultTTL matches the lifetime of tokens issued by the OAuth callback.
const DefaultTTL = 7 * 24 * time.Hour

// Caller is the identity behind a verified bearer token.
type Caller struct {
	Login       string
	ID          int64
	GitHubToken string
}

// Claims is the JWT payload.
type Claims struct {
	GitHubToken string `json:"github_token"`
	Login       string `json:"login"`
	ID          int64  `json:"id"`
	jwt.RegisteredClaims
}

// Issue signs a token for caller. Only local tooling and tests mint tokens;
// the web front-end receives them from the OAuth flow.
func Issue(secret string, caller Caller, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", domainErrors.ErrJWTSecretMissing
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	claims := Claims{
		GitHubToken: caller.GitHubToken,
		Login:       caller.Login,
		ID:          caller.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.Login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify parses an HS256 token and returns its caller.
func Verify(secret, token string) (*Caller, error) {
	if token == "" {
		return nil, domainErrors.ErrNoToken
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, domainErrors.ErrInvalidToken.WithError(err)
	}
	return &Caller{
		Login:       claims.Login,
		ID:          claims.ID,
		GitHubToken: claims.GitHubToken,
	}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	m := regex.BearerToken.FindStringSubmatch(strings.TrimSpace(header))
	if m == nil {
		return ""
	}
	return m[1]
}

type contextKey struct{}

func WithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

func CallerFromContext(ctx context.Context) (*Caller, bool) {
	c, ok := ctx.Value(contextKey{}).(*Caller)
	return c, ok && c != nil
}

// Authenticate verifies the request's bearer token.
func Authenticate(secret string, r *http.Request) (*Caller, error) {
	token := BearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return nil, domainErrors.ErrNoToken
	}
	return Verify(secret, token)
}
