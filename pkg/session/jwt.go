package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskflow-dev/taskflow/pkg/config"
)

// JWTProvider verifies HS256 tokens from the Authorization header or the
// session cookie.
type JWTProvider struct {
	secret []byte
	issuer string
	cookie string
}

var _ Provider = (*JWTProvider)(nil)

// NewJWTProvider returns a provider for the given auth configuration.
func NewJWTProvider(cfg config.AuthConfig) (*JWTProvider, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("missing jwt secret")
	}
	return &JWTProvider{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		cookie: cfg.CookieName,
	}, nil
}

// Issue signs a token for userID that expires after ttl.
func (p *JWTProvider) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    p.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// GetSession implements Provider.
func (p *JWTProvider) GetSession(r *http.Request) (Session, error) {
	raw, err := p.token(r)
	if err != nil {
		return Session{}, err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, opts...)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !token.Valid || !ok || claims.Subject == "" {
		return Session{}, ErrInvalidToken
	}

	s := Session{UserID: claims.Subject}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

func (p *JWTProvider) token(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", ErrInvalidToken
		}
		return strings.TrimSpace(parts[1]), nil
	}

	if p.cookie != "" {
		if c, err := r.Cookie(p.cookie); err == nil && c.Value != "" {
			return c.Value, nil
		}
	}

	return "", ErrNoSession
}
