// Package token signs and verifies the two classes of bearer tokens used by
// the back office: short-lived access tokens and long-lived refresh tokens.
// Each class has its own secret so one leaked secret cannot forge the other.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lupashe/backoffice/internal/core/domain"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Config holds the signing material. Secrets are injected once at start-up.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Claims is the JWT body: the identity plus the registered exp/iat claims.
type Claims struct {
	UserID string      `json:"userId"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec implements ports.TokenCodec with HS256 JWTs.
type Codec struct {
	access  class
	refresh class
	now     func() time.Time
}

type class struct {
	secret []byte
	ttl    time.Duration
}

// Option customises a Codec.
type Option func(*Codec)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec builds a Codec. Zero TTLs fall back to the defaults.
func NewCodec(cfg Config, opts ...Option) *Codec {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	c := &Codec{
		access:  class{secret: []byte(cfg.AccessSecret), ttl: cfg.AccessTTL},
		refresh: class{secret: []byte(cfg.RefreshSecret), ttl: cfg.RefreshTTL},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codec) IssueAccessToken(id domain.Identity) (string, error) {
	return c.issue(c.access, id)
}

func (c *Codec) IssueRefreshToken(id domain.Identity) (string, error) {
	return c.issue(c.refresh, id)
}

func (c *Codec) VerifyAccessToken(token string) (domain.Identity, error) {
	return c.verify(c.access, token)
}

func (c *Codec) VerifyRefreshToken(token string) (domain.Identity, error) {
	return c.verify(c.refresh, token)
}

func (c *Codec) issue(k class, id domain.Identity) (string, error) {
	if len(k.secret) == 0 {
		return "", domain.ErrServerMisconfigured
	}

	now := c.now()
	claims := Claims{
		UserID: id.UserID,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(k.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(k.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (c *Codec) verify(k class, token string) (domain.Identity, error) {
	if len(k.secret) == 0 {
		return domain.Identity{}, domain.ErrServerMisconfigured
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
		return k.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return domain.Identity{}, fmt.Errorf("%w: missing or unknown identity claims", domain.ErrTokenInvalid)
	}

	return domain.Identity{UserID: claims.UserID, Role: claims.Role}, nil
}
