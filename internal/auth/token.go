package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/horsh321/teem-server/internal/config"
	"github.com/horsh321/teem-server/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the token payload.
type Claims struct {
	ID   string     `json:"id"`
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair is an access token and the refresh token that renews it.
type TokenPair struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Issuer signs access and refresh tokens with HS256.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

// NewIssuer creates an issuer from the auth configuration.
func NewIssuer(cfg config.AuthConfig) *Issuer {
	return &Issuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		issuer:        cfg.Issuer,
		now:           time.Now,
	}
}

// Issue signs a token pair for user.
func (i *Issuer) Issue(userID uuid.UUID, role model.Role) (TokenPair, error) {
	now := i.now()

	access, err := i.sign(userID, role, now, i.accessTTL, i.accessSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := i.sign(userID, role, now, i.refreshTTL, i.refreshSecret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(i.accessTTL),
	}, nil
}

func (i *Issuer) sign(userID uuid.UUID, role model.Role, now time.Time, ttl time.Duration, secret []byte) (string, error) {
	claims := Claims{
		ID:   userID.String(),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verifier validates access tokens.
type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewVerifier creates a verifier for access tokens signed with the configured secret.
func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{
		secret: []byte(cfg.AccessSecret),
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// Verify checks the signature and expiry of token and returns its identity.
// Any verification failure is ErrSessionExpired; a valid token without a
// role is ErrNoRole.
func (v *Verifier) Verify(token string) (Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Identity{}, model.ErrTokenFormat
		}
		return Identity{}, model.ErrSessionExpired
	}

	userID, err := uuid.Parse(claims.ID)
	if err != nil {
		return Identity{}, model.ErrSessionExpired
	}

	if claims.Role == "" {
		return Identity{}, model.ErrNoRole
	}

	return Identity{UserID: userID, Role: claims.Role}, nil
}
