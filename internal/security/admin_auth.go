package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminSubject     = "admin"
	adminTokenIssuer = "habitboard"
	// DefaultAdminTokenTTL matches the default session length of the
	// dashboard login.
	DefaultAdminTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
)

// AdminAuth guards mutating endpoints with a single shared admin password.
type AdminAuth struct {
	passwordHash []byte
	secretKey    []byte
	ttl          time.Duration
	now          func() time.Time
}

type adminClaims struct {
	jwt.RegisteredClaims
}

func NewAdminAuth(password string, secretKey string, ttl time.Duration) (*AdminAuth, error) {
	if password == "" {
		return nil, errors.New("admin password is required")
	}
	if len(secretKey) < 32 {
		return nil, errors.New("secret key must be at least 32 characters")
	}
	if ttl <= 0 {
		ttl = DefaultAdminTokenTTL
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	return &AdminAuth{
		passwordHash: hash,
		secretKey:    []byte(secretKey),
		ttl:          ttl,
		now:          time.Now,
	}, nil
}

// Login checks password and issues a signed token with its expiry.
func (auth *AdminAuth) Login(password string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(auth.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidPassword
	}

	now := auth.now()
	expiresAt := now.Add(auth.ttl)
	claims := adminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminSubject,
			Issuer:    adminTokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(auth.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign admin token: %w", err)
	}
	return token, expiresAt, nil
}

func (auth *AdminAuth) Verify(rawToken string) error {
	tokenValue := strings.TrimSpace(rawToken)
	if tokenValue == "" {
		return ErrInvalidToken
	}

	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return auth.secretKey, nil
	},
		jwt.WithIssuer(adminTokenIssuer),
		jwt.WithSubject(adminSubject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(auth.now),
	)
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
