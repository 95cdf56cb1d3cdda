package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiredAt time.Time
}

// Inspector reads access-token claims without holding the signing secret.
// The API stays the authority on validity; inspection only lets the frontend
// skip round-trips for tokens that are already past their expiry.
type Inspector interface {
	Inspect(tokenString string) (Claims, error)
}

type UnverifiedInspector struct {
	leeway time.Duration
	now    func() time.Time
}

func NewUnverifiedInspector(leeway time.Duration) *UnverifiedInspector {
	return &UnverifiedInspector{leeway: leeway, now: time.Now}
}

func (s *UnverifiedInspector) Inspect(tokenString string) (Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Claims{}, ErrTokenInvalid
	}

	p := jwtlib.NewParser()
	var rc jwtlib.RegisteredClaims
	if _, _, err := p.ParseUnverified(tokenString, &rc); err != nil {
		return Claims{}, ErrTokenInvalid
	}

	c := Claims{Subject: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.UTC()
	}
	if rc.ExpiresAt != nil {
		c.ExpiredAt = rc.ExpiresAt.UTC()
	}

	now := s.now().UTC()
	if !c.ExpiredAt.IsZero() && now.After(c.ExpiredAt.Add(s.leeway)) {
		return c, ErrTokenExpired
	}
	return c, nil
}

// Expired reports whether the token is known to be expired. Tokens that are
// not JWTs are never reported expired.
func Expired(i Inspector, tokenString string) bool {
	if i == nil {
		return false
	}
	_, err := i.Inspect(tokenString)
	return errors.Is(err, ErrTokenExpired)
}
