package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of the session cookie. The JWT ID carries the
// session id; nothing else about the user travels in the cookie.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// CookieSigner signs and verifies session cookie values.
type CookieSigner struct {
	secret []byte
	name   string
	ttl    time.Duration
	secure bool
}

// NewCookieSigner creates a signer for cookies called name.
func NewCookieSigner(secret, name string, ttl time.Duration, secure bool) *CookieSigner {
	return &CookieSigner{
		secret: []byte(secret),
		name:   name,
		ttl:    ttl,
		secure: secure,
	}
}

// Name returns the cookie name.
func (s *CookieSigner) Name() string { return s.name }

// Sign returns a signed token for sessionID.
func (s *CookieSigner) Sign(sessionID string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies a token and returns its claims.
func (s *CookieSigner) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// Cookie builds the session cookie for token.
func (s *CookieSigner) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.ttl),
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie builds a cookie that makes the browser drop the session.
func (s *CookieSigner) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
