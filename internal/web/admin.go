package web

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// adminCookieName stores the signed admin grant between page loads.
//
// The grant is a UI gate, not access control: the code it was unlocked with
// is a shared constant, and the cookie only keeps the unlocked state from
// resetting on every navigation.
const adminCookieName = "gc_admin"

// adminGrantTTL controls how long an unlocked admin grant stays valid.
const adminGrantTTL = 24 * time.Hour

// issueAdminCookie writes a signed grant cookie.
func issueAdminCookie(w http.ResponseWriter, r *http.Request, key []byte) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(adminGrantTTL)),
	})
	signed, err := token.SignedString(key)
	if err != nil {
		return fmt.Errorf("sign admin grant: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   r != nil && r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(adminGrantTTL / time.Second),
	})
	return nil
}

// hasAdminGrant reports whether the request carries a valid grant cookie.
func hasAdminGrant(r *http.Request, key []byte) bool {
	if r == nil {
		return false
	}
	cookie, err := r.Cookie(adminCookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return false
	}
	token, err := jwt.ParseWithClaims(cookie.Value, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	return ok && claims.Subject == "admin"
}
