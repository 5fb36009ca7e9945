// internal/middleware/admin_jwt.go
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuth kredensial admin dari config (ADMIN_USER, ADMIN_PASS_HASH, ADMIN_JWT_SECRET).
type AdminAuth struct {
	User     string
	PassHash string // bcrypt
	Secret   string
	TTL      time.Duration // default 24 jam
}

func (a AdminAuth) Configured() bool {
	return a.User != "" && a.PassHash != "" && a.Secret != ""
}

// CheckPassword membandingkan user (constant time) lalu hash bcrypt.
func (a AdminAuth) CheckPassword(user, pass string) bool {
	if a.User == "" || a.PassHash == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(user), []byte(a.User)) != 1 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PassHash), []byte(pass)) == nil
}

func (a AdminAuth) JWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.Secret == "" {
			http.Error(w, "admin jwt not configured", http.StatusForbidden)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(a.Secret), nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GenerateToken membuat JWT HS256 untuk user admin.
func (a AdminAuth) GenerateToken() (string, int64, error) {
	ttl := a.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	exp := time.Now().Add(ttl).Unix()

	claims := jwt.MapClaims{
		"user": a.User,
		"exp":  exp,
		"role": "admin",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(a.Secret))
	return signed, exp, err
}
