// internal/middleware/admin_auth.go
package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// Basic: alternatif Bearer untuk curl/ops (Authorization: Basic user:pass).
func (a AdminAuth) Basic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.User == "" || a.PassHash == "" {
			http.Error(w, "admin auth not configured", http.StatusForbidden)
			return
		}
		h := r.Header.Get("Authorization")
		const pfx = "Basic "
		if !strings.HasPrefix(h, pfx) {
			w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
			http.Error(w, "auth required", http.StatusUnauthorized)
			return
		}
		raw, _ := base64.StdEncoding.DecodeString(h[len(pfx):])
		u, p, _ := strings.Cut(string(raw), ":")
		if !a.CheckPassword(u, p) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
