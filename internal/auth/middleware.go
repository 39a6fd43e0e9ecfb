package auth

import (
	"net/http"
	"strconv"

	"github.com/nineto6/backoffice/internal/platform/httpx"
	"github.com/nineto6/backoffice/internal/shared"
)

// RequireUser rejects requests whose session carries no user binding.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserID(r) == 0 {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID returns the authenticated user id bound to the request session,
// zero for anonymous requests.
func UserID(r *http.Request) int64 {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return 0
	}
	id, err := strconv.ParseInt(sess.User(), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
