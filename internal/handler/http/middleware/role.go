package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/daksa-hr/hrops-backend-go/internal/handler/http/response"
)

// ManagerOnly restricts a route to manager and admin tokens.
func ManagerOnly(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		role, ok := claims["role"].(string)
		if !ok || (role != "manager" && role != "admin") {
			response.Forbidden(w, "Manager access required")
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
