package middleware

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-leave-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

var errInvalidToken = errors.New("invalid token")

// AuthRequired accepts only verified access tokens that name an actor.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, errInvalidToken.Error())
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.Unauthorized(w, errInvalidToken.Error())
				return
			}

			if ActorID(r) == "" {
				response.Unauthorized(w, "token does not identify a user")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// ActorID resolves who is acting: the employee behind the token when there
// is one, otherwise the user account.
func ActorID(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		return employeeID
	}
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

// EmployeeID returns the employee_id claim, empty for accounts without one.
func EmployeeID(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	employeeID, _ := claims["employee_id"].(string)
	return employeeID
}
