package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/backend"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired accepts verified identity provider tokens and forwards the
// raw bearer to the backend client. SSE tokens only open event streams.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		if jwt.TokenType(claims) == jwt.TokenTypeSSE {
			response.Unauthorized(w, "Invalid token")
			return
		}

		if _, err := jwt.UserIDFromClaims(claims); err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		ctx := backend.WithToken(r.Context(), jwtauth.TokenFromHeader(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hfn)
}
