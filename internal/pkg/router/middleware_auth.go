package router

import (
	"net/http"
	"strings"

	"github.com/Rishu9835/DOORWISE/internal/pkg/jwt"
)

func bearerToken(r *http.Request) (string, bool) {
	p := strings.Fields(r.Header.Get("Authorization"))
	if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") {
		return "", false
	}
	return p[1], true
}

// middlewareAuthentication requires a valid bearer token on every route except
// public ones. Public routes still get claims in context when a valid token is sent.
func middlewareAuthentication(verifier jwt.JWT, publicEndpoints map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			public := false
			if s, ok := publicEndpoints[r.Method]; ok {
				_, public = s[matchedRoutePath(r)]
			}

			token, ok := bearerToken(r)
			if !ok || verifier == nil {
				if public {
					next.ServeHTTP(w, r)
					return
				}
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				if public {
					next.ServeHTTP(w, r)
					return
				}
				writeJSON(w, errorResponse{Message: "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
		})
	}
}
