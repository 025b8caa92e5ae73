package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fznajm/ngobrol-auth/internal/handlers/render"
	"github.com/fznajm/ngobrol-auth/internal/handlers/userctx"
	"github.com/fznajm/ngobrol-auth/internal/models"
)

const authScheme = "Bearer"

type authService interface {
	// Resolve raw access token into the user it names
	Authenticate(ctx context.Context, rawAccess string) (models.User, error)
}

// AuthMiddleware verifies the bearer access token and puts the resolved user
// into the request context for downstream handlers
func AuthMiddleware(as authService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := as.Authenticate(r.Context(), raw)
			if err != nil {
				render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := userctx.New(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, authScheme) || token == "" {
		return "", false
	}
	return token, true
}
