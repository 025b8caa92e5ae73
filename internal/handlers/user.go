package handlers

import (
	"net/http"

	"github.com/fznajm/ngobrol-auth/internal/handlers/render"
	"github.com/fznajm/ngobrol-auth/internal/handlers/userctx"
)

// handleUserMe returns the authenticated caller's identity
// Relies on AuthMiddleware having resolved the user into the context
func handleUserMe() http.Handler {
	type MeResponse struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		render.JSON(w, MeResponse{ID: user.ID.String(), Email: user.Email})
	})
}
