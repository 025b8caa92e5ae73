package userctx

import (
	"context"

	"github.com/fznajm/ngobrol-auth/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// Create a new context carrying the authenticated user
// The user is resolved once at the request boundary from the verified access
// token and passed down explicitly, never read from process-wide state
func New(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// Extract the authenticated user from the context
func FromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}
