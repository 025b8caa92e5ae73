package handlers

import (
	"context"
	"net/http"

	"github.com/fznajm/ngobrol-auth/internal/handlers/middleware"
	"github.com/fznajm/ngobrol-auth/internal/logger"
	"github.com/fznajm/ngobrol-auth/internal/models"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

type routerAuthService interface {
	authService
	middlewareAuthService
}

// middlewareAuthService mirrors what middleware.AuthMiddleware needs
type middlewareAuthService interface {
	Authenticate(ctx context.Context, rawAccess string) (models.User, error)
}

func NewRouter(auth routerAuthService, log logger.Logger) http.Handler {
	withAuth := middleware.AuthMiddleware(auth)

	api := http.NewServeMux()
	api.Handle("/", NewAuth(auth).Handler())
	api.Handle("GET /me", withAuth(handleUserMe()))

	root := http.NewServeMux()
	root.Handle("/api/auth/", http.StripPrefix("/api/auth", api))

	return chain(root,
		middleware.LoggerMiddleware(log),
	)
}
