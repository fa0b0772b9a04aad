package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/ganeshdatta23/skillstacker/internal/apperr"
	"github.com/ganeshdatta23/skillstacker/internal/models"
	"github.com/ganeshdatta23/skillstacker/internal/service"
)

type ctxKey string

const ctxUser ctxKey = "user"

// Auth valida el Bearer token y mete el usuario completo en el contexto.
// Un token con usuario inexistente es 401; con cuenta desactivada, 400.
func Auth(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeError(w, apperr.Auth("Not authenticated"))
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			user, err := auth.VerifyToken(r.Context(), tokenStr)
			if err != nil {
				if apperr.Status(err) == http.StatusUnauthorized {
					w.Header().Set("WWW-Authenticate", "Bearer")
				}
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser saca el usuario autenticado del contexto.
func CurrentUser(ctx context.Context) *models.User {
	u, _ := ctx.Value(ctxUser).(*models.User)
	return u
}

// AdminOnly solo deja pasar usuarios con is_admin.
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := CurrentUser(r.Context())
			if u == nil || !u.IsAdmin {
				writeError(w, apperr.Forbidden("Admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
