package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/session"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityFromContext devolve a identidade colocada pelo RequireAuth.
func IdentityFromContext(ctx context.Context) *entity.User {
	user, _ := ctx.Value(identityKey).(*entity.User)
	return user
}

// SessionID lê o cookie fixo da sessão. Vazio quando não há cookie.
func SessionID(r *http.Request) string {
	c, err := r.Cookie(session.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// RequireAuth barra requests sem sessão válida e injeta a identidade no
// contexto para os handlers.
func RequireAuth(auth *usecase.AuthUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.CurrentIdentity(r.Context(), SessionID(r))
			if err != nil || user == nil {
				writeJSONError(w, http.StatusUnauthorized, "não autenticado")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gate de visibilidade por papel (não é controle de acesso a
// dado: o row-store não distingue; só escondemos telas).
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !usecase.HasRole(IdentityFromContext(r.Context()), roles...) {
				writeJSONError(w, http.StatusForbidden, "sem permissão")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
