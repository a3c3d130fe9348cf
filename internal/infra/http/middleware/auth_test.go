package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/session"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func authWithSession(t *testing.T, user *entity.User) (*usecase.AuthUseCase, string) {
	store := session.NewMemoryStore()
	sid := session.NewSessionID()
	if user != nil {
		assert.NoError(t, store.Save(context.Background(), sid, user))
	}
	return usecase.NewAuthUseCase(usecase.NewUserUseCase(nil), store), sid
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthWithoutCookie(t *testing.T) {
	auth, _ := authWithSession(t, nil)

	req := httptest.NewRequest("GET", "/leads", nil)
	w := httptest.NewRecorder()
	RequireAuth(auth)(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthInjectsIdentity(t *testing.T) {
	user := &entity.User{ID: "u1", Name: "Alice", Email: "alice@x.com", Role: entity.RoleSales}
	auth, sid := authWithSession(t, user)

	var seen *entity.User
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/leads", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	w := httptest.NewRecorder()
	RequireAuth(auth)(inner).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, seen)
	assert.Equal(t, "u1", seen.ID)
}

func TestRequireRole(t *testing.T) {
	user := &entity.User{ID: "u1", Name: "Alice", Email: "alice@x.com", Role: entity.RoleSales}
	auth, sid := authWithSession(t, user)

	req := httptest.NewRequest("GET", "/users", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	w := httptest.NewRecorder()
	RequireAuth(auth)(RequireRole(entity.RoleAdmin)(okHandler())).ServeHTTP(w, req)

	// sales não enxerga tela de admin
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/users", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sid})
	RequireAuth(auth)(RequireRole(entity.RoleAdmin, entity.RoleSales)(okHandler())).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
