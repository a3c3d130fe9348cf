package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// AuthUseCase autentica contra a coleção Users do row-store.
//
// O match é local: busca a coleção inteira e compara aqui. Email compara
// case-insensitive (primeiro match ganha; email duplicado na planilha é
// um invariante assumido do backend, não deduplicamos do lado do
// cliente); senha compara exata.
type AuthUseCase struct {
	Users    *UserUseCase
	Sessions SessionStoreInterface
}

func NewAuthUseCase(users *UserUseCase, sessions SessionStoreInterface) *AuthUseCase {
	return &AuthUseCase{Users: users, Sessions: sessions}
}

// Login valida as credenciais e grava a identidade (sem senha) na sessão.
// Qualquer mismatch (email inexistente OU senha errada) devolve o MESMO
// ErrInvalidCredentials, para não entregar enumeração de contas.
func (uc *AuthUseCase) Login(ctx context.Context, sid, email, password string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	users, err := uc.Users.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	var match *entity.User
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			match = &users[i]
			break
		}
	}

	if match == nil || match.Password != password {
		return nil, ErrInvalidCredentials
	}

	match.Sanitize()
	if err := uc.Sessions.Save(ctx, sid, match); err != nil {
		return nil, &TechnicalError{Code: "SESSION_SAVE_FAILED", Message: err.Error()}
	}

	log.Printf("✅ Auth: login de %s (role=%s)", match.Email, match.Role)
	return match, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, sid string) error {
	return uc.Sessions.Clear(ctx, sid)
}

// CurrentIdentity devolve nil (sem erro) quando não há sessão ou quando
// a sessão guardada estava corrompida (o Store já limpou).
func (uc *AuthUseCase) CurrentIdentity(ctx context.Context, sid string) (*entity.User, error) {
	if sid == "" {
		return nil, nil
	}
	return uc.Sessions.Load(ctx, sid)
}

// HasRole aceita um ou mais papéis; identidade ausente nunca tem papel.
func HasRole(user *entity.User, roles ...string) bool {
	if user == nil {
		return false
	}
	for _, r := range roles {
		if user.Role == r {
			return true
		}
	}
	return false
}
