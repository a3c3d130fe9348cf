package entity

import (
	"errors"
	"strings"
)

// Papéis disponíveis no CRM
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleSales   = "sales"
)

// Entidade: User
// O campo Password só existe entre o row-store e a camada de usecase.
// NUNCA devolva um User para fora sem chamar Sanitize().
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

// Sanitize remove a credencial antes do User cruzar a fronteira
// usecase -> handler/sessão.
func (u *User) Sanitize() {
	u.Password = ""
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleSales:
		return true
	}
	return false
}

func Roles() []string {
	return []string{RoleAdmin, RoleManager, RoleSales}
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("email is required")
	}
	if !ValidRole(u.Role) {
		return errors.New("role is invalid")
	}
	return nil
}
