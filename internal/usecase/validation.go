package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateAddUserInput roda ANTES de qualquer chamada de rede.
// Input inválido nunca chega no row-store.
func ValidateAddUserInput(input AddUserInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if input.Role == "" {
		errors = append(errors, ValidationError{"role", "is required"})
	} else if !entity.ValidRole(input.Role) {
		errors = append(errors, ValidationError{"role", "must be admin, manager or sales"})
	}

	if input.Password == "" {
		errors = append(errors, ValidationError{"passwordInput", "is required"})
	} else if len(input.Password) < 6 {
		errors = append(errors, ValidationError{"passwordInput", "must have at least 6 characters"})
	}

	return errors
}

func ValidateAddLeadInput(input AddLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if input.Status == "" {
		errors = append(errors, ValidationError{"status", "is required"})
	} else if !entity.ValidStatus(input.Status) {
		errors = append(errors, ValidationError{"status", fmt.Sprintf("must be one of %s", strings.Join(entity.Statuses(), ", "))})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")

	return len(cleaned) >= 7 && len(cleaned) <= 15
}
