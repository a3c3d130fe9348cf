package usecase

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// ErrInvalidCredentials é único para email não encontrado E senha errada.
// Mensagem genérica de propósito: não vazamos qual metade falhou.
var ErrInvalidCredentials = &DomainError{
	Code:    "INVALID_CREDENTIALS",
	Message: "email ou senha inválidos",
}

func IsInvalidCredentials(err error) bool {
	return err == ErrInvalidCredentials
}
