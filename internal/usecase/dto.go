package usecase

// Inputs tipados das operações. Campos que o caller NÃO pode controlar
// simplesmente não existem aqui: update de user não tem Email (email é
// imutável depois de criado) e update de lead não tem timestamp nenhum
// (updatedAt é sempre do serviço).

type AddUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"passwordInput"` // a UI manda passwordInput, o store guarda password
}

type UpdateUserInput struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	Password *string `json:"passwordInput,omitempty"` // só entra no payload se vier preenchido
}

type AddLeadInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Source       string `json:"source"`
	Status       string `json:"status"`
	AssignedToID string `json:"assignedToId"`
	Notes        string `json:"notes"`
}

type UpdateLeadInput struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Source       *string `json:"source,omitempty"`
	Status       *string `json:"status,omitempty"`
	AssignedToID *string `json:"assignedToId,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}
