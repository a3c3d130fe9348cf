package usecase

import (
	"context"
	"encoding/json"
	"log"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/integration/rowstore"
)

type UserUseCase struct {
	Gateway RowStoreGateway
}

func NewUserUseCase(gateway RowStoreGateway) *UserUseCase {
	return &UserUseCase{Gateway: gateway}
}

// decodeUsers transforma as linhas cruas em entidades. Linha que não
// parseia é pulada com warning: uma linha lixo na planilha não pode
// derrubar a listagem inteira.
func decodeUsers(rows []json.RawMessage) []entity.User {
	users := make([]entity.User, 0, len(rows))
	for _, row := range rows {
		var u entity.User
		if err := json.Unmarshal(row, &u); err != nil {
			log.Printf("⚠️ Users: linha ignorada, não parseia como usuário: %s", err)
			continue
		}
		users = append(users, u)
	}
	return users
}

// fetchAll devolve os usuários COM credencial. Uso interno do pacote
// (login precisa comparar senha); tudo que sai daqui pra fora passa
// por Sanitize antes.
func (uc *UserUseCase) fetchAll(ctx context.Context) ([]entity.User, error) {
	rows, err := uc.Gateway.FetchRows(ctx, rowstore.CollectionUsers)
	if err != nil {
		return nil, err
	}
	return decodeUsers(rows), nil
}

func (uc *UserUseCase) List(ctx context.Context) ([]entity.User, error) {
	users, err := uc.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Sanitize()
	}
	return users, nil
}

func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	users, err := uc.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			users[i].Sanitize()
			return &users[i], nil
		}
	}
	return nil, &DomainError{Code: "USER_NOT_FOUND", Message: "usuário não encontrado"}
}

func (uc *UserUseCase) Add(ctx context.Context, input AddUserInput) (*entity.User, error) {
	if errs := ValidateAddUserInput(input); len(errs) > 0 {
		return nil, errs[0]
	}

	// A UI fala passwordInput; a planilha guarda na coluna password.
	// O rename acontece aqui e em nenhum outro lugar.
	data, err := json.Marshal(map[string]string{
		"name":     input.Name,
		"email":    input.Email,
		"role":     input.Role,
		"password": input.Password,
	})
	if err != nil {
		return nil, &TechnicalError{Code: "ENCODE_FAILED", Message: err.Error()}
	}

	result, err := uc.Gateway.Mutate(ctx, rowstore.CollectionUsers, rowstore.Mutation{
		Action: rowstore.ActionAdd,
		Data:   data,
	})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, mutationError("USER_ADD_FAILED", result.Message, "falha ao criar usuário")
	}

	user := uc.normalizeMutated(result, &entity.User{
		Name:  input.Name,
		Email: input.Email,
		Role:  input.Role,
	})
	user.Sanitize()
	return user, nil
}

func (uc *UserUseCase) Update(ctx context.Context, id string, input UpdateUserInput) (*entity.User, error) {
	payload := map[string]string{}
	if input.Name != nil {
		payload["name"] = *input.Name
	}
	if input.Role != nil {
		if !entity.ValidRole(*input.Role) {
			return nil, ValidationError{"role", "must be admin, manager or sales"}
		}
		payload["role"] = *input.Role
	}
	// Senha só entra no payload se o caller mandou uma nova.
	// Email nem existe no input: imutável depois da criação.
	if input.Password != nil && *input.Password != "" {
		payload["password"] = *input.Password
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &TechnicalError{Code: "ENCODE_FAILED", Message: err.Error()}
	}

	result, err := uc.Gateway.Mutate(ctx, rowstore.CollectionUsers, rowstore.Mutation{
		Action: rowstore.ActionUpdate,
		ID:     id,
		Data:   data,
	})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, mutationError("USER_UPDATE_FAILED", result.Message, "falha ao atualizar usuário")
	}

	fallback := &entity.User{ID: id}
	if input.Name != nil {
		fallback.Name = *input.Name
	}
	if input.Role != nil {
		fallback.Role = *input.Role
	}

	user := uc.normalizeMutated(result, fallback)
	user.Sanitize()
	return user, nil
}

func (uc *UserUseCase) Remove(ctx context.Context, id string) error {
	result, err := uc.Gateway.Mutate(ctx, rowstore.CollectionUsers, rowstore.Mutation{
		Action: rowstore.ActionDelete,
		ID:     id,
	})
	if err != nil {
		return err
	}
	if !result.Success {
		return mutationError("USER_DELETE_FAILED", result.Message, "falha ao remover usuário")
	}
	return nil
}

// normalizeMutated resolve as variações de resposta do store: linha
// completa quando veio, senão reconstrói com input + id (caminho
// degradado: a linha exibida pode estar defasada dos defaults do
// servidor, por isso o log).
func (uc *UserUseCase) normalizeMutated(result *rowstore.MutationResult, fallback *entity.User) *entity.User {
	if result.Row != nil {
		var u entity.User
		if err := json.Unmarshal(result.Row, &u); err == nil {
			return &u
		}
		log.Printf("⚠️ Users: linha da resposta não parseia, usando fallback")
	}
	if result.ID != "" {
		fallback.ID = result.ID
	}
	log.Printf("⚠️ Users: resposta sem linha completa, registro reconstruído do input (id=%s)", fallback.ID)
	return fallback
}

func mutationError(code, storeMessage, fallbackMessage string) *DomainError {
	msg := storeMessage
	if msg == "" {
		msg = fallbackMessage
	}
	return &DomainError{Code: code, Message: msg}
}
