package usecase

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/integration/rowstore"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// UnassignedLabel aparece quando o lead não tem responsável ou quando a
// referência aponta para um usuário que já foi deletado.
const UnassignedLabel = "Unassigned"

type LeadUseCase struct {
	Gateway RowStoreGateway
	Users   *UserUseCase
	Queue   QueueProducerInterface // opcional
}

func NewLeadUseCase(gateway RowStoreGateway, users *UserUseCase, producer QueueProducerInterface) *LeadUseCase {
	return &LeadUseCase{
		Gateway: gateway,
		Users:   users,
		Queue:   producer,
	}
}

func decodeLeads(rows []json.RawMessage) []entity.Lead {
	leads := make([]entity.Lead, 0, len(rows))
	for _, row := range rows {
		var l entity.Lead
		if err := json.Unmarshal(row, &l); err != nil {
			log.Printf("⚠️ Leads: linha ignorada, não parseia como lead: %s", err)
			continue
		}
		leads = append(leads, l)
	}
	return leads
}

func (uc *LeadUseCase) List(ctx context.Context) ([]entity.Lead, error) {
	rows, err := uc.Gateway.FetchRows(ctx, rowstore.CollectionLeads)
	if err != nil {
		return nil, err
	}
	return decodeLeads(rows), nil
}

// ListWithAssignees busca leads e usuários em paralelo e resolve o nome
// do responsável na hora da leitura. Se qualquer um dos dois fetches
// falhar, a operação inteira falha. Não existe estado parcial aqui.
func (uc *LeadUseCase) ListWithAssignees(ctx context.Context) ([]entity.LeadView, error) {
	var (
		wg       sync.WaitGroup
		leads    []entity.Lead
		users    []entity.User
		leadsErr error
		usersErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		leads, leadsErr = uc.List(ctx)
	}()
	go func() {
		defer wg.Done()
		users, usersErr = uc.Users.List(ctx)
	}()
	wg.Wait()

	if leadsErr != nil {
		return nil, leadsErr
	}
	if usersErr != nil {
		return nil, usersErr
	}

	nameByID := make(map[string]string, len(users))
	for _, u := range users {
		nameByID[u.ID] = u.Name
	}

	views := make([]entity.LeadView, 0, len(leads))
	for _, l := range leads {
		name := UnassignedLabel
		if l.AssignedToID != "" {
			if n, ok := nameByID[l.AssignedToID]; ok && n != "" {
				name = n
			}
		}
		views = append(views, entity.LeadView{Lead: l, AssignedToName: name})
	}
	return views, nil
}

func (uc *LeadUseCase) Add(ctx context.Context, input AddLeadInput) (*entity.Lead, error) {
	if errs := ValidateAddLeadInput(input); len(errs) > 0 {
		return nil, errs[0]
	}

	// Timestamps são do serviço, nunca do caller. O web-app da planilha
	// não preenche colunas default, então é aqui que eles nascem.
	now := time.Now().UTC()
	lead := entity.Lead{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Source:       input.Source,
		Status:       input.Status,
		AssignedToID: input.AssignedToID,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	data, err := json.Marshal(lead)
	if err != nil {
		return nil, &TechnicalError{Code: "ENCODE_FAILED", Message: err.Error()}
	}

	result, err := uc.Gateway.Mutate(ctx, rowstore.CollectionLeads, rowstore.Mutation{
		Action: rowstore.ActionAdd,
		Data:   data,
	})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, mutationError("LEAD_ADD_FAILED", result.Message, "falha ao criar lead")
	}

	created := uc.normalizeMutated(result, &lead)

	if created.AssignedToID != "" {
		uc.notifyAssignment(ctx, created)
	}
	return created, nil
}

func (uc *LeadUseCase) Update(ctx context.Context, id string, input UpdateLeadInput) (*entity.Lead, error) {
	payload := map[string]interface{}{}
	if input.Name != nil {
		payload["name"] = *input.Name
	}
	if input.Phone != nil {
		payload["phone"] = *input.Phone
	}
	if input.Source != nil {
		payload["source"] = *input.Source
	}
	if input.Status != nil {
		if !entity.ValidStatus(*input.Status) {
			return nil, ValidationError{"status", "is invalid"}
		}
		payload["status"] = *input.Status
	}
	if input.AssignedToID != nil {
		payload["assignedToId"] = *input.AssignedToID
	}
	if input.Notes != nil {
		payload["notes"] = *input.Notes
	}

	// updatedAt é sobrescrito SEMPRE, mesmo que o caller tente mandar um.
	// UpdateLeadInput nem tem o campo, isso aqui é a segunda tranca.
	now := time.Now().UTC()
	payload["updatedAt"] = now

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &TechnicalError{Code: "ENCODE_FAILED", Message: err.Error()}
	}

	result, err := uc.Gateway.Mutate(ctx, rowstore.CollectionLeads, rowstore.Mutation{
		Action: rowstore.ActionUpdate,
		ID:     id,
		Data:   data,
	})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, mutationError("LEAD_UPDATE_FAILED", result.Message, "falha ao atualizar lead")
	}

	fallback := &entity.Lead{ID: id, UpdatedAt: now}
	if input.Name != nil {
		fallback.Name = *input.Name
	}
	if input.Status != nil {
		fallback.Status = *input.Status
	}
	if input.AssignedToID != nil {
		fallback.AssignedToID = *input.AssignedToID
	}

	updated := uc.normalizeMutated(result, fallback)
	updated.UpdatedAt = now

	if input.AssignedToID != nil && *input.AssignedToID != "" {
		uc.notifyAssignment(ctx, updated)
	}
	return updated, nil
}

func (uc *LeadUseCase) Remove(ctx context.Context, id string) error {
	result, err := uc.Gateway.Mutate(ctx, rowstore.CollectionLeads, rowstore.Mutation{
		Action: rowstore.ActionDelete,
		ID:     id,
	})
	if err != nil {
		return err
	}
	if !result.Success {
		return mutationError("LEAD_DELETE_FAILED", result.Message, "falha ao remover lead")
	}
	return nil
}

func (uc *LeadUseCase) normalizeMutated(result *rowstore.MutationResult, fallback *entity.Lead) *entity.Lead {
	if result.Row != nil {
		var l entity.Lead
		if err := json.Unmarshal(result.Row, &l); err == nil {
			return &l
		}
		log.Printf("⚠️ Leads: linha da resposta não parseia, usando fallback")
	}
	if result.ID != "" {
		fallback.ID = result.ID
	}
	log.Printf("⚠️ Leads: resposta sem linha completa, registro reconstruído do input (id=%s)", fallback.ID)
	return fallback
}

// notifyAssignment publica o evento de atribuição na fila. Best-effort:
// fila fora do ar ou responsável não encontrado só gera log, nunca
// falha a operação do lead.
func (uc *LeadUseCase) notifyAssignment(ctx context.Context, lead *entity.Lead) {
	if uc.Queue == nil {
		return
	}

	assignee, err := uc.Users.GetByID(ctx, lead.AssignedToID)
	if err != nil {
		log.Printf("⚠️ Leads: responsável %s não resolvido, notificação pulada: %s", lead.AssignedToID, err)
		return
	}

	payload := queue.LeadAssignedPayload{
		LeadID:        lead.ID,
		LeadName:      lead.Name,
		LeadStatus:    lead.Status,
		AssigneeName:  assignee.Name,
		AssigneeEmail: assignee.Email,
	}
	if err := uc.Queue.PublishLeadAssigned(ctx, payload); err != nil {
		log.Printf("❌ Leads: falha ao publicar atribuição na fila: %s", err)
	}
}
