package agent

import (
	"context"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/realestate-manager/internal/audit"
	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/realestate"
	"github.com/BruksfildServices01/realestate-manager/internal/httperr"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
	"github.com/BruksfildServices01/realestate-manager/internal/validators"
)

type CreatePropertyInput struct {
	ClientID string
	Street   string
	City     string
	State    string
	ZIP      string
	Price    string
	Type     string
	Size     string
}

type CreateProperty struct {
	repo  domain.PropertyRepository
	audit audit.Sink
}

func NewCreateProperty(repo domain.PropertyRepository, audit audit.Sink) *CreateProperty {
	return &CreateProperty{repo: repo, audit: audit}
}

// Execute lists a property owned by the client and managed by agentID.
func (uc *CreateProperty) Execute(
	ctx context.Context,
	agentID uint,
	in CreatePropertyInput,
) (*models.Property, error) {

	clientID, err := validators.ParseID(in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, err.Error())
	}
	price, err := validators.ParseAmount(in.Price)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, err.Error())
	}
	size, err := strconv.Atoi(strings.TrimSpace(in.Size))
	if err != nil || size < 0 {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, "invalid size")
	}

	p := &models.Property{
		Street:   strings.TrimSpace(in.Street),
		City:     strings.TrimSpace(in.City),
		State:    strings.TrimSpace(in.State),
		ZIP:      strings.TrimSpace(in.ZIP),
		Price:    price,
		Type:     strings.TrimSpace(in.Type),
		Size:     size,
		ClientID: clientID,
		AgentID:  agentID,
	}
	if err := uc.repo.CreateProperty(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &agentID,
		Action:   audit.ActionCreateProperty,
		Entity:   "property",
		EntityID: &p.ID,
	})

	return p, nil
}
