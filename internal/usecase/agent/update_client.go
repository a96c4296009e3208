package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/realestate-manager/internal/audit"
	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/realestate"
	"github.com/BruksfildServices01/realestate-manager/internal/httperr"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
	"github.com/BruksfildServices01/realestate-manager/internal/validators"
)

type UpdateClientInput struct {
	ClientID string
	Fname    string
	Lname    string
	Phone    string
	Street   string
	City     string
	State    string
	ZIP      string
}

type UpdateClientProfile struct {
	repo  domain.ClientRepository
	audit audit.Sink
}

func NewUpdateClientProfile(repo domain.ClientRepository, audit audit.Sink) *UpdateClientProfile {
	return &UpdateClientProfile{repo: repo, audit: audit}
}

// Execute fills in the client's personal details. An empty phone removes
// the stored number.
func (uc *UpdateClientProfile) Execute(
	ctx context.Context,
	agentID uint,
	in UpdateClientInput,
) (*models.Client, error) {

	clientID, err := validators.ParseID(in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, err.Error())
	}

	client, err := uc.repo.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessDetail(httperr.CodeNotFound, fmt.Sprintf("Client ID %d not found.", clientID))
		}
		return nil, err
	}

	client.Fname = strings.TrimSpace(in.Fname)
	client.Lname = strings.TrimSpace(in.Lname)
	client.AddressStreet = strings.TrimSpace(in.Street)
	client.City = strings.TrimSpace(in.City)
	client.State = strings.TrimSpace(in.State)
	client.ZIPCode = strings.TrimSpace(in.ZIP)

	phone := strings.TrimSpace(in.Phone)
	if err := uc.repo.UpdateClientProfile(ctx, client, phone); err != nil {
		return nil, err
	}

	client.Phone = nil
	if phone != "" {
		client.Phone = &models.ClientPhone{ClientID: client.ID, PhoneNumber: phone}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &agentID,
		Action:   audit.ActionUpdateClient,
		Entity:   "client",
		EntityID: &client.ID,
	})

	return client, nil
}
