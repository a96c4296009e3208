package agent

import (
	"context"

	"github.com/BruksfildServices01/realestate-manager/internal/audit"
	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/realestate"
	"github.com/BruksfildServices01/realestate-manager/internal/httperr"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
	"github.com/BruksfildServices01/realestate-manager/internal/timezone"
	"github.com/BruksfildServices01/realestate-manager/internal/validators"
)

type CreateContractInput struct {
	ClientID  string
	StartDate string
	EndDate   string
	Amount    string
}

type CreateContract struct {
	repo  domain.LedgerRepository
	audit audit.Sink
}

func NewCreateContract(repo domain.LedgerRepository, audit audit.Sink) *CreateContract {
	return &CreateContract{repo: repo, audit: audit}
}

func (uc *CreateContract) Execute(
	ctx context.Context,
	agentID uint,
	in CreateContractInput,
) (*models.Contract, error) {

	clientID, err := validators.ParseID(in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, err.Error())
	}
	amount, err := validators.ParseAmount(in.Amount)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, err.Error())
	}
	start, err := timezone.ParseDate(in.StartDate)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, "invalid start date")
	}
	end, err := timezone.ParseDate(in.EndDate)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, "invalid end date")
	}

	c := &models.Contract{
		StartDate: start,
		EndDate:   end,
		Amount:    amount,
		ClientID:  clientID,
		AgentID:   agentID,
	}
	if err := uc.repo.CreateContract(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &agentID,
		Action:   audit.ActionCreateContract,
		Entity:   "contract",
		EntityID: &c.ID,
	})

	return c, nil
}
