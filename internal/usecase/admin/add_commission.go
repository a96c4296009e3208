package admin

import (
	"context"

	"github.com/BruksfildServices01/realestate-manager/internal/audit"
	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/realestate"
	"github.com/BruksfildServices01/realestate-manager/internal/httperr"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
	"github.com/BruksfildServices01/realestate-manager/internal/timezone"
	"github.com/BruksfildServices01/realestate-manager/internal/validators"
)

type AddCommissionInput struct {
	AgentID    string
	Amount     string
	Percentage string // optional
	EarnedDate string // YYYY-MM-DD
}

type AddCommission struct {
	repo  domain.LedgerRepository
	audit audit.Sink
}

func NewAddCommission(repo domain.LedgerRepository, audit audit.Sink) *AddCommission {
	return &AddCommission{repo: repo, audit: audit}
}

func (uc *AddCommission) Execute(
	ctx context.Context,
	actorID uint,
	in AddCommissionInput,
) (*models.Commission, error) {

	agentID, err := validators.ParseID(in.AgentID)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, err.Error())
	}
	amount, err := validators.ParseAmount(in.Amount)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, err.Error())
	}
	perc, err := validators.ParseOptionalAmount(in.Percentage)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, err.Error())
	}
	earned, err := timezone.ParseDate(in.EarnedDate)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, "invalid earned date")
	}

	c := &models.Commission{Amount: amount, Percentage: perc}
	if err := uc.repo.AddCommission(ctx, agentID, c, earned); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionAddCommission,
		Entity:   "commission",
		EntityID: &c.ID,
		Metadata: map[string]any{"agent_id": agentID, "amount": amount.String()},
	})

	return c, nil
}
