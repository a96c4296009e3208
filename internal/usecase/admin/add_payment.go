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

type AddPaymentInput struct {
	ContractID  string
	PaymentDate string
	Amount      string
}

type AddPayment struct {
	repo  domain.LedgerRepository
	audit audit.Sink
}

func NewAddPayment(repo domain.LedgerRepository, audit audit.Sink) *AddPayment {
	return &AddPayment{repo: repo, audit: audit}
}

func (uc *AddPayment) Execute(
	ctx context.Context,
	actorID uint,
	in AddPaymentInput,
) (*models.Payment, error) {

	contractID, err := validators.ParseID(in.ContractID)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, err.Error())
	}
	amount, err := validators.ParseAmount(in.Amount)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, err.Error())
	}
	date, err := timezone.ParseDate(in.PaymentDate)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, "invalid payment date")
	}

	p := &models.Payment{PaymentDate: date, Amount: amount, ContractID: contractID}
	if err := uc.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionAddPayment,
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{"contract_id": contractID, "amount": amount.String()},
	})

	return p, nil
}
