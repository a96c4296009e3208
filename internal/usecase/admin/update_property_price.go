package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/realestate-manager/internal/audit"
	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/realestate"
	"github.com/BruksfildServices01/realestate-manager/internal/httperr"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
	"github.com/BruksfildServices01/realestate-manager/internal/validators"
)

type UpdatePropertyPrice struct {
	repo  domain.PropertyRepository
	audit audit.Sink
}

func NewUpdatePropertyPrice(repo domain.PropertyRepository, audit audit.Sink) *UpdatePropertyPrice {
	return &UpdatePropertyPrice{repo: repo, audit: audit}
}

// Execute issues one UPDATE of the price column. The database trigger
// records the old and new price.
func (uc *UpdatePropertyPrice) Execute(
	ctx context.Context,
	actorID uint,
	propertyID uint,
	price string,
) (*models.Property, error) {

	newPrice, err := validators.ParseAmount(price)
	if err != nil {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, err.Error())
	}

	prop, err := uc.repo.GetProperty(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}

	oldPrice := prop.Price
	if err := uc.repo.UpdatePropertyPrice(ctx, propertyID, newPrice); err != nil {
		return nil, err
	}
	prop.Price = newPrice

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionUpdatePrice,
		Entity:   "property",
		EntityID: &prop.ID,
		Metadata: map[string]string{"old_price": oldPrice.String(), "new_price": newPrice.String()},
	})

	return prop, nil
}
