package account

import (
	"context"

	"github.com/BruksfildServices01/realestate-manager/internal/audit"
	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/account"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
)

type DeleteUser struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewDeleteUser(repo domain.Repository, audit audit.Sink) *DeleteUser {
	return &DeleteUser{repo: repo, audit: audit}
}

// Execute removes the user and its client or agent row. Errors carry
// user_not_found or reference_violation codes.
func (uc *DeleteUser) Execute(
	ctx context.Context,
	actorID uint,
	userID uint,
) (*models.User, error) {

	user, err := uc.repo.DeleteUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionDeleteUser,
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]string{"email": user.Email, "role": string(user.Role)},
	})

	return user, nil
}
