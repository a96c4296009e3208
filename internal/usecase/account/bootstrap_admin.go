package account

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/realestate-manager/internal/audit"
	"github.com/BruksfildServices01/realestate-manager/internal/auth"
	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/account"
	"github.com/BruksfildServices01/realestate-manager/internal/httperr"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
)

type BootstrapResult string

const (
	AdminCreated   BootstrapResult = "created"
	AdminReset     BootstrapResult = "password_reset"
	AdminUnchanged BootstrapResult = "unchanged"
)

type BootstrapAdmin struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewBootstrapAdmin(repo domain.Repository, audit audit.Sink) *BootstrapAdmin {
	return &BootstrapAdmin{repo: repo, audit: audit}
}

// Execute makes sure an Admin account with email exists and that password
// verifies against its hash.
func (uc *BootstrapAdmin) Execute(
	ctx context.Context,
	email string,
	password string,
) (BootstrapResult, error) {

	user, err := uc.repo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	if user != nil && user.Role != models.RoleAdmin {
		return "", httperr.ErrBusinessDetail(httperr.CodeEmailTaken, email+" belongs to a "+string(user.Role))
	}

	if user != nil && auth.CheckPassword(user.PasswordHash, password) {
		return AdminUnchanged, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	result := AdminReset
	if user == nil {
		user = &models.User{Email: email, PasswordHash: hash, Role: models.RoleAdmin}
		if err := uc.repo.CreateUser(ctx, user); err != nil {
			return "", err
		}
		result = AdminCreated
	} else if err := uc.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   audit.ActionBootstrapAdmin,
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]string{"result": string(result)},
	})

	return result, nil
}
