package account

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/realestate-manager/internal/audit"
	"github.com/BruksfildServices01/realestate-manager/internal/auth"
	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/account"
	"github.com/BruksfildServices01/realestate-manager/internal/httperr"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
)

type Authenticate struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewAuthenticate(repo domain.Repository, audit audit.Sink) *Authenticate {
	return &Authenticate{repo: repo, audit: audit}
}

// Execute returns the user only when password matches the stored hash.
// Unknown names and wrong passwords fail with the same error.
func (uc *Authenticate) Execute(
	ctx context.Context,
	name string,
	password string,
) (*models.User, error) {

	name = strings.TrimSpace(name)

	user, err := uc.repo.FindUserByEmail(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			uc.failed(name)
			return nil, httperr.ErrBusiness(httperr.CodeInvalidCredentials)
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		uc.failed(name)
		return nil, httperr.ErrBusiness(httperr.CodeInvalidCredentials)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   audit.ActionLogin,
		Entity:   "user",
		EntityID: &user.ID,
	})

	return user, nil
}

func (uc *Authenticate) failed(name string) {
	uc.audit.Dispatch(audit.Event{
		Action:   audit.ActionLoginFailed,
		Entity:   "user",
		Metadata: map[string]string{"name": name},
	})
}

// LandingPath is where a freshly authenticated user is sent.
func LandingPath(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "/admin_dashboard"
	case models.RoleAgent:
		return "/agent_dashboard"
	default:
		return "/client_dashboard"
	}
}
