package account

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/realestate-manager/internal/audit"
	"github.com/BruksfildServices01/realestate-manager/internal/auth"
	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/account"
	"github.com/BruksfildServices01/realestate-manager/internal/httperr"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
	"github.com/BruksfildServices01/realestate-manager/internal/validators"
)

type RegisterInput struct {
	Name            string
	Password        string
	ConfirmPassword string
	Role            string
	CommissionPerc  string
}

type Register struct {
	repo        domain.Repository
	audit       audit.Sink
	checkDomain validators.DomainChecker
}

// NewRegister builds the signup use case. checkDomain may be nil.
func NewRegister(
	repo domain.Repository,
	audit audit.Sink,
	checkDomain validators.DomainChecker,
) *Register {
	return &Register{
		repo:        repo,
		audit:       audit,
		checkDomain: checkDomain,
	}
}

func (uc *Register) Execute(
	ctx context.Context,
	in RegisterInput,
) (*models.User, error) {

	name := strings.TrimSpace(in.Name)
	if name == "" || in.Password == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	if in.Password != in.ConfirmPassword {
		return nil, httperr.ErrBusiness(httperr.CodePasswordMismatch)
	}

	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRole)
	}
	dbRole, ok := models.DBRoleFor(role)
	if !ok {
		// Admin accounts are only created by the bootstrap.
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRole)
	}

	if uc.checkDomain != nil && !uc.checkDomain(ctx, name) {
		return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, "email domain does not resolve")
	}

	exists, err := uc.repo.EmailExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.ErrBusiness(httperr.CodeEmailTaken)
	}

	acc := domain.NewAccount{
		User:        &models.User{Email: name, Role: role},
		ProfileName: name,
		DBRole:      dbRole,
	}
	if role == models.RoleAgent {
		perc, err := validators.ParseOptionalAmount(in.CommissionPerc)
		if err != nil {
			return nil, httperr.ErrBusinessDetail(httperr.CodeInvalidInput, err.Error())
		}
		acc.CommissionPerc = perc
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	acc.User.PasswordHash = hash

	if err := uc.repo.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &acc.User.ID,
		Action:   audit.ActionSignup,
		Entity:   "user",
		EntityID: &acc.User.ID,
		Metadata: map[string]string{"role": string(role), "db_role": dbRole},
	})

	return acc.User, nil
}
