package account

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/realestate-manager/internal/models"
)

// NewAccount is everything written by a self-registration.
type NewAccount struct {
	User           *models.User
	ProfileName    string
	CommissionPerc decimal.NullDecimal // NULL when left blank
	DBRole         string
}

type Repository interface {
	// -------- User --------
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	CreateUser(ctx context.Context, user *models.User) error
	UpdatePasswordHash(ctx context.Context, userID uint, hash string) error

	// -------- Registration / removal --------

	// CreateAccount inserts the user, its client or agent profile, the link
	// from user to profile and the role grant in one transaction.
	CreateAccount(ctx context.Context, acc NewAccount) error

	// DeleteUser removes the user and its profile row in one transaction and
	// returns the deleted user.
	DeleteUser(ctx context.Context, userID uint) (*models.User, error)
}
