package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/account"
	"github.com/BruksfildServices01/realestate-manager/internal/httperr"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *AccountGormRepository) FindUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AccountGormRepository) FindUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AccountGormRepository) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AccountGormRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("user_id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *AccountGormRepository) CreateUser(
	ctx context.Context,
	user *models.User,
) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *AccountGormRepository) UpdatePasswordHash(
	ctx context.Context,
	userID uint,
	hash string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_id = ?", userID).
		Update("passwordhash", hash).Error
}

// --------------------------------------------------
// Registration
// --------------------------------------------------

func (r *AccountGormRepository) CreateAccount(
	ctx context.Context,
	acc domain.NewAccount,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := acc.User
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return httperr.ErrBusiness(httperr.CodeEmailTaken)
			}
			return err
		}

		switch user.Role {
		case models.RoleClient:
			if err := tx.Create(&models.Client{ID: user.ID, Name: acc.ProfileName}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).Where("user_id = ?", user.ID).Update("client_id", user.ID).Error; err != nil {
				return err
			}
			linked := user.ID
			user.ClientID = &linked

		case models.RoleAgent:
			agent := &models.Agent{
				ID:             user.ID,
				Name:           acc.ProfileName,
				CommissionPerc: acc.CommissionPerc,
			}
			if err := tx.Create(agent).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).Where("user_id = ?", user.ID).Update("agent_id", user.ID).Error; err != nil {
				return err
			}
			linked := user.ID
			user.AgentID = &linked

		default:
			return httperr.ErrBusiness(httperr.CodeInvalidRole)
		}

		return tx.Create(&models.RoleGrant{UserID: user.ID, DBRole: acc.DBRole}).Error
	})
}

// --------------------------------------------------
// Removal
// --------------------------------------------------

func (r *AccountGormRepository) DeleteUser(
	ctx context.Context,
	userID uint,
) (*models.User, error) {

	var user models.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness(httperr.CodeUserNotFound)
			}
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.RoleGrant{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.User{}, userID).Error; err != nil {
			return referenceError(err)
		}

		profileID := user.ProfileID()
		switch user.Role {
		case models.RoleClient:
			if err := tx.Where("client_id = ?", profileID).Delete(&models.ClientPhone{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Client{}, profileID).Error; err != nil {
				return referenceError(err)
			}
		case models.RoleAgent:
			if err := tx.Delete(&models.Agent{}, profileID).Error; err != nil {
				return referenceError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func referenceError(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return httperr.ErrBusinessDetail(httperr.CodeReferenceViolation, err.Error())
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AccountGormRepository)(nil)
