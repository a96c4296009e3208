// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/realestate-manager/internal/auth"
	dbpkg "github.com/BruksfildServices01/realestate-manager/internal/db"
	"github.com/BruksfildServices01/realestate-manager/internal/migrations"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
	"github.com/BruksfildServices01/realestate-manager/internal/timezone"
)

// NewDB opens a file-backed SQLite database in a temp dir with every
// migration applied.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "realestate.db")
	db, err := gorm.Open(sqlite.Open(dbpkg.SQLiteDSN(path)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, migrations.Run(db))

	t.Cleanup(func() { _ = dbpkg.Close(db) })
	return db
}

func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// CreateUser inserts a user with the given role, linking a client or agent
// profile that shares its id.
func CreateUser(t *testing.T, db *gorm.DB, email, password string, role models.Role) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{Email: email, PasswordHash: hash, Role: role}
	require.NoError(t, db.Create(user).Error)

	switch role {
	case models.RoleClient:
		require.NoError(t, db.Create(&models.Client{ID: user.ID, Name: email}).Error)
		linked := user.ID
		user.ClientID = &linked
		require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", user.ID).Update("client_id", user.ID).Error)
	case models.RoleAgent:
		require.NoError(t, db.Create(&models.Agent{ID: user.ID, Name: email, CommissionPerc: decimal.NewNullDecimal(Dec("5"))}).Error)
		linked := user.ID
		user.AgentID = &linked
		require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", user.ID).Update("agent_id", user.ID).Error)
	}
	return user
}

func CreateProperty(t *testing.T, db *gorm.DB, clientID, agentID uint, street, price string) *models.Property {
	t.Helper()

	p := &models.Property{
		Street:   street,
		City:     "Springfield",
		State:    "IL",
		ZIP:      "62701",
		Price:    Dec(price),
		Type:     "House",
		Size:     120,
		ClientID: clientID,
		AgentID:  agentID,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func CreateContract(t *testing.T, db *gorm.DB, clientID, agentID uint, amount string) *models.Contract {
	t.Helper()

	start, _ := timezone.ParseDate("2024-01-01")
	end, _ := timezone.ParseDate("2024-12-31")
	c := &models.Contract{
		StartDate: start,
		EndDate:   end,
		Amount:    Dec(amount),
		ClientID:  clientID,
		AgentID:   agentID,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func CreatePayment(t *testing.T, db *gorm.DB, contractID uint, date, amount string) *models.Payment {
	t.Helper()

	d, err := timezone.ParseDate(date)
	require.NoError(t, err)
	p := &models.Payment{PaymentDate: d, Amount: Dec(amount), ContractID: contractID}
	require.NoError(t, db.Create(p).Error)
	return p
}
