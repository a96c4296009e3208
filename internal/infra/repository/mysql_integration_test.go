//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/realestate-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/realestate-manager/internal/db"
	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/account"
	"github.com/BruksfildServices01/realestate-manager/internal/httperr"
	"github.com/BruksfildServices01/realestate-manager/internal/infra/repository"
	"github.com/BruksfildServices01/realestate-manager/internal/migrations"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
	"github.com/BruksfildServices01/realestate-manager/internal/testutil"
)

const mysqlRootPassword = "integration"

// startMySQL runs a throwaway MySQL 8 server and returns a migrated
// connection to it.
func startMySQL(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	port, err := nat.NewPort("tcp", "3306")
	require.NoError(t, err)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8.0",
			ExposedPorts: []string{string(port)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": mysqlRootPassword,
				"MYSQL_DATABASE":      "real_estate_db",
			},
			Cmd:        []string{"--log-bin-trust-function-creators=1"},
			WaitingFor: wait.ForListeningPort(port).WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate MySQL: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, port)
	require.NoError(t, err)

	db, err := dbpkg.Open(&config.Config{
		DBType:         "mysql",
		DBHost:         host,
		DBPort:         mapped.Port(),
		DBUser:         "root",
		DBPassword:     mysqlRootPassword,
		DBName:         "real_estate_db",
		DBMaxOpenConns: 5,
		DBMaxIdleConns: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbpkg.Close(db) })

	require.NoError(t, migrations.Run(db))
	return db
}

func TestMySQL_EndToEnd(t *testing.T) {
	db := startMySQL(t)
	ctx := context.Background()

	accounts := repository.NewAccountGormRepository(db)
	realEstate := repository.NewRealEstateGormRepository(db)

	client := &models.User{Email: "client@test.com", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, accounts.CreateAccount(ctx, domain.NewAccount{
		User:        client,
		ProfileName: "client@test.com",
		DBRole:      models.DBRoleClientReadOnly,
	}))
	agent := &models.User{Email: "agent@test.com", PasswordHash: "x", Role: models.RoleAgent}
	require.NoError(t, accounts.CreateAccount(ctx, domain.NewAccount{
		User:           agent,
		ProfileName:    "agent@test.com",
		CommissionPerc: decimal.NewNullDecimal(testutil.Dec("5")),
		DBRole:         models.DBRoleAgentEditor,
	}))

	t.Run("price update fires trigger", func(t *testing.T) {
		p := testutil.CreateProperty(t, db, client.ID, agent.ID, "1 Main St", "250000")
		require.NoError(t, realEstate.UpdatePropertyPrice(ctx, p.ID, testutil.Dec("260000")))

		audits, err := realEstate.ListPriceAudits(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, audits, 1)
		assert.True(t, testutil.Dec("250000").Equal(audits[0].OldPrice))
		assert.True(t, testutil.Dec("260000").Equal(audits[0].NewPrice))
	})

	t.Run("stored function sums contracts", func(t *testing.T) {
		testutil.CreateContract(t, db, client.ID, agent.ID, "5000")
		testutil.CreateContract(t, db, client.ID, agent.ID, "2500.25")

		total, err := realEstate.AgentTotalSales(ctx, agent.ID)
		require.NoError(t, err)
		assert.True(t, testutil.Dec("7500.25").Equal(total), total.String())

		none, err := realEstate.AgentTotalSales(ctx, 999)
		require.NoError(t, err)
		assert.True(t, none.IsZero())
	})

	t.Run("referenced client cannot be deleted", func(t *testing.T) {
		_, err := accounts.DeleteUser(ctx, client.ID)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeReferenceViolation), "got %v", err)

		_, err = accounts.FindUserByID(ctx, client.ID)
		assert.NoError(t, err)
	})
}
