package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/realestate-manager/internal/infra/repository"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
	"github.com/BruksfildServices01/realestate-manager/internal/testutil"
	"github.com/BruksfildServices01/realestate-manager/internal/timezone"
)

type fixture struct {
	db     *gorm.DB
	repo   *repository.RealEstateGormRepository
	admin  *models.User
	client *models.User
	agent  *models.User
}

// newFixture creates admin (1), client (2) and agent (3).
func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	return &fixture{
		db:     db,
		repo:   repository.NewRealEstateGormRepository(db),
		admin:  testutil.CreateUser(t, db, "admin@test.com", "admin", models.RoleAdmin),
		client: testutil.CreateUser(t, db, "client@test.com", "pw", models.RoleClient),
		agent:  testutil.CreateUser(t, db, "agent@test.com", "pw", models.RoleAgent),
	}
}

func TestDashboardStatsMatchIndependentCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	testutil.CreateProperty(t, f.db, f.client.ID, f.agent.ID, "1 Main St", "250000")
	testutil.CreateProperty(t, f.db, f.client.ID, f.agent.ID, "2 Main St", "180000")
	c := testutil.CreateContract(t, f.db, f.client.ID, f.agent.ID, "5000")
	testutil.CreatePayment(t, f.db, c.ID, "2024-02-01", "1500.50")
	testutil.CreatePayment(t, f.db, c.ID, "2024-03-01", "1000")

	stats, err := f.repo.DashboardStats(ctx)
	require.NoError(t, err)

	var clients, agents, properties int64
	f.db.Raw("SELECT COUNT(*) FROM client").Scan(&clients)
	f.db.Raw("SELECT COUNT(*) FROM agent").Scan(&agents)
	f.db.Raw("SELECT COUNT(*) FROM property").Scan(&properties)

	assert.Equal(t, clients, stats.TotalClients)
	assert.Equal(t, agents, stats.TotalAgents)
	assert.Equal(t, properties, stats.TotalProperties)
	assert.True(t, testutil.Dec("2500.50").Equal(stats.TotalPayments), stats.TotalPayments.String())
}

func TestDashboardStatsWithoutPayments(t *testing.T) {
	f := newFixture(t)

	stats, err := f.repo.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.TotalPayments.IsZero())
	assert.Equal(t, int64(1), stats.TotalClients)
}

func TestListPropertyListingsOrderedByPrice(t *testing.T) {
	f := newFixture(t)
	testutil.CreateProperty(t, f.db, f.client.ID, f.agent.ID, "cheap", "100000")
	testutil.CreateProperty(t, f.db, f.client.ID, f.agent.ID, "pricey", "900000")

	rows, err := f.repo.ListPropertyListings(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "pricey", rows[0].Street)
	assert.Equal(t, "agent@test.com", rows[0].AgentName)
	assert.Equal(t, "client@test.com", rows[0].ClientName)
	assert.True(t, testutil.Dec("900000").Equal(rows[0].Price))
}

func TestAgentsInCityUsesOfficeSubquery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	office := &models.Office{Street: "10 Office Rd", City: "Boston", State: "MA", ZIP: "02101"}
	require.NoError(t, f.db.Create(office).Error)
	require.NoError(t, f.db.Model(&models.Agent{}).Where("agent_id = ?", f.agent.ID).Update("office_id", office.ID).Error)

	rows, err := f.repo.AgentsInCity(ctx, "Boston")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, f.agent.ID, rows[0].AgentID)

	rows, err = f.repo.AgentsInCity(ctx, "Denver")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestHighValueClients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := testutil.CreateUser(t, f.db, "other@test.com", "pw", models.RoleClient)

	c1 := testutil.CreateContract(t, f.db, f.client.ID, f.agent.ID, "1000")
	testutil.CreatePayment(t, f.db, c1.ID, "2024-01-10", "100")
	c2 := testutil.CreateContract(t, f.db, other.ID, f.agent.ID, "9000")
	testutil.CreatePayment(t, f.db, c2.ID, "2024-01-10", "4000")
	testutil.CreatePayment(t, f.db, c2.ID, "2024-02-10", "4000")

	rows, err := f.repo.HighValueClients(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, other.ID, rows[0].ClientID)
	assert.Equal(t, int64(2), rows[0].PaymentCount)
	assert.True(t, testutil.Dec("8000").Equal(rows[0].TotalPaid))

	rows, err = f.repo.HighValueClients(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAgentTotalSales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	total, err := f.repo.AgentTotalSales(ctx, f.agent.ID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	testutil.CreateContract(t, f.db, f.client.ID, f.agent.ID, "1200")
	testutil.CreateContract(t, f.db, f.client.ID, f.agent.ID, "800")

	total, err = f.repo.AgentTotalSales(ctx, f.agent.ID)
	require.NoError(t, err)
	assert.True(t, testutil.Dec("2000").Equal(total), total.String())
}

func TestAddCommissionShowsInEarnings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.Equal(t, uint(3), f.agent.ID)

	earned, err := timezone.ParseDate("2024-01-01")
	require.NoError(t, err)

	c := &models.Commission{Amount: testutil.Dec("500")}
	c.Percentage.Decimal = testutil.Dec("10")
	c.Percentage.Valid = true
	require.NoError(t, f.repo.AddCommission(ctx, 3, c, earned))

	rows, err := f.repo.EarningsForAgent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, testutil.Dec("500").Equal(rows[0].Amount))
	assert.True(t, rows[0].Percentage.Valid)
	assert.True(t, testutil.Dec("10").Equal(rows[0].Percentage.Decimal))
	assert.Equal(t, "2024-01-01", timezone.FormatDate(rows[0].EarnedDate))
}

func TestAddCommissionRollsBackOnUnknownAgent(t *testing.T) {
	f := newFixture(t)
	earned, _ := timezone.ParseDate("2024-01-01")

	err := f.repo.AddCommission(context.Background(), 999, &models.Commission{Amount: testutil.Dec("10")}, earned)
	require.Error(t, err)

	var count int64
	f.db.Model(&models.Commission{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdatePropertyPriceAndAudits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := testutil.CreateProperty(t, f.db, f.client.ID, f.agent.ID, "1 Main St", "250000")

	require.NoError(t, f.repo.UpdatePropertyPrice(ctx, p.ID, testutil.Dec("275000")))

	got, err := f.repo.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, testutil.Dec("275000").Equal(got.Price))
	require.NotNil(t, got.Agent)
	assert.Equal(t, "agent@test.com", got.Agent.Name)

	audits, err := f.repo.ListPriceAudits(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.True(t, testutil.Dec("250000").Equal(audits[0].OldPrice))
	assert.True(t, testutil.Dec("275000").Equal(audits[0].NewPrice))
}

func TestUpdateClientProfilePhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := &models.Client{ID: f.client.ID, Fname: "Ada", Lname: "Lovelace", AddressStreet: "12 Analytical Way", City: "London"}
	require.NoError(t, f.repo.UpdateClientProfile(ctx, c, "555-0100"))
	require.NoError(t, f.repo.UpdateClientProfile(ctx, c, "555-0199"))

	got, err := f.repo.GetClient(ctx, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Fname)
	assert.Equal(t, "London", got.City)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "555-0199", got.Phone.PhoneNumber)

	require.NoError(t, f.repo.UpdateClientProfile(ctx, c, ""))
	got, err = f.repo.GetClient(ctx, f.client.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Phone)
}

func TestClientPortalQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := testutil.CreateUser(t, f.db, "other@test.com", "pw", models.RoleClient)

	testutil.CreateProperty(t, f.db, f.client.ID, f.agent.ID, "mine", "1")
	testutil.CreateProperty(t, f.db, other.ID, f.agent.ID, "theirs", "1")
	mine := testutil.CreateContract(t, f.db, f.client.ID, f.agent.ID, "100")
	theirs := testutil.CreateContract(t, f.db, other.ID, f.agent.ID, "100")
	testutil.CreatePayment(t, f.db, mine.ID, "2024-05-01", "50")
	testutil.CreatePayment(t, f.db, theirs.ID, "2024-05-01", "75")

	props, err := f.repo.ListPropertiesForClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "mine", props[0].Street)

	payments, err := f.repo.PaymentsForClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, mine.ID, payments[0].ContractID)
	assert.Equal(t, "2024-05-01", timezone.FormatDate(payments[0].PaymentDate))

	all, err := f.repo.ListPayments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	options, err := f.repo.ListContractOptions(ctx)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "client@test.com", options[0].ClientName)
}
