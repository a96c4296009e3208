package realestate

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/realestate-manager/internal/dto"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
)

// ReportRepository backs the admin reports.
type ReportRepository interface {
	DashboardStats(ctx context.Context) (*dto.DashboardStats, error)
	ListPropertyListings(ctx context.Context) ([]dto.PropertyListing, error)
	AgentsInCity(ctx context.Context, city string) ([]dto.AgentInCity, error)
	HighValueClients(ctx context.Context, limit int) ([]dto.HighValueClient, error)
	AgentTotalSales(ctx context.Context, agentID uint) (decimal.Decimal, error)
	ListAgents(ctx context.Context) ([]models.Agent, error)
}

type PropertyRepository interface {
	GetProperty(ctx context.Context, id uint) (*models.Property, error)
	UpdatePropertyPrice(ctx context.Context, id uint, price decimal.Decimal) error
	ListPriceAudits(ctx context.Context, propertyID uint) ([]models.PropertyPriceAudit, error)
	CreateProperty(ctx context.Context, p *models.Property) error
	ListPropertiesForClient(ctx context.Context, clientID uint) ([]models.Property, error)
}

type ClientRepository interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id uint) (*models.Client, error)

	// UpdateClientProfile saves the name/address columns and replaces the
	// phone row (removed when phone is empty) in one transaction.
	UpdateClientProfile(ctx context.Context, c *models.Client, phone string) error
}

type LedgerRepository interface {
	ListPayments(ctx context.Context) ([]dto.PaymentRow, error)
	ListContractOptions(ctx context.Context) ([]dto.ContractOption, error)
	CreatePayment(ctx context.Context, p *models.Payment) error
	CreateContract(ctx context.Context, c *models.Contract) error

	// AddCommission inserts the commission and its earns row in one transaction.
	AddCommission(ctx context.Context, agentID uint, c *models.Commission, earned datatypes.Date) error
	EarningsForAgent(ctx context.Context, agentID uint) ([]dto.Earning, error)
	PaymentsForClient(ctx context.Context, clientID uint) ([]dto.PaymentRow, error)
}
