package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/realestate"
	"github.com/BruksfildServices01/realestate-manager/internal/dto"
	"github.com/BruksfildServices01/realestate-manager/internal/migrations"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
)

type RealEstateGormRepository struct {
	db *gorm.DB
}

func NewRealEstateGormRepository(db *gorm.DB) *RealEstateGormRepository {
	return &RealEstateGormRepository{db: db}
}

// --------------------------------------------------
// Reports
// --------------------------------------------------

func (r *RealEstateGormRepository) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	db := r.db.WithContext(ctx)
	stats := &dto.DashboardStats{}

	if err := db.Model(&models.Client{}).Count(&stats.TotalClients).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Agent{}).Count(&stats.TotalAgents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Property{}).Count(&stats.TotalProperties).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalPayments).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *RealEstateGormRepository) ListPropertyListings(ctx context.Context) ([]dto.PropertyListing, error) {
	var rows []dto.PropertyListing
	err := r.db.WithContext(ctx).
		Table("property p").
		Select("p.property_id, p.street, p.price, a.name AS agent_name, c.name AS client_name").
		Joins("JOIN agent a ON a.agent_id = p.agent_id").
		Joins("JOIN client c ON c.client_id = p.client_id").
		Order("p.price DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AgentsInCity runs the nested query: agents whose office is in city.
func (r *RealEstateGormRepository) AgentsInCity(ctx context.Context, city string) ([]dto.AgentInCity, error) {
	db := r.db.WithContext(ctx)

	offices := db.Model(&models.Office{}).
		Select("office_id").
		Where("city = ?", city)

	var rows []dto.AgentInCity
	err := db.Model(&models.Agent{}).
		Select("agent_id, name, commissionperc, office_id").
		Where("office_id IN (?)", offices).
		Order("agent_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RealEstateGormRepository) HighValueClients(ctx context.Context, limit int) ([]dto.HighValueClient, error) {
	var rows []dto.HighValueClient
	err := r.db.WithContext(ctx).
		Table("client c").
		Select("c.client_id, c.name, COUNT(pay.payment_no) AS payment_count, COALESCE(SUM(pay.amount), 0) AS total_paid").
		Joins("JOIN contract ct ON ct.client_id = c.client_id").
		Joins("JOIN payment pay ON pay.contract_id = ct.contract_id").
		Group("c.client_id, c.name").
		Order("total_paid DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AgentTotalSales calls the stored function. SQLite has none, so the
// function body is evaluated as a plain query there.
func (r *RealEstateGormRepository) AgentTotalSales(ctx context.Context, agentID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	db := r.db.WithContext(ctx)

	var err error
	if db.Dialector.Name() == "sqlite" {
		err = db.Model(&models.Contract{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("agent_id = ?", agentID).
			Scan(&total).Error
	} else {
		err = db.Raw("SELECT "+migrations.AgentSalesFunction+"(?)", agentID).Scan(&total).Error
	}
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *RealEstateGormRepository) ListAgents(ctx context.Context) ([]models.Agent, error) {
	var agents []models.Agent
	if err := r.db.WithContext(ctx).Order("agent_id ASC").Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

// --------------------------------------------------
// Property
// --------------------------------------------------

func (r *RealEstateGormRepository) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	var p models.Property
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Agent").
		First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePropertyPrice is a single UPDATE; the audit row comes from the trigger.
func (r *RealEstateGormRepository) UpdatePropertyPrice(ctx context.Context, id uint, price decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("property_id = ?", id).
		Update("price", price).Error
}

func (r *RealEstateGormRepository) ListPriceAudits(ctx context.Context, propertyID uint) ([]models.PropertyPriceAudit, error) {
	var audits []models.PropertyPriceAudit
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("audit_id DESC").
		Find(&audits).Error; err != nil {
		return nil, err
	}
	return audits, nil
}

func (r *RealEstateGormRepository) CreateProperty(ctx context.Context, p *models.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *RealEstateGormRepository) ListPropertiesForClient(ctx context.Context, clientID uint) ([]models.Property, error) {
	var props []models.Property
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("property_id ASC").
		Find(&props).Error; err != nil {
		return nil, err
	}
	return props, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *RealEstateGormRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Preload("Phone").
		Order("client_id ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *RealEstateGormRepository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).Preload("Phone").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *RealEstateGormRepository) UpdateClientProfile(ctx context.Context, c *models.Client, phone string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Client{}).
			Where("client_id = ?", c.ID).
			Updates(map[string]any{
				"fname":         c.Fname,
				"lname":         c.Lname,
				"addressstreet": c.AddressStreet,
				"city":          c.City,
				"state":         c.State,
				"zipcode":       c.ZIPCode,
			}).Error; err != nil {
			return err
		}

		if phone == "" {
			return tx.Where("client_id = ?", c.ID).Delete(&models.ClientPhone{}).Error
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"phonenumber"}),
		}).Create(&models.ClientPhone{ClientID: c.ID, PhoneNumber: phone}).Error
	})
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

func (r *RealEstateGormRepository) ListPayments(ctx context.Context) ([]dto.PaymentRow, error) {
	var rows []dto.PaymentRow
	if err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("payment_no, payment_date, amount, contract_id").
		Order("payment_no ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RealEstateGormRepository) ListContractOptions(ctx context.Context) ([]dto.ContractOption, error) {
	var rows []dto.ContractOption
	err := r.db.WithContext(ctx).
		Table("contract ct").
		Select("ct.contract_id, ct.amount, c.name AS client_name, a.name AS agent_name").
		Joins("JOIN client c ON c.client_id = ct.client_id").
		Joins("JOIN agent a ON a.agent_id = ct.agent_id").
		Order("ct.contract_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RealEstateGormRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *RealEstateGormRepository) CreateContract(ctx context.Context, c *models.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *RealEstateGormRepository) AddCommission(
	ctx context.Context,
	agentID uint,
	c *models.Commission,
	earned datatypes.Date,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Create(&models.Earns{
			AgentID:      agentID,
			CommissionID: c.ID,
			EarnedDate:   earned,
		}).Error
	})
}

func (r *RealEstateGormRepository) EarningsForAgent(ctx context.Context, agentID uint) ([]dto.Earning, error) {
	var rows []dto.Earning
	err := r.db.WithContext(ctx).
		Table("commission cm").
		Select("cm.commission_id, cm.amount, cm.percentage, e.earned_date").
		Joins("JOIN earns e ON e.commission_id = cm.commission_id").
		Where("e.agent_id = ?", agentID).
		Order("e.earned_date DESC, cm.commission_id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RealEstateGormRepository) PaymentsForClient(ctx context.Context, clientID uint) ([]dto.PaymentRow, error) {
	var rows []dto.PaymentRow
	err := r.db.WithContext(ctx).
		Table("payment pay").
		Select("pay.payment_no, pay.payment_date, pay.amount, pay.contract_id").
		Joins("JOIN contract ct ON ct.contract_id = pay.contract_id").
		Where("ct.client_id = ?", clientID).
		Order("pay.payment_date DESC, pay.payment_no DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Compile-time checks
var (
	_ domain.ReportRepository   = (*RealEstateGormRepository)(nil)
	_ domain.PropertyRepository = (*RealEstateGormRepository)(nil)
	_ domain.ClientRepository   = (*RealEstateGormRepository)(nil)
	_ domain.LedgerRepository   = (*RealEstateGormRepository)(nil)
)
