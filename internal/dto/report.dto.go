package dto

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DashboardStats is filled by four independent aggregate queries.
type DashboardStats struct {
	TotalClients    int64
	TotalAgents     int64
	TotalProperties int64
	TotalPayments   decimal.Decimal
}

type PropertyListing struct {
	PropertyID uint            `gorm:"column:property_id"`
	Street     string          `gorm:"column:street"`
	Price      decimal.Decimal `gorm:"column:price"`
	AgentName  string          `gorm:"column:agent_name"`
	ClientName string          `gorm:"column:client_name"`
}

type AgentInCity struct {
	AgentID        uint                `gorm:"column:agent_id"`
	Name           string              `gorm:"column:name"`
	CommissionPerc decimal.NullDecimal `gorm:"column:commissionperc"`
	OfficeID       *uint               `gorm:"column:office_id"`
}

type HighValueClient struct {
	ClientID     uint            `gorm:"column:client_id"`
	Name         string          `gorm:"column:name"`
	PaymentCount int64           `gorm:"column:payment_count"`
	TotalPaid    decimal.Decimal `gorm:"column:total_paid"`
}

type PaymentRow struct {
	PaymentNo   uint            `gorm:"column:payment_no"`
	PaymentDate datatypes.Date  `gorm:"column:payment_date"`
	Amount      decimal.Decimal `gorm:"column:amount"`
	ContractID  uint            `gorm:"column:contract_id"`
}

// ContractOption is one entry of the add-payment dropdown.
type ContractOption struct {
	ContractID uint            `gorm:"column:contract_id"`
	Amount     decimal.Decimal `gorm:"column:amount"`
	ClientName string          `gorm:"column:client_name"`
	AgentName  string          `gorm:"column:agent_name"`
}

type Earning struct {
	CommissionID uint                `gorm:"column:commission_id"`
	Amount       decimal.Decimal     `gorm:"column:amount"`
	Percentage   decimal.NullDecimal `gorm:"column:percentage"`
	EarnedDate   datatypes.Date      `gorm:"column:earned_date"`
}

// Option is a generic id/label pair for select inputs.
type Option struct {
	ID    uint   `gorm:"column:id"`
	Label string `gorm:"column:label"`
}
