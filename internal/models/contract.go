package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Contract struct {
	ID        uint            `gorm:"column:contract_id;primaryKey" json:"id"`
	StartDate datatypes.Date  `gorm:"column:start_date" json:"start_date"`
	EndDate   datatypes.Date  `gorm:"column:end_date" json:"end_date"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(12,2)" json:"amount"`

	ClientID uint    `gorm:"column:client_id;not null;index" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID;references:ID" json:"client,omitempty"`

	AgentID uint   `gorm:"column:agent_id;not null;index" json:"agent_id"`
	Agent   *Agent `gorm:"foreignKey:AgentID;references:ID" json:"agent,omitempty"`
}

func (Contract) TableName() string { return "contract" }

type Payment struct {
	ID          uint            `gorm:"column:payment_no;primaryKey" json:"payment_no"`
	PaymentDate datatypes.Date  `gorm:"column:payment_date" json:"payment_date"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(12,2)" json:"amount"`

	ContractID uint      `gorm:"column:contract_id;not null;index" json:"contract_id"`
	Contract   *Contract `gorm:"foreignKey:ContractID;references:ID" json:"contract,omitempty"`
}

func (Payment) TableName() string { return "payment" }
