package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Commission struct {
	ID         uint                `gorm:"column:commission_id;primaryKey" json:"id"`
	Amount     decimal.Decimal     `gorm:"column:amount;type:decimal(12,2)" json:"amount"`
	Percentage decimal.NullDecimal `gorm:"column:percentage;type:decimal(5,2)" json:"percentage"`
}

func (Commission) TableName() string { return "commission" }

// Earns links a commission to the agent who earned it.
type Earns struct {
	AgentID      uint           `gorm:"column:agent_id;primaryKey;autoIncrement:false" json:"agent_id"`
	CommissionID uint           `gorm:"column:commission_id;primaryKey;autoIncrement:false" json:"commission_id"`
	EarnedDate   datatypes.Date `gorm:"column:earned_date" json:"earned_date"`

	Agent      *Agent      `gorm:"foreignKey:AgentID;references:ID" json:"-"`
	Commission *Commission `gorm:"foreignKey:CommissionID;references:ID" json:"-"`
}

func (Earns) TableName() string { return "earns" }
