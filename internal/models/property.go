package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Property struct {
	ID     uint            `gorm:"column:property_id;primaryKey" json:"id"`
	Street string          `gorm:"column:street;size:150" json:"street"`
	City   string          `gorm:"column:city;size:50" json:"city"`
	State  string          `gorm:"column:state;size:50" json:"state"`
	ZIP    string          `gorm:"column:zip;size:10" json:"zip"`
	Price  decimal.Decimal `gorm:"column:price;type:decimal(12,2)" json:"price"`
	Type   string          `gorm:"column:type;size:30" json:"type"`
	Size   int             `gorm:"column:size" json:"size"`

	ClientID uint    `gorm:"column:client_id;not null;index" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID;references:ID" json:"client,omitempty"`

	AgentID uint   `gorm:"column:agent_id;not null;index" json:"agent_id"`
	Agent   *Agent `gorm:"foreignKey:AgentID;references:ID" json:"agent,omitempty"`
}

func (Property) TableName() string { return "property" }

// PropertyPriceAudit rows are written by the database trigger, never by the application.
type PropertyPriceAudit struct {
	ID         uint            `gorm:"column:audit_id;primaryKey" json:"id"`
	PropertyID uint            `gorm:"column:property_id;not null;index" json:"property_id"`
	OldPrice   decimal.Decimal `gorm:"column:old_price;type:decimal(12,2)" json:"old_price"`
	NewPrice   decimal.Decimal `gorm:"column:new_price;type:decimal(12,2)" json:"new_price"`
	ChangedAt  time.Time       `gorm:"column:changed_at" json:"changed_at"`
}

func (PropertyPriceAudit) TableName() string { return "property_price_audit" }
