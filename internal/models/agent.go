package models

import "github.com/shopspring/decimal"

// Agent shares its primary key with the user account that owns it.
type Agent struct {
	ID             uint                `gorm:"column:agent_id;primaryKey;autoIncrement:false" json:"id"`
	Name           string              `gorm:"column:name;size:100" json:"name"`
	CommissionPerc decimal.NullDecimal `gorm:"column:commissionperc;type:decimal(5,2)" json:"commission_perc"`

	OfficeID *uint   `gorm:"column:office_id" json:"office_id"`
	Office   *Office `gorm:"foreignKey:OfficeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"office,omitempty"`
}

func (Agent) TableName() string { return "agent" }

type Office struct {
	ID     uint   `gorm:"column:office_id;primaryKey" json:"id"`
	Street string `gorm:"column:street;size:150" json:"street"`
	City   string `gorm:"column:city;size:50;index" json:"city"`
	State  string `gorm:"column:state;size:50" json:"state"`
	ZIP    string `gorm:"column:zip;size:10" json:"zip"`
}

func (Office) TableName() string { return "office" }
