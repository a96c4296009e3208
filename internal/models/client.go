package models

// Client shares its primary key with the user account that owns it.
type Client struct {
	ID            uint   `gorm:"column:client_id;primaryKey;autoIncrement:false" json:"id"`
	Name          string `gorm:"column:name;size:100" json:"name"`
	Fname         string `gorm:"column:fname;size:50" json:"fname"`
	Lname         string `gorm:"column:lname;size:50" json:"lname"`
	AddressStreet string `gorm:"column:addressstreet;size:150" json:"address_street"`
	City          string `gorm:"column:city;size:50" json:"city"`
	State         string `gorm:"column:state;size:50" json:"state"`
	ZIPCode       string `gorm:"column:zipcode;size:10" json:"zip_code"`

	Phone *ClientPhone `gorm:"foreignKey:ClientID;references:ID" json:"phone,omitempty"`
}

func (Client) TableName() string { return "client" }

type ClientPhone struct {
	ClientID    uint   `gorm:"column:client_id;primaryKey;autoIncrement:false" json:"client_id"`
	PhoneNumber string `gorm:"column:phonenumber;size:20;not null" json:"phone_number"`
}

func (ClientPhone) TableName() string { return "clientphone" }
