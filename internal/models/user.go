package models

type User struct {
	ID           uint   `gorm:"column:user_id;primaryKey" json:"id"`
	Email        string `gorm:"column:email;size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:passwordhash;size:255;not null" json:"-"`
	Role         Role   `gorm:"column:role;size:20;not null" json:"role"`

	ClientID *uint   `gorm:"column:client_id" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	AgentID *uint  `gorm:"column:agent_id" json:"agent_id"`
	Agent   *Agent `gorm:"foreignKey:AgentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

func (User) TableName() string { return "user" }

// ProfileID is the client or agent row owned by this user. Accounts created
// before the link columns were filled share their id with the profile row.
func (u *User) ProfileID() uint {
	switch u.Role {
	case RoleClient:
		if u.ClientID != nil {
			return *u.ClientID
		}
	case RoleAgent:
		if u.AgentID != nil {
			return *u.AgentID
		}
	}
	return u.ID
}
