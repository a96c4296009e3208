package models

import "time"

// RoleGrant assigns a user to one of the fixed database roles provisioned by
// the migrations. Accounts never receive their own database login.
type RoleGrant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	DBRole    string    `gorm:"column:db_role;size:50;not null" json:"db_role"`
	GrantedAt time.Time `gorm:"autoCreateTime" json:"granted_at"`
}

// Fixed database roles.
const (
	DBRoleClientReadOnly = "re_client_readonly"
	DBRoleAgentEditor    = "re_agent_editor"
)

func DBRoleFor(r Role) (string, bool) {
	switch r {
	case RoleClient:
		return DBRoleClientReadOnly, true
	case RoleAgent:
		return DBRoleAgentEditor, true
	}
	return "", false
}

// All lists every table created by the schema migration, parents first.
func All() []any {
	return []any{
		&Office{},
		&Client{},
		&ClientPhone{},
		&Agent{},
		&User{},
		&Property{},
		&PropertyPriceAudit{},
		&Contract{},
		&Payment{},
		&Commission{},
		&Earns{},
		&RoleGrant{},
		&AuditLog{},
	}
}
