package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/realestate-manager/internal/models"
)

// Actions recorded in audit_logs.
const (
	ActionLogin          = "login"
	ActionLoginFailed    = "login_failed"
	ActionLogout         = "logout"
	ActionSignup         = "signup"
	ActionDeleteUser     = "delete_user"
	ActionUpdatePrice    = "update_property_price"
	ActionAddCommission  = "add_commission"
	ActionAddPayment     = "add_payment"
	ActionBootstrapAdmin = "bootstrap_admin"
	ActionUpdateClient   = "update_client"
	ActionCreateProperty = "create_property"
	ActionCreateContract = "create_contract"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	userID *uint,
	action string,
	entity string,
	entityID *uint,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metaJSON,
	}

	return l.db.Create(&entry).Error
}
