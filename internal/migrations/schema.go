package migrations

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/realestate-manager/internal/models"
)

const (
	PriceAuditTrigger  = "trg_PropertyPriceAudit"
	AgentSalesFunction = "fn_GetAgentTotalSales"
)

// All returns the application's migrations in the order they must run.
func All() []*Migration {
	return []*Migration{
		{
			Version: "20240101000001",
			Name:    "create_schema",
			Up: func(db *gorm.DB) error {
				return db.AutoMigrate(models.All()...)
			},
			Down: func(db *gorm.DB) error {
				tables := models.All()
				for i := len(tables) - 1; i >= 0; i-- {
					if err := db.Migrator().DropTable(tables[i]); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			Version: "20240101000002",
			Name:    "property_price_audit_trigger",
			Up:      createPriceAuditTrigger,
			Down:    dropPriceAuditTrigger,
		},
		{
			Version: "20240101000003",
			Name:    "agent_total_sales_function",
			Up:      createAgentSalesFunction,
			Down:    dropAgentSalesFunction,
		},
		{
			Version: "20240101000004",
			Name:    "fixed_database_roles",
			Up:      createDatabaseRoles,
		},
	}
}

// Run applies every pending migration on db.
func Run(db *gorm.DB) error {
	m := NewMigrator(db)
	m.Register(All()...)
	_, err := m.Up()
	return err
}

func execAll(db *gorm.DB, statements ...string) error {
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------
// Price audit trigger
// --------------------------------------------------

func createPriceAuditTrigger(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "mysql":
		return execAll(db,
			"DROP TRIGGER IF EXISTS "+PriceAuditTrigger,
			`CREATE TRIGGER `+PriceAuditTrigger+` AFTER UPDATE ON property
			FOR EACH ROW
			BEGIN
				IF NOT (OLD.price <=> NEW.price) THEN
					INSERT INTO property_price_audit (property_id, old_price, new_price, changed_at)
					VALUES (OLD.property_id, OLD.price, NEW.price, NOW());
				END IF;
			END`,
		)

	case "postgres":
		return execAll(db,
			`CREATE OR REPLACE FUNCTION trg_property_price_audit() RETURNS trigger AS $$
			BEGIN
				IF NEW.price IS DISTINCT FROM OLD.price THEN
					INSERT INTO property_price_audit (property_id, old_price, new_price, changed_at)
					VALUES (OLD.property_id, OLD.price, NEW.price, NOW());
				END IF;
				RETURN NEW;
			END;
			$$ LANGUAGE plpgsql`,
			"DROP TRIGGER IF EXISTS "+PriceAuditTrigger+" ON property",
			`CREATE TRIGGER `+PriceAuditTrigger+` AFTER UPDATE ON property
			FOR EACH ROW EXECUTE FUNCTION trg_property_price_audit()`,
		)

	case "sqlite":
		return execAll(db,
			"DROP TRIGGER IF EXISTS "+PriceAuditTrigger,
			`CREATE TRIGGER `+PriceAuditTrigger+` AFTER UPDATE OF price ON property
			FOR EACH ROW WHEN OLD.price IS NOT NEW.price
			BEGIN
				INSERT INTO property_price_audit (property_id, old_price, new_price, changed_at)
				VALUES (OLD.property_id, OLD.price, NEW.price, CURRENT_TIMESTAMP);
			END`,
		)
	}
	return fmt.Errorf("price audit trigger: unsupported dialect %s", db.Dialector.Name())
}

func dropPriceAuditTrigger(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "postgres":
		return execAll(db,
			"DROP TRIGGER IF EXISTS "+PriceAuditTrigger+" ON property",
			"DROP FUNCTION IF EXISTS trg_property_price_audit()",
		)
	default:
		return execAll(db, "DROP TRIGGER IF EXISTS "+PriceAuditTrigger)
	}
}

// --------------------------------------------------
// Agent total sales function
// --------------------------------------------------

// fn_GetAgentTotalSales(agent) = SUM(contract.amount) of the agent's
// contracts, 0 when there are none. SQLite has no stored functions; the
// repository evaluates the same expression inline there.
func createAgentSalesFunction(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "mysql":
		return execAll(db,
			"DROP FUNCTION IF EXISTS "+AgentSalesFunction,
			`CREATE FUNCTION `+AgentSalesFunction+`(p_agent_id INT) RETURNS DECIMAL(14,2)
			READS SQL DATA
			BEGIN
				DECLARE total DECIMAL(14,2);
				SELECT COALESCE(SUM(amount), 0) INTO total FROM contract WHERE agent_id = p_agent_id;
				RETURN total;
			END`,
		)

	case "postgres":
		return execAll(db,
			`CREATE OR REPLACE FUNCTION `+AgentSalesFunction+`(p_agent_id BIGINT) RETURNS NUMERIC AS $$
				SELECT COALESCE(SUM(amount), 0) FROM contract WHERE agent_id = p_agent_id
			$$ LANGUAGE sql STABLE`,
		)

	case "sqlite":
		return nil
	}
	return fmt.Errorf("agent sales function: unsupported dialect %s", db.Dialector.Name())
}

func dropAgentSalesFunction(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "mysql":
		return execAll(db, "DROP FUNCTION IF EXISTS "+AgentSalesFunction)
	case "postgres":
		return execAll(db, "DROP FUNCTION IF EXISTS "+AgentSalesFunction+"(BIGINT)")
	}
	return nil
}

// --------------------------------------------------
// Fixed database roles
// --------------------------------------------------

// createDatabaseRoles provisions the two roles that role_grants refers to.
// The application account frequently lacks CREATE ROLE, so failures are
// logged and the migration is still recorded.
func createDatabaseRoles(db *gorm.DB) error {
	var err error

	switch db.Dialector.Name() {
	case "mysql":
		var schema string
		if err = db.Raw("SELECT DATABASE()").Scan(&schema).Error; err != nil {
			break
		}
		quoted := "`" + schema + "`"
		err = execAll(db,
			"CREATE ROLE IF NOT EXISTS '"+models.DBRoleClientReadOnly+"', '"+models.DBRoleAgentEditor+"'",
			"GRANT SELECT ON "+quoted+".* TO '"+models.DBRoleClientReadOnly+"'",
			"GRANT SELECT, INSERT, UPDATE ON "+quoted+".property TO '"+models.DBRoleAgentEditor+"'",
			"GRANT SELECT, INSERT, UPDATE ON "+quoted+".client TO '"+models.DBRoleAgentEditor+"'",
			"GRANT SELECT, INSERT, UPDATE ON "+quoted+".contract TO '"+models.DBRoleAgentEditor+"'",
		)

	case "postgres":
		err = execAll(db,
			`DO $$
			BEGIN
				IF NOT EXISTS (SELECT FROM pg_roles WHERE rolname = '`+models.DBRoleClientReadOnly+`') THEN
					CREATE ROLE `+models.DBRoleClientReadOnly+` NOLOGIN;
				END IF;
				IF NOT EXISTS (SELECT FROM pg_roles WHERE rolname = '`+models.DBRoleAgentEditor+`') THEN
					CREATE ROLE `+models.DBRoleAgentEditor+` NOLOGIN;
				END IF;
			END
			$$`,
			"GRANT SELECT ON ALL TABLES IN SCHEMA public TO "+models.DBRoleClientReadOnly,
			"GRANT SELECT, INSERT, UPDATE ON property, client, contract TO "+models.DBRoleAgentEditor,
		)
	}

	if err != nil {
		log.Printf("fixed database roles not provisioned: %v", err)
	}
	return nil
}
