package migrations

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

type Migration struct {
	Version string
	Name    string
	Up      func(*gorm.DB) error
	Down    func(*gorm.DB) error
}

type MigrationRecord struct {
	Version   string    `gorm:"primaryKey;size:32"`
	Name      string    `gorm:"size:100;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (MigrationRecord) TableName() string { return "schema_migrations" }

type Status struct {
	Version   string
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

// Migrator applies registered migrations in registration order and records
// each applied version in schema_migrations.
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
}

func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{db: db}
}

func (m *Migrator) Register(migrations ...*Migration) {
	m.migrations = append(m.migrations, migrations...)
}

func (m *Migrator) ensureVersionTable() error {
	return m.db.AutoMigrate(&MigrationRecord{})
}

func (m *Migrator) appliedRecords() (map[string]MigrationRecord, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.Find(&records).Error; err != nil {
		return nil, err
	}

	applied := make(map[string]MigrationRecord, len(records))
	for _, r := range records {
		applied[r.Version] = r
	}
	return applied, nil
}

// Up applies every pending migration and returns how many ran.
func (m *Migrator) Up() (int, error) {
	applied, err := m.appliedRecords()
	if err != nil {
		return 0, err
	}

	ran := 0
	for _, mg := range m.migrations {
		if _, ok := applied[mg.Version]; ok {
			continue
		}

		if err := mg.Up(m.db); err != nil {
			return ran, fmt.Errorf("migration %s_%s: %w", mg.Version, mg.Name, err)
		}

		record := MigrationRecord{
			Version:   mg.Version,
			Name:      mg.Name,
			AppliedAt: time.Now().UTC(),
		}
		if err := m.db.Create(&record).Error; err != nil {
			return ran, err
		}

		log.Printf("migration applied: %s_%s", mg.Version, mg.Name)
		ran++
	}
	return ran, nil
}

// Down rolls back the most recently applied migration. It returns the rolled
// back migration, or nil when nothing was applied.
func (m *Migrator) Down() (*Migration, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var last MigrationRecord
	err := m.db.Order("version DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var target *Migration
	for _, mg := range m.migrations {
		if mg.Version == last.Version {
			target = mg
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("applied migration %s is not registered", last.Version)
	}

	if target.Down != nil {
		if err := target.Down(m.db); err != nil {
			return nil, fmt.Errorf("rollback %s_%s: %w", target.Version, target.Name, err)
		}
	}

	if err := m.db.Delete(&last).Error; err != nil {
		return nil, err
	}

	log.Printf("migration rolled back: %s_%s", target.Version, target.Name)
	return target, nil
}

func (m *Migrator) Status() ([]Status, error) {
	applied, err := m.appliedRecords()
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(m.migrations))
	for _, mg := range m.migrations {
		st := Status{Version: mg.Version, Name: mg.Name}
		if r, ok := applied[mg.Version]; ok {
			at := r.AppliedAt
			st.Applied = true
			st.AppliedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}
