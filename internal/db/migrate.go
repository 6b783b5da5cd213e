package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HistoryTable records applied migrations. It belongs to the runner and is
// not part of TargetSchema.
const HistoryTable = "schema_migrations"

var ErrMissingDown = errors.New("migration has no down step")

type Migration struct {
	// ID orders migrations; a UTC timestamp such as 20240213093059.
	ID   string
	Name string
	Up   func(tx *gorm.DB) error
	Down func(tx *gorm.DB) error
}

type MigrationStatus struct {
	ID        string
	Name      string
	Applied   bool
	AppliedAt time.Time
}

type appliedMigration struct {
	ID        string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (appliedMigration) TableName() string {
	return HistoryTable
}

// DriftError lists every difference between the live database and TargetSchema.
type DriftError struct {
	Problems []string
}

func (e *DriftError) Error() string {
	return "schema drift: " + strings.Join(e.Problems, "; ")
}

type Migrator struct {
	db         *gorm.DB
	migrations []Migration
	target     []Table
}

// NewMigrator returns a runner for the given migrations, or for Migrations()
// when none are passed.
func NewMigrator(db *gorm.DB, migrations ...Migration) *Migrator {
	if len(migrations) == 0 {
		migrations = Migrations()
	}

	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	return &Migrator{
		db:         db,
		migrations: sorted,
		target:     TargetSchema,
	}
}

func (m *Migrator) ensureHistory(ctx context.Context) error {
	return m.db.WithContext(ctx).AutoMigrate(&appliedMigration{})
}

func (m *Migrator) applied(ctx context.Context) (map[string]appliedMigration, error) {
	if err := m.ensureHistory(ctx); err != nil {
		return nil, fmt.Errorf("m.ensureHistory -> %w", err)
	}

	var rows []appliedMigration
	if err := m.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	got := make(map[string]appliedMigration, len(rows))
	for _, row := range rows {
		got[row.ID] = row
	}

	return got, nil
}

// Up applies every pending migration, each in its own transaction, and
// returns the IDs it applied.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	done, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	var ran []string
	for _, mig := range m.migrations {
		if _, ok := done[mig.ID]; ok {
			continue
		}

		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}

			return tx.Create(&appliedMigration{ID: mig.ID, Name: mig.Name, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return ran, fmt.Errorf("migration %s_%s failed -> %w", mig.ID, mig.Name, err)
		}

		zap.L().Info("applied migration", zap.String("id", mig.ID), zap.String("name", mig.Name))
		ran = append(ran, mig.ID)
	}

	return ran, nil
}

// Down rolls back the most recently applied migration and returns its ID,
// or "" when nothing is applied.
func (m *Migrator) Down(ctx context.Context) (string, error) {
	done, err := m.applied(ctx)
	if err != nil {
		return "", err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		mig := m.migrations[i]
		if _, ok := done[mig.ID]; !ok {
			continue
		}
		if mig.Down == nil {
			return "", fmt.Errorf("%s_%s -> %w", mig.ID, mig.Name, ErrMissingDown)
		}

		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mig.Down(tx); err != nil {
				return err
			}

			return tx.Delete(&appliedMigration{}, "id = ?", mig.ID).Error
		})
		if err != nil {
			return "", fmt.Errorf("rollback %s_%s failed -> %w", mig.ID, mig.Name, err)
		}

		zap.L().Info("rolled back migration", zap.String("id", mig.ID), zap.String("name", mig.Name))

		return mig.ID, nil
	}

	return "", nil
}

func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	done, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(m.migrations))
	for _, mig := range m.migrations {
		st := MigrationStatus{ID: mig.ID, Name: mig.Name}
		if row, ok := done[mig.ID]; ok {
			st.Applied = true
			st.AppliedAt = row.AppliedAt
		}
		statuses = append(statuses, st)
	}

	return statuses, nil
}

// Verify compares the live database with TargetSchema and returns a
// *DriftError describing every missing or unexpected object.
func (m *Migrator) Verify(ctx context.Context) error {
	db := m.db.WithContext(ctx)
	migrator := db.Migrator()

	insp, err := newInspector(db)
	if err != nil {
		return err
	}

	var problems []string

	tables, err := insp.Tables()
	if err != nil {
		return fmt.Errorf("insp.Tables -> %w", err)
	}

	expected := make(map[string]bool, len(m.target))
	for _, t := range m.target {
		expected[t.Name] = true
	}
	present := make(map[string]bool, len(tables))
	for _, name := range tables {
		present[name] = true
		if isInternalTable(name) || expected[name] {
			continue
		}
		problems = append(problems, fmt.Sprintf("unexpected table %s", name))
	}

	for _, t := range m.target {
		if !present[t.Name] {
			problems = append(problems, fmt.Sprintf("missing table %s", t.Name))
			continue
		}

		live, err := insp.Table(t.Name)
		if err != nil {
			return fmt.Errorf("insp.Table(%s) -> %w", t.Name, err)
		}
		problems = append(problems, compareTable(db.Dialector.Name(), t, live)...)

		for _, chk := range t.Checks {
			if !migrator.HasConstraint(t.Name, chk) {
				problems = append(problems, fmt.Sprintf("missing check %s on %s", chk, t.Name))
			}
		}
	}

	if len(problems) > 0 {
		return &DriftError{Problems: problems}
	}

	return nil
}
