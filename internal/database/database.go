package database

import (
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"solarops/internal/domain"
)

var models = []any{
	&domain.User{},
	&domain.RefreshToken{},
	&domain.UserLog{},
	&domain.Project{},
	&domain.ProjectWorkLog{},
	&domain.GanttTask{},
	&domain.TaskProof{},
	&domain.Payment{},
	&domain.Notification{},
	&domain.Material{},
	&domain.Equipment{},
	&domain.Requisition{},
}

// Connect opens Postgres when the DSN looks like a URL, otherwise a
// local sqlite file (modernc driver, no cgo).
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate applies the schema for every registered model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models...)
}
