package migrations

import (
	"gorm.io/gorm"

	"skynet/internal/infrastructure/persistence/models"
)

func MigrateRequestTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.RequestModel{},
		&models.AttachmentModel{},
	)
}
