package persistence

import (
	"github.com/sepur/finance/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// AutoMigrate creates the finance tables from the GORM models.
// PostgreSQL deployments use the SQL migrations instead; this serves sqlite and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ClientModel{},
		&models.InvoiceModel{},
		&models.PaymentModel{},
		&models.InvoiceFileModel{},
	)
}
