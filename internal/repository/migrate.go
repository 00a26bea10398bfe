package repository

import (
	"fmt"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate creates the payment tables. The students and leads tables are
// owned by the CRM; they are only created here when missing.
func AutoMigrate(db *gorm.DB) error {
	for _, kind := range model.AccountKinds {
		if db.Migrator().HasTable(kind.Table()) {
			continue
		}
		if err := db.Table(kind.Table()).AutoMigrate(&model.Account{}); err != nil {
			return fmt.Errorf("migrate %s: %w", kind.Table(), err)
		}
	}

	err := db.AutoMigrate(
		&model.PaymentTransaction{},
		&model.PaymentEvent{},
		&model.FinanceEntry{},
		&model.WebhookLog{},
	)
	if err != nil {
		return fmt.Errorf("migrate payment tables: %w", err)
	}

	return nil
}
