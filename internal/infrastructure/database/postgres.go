package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mbayedev/partstore-api/internal/config"
	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/pkg/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logger.Get().Info("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log := logger.Get()
	log.Info("Running database migrations...")

	err := db.AutoMigrate(
		// User-related entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},

		// Catalog entities
		&entity.Category{},
		&entity.Article{},

		// Partner entities
		&entity.Client{},
		&entity.Supplier{},

		// Document entities
		&entity.Ticket{},
		&entity.TicketItem{},
		&entity.Quote{},
		&entity.QuoteItem{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.PurchaseOrder{},
		&entity.PurchaseOrderItem{},

		// Money entities
		&entity.Payment{},
		&entity.Bank{},
		&entity.BankTransaction{},
		&entity.CashEntry{},
		&entity.Tax{},
		&entity.DocumentTax{},

		// System entities
		&entity.CompanySettings{},
		&entity.Sequence{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (roles, permissions,
// taxes, company settings and the admin user)
func SeedDefaultData(db *gorm.DB) error {
	log := logger.Get()
	log.Info("Seeding default data...")

	permissions := []entity.Permission{
		{Name: "view-dashboard"},
		{Name: "manage-articles"},
		{Name: "manage-tickets"},
		{Name: "manage-quotes"},
		{Name: "manage-invoices"},
		{Name: "manage-purchase-orders"},
		{Name: "manage-payments"},
		{Name: "manage-clients"},
		{Name: "manage-suppliers"},
		{Name: "manage-banks"},
		{Name: "manage-cash-register"},
		{Name: "manage-taxes"},
		{Name: "manage-settings"},
		{Name: "manage-users"},
		{Name: "view-reports"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Warnf("failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	pick := func(names ...string) []entity.Permission {
		var out []entity.Permission
		for _, name := range names {
			for _, p := range allPermissions {
				if p.Name == name {
					out = append(out, p)
					break
				}
			}
		}
		return out
	}

	var adminRole entity.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		adminRole = entity.Role{
			Name:        "admin",
			Permissions: allPermissions,
		}
		if err := db.Create(&adminRole).Error; err != nil {
			log.Warnf("failed to create admin role: %v", err)
		}
	}

	var managerRole entity.Role
	if err := db.Where("name = ?", "manager").First(&managerRole).Error; err != nil {
		managerRole = entity.Role{
			Name: "manager",
			Permissions: pick(
				"view-dashboard",
				"manage-articles",
				"manage-tickets",
				"manage-quotes",
				"manage-invoices",
				"manage-purchase-orders",
				"manage-payments",
				"manage-clients",
				"manage-suppliers",
				"manage-banks",
				"manage-cash-register",
				"view-reports",
			),
		}
		if err := db.Create(&managerRole).Error; err != nil {
			log.Warnf("failed to create manager role: %v", err)
		}
	}

	var cashierRole entity.Role
	if err := db.Where("name = ?", "cashier").First(&cashierRole).Error; err != nil {
		cashierRole = entity.Role{
			Name: "cashier",
			Permissions: pick(
				"view-dashboard",
				"manage-tickets",
				"manage-payments",
				"manage-clients",
			),
		}
		if err := db.Create(&cashierRole).Error; err != nil {
			log.Warnf("failed to create cashier role: %v", err)
		}
	}

	// Default VAT so a fresh install can price documents immediately
	var taxCount int64
	db.Model(&entity.Tax{}).Count(&taxCount)
	if taxCount == 0 {
		vat := entity.Tax{
			Name:     "TVA",
			Type:     enum.TaxTypePercentage,
			Rate:     decimal.NewFromInt(18),
			IsActive: true,
		}
		if err := db.Create(&vat).Error; err != nil {
			log.Warnf("failed to create default tax: %v", err)
		}
	}

	var settingsCount int64
	db.Model(&entity.CompanySettings{}).Count(&settingsCount)
	if settingsCount == 0 {
		settings := entity.CompanySettings{Name: "My Store", Currency: "XOF"}
		if err := db.Create(&settings).Error; err != nil {
			log.Warnf("failed to create company settings: %v", err)
		}
	}

	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Warnf("failed to hash admin password: %v", err)
			} else {
				admin := entity.User{
					FirstName: "Admin",
					LastName:  "User",
					Email:     adminEmail,
					Password:  string(hashedPassword),
					Provider:  "local",
					IsActive:  true,
					Roles:     []entity.Role{adminRole},
				}
				if err := db.Create(&admin).Error; err != nil {
					log.Warnf("failed to create admin user: %v", err)
				} else {
					log.Infof("Created admin user %s", adminEmail)
				}
			}
		}
	}

	log.Info("Default data seeding completed")
	return nil
}
