// Seeds demo accounts into both application stores for local development.
// Accounts normally pre-exist (registration lives outside this service);
// this gives a fresh environment something for webhooks to land on.
package main

import (
	"flag"
	"log"

	"payhook_backend/internal/config"
	"payhook_backend/internal/logger"
	"payhook_backend/internal/models"
	"payhook_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	count := flag.Int("count", 3, "accounts to create per store")
	flag.Parse()

	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)

	seedStore("psrtest", cfg.Stores.PsrTestDSN, *count)
	seedStore("edutest", cfg.Stores.EduTestDSN, *count)
}

func seedStore(name, dsn string, count int) {
	if dsn == "" {
		logger.Fatal("Account store DSN is not configured", "store", name)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to account store", "store", name, "error", err)
	}
	if err := repositories.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate account store", "store", name, "error", err)
	}

	repo := repositories.NewAccountRepository(db)
	created := 0

	for i := 1; i <= count; i++ {
		account := &models.UserAccount{
			ID:    uuid.NewString(),
			Email: models.NormalizeEmail(string(rune('a'+i-1)) + "-demo@" + name + ".example.com"),
		}

		if _, err := repo.FindByEmail(account.Email); err == nil {
			logger.Info("Account already exists, skipping", "store", name, "email", account.Email)
			continue
		}

		if err := repo.Create(account); err != nil {
			logger.Fatal("Failed to seed account", "store", name, "email", account.Email, "error", err)
		}
		logger.Info("Seeded account", "store", name, "id", account.ID, "email", account.Email)
		created++
	}

	logger.Info("Store seeded", "store", name, "created", created)
}
