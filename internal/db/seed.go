package db

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fakturabok/billing/internal/auth"
	"github.com/fakturabok/billing/internal/models"
)

// SeedAdmin creates the operator account on first run. Credentials come
// from ADMIN_EMAIL/ADMIN_PASSWORD with dev defaults.
func SeedAdmin(conn *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@billing.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	var count int64
	if err := conn.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Error().Err(err).Msg("failed to check operator user")
		return
	}
	if count > 0 {
		return
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash operator password")
		return
	}
	if err := conn.Create(&models.User{Email: email, PasswordHash: hash}).Error; err != nil {
		log.Error().Err(err).Msg("failed to create operator user")
		return
	}
	log.Info().Str("email", email).Msg("created operator user")
}

// SeedDemo inserts a demo client and project with a few earnings and
// expenses. Only invoked when DB_SEED is set.
func SeedDemo(conn *gorm.DB) {
	var count int64
	if err := conn.Model(&models.Client{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	client, err := models.NewClient("Byggefirma Nord ApS", "Mette Holm", "mette@byggenord.dk", "+4520304050")
	if err != nil {
		log.Error().Err(err).Msg("seed client")
		return
	}
	client.CVR = "38129045"
	client.Street = "Havnegade 12"
	client.PostalCode = "9000"
	client.City = "Aalborg"
	client.Country = "Denmark"
	if err := conn.Create(client).Error; err != nil {
		log.Error().Err(err).Msg("seed client insert")
		return
	}

	project, err := models.NewProject(client.ID, "Warehouse renovation", "Roof and electrical work, building 2")
	if err != nil {
		log.Error().Err(err).Msg("seed project")
		return
	}
	project.Status = models.StatusActive
	start := time.Now().AddDate(0, -1, 0)
	project.StartDate = &start
	if err := conn.Create(project).Error; err != nil {
		log.Error().Err(err).Msg("seed project insert")
		return
	}

	seedEarnings := []struct {
		desc   string
		amount string
	}{
		{"Roofing work, first stage", "42500.00"},
		{"Electrical installation", "18750.00"},
	}
	for _, se := range seedEarnings {
		amount, _ := decimal.NewFromString(se.amount)
		earning, eerr := models.NewEarning(project.ID, se.desc, amount, time.Now())
		if eerr != nil {
			continue
		}
		conn.Create(earning)
	}

	amount, _ := decimal.NewFromString("6200.00")
	expense, xerr := models.NewExpense(project.ID, "Roofing felt and battens", amount, time.Now(), models.CategoryMaterials)
	if xerr == nil {
		conn.Create(expense)
	}
	log.Info().Msg("seeded demo data")
}
