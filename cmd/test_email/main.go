package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/casaledger/casaledger-api/internal/config"
	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/internal/services"
	"github.com/casaledger/casaledger-api/pkg/logger"
)

// Smoke test for the Resend integration. Sends a sample open-advance
// reminder to TEST_EMAIL_TO.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Setup("development")

	if cfg.ResendAPIKey == "" {
		log.Fatal("RESEND_API_KEY is not set")
	}

	emailService := services.NewEmailService(cfg)

	toEmail := os.Getenv("TEST_EMAIL_TO")
	if toEmail == "" {
		toEmail = "test@example.com"
		log.Println("TEST_EMAIL_TO not set, using test@example.com. Emails might fail if domain not verified.")
	}

	advances := []models.PettyCashAdvance{
		{
			ID:             1,
			EmployeeID:     1,
			Employee:       models.Employee{FullName: "Empleado de Prueba"},
			AdvanceAmount:  decimal.NewFromInt(5000),
			ExpenseTotal:   decimal.NewFromInt(1200),
			ReturnedAmount: decimal.Zero,
			Status:         models.AdvanceStatusPartiallyReturned,
			CreatedAt:      time.Now().AddDate(0, 0, -20),
		},
	}

	log.Printf("Sending open advance reminder to %s...", toEmail)
	if err := emailService.SendOpenAdvanceReminder(context.Background(), toEmail, advances); err != nil {
		log.Fatalf("Failed to send reminder email: %v", err)
	}
	log.Println("Reminder email sent successfully!")
}
