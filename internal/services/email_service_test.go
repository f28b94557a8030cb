package services

import (
	"context"
	"testing"

	"github.com/casaledger/casaledger-api/internal/config"
	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestEmailService_Enabled(t *testing.T) {
	logger.Setup("test")

	// Test case 1: fully configured
	cfg := &config.Config{
		ResendAPIKey: "test_key",
		FromEmail:    "from@example.com",
	}
	service := NewEmailService(cfg)
	assert.True(t, service.Enabled(), "Should be enabled when key and sender are set")

	// Test case 2: missing API key
	cfg = &config.Config{FromEmail: "from@example.com"}
	service = NewEmailService(cfg)
	assert.False(t, service.Enabled(), "Should be disabled without an API key")

	// Test case 3: missing sender address
	cfg = &config.Config{ResendAPIKey: "test_key"}
	service = NewEmailService(cfg)
	assert.False(t, service.Enabled(), "Should be disabled without a sender address")
}

func TestSendOpenAdvanceReminder_SkipsWhenDisabled(t *testing.T) {
	logger.Setup("test")

	service := NewEmailService(&config.Config{})
	advances := []models.PettyCashAdvance{{EmployeeID: 1}}

	err := service.SendOpenAdvanceReminder(context.Background(), "admin@example.com", advances)
	assert.Nil(t, err, "Should silently skip when sending is not configured")
}

func TestSendOpenAdvanceReminder_SkipsWhenEmpty(t *testing.T) {
	logger.Setup("test")

	cfg := &config.Config{
		ResendAPIKey: "test_key",
		FromEmail:    "from@example.com",
	}
	service := NewEmailService(cfg)

	err := service.SendOpenAdvanceReminder(context.Background(), "admin@example.com", nil)
	assert.Nil(t, err, "Should not send anything when there are no open advances")
}
