package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/casaledger/casaledger-api/internal/config"
	"github.com/casaledger/casaledger-api/internal/models"
	"github.com/casaledger/casaledger-api/pkg/logger"

	"github.com/resend/resend-go/v2"
)

// EmailService sends transactional email through Resend
type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		config:       cfg,
		resendClient: resend.NewClient(cfg.ResendAPIKey),
	}
}

// Enabled reports whether sending is configured
func (s *EmailService) Enabled() bool {
	return s.config.ResendAPIKey != "" && s.config.FromEmail != ""
}

// SendOpenAdvanceReminder mails the admin a digest of petty-cash advances
// that have been left open past the reminder window.
func (s *EmailService) SendOpenAdvanceReminder(ctx context.Context, to string, advances []models.PettyCashAdvance) error {
	if !s.Enabled() {
		logger.Warn("Email disabled, skipping open-advance reminder")
		return nil
	}
	if len(advances) == 0 {
		return nil
	}

	var rows strings.Builder
	for _, a := range advances {
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td style=\"text-align:right\">%s</td></tr>",
			a.Employee.FullName,
			a.CreatedAt.Format("2006-01-02"),
			a.Outstanding().StringFixed(2),
		))
	}

	body := fmt.Sprintf(`
		<h2>Anticipos de caja chica sin cerrar</h2>
		<p>Los siguientes anticipos siguen abiertos:</p>
		<table border="1" cellpadding="6" cellspacing="0">
			<tr><th>Empleado</th><th>Fecha</th><th>Pendiente</th></tr>
			%s
		</table>`, rows.String())

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{to},
		Subject: fmt.Sprintf("Recordatorio: %d anticipos sin cerrar", len(advances)),
		Html:    body,
	}

	if _, err := s.resendClient.Emails.Send(params); err != nil {
		logger.Error(fmt.Sprintf("Failed to send reminder email to %s: %v", to, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Open advances: %d", to, len(advances)))
	return nil
}
