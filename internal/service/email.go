package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"

	"expertdesk-backend/internal/domain"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	opsEmail  string
}

// NewEmailService returns the SendGrid-backed notifier. Settlement events go
// to the finance operations mailbox.
func NewEmailService(apiKey, fromEmail, fromName, opsEmail string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		opsEmail:  opsEmail,
	}
}

func (s *emailService) SendWithdrawalDecision(ctx context.Context, w *domain.Withdrawal) error {
	subject := fmt.Sprintf("Withdrawal #%d %s", w.ID, w.Status)
	body := fmt.Sprintf(
		"Withdrawal #%d for expert %d is now %s.\n\nAmount: %s %s\nRequested: %s\n",
		w.ID, w.ExpertID, w.Status, w.Amount.StringFixed(2), w.Currency,
		w.RequestedAt.Format("2006-01-02 15:04"))
	if w.TransactionRef != "" {
		body += fmt.Sprintf("Transaction ref: %s\n", w.TransactionRef)
	}
	if w.AdminNotes != "" {
		body += fmt.Sprintf("Notes: %s\n", w.AdminNotes)
	}
	return s.send(subject, body)
}

func (s *emailService) SendUnderfundedAlert(ctx context.Context, withdrawalID, expertID int64, shortfall decimal.Decimal) error {
	subject := fmt.Sprintf("Underfunded withdrawal #%d needs investigation", withdrawalID)
	body := fmt.Sprintf(
		"The funding pool for withdrawal #%d (expert %d) no longer covers it.\nShortfall: %s\n\nThis usually means a dispute was refunded after the funds were claimed.\n",
		withdrawalID, expertID, shortfall.StringFixed(2))
	return s.send(subject, body)
}

func (s *emailService) send(subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("Finance Ops", s.opsEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
