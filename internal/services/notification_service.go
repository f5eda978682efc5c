// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/souqhub/souq-backend/internal/config"
	"github.com/souqhub/souq-backend/internal/models"
)

// NotificationService sends transactional emails. Without SMTP configured it
// logs the message instead, so nothing downstream has to care.
type NotificationService struct {
	config *config.Config
}

type emailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(cfg *config.Config) *NotificationService {
	return &NotificationService{config: cfg}
}

func (s *NotificationService) SendWelcomeEmail(user *models.User) error {
	tmpl := s.getEmailTemplate("welcome")

	data := map[string]interface{}{
		"Username":     user.Username,
		"PlatformName": "SouqHub",
	}
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

func (s *NotificationService) SendListingApprovedEmail(user *models.User, listing *models.Listing) error {
	tmpl := s.getEmailTemplate("listing_approved")

	data := map[string]interface{}{
		"Username": user.Username,
		"Title":    listing.Title,
	}
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

func (s *NotificationService) SendListingRejectedEmail(user *models.User, listing *models.Listing, reason string) error {
	tmpl := s.getEmailTemplate("listing_rejected")

	data := map[string]interface{}{
		"Username": user.Username,
		"Title":    listing.Title,
		"Reason":   reason,
	}
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

func (s *NotificationService) SendPromotionConfirmedEmail(user *models.User, order *models.PromotionOrder) error {
	tmpl := s.getEmailTemplate("promotion_confirmed")

	data := map[string]interface{}{
		"Username": user.Username,
		"Type":     string(order.PromotionType),
		"Days":     order.DurationDays,
	}
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" || s.config.Email.SMTPUsername == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email not configured, skipping send")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) emailTemplate {
	switch templateType {
	case "welcome":
		return emailTemplate{
			Subject: "Welcome to SouqHub",
			Body:    `<h2>أهلاً وسهلاً {{.Username}}!</h2><p>Welcome to {{.PlatformName}}. Your account is ready; post your first listing today.</p>`,
		}
	case "listing_approved":
		return emailTemplate{
			Subject: "Your listing is live",
			Body:    `<h2>Hi {{.Username}},</h2><p>Your listing <strong>{{.Title}}</strong> was approved and is now visible to buyers.</p>`,
		}
	case "listing_rejected":
		return emailTemplate{
			Subject: "Your listing needs changes",
			Body:    `<h2>Hi {{.Username}},</h2><p>Your listing <strong>{{.Title}}</strong> was not approved.</p><p>Reason: {{.Reason}}</p>`,
		}
	case "promotion_confirmed":
		return emailTemplate{
			Subject: "Promotion activated",
			Body:    `<h2>Hi {{.Username}},</h2><p>Your {{.Type}} promotion is active for the next {{.Days}} days.</p>`,
		}
	default:
		return emailTemplate{
			Subject: "SouqHub",
			Body:    `<p>{{.Message}}</p>`,
		}
	}
}
