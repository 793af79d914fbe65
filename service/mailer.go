package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/TejasDeepLearning/tenant-dashboard-3/config"
	"github.com/TejasDeepLearning/tenant-dashboard-3/model"
)

// Mailer delivers a single HTML mail.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}

// SMTPMailer delivers mail over authenticated STARTTLS SMTP.
type SMTPMailer struct {
	config *config.SMTPConfig
}

func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{config: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	if m.config.SenderEmail == "" {
		return fmt.Errorf("no sender email configured")
	}
	if m.config.Password == "" {
		return fmt.Errorf("no sender password configured")
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.config.SenderName, m.config.SenderEmail); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(m.config.Host,
		mail.WithPort(m.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.config.SenderEmail),
		mail.WithPassword(m.config.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", recipient, err)
	}
	return nil
}

type alertMailInfo struct {
	subject string
	urgency string
	action  string
}

var alertMailByStatus = map[string]alertMailInfo{
	model.AlertApproaching: {
		subject: "Lock-in Period Ending Soon (%s)",
		urgency: "Notice",
		action:  "The lock-in period ends within a month. Please start planning renewal discussions.",
	},
	model.AlertGracePeriod: {
		subject: "Lock-in Period Ended - Grace Period (%s)",
		urgency: "Alert",
		action:  "The lock-in period has ended. Please confirm renewal or exit terms promptly.",
	},
	model.AlertOverdue: {
		subject: "URGENT: Lock-in Period Overdue (%s)",
		urgency: "URGENT",
		action:  "The lock-in period ended more than a month ago. Immediate action required.",
	},
}

// BuildAlertMail renders subject and HTML body for an alerting
// agreement. Returns false for statuses that never generate mail.
func BuildAlertMail(rec model.Agreement, now time.Time) (subject, htmlBody string, ok bool) {
	info, ok := alertMailByStatus[rec.AlertStatus]
	if !ok {
		return "", "", false
	}

	subject = fmt.Sprintf(info.subject, rec.TenantName)
	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #f8f9fa; padding: 20px; border-radius: 5px; margin-bottom: 20px; }
    .alert { padding: 15px; border-radius: 5px; margin: 15px 0; font-weight: bold; background-color: #fff3cd; color: #856404; }
    .details { background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 15px 0; }
    .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #dee2e6; font-size: 0.9em; color: #6c757d; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h2>Tenant Agreement Alert</h2>
      <p><strong>Tenant:</strong> %s</p>
      <p><strong>Date:</strong> %s</p>
    </div>
    <div class="alert">
      <h3>%s: Lock-in Period Alert</h3>
      <p>%s</p>
    </div>
    <div class="details">
      <h4>Agreement Details:</h4>
      <p><strong>Place Occupied:</strong> %s</p>
      <p><strong>Agreement Start Date:</strong> %s</p>
      <p><strong>Agreement Expiry Date:</strong> %s</p>
      <p><strong>Rent Amount:</strong> Rs %s/sqft/month</p>
      <p><strong>Lock-in Period End:</strong> %s</p>
    </div>
    <p>This is an automated notification from your Tenant Dashboard system. Please contact the property management team with any questions.</p>
    <div class="footer">
      <p>This email was sent from the Tenant Dashboard System.<br>
      Please do not reply directly to this email.</p>
    </div>
  </div>
</body>
</html>`,
		rec.TenantName,
		now.Format("January 2, 2006"),
		info.urgency,
		info.action,
		orNA(rec.PlaceOccupied),
		orNA(rec.AgreementStartDate),
		orNA(rec.AgreementExpiryDate),
		orNA(rec.RentAmount),
		orNA(rec.LockInPeriodEndDate),
	)
	return subject, htmlBody, true
}

// BuildTestMail renders the configuration test mail.
func BuildTestMail(now time.Time) (subject, htmlBody string) {
	subject = "Test Email from Tenant Dashboard"
	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
  <h2>Test Email from Tenant Dashboard</h2>
  <p>This is a test email to verify your email configuration is working correctly.</p>
  <p><strong>Sent at:</strong> %s</p>
  <p>If you received this email, your SMTP configuration is working properly!</p>
</body>
</html>`, now.Format("January 2, 2006 at 3:04 PM"))
	return subject, htmlBody
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
