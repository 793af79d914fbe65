package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TejasDeepLearning/tenant-dashboard-3/pkg/logger"
	"github.com/TejasDeepLearning/tenant-dashboard-3/service"
)

type AlertHandler struct {
	store    *service.AgreementStore
	settings *service.SettingsStore
	mailer   service.Mailer
	now      func() time.Time
}

func NewAlertHandler(store *service.AgreementStore, settings *service.SettingsStore, mailer service.Mailer) *AlertHandler {
	return &AlertHandler{
		store:    store,
		settings: settings,
		mailer:   mailer,
		now:      time.Now,
	}
}

// SendAlerts walks the active collection and mails every tenant whose
// agreement currently carries an alert status. Tenants without a
// registered contact are counted but skipped.
func (h *AlertHandler) SendAlerts(c *gin.Context) {
	ctx := c.Request.Context()
	now := h.now()
	contacts := h.settings.Get().TenantContacts

	var sent, failed, noContact int
	var failures []string

	for _, rec := range h.store.ListActive() {
		rec.AlertStatus = service.ClassifyAlert(rec.LockInPeriodEndDate, now)

		subject, body, ok := service.BuildAlertMail(rec, now)
		if !ok {
			continue
		}

		recipient := service.FindContact(rec.TenantName, contacts)
		if recipient == "" {
			logger.Warn(ctx, "no contact for alerting tenant", "tenant", rec.TenantName, "status", rec.AlertStatus)
			noContact++
			continue
		}

		if err := h.mailer.Send(ctx, recipient, subject, body); err != nil {
			logger.Error(ctx, "failed to send alert mail", "tenant", rec.TenantName, "error", err)
			failed++
			failures = append(failures, rec.TenantName)
			continue
		}

		logger.Info(ctx, "alert mail sent", "tenant", rec.TenantName, "status", rec.AlertStatus)
		sent++
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Alert run complete",
		"sent":       sent,
		"failed":     failed,
		"no_contact": noContact,
		"failures":   failures,
	})
}

type TestEmailRequest struct {
	Recipient string `json:"recipient" binding:"required"`
}

// TestEmail sends a configuration check mail to the given recipient
func (h *AlertHandler) TestEmail(c *gin.Context) {
	var req TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient is required"})
		return
	}

	recipient := strings.TrimSpace(req.Recipient)
	if !strings.Contains(recipient, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipient address"})
		return
	}

	subject, body := service.BuildTestMail(h.now())
	if err := h.mailer.Send(c.Request.Context(), recipient, subject, body); err != nil {
		logger.Error(c.Request.Context(), "failed to send test mail", "recipient", recipient, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send test email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Test email sent to " + recipient})
}
