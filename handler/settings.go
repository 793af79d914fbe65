package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TejasDeepLearning/tenant-dashboard-3/pkg/logger"
	"github.com/TejasDeepLearning/tenant-dashboard-3/service"
)

type SettingsHandler struct {
	settings *service.SettingsStore
}

func NewSettingsHandler(settings *service.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetContacts returns the tenant contact book
func (h *SettingsHandler) GetContacts(c *gin.Context) {
	settings := h.settings.Get()
	c.JSON(http.StatusOK, gin.H{
		"tenant_contacts": settings.TenantContacts,
		"count":           len(settings.TenantContacts),
	})
}

type AddContactRequest struct {
	TenantName   string `json:"tenant_name" binding:"required"`
	GmailAddress string `json:"gmail_address" binding:"required"`
}

// AddContact registers a tenant/Gmail pair for alert delivery
func (h *SettingsHandler) AddContact(c *gin.Context) {
	var req AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant_name and gmail_address are required"})
		return
	}

	if err := h.settings.AddContact(req.TenantName, req.GmailAddress); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAddress):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only valid Gmail addresses are accepted"})
		case errors.Is(err, service.ErrDuplicateAddress):
			c.JSON(http.StatusConflict, gin.H{"error": "This Gmail address is already registered"})
		default:
			logger.Error(c.Request.Context(), "failed to save contact", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save contact"})
		}
		return
	}

	logger.Info(c.Request.Context(), "contact added", "tenant", req.TenantName)
	c.JSON(http.StatusOK, gin.H{"message": "Contact added"})
}

type RemoveContactRequest struct {
	GmailAddress string `json:"gmail_address" binding:"required"`
}

// RemoveContact drops a contact by Gmail address
func (h *SettingsHandler) RemoveContact(c *gin.Context) {
	var req RemoveContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gmail_address is required"})
		return
	}

	if err := h.settings.RemoveContact(req.GmailAddress); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
			return
		}
		logger.Error(c.Request.Context(), "failed to remove contact", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove contact"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact removed"})
}
