package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TejasDeepLearning/tenant-dashboard-3/model"
	"github.com/TejasDeepLearning/tenant-dashboard-3/pkg/logger"
	"github.com/TejasDeepLearning/tenant-dashboard-3/service"
)

type AgreementHandler struct {
	store          *service.AgreementStore
	textExtractor  service.TextExtractor
	fieldExtractor service.FieldExtractor
	uploadDir      string
	now            func() time.Time
}

func NewAgreementHandler(store *service.AgreementStore, textExtractor service.TextExtractor, fieldExtractor service.FieldExtractor, uploadDir string) *AgreementHandler {
	return &AgreementHandler{
		store:          store,
		textExtractor:  textExtractor,
		fieldExtractor: fieldExtractor,
		uploadDir:      uploadDir,
		now:            time.Now,
	}
}

// Upload ingests an agreement PDF: store the file, extract its text, ask
// the field extractor for structured data, insert the record. Extraction
// failure degrades to an empty record; the upload still succeeds.
func (h *AgreementHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are allowed"})
		return
	}

	// Validate content type, sniffing the file header when the client
	// sent something generic
	contentType := header.Header.Get("Content-Type")
	if contentType != "" && contentType != "application/octet-stream" && !strings.Contains(contentType, "pdf") {
		buffer := make([]byte, 512)
		if _, err := file.Read(buffer); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return
		}
		file.Seek(0, io.SeekStart)

		detectedType := http.DetectContentType(buffer)
		if !strings.Contains(detectedType, "pdf") && detectedType != "application/octet-stream" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type"})
			return
		}
	}

	id := h.store.GenerateID()
	storedName := id + "_" + filepath.Base(header.Filename)
	path, err := h.saveUpload(storedName, file)
	if err != nil {
		logger.Error(ctx, "failed to store uploaded file", "filename", header.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	rec := h.ingest(c, path)
	rec.ID = id
	rec.SourceFile = storedName
	service.NormalizeAgreement(&rec)
	rec.AlertStatus = service.ClassifyAlert(rec.LockInPeriodEndDate, h.now())

	stored, err := h.store.InsertActive(rec)
	if err != nil {
		logger.Error(ctx, "failed to persist agreement", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save agreement"})
		return
	}

	logger.Info(ctx, "agreement uploaded", "id", stored.ID, "tenant", stored.TenantName)
	c.JSON(http.StatusOK, stored)
}

// ingest runs text and field extraction, degrading to an all-empty
// record so the user can complete the data manually later.
func (h *AgreementHandler) ingest(c *gin.Context, path string) model.Agreement {
	ctx := c.Request.Context()

	text, err := h.textExtractor.ExtractText(path)
	if err != nil {
		logger.Warn(ctx, "text extraction failed, inserting empty record", "file", path, "error", err)
		return model.Agreement{}
	}
	if strings.TrimSpace(text) == "" {
		logger.Warn(ctx, "no text extracted from document", "file", path)
		return model.Agreement{}
	}

	rec, err := h.fieldExtractor.ExtractFields(ctx, text)
	if err != nil {
		logger.Warn(ctx, "field extraction failed, inserting empty record", "file", path, "error", err)
		return model.Agreement{}
	}
	return rec
}

func (h *AgreementHandler) saveUpload(name string, src io.Reader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(h.uploadDir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// List returns active agreements with freshly computed alert status
func (h *AgreementHandler) List(c *gin.Context) {
	records := h.refreshed(h.store.ListActive())
	c.JSON(http.StatusOK, gin.H{
		"agreements": records,
		"count":      len(records),
	})
}

// ListArchived returns archived agreements, most recently archived first
func (h *AgreementHandler) ListArchived(c *gin.Context) {
	records := h.refreshed(h.store.ListArchived())
	c.JSON(http.StatusOK, gin.H{
		"agreements": records,
		"count":      len(records),
	})
}

// refreshed normalizes legacy data and recomputes every alert status for
// the current instant.
func (h *AgreementHandler) refreshed(records []model.Agreement) []model.Agreement {
	now := h.now()
	for i := range records {
		service.NormalizeAgreement(&records[i])
		records[i].AlertStatus = service.ClassifyAlert(records[i].LockInPeriodEndDate, now)
	}
	return records
}

// Archive soft-deletes an agreement
func (h *AgreementHandler) Archive(c *gin.Context) {
	id := c.Param("id")

	rec, err := h.store.Archive(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			logger.Warn(c.Request.Context(), "agreement not found for archive", "id", id)
			c.JSON(http.StatusNotFound, gin.H{"error": "Agreement not found"})
			return
		}
		logger.Error(c.Request.Context(), "failed to archive agreement", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive agreement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Agreement archived", "agreement": rec})
}

// Restore moves an archived agreement back to active
func (h *AgreementHandler) Restore(c *gin.Context) {
	id := c.Param("id")

	rec, err := h.store.Restore(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			logger.Warn(c.Request.Context(), "agreement not found for restore", "id", id)
			c.JSON(http.StatusNotFound, gin.H{"error": "Agreement not found"})
			return
		}
		logger.Error(c.Request.Context(), "failed to restore agreement", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore agreement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Agreement restored", "agreement": rec})
}

var csvHeaders = []string{
	"Tenant Name",
	"Place Occupied",
	"Period of Rent (Months)",
	"Rent Amount (Rs/sqft/month)",
	"Maintenance (Rs/sqft/month)",
	"Rent Escalation (% per year)",
	"Agreement Start Date",
	"Agreement Expiry Date",
	"Lock In Period (Months)",
	"Lock In Period End Date",
	"Rental Period > Lock In Period",
	"Next Rent Escalation",
	"Alert Status",
}

// ExportCSV downloads the active collection as a CSV attachment
func (h *AgreementHandler) ExportCSV(c *gin.Context) {
	records := h.refreshed(h.store.ListActive())

	filename := fmt.Sprintf("tenant_agreements_%s.csv", h.now().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(c.Writer)
	writer.Write(csvHeaders)
	for _, rec := range records {
		writer.Write([]string{
			rec.TenantName,
			rec.PlaceOccupied,
			rec.PeriodOfRent,
			rec.RentAmount,
			rec.Maintenance,
			rec.RentEscalation,
			rec.AgreementStartDate,
			rec.AgreementExpiryDate,
			rec.LockInPeriod,
			rec.LockInPeriodEndDate,
			rec.RentalPeriodGreaterThanLockInPeriod,
			rec.NextRentEscalation,
			rec.AlertStatus,
		})
	}
	writer.Flush()

	if err := writer.Error(); err != nil {
		logger.Error(c.Request.Context(), "failed to write CSV export", "error", err)
	}
}
