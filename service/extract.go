package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/TejasDeepLearning/tenant-dashboard-3/config"
	"github.com/TejasDeepLearning/tenant-dashboard-3/model"
)

// FieldExtractor turns raw agreement text into a structured record.
// Failures degrade at the call site to an all-empty record; the upload
// itself never fails on extraction.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (model.Agreement, error)
}

// OpenAIExtractor calls an OpenAI-compatible chat-completions endpoint
// and scrapes one JSON object out of the reply.
type OpenAIExtractor struct {
	config     *config.ExtractorConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[model.Agreement]
}

func NewOpenAIExtractor(cfg *config.ExtractorConfig) *OpenAIExtractor {
	breaker := gobreaker.NewCircuitBreaker[model.Agreement](gobreaker.Settings{
		Name:    "field-extractor",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &OpenAIExtractor{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		breaker: breaker,
	}
}

const extractionPrompt = "Extract the following details from this rental agreement and return them as a single JSON object with these keys: " +
	`"tenant_name", "place_occupied", "period_of_rent", "rent_amount", "maintenance", "rent_escalation", ` +
	`"agreement_start_date", "agreement_expiry_date", "lock_in_period", "lock_in_period_end_date", ` +
	`"rental_period_greater_than_lock_in_period", "next_rent_escalation". ` +
	"For dates, use YYYY-MM-DD format. " +
	"For 'period_of_rent' and 'lock_in_period', convert to months as a number only (e.g., '12' for 1 year). " +
	"For 'rent_amount', extract only the numeric rent per sqft per month value. " +
	"For 'maintenance', extract only the total numeric maintenance per sqft per month value. " +
	"For 'rent_escalation', extract only the percentage value (e.g., '7%'). " +
	"For 'rental_period_greater_than_lock_in_period', return ONLY 'True' or 'False'. " +
	"If a value is not found, use an empty string. Only return the JSON object, nothing else.\n\n"

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ExtractFields asks the model for the agreement fields. The circuit
// breaker shields the endpoint when it is consistently down.
func (e *OpenAIExtractor) ExtractFields(ctx context.Context, text string) (model.Agreement, error) {
	return e.breaker.Execute(func() (model.Agreement, error) {
		return e.extract(ctx, text)
	})
}

func (e *OpenAIExtractor) extract(ctx context.Context, text string) (model.Agreement, error) {
	reqBody := chatRequest{
		Model: e.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are an OCR and information extraction assistant."},
			{Role: "user", Content: extractionPrompt + text},
		},
		MaxTokens: e.config.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return model.Agreement{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(e.config.APIURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return model.Agreement{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return model.Agreement{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Agreement{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.Agreement{}, fmt.Errorf("extractor returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return model.Agreement{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if chatResp.Error != nil {
		return model.Agreement{}, fmt.Errorf("extractor error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return model.Agreement{}, fmt.Errorf("extractor returned no choices")
	}

	return parseExtractedFields(chatResp.Choices[0].Message.Content)
}

// parseExtractedFields scrapes the outermost JSON object out of the model
// reply and maps it onto the record. Missing keys stay empty strings so
// the schema is always fully present.
func parseExtractedFields(raw string) (model.Agreement, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &fields); err != nil {
		return model.Agreement{}, fmt.Errorf("parse extraction json: %w", err)
	}

	rec := model.Agreement{
		TenantName:                          fieldString(fields, "tenant_name"),
		PlaceOccupied:                       fieldString(fields, "place_occupied"),
		PeriodOfRent:                        fieldString(fields, "period_of_rent"),
		RentAmount:                          fieldString(fields, "rent_amount"),
		Maintenance:                         fieldString(fields, "maintenance"),
		RentEscalation:                      fieldString(fields, "rent_escalation"),
		AgreementStartDate:                  fieldString(fields, "agreement_start_date"),
		AgreementExpiryDate:                 fieldString(fields, "agreement_expiry_date"),
		LockInPeriod:                        fieldString(fields, "lock_in_period"),
		LockInPeriodEndDate:                 fieldString(fields, "lock_in_period_end_date"),
		RentalPeriodGreaterThanLockInPeriod: fieldString(fields, "rental_period_greater_than_lock_in_period"),
		NextRentEscalation:                  fieldString(fields, "next_rent_escalation"),
	}
	return rec, nil
}

func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}

// fieldString tolerates non-string JSON values the model occasionally
// returns (numbers, booleans).
func fieldString(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case bool:
		if v {
			return "True"
		}
		return "False"
	case float64:
		return strings.TrimSuffix(fmt.Sprintf("%v", v), ".0")
	default:
		return ""
	}
}
