package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAgreementJSONSchema(t *testing.T) {
	a := Agreement{
		ID:              "20240615_120000_001",
		TenantName:      "Acme Corp",
		UploadTimestamp: "2024-06-15T12:00:00Z",
		AlertStatus:     AlertNone,
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Failed to marshal agreement: %v", err)
	}
	out := string(data)

	// Empty data fields must still appear as empty strings, never be absent
	for _, key := range []string{
		"tenant_name", "place_occupied", "period_of_rent", "rent_amount",
		"maintenance", "rent_escalation", "agreement_start_date",
		"agreement_expiry_date", "lock_in_period", "lock_in_period_end_date",
		"rental_period_greater_than_lock_in_period", "next_rent_escalation",
	} {
		if !strings.Contains(out, `"`+key+`"`) {
			t.Errorf("Expected key '%s' to be present in JSON", key)
		}
	}

	// Lifecycle timestamps are the only omit-when-empty fields
	if strings.Contains(out, "archived_timestamp") {
		t.Error("Expected archived_timestamp to be omitted when empty")
	}
	if strings.Contains(out, "restored_timestamp") {
		t.Error("Expected restored_timestamp to be omitted when empty")
	}

	a.ArchivedTimestamp = "2024-06-16T09:00:00Z"
	data, err = json.Marshal(a)
	if err != nil {
		t.Fatalf("Failed to marshal agreement: %v", err)
	}
	if !strings.Contains(string(data), "archived_timestamp") {
		t.Error("Expected archived_timestamp to be present when set")
	}
}

func TestAlertStatusConstants(t *testing.T) {
	statuses := []string{AlertNone, AlertApproaching, AlertGracePeriod, AlertOverdue}
	expected := []string{"none", "approaching", "grace_period", "overdue"}

	for i, status := range statuses {
		if status != expected[i] {
			t.Errorf("Expected '%s', got '%s'", expected[i], status)
		}
	}
}
