package model

// Agreement represents a rental agreement extracted from an uploaded PDF.
// Every data field is always present; unknown values are empty strings.
type Agreement struct {
	ID                                  string `json:"id"`
	TenantName                          string `json:"tenant_name"`
	PlaceOccupied                       string `json:"place_occupied"`
	PeriodOfRent                        string `json:"period_of_rent"`
	RentAmount                          string `json:"rent_amount"`
	Maintenance                         string `json:"maintenance"`
	RentEscalation                      string `json:"rent_escalation"`
	AgreementStartDate                  string `json:"agreement_start_date"`
	AgreementExpiryDate                 string `json:"agreement_expiry_date"`
	LockInPeriod                        string `json:"lock_in_period"`
	LockInPeriodEndDate                 string `json:"lock_in_period_end_date"`
	RentalPeriodGreaterThanLockInPeriod string `json:"rental_period_greater_than_lock_in_period"`
	NextRentEscalation                  string `json:"next_rent_escalation"`
	SourceFile                          string `json:"source_file"`

	UploadTimestamp   string `json:"upload_timestamp"`
	ArchivedTimestamp string `json:"archived_timestamp,omitempty"`
	RestoredTimestamp string `json:"restored_timestamp,omitempty"`

	// AlertStatus is derived from LockInPeriodEndDate on every read;
	// the persisted value is never authoritative.
	AlertStatus string `json:"alert_status"`
}

// Alert status constants
const (
	AlertNone        = "none"
	AlertApproaching = "approaching"
	AlertGracePeriod = "grace_period"
	AlertOverdue     = "overdue"
)

// TenantContact pairs a tenant name with the Gmail address alert mails go to.
type TenantContact struct {
	TenantName   string `json:"tenant_name"`
	GmailAddress string `json:"gmail_address"`
}

// Settings holds user-editable application settings persisted as JSON.
type Settings struct {
	TenantContacts []TenantContact `json:"tenant_contacts"`
}
