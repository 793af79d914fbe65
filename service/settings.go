package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/TejasDeepLearning/tenant-dashboard-3/model"
)

var gmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmail\.com$`)

var (
	// ErrInvalidAddress rejects contact addresses outside gmail.com
	ErrInvalidAddress = errors.New("invalid gmail address")
	// ErrDuplicateAddress rejects a second contact with the same address
	ErrDuplicateAddress = errors.New("gmail address already exists")
	// ErrContactNotFound signals a removal of an unknown address
	ErrContactNotFound = errors.New("gmail address not found")
)

// SettingsStore persists the tenant contact book as a JSON file.
type SettingsStore struct {
	mu   sync.Mutex
	path string
}

func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Get returns the current settings; a missing or unreadable file
// degrades to empty settings.
func (s *SettingsStore) Get() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load must be called with the lock held.
func (s *SettingsStore) load() model.Settings {
	settings := model.Settings{TenantContacts: []model.TenantContact{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return settings
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return model.Settings{TenantContacts: []model.TenantContact{}}
	}
	if settings.TenantContacts == nil {
		settings.TenantContacts = []model.TenantContact{}
	}
	return settings
}

// save must be called with the lock held.
func (s *SettingsStore) save(settings model.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// AddContact appends a tenant/Gmail pair after validating the address
// and rejecting duplicates.
func (s *SettingsStore) AddContact(tenantName, gmailAddress string) error {
	tenantName = strings.TrimSpace(tenantName)
	gmailAddress = strings.TrimSpace(gmailAddress)

	if !gmailPattern.MatchString(gmailAddress) {
		return ErrInvalidAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.load()
	for _, contact := range settings.TenantContacts {
		if contact.GmailAddress == gmailAddress {
			return ErrDuplicateAddress
		}
	}

	settings.TenantContacts = append(settings.TenantContacts, model.TenantContact{
		TenantName:   tenantName,
		GmailAddress: gmailAddress,
	})
	return s.save(settings)
}

// RemoveContact drops the pair with the given address.
func (s *SettingsStore) RemoveContact(gmailAddress string) error {
	gmailAddress = strings.TrimSpace(gmailAddress)

	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.load()
	kept := settings.TenantContacts[:0]
	for _, contact := range settings.TenantContacts {
		if contact.GmailAddress != gmailAddress {
			kept = append(kept, contact)
		}
	}
	if len(kept) == len(settings.TenantContacts) {
		return ErrContactNotFound
	}

	settings.TenantContacts = kept
	return s.save(settings)
}

// FindContact matches a tenant name case-insensitively and returns the
// configured address, or "" when no contact exists.
func FindContact(tenantName string, contacts []model.TenantContact) string {
	want := strings.ToLower(strings.TrimSpace(tenantName))
	for _, contact := range contacts {
		if strings.ToLower(strings.TrimSpace(contact.TenantName)) == want {
			return contact.GmailAddress
		}
	}
	return ""
}
