package service

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/TejasDeepLearning/tenant-dashboard-3/model"
)

func newTestSettings(t *testing.T) *SettingsStore {
	t.Helper()
	return NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))
}

func TestSettingsAddAndGet(t *testing.T) {
	store := newTestSettings(t)

	if err := store.AddContact("Acme Corp", "acme@gmail.com"); err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	settings := store.Get()
	if len(settings.TenantContacts) != 1 {
		t.Fatalf("Expected 1 contact, got %d", len(settings.TenantContacts))
	}
	if settings.TenantContacts[0].GmailAddress != "acme@gmail.com" {
		t.Errorf("Unexpected address: %s", settings.TenantContacts[0].GmailAddress)
	}
}

func TestSettingsGetMissingFile(t *testing.T) {
	store := newTestSettings(t)

	settings := store.Get()
	if settings.TenantContacts == nil {
		t.Fatal("Expected empty contact list, not nil")
	}
	if len(settings.TenantContacts) != 0 {
		t.Errorf("Expected no contacts, got %d", len(settings.TenantContacts))
	}
}

func TestSettingsAddInvalidAddress(t *testing.T) {
	store := newTestSettings(t)

	for _, addr := range []string{"", "acme@example.com", "not-an-email", "a b@gmail.com"} {
		if err := store.AddContact("Acme", addr); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("AddContact(%q): expected ErrInvalidAddress, got %v", addr, err)
		}
	}
}

func TestSettingsAddDuplicate(t *testing.T) {
	store := newTestSettings(t)

	if err := store.AddContact("Acme", "acme@gmail.com"); err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}
	if err := store.AddContact("Other", "acme@gmail.com"); !errors.Is(err, ErrDuplicateAddress) {
		t.Errorf("Expected ErrDuplicateAddress, got %v", err)
	}
}

func TestSettingsRemoveContact(t *testing.T) {
	store := newTestSettings(t)

	store.AddContact("Acme", "acme@gmail.com")
	store.AddContact("Globex", "globex@gmail.com")

	if err := store.RemoveContact("acme@gmail.com"); err != nil {
		t.Fatalf("RemoveContact failed: %v", err)
	}

	settings := store.Get()
	if len(settings.TenantContacts) != 1 || settings.TenantContacts[0].TenantName != "Globex" {
		t.Errorf("Unexpected contacts after removal: %+v", settings.TenantContacts)
	}

	if err := store.RemoveContact("ghost@gmail.com"); !errors.Is(err, ErrContactNotFound) {
		t.Errorf("Expected ErrContactNotFound, got %v", err)
	}
}

func TestFindContact(t *testing.T) {
	contacts := []model.TenantContact{
		{TenantName: "Acme Corp", GmailAddress: "acme@gmail.com"},
		{TenantName: "Globex", GmailAddress: "globex@gmail.com"},
	}

	if got := FindContact("acme corp", contacts); got != "acme@gmail.com" {
		t.Errorf("Expected case-insensitive match, got %q", got)
	}
	if got := FindContact("  Globex  ", contacts); got != "globex@gmail.com" {
		t.Errorf("Expected trimmed match, got %q", got)
	}
	if got := FindContact("Unknown", contacts); got != "" {
		t.Errorf("Expected empty result for unknown tenant, got %q", got)
	}
}
