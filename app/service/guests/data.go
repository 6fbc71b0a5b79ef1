package guests

import (
	"context"

	"festbot/app/client/directory"
)

// Directory is the external guest store the workflow runs against.
// Lookup returns (nil, nil) for an unknown name; the backing store is
// keyed by normalized name.
type Directory interface {
	Lookup(ctx context.Context, name string) (*directory.Profile, error)
	ListAll(ctx context.Context) ([]directory.Profile, error)
	Update(ctx context.Context, profile directory.Profile) error
}

// ConfirmResult reports one confirmation attempt. SuggestedFamily lists
// the guest's still-unconfirmed household members so the caller can
// offer to confirm them; they are never auto-confirmed.
type ConfirmResult struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	SuggestedFamily []string `json:"suggested_family"`
}

// Stats aggregates confirmation state over the whole directory.
type Stats struct {
	TotalConfirmed   int `json:"total_confirmed"`
	FamiliesComplete int `json:"families_complete"`
	FamiliesPartial  int `json:"families_partial"`
}

// guestListFile is the static guest list format for the one-time import.
type guestListFile struct {
	Guests []guestListEntry `yaml:"guests"`
}

type guestListEntry struct {
	Name     string `yaml:"name"`
	FamilyID string `yaml:"family_id"`
}
