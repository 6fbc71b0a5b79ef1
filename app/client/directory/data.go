package directory

import "time"

// Profile is one invitee. Name is the unique identifier within the
// directory, matched case- and accent-insensitively. FamilyID groups
// profiles into a household; the family group itself is derived, never
// stored. The confirmed fields are written only by the confirmation
// workflow.
type Profile struct {
	Name        string     `json:"name"`
	FamilyID    string     `json:"family_id"`
	Confirmed   bool       `json:"confirmed"`
	ConfirmedBy string     `json:"confirmed_by,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}
