package guests

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"festbot/app/client/directory"
	"festbot/app/util/textnorm"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Service implements the confirmation workflow over the guest directory.
// It is the only writer of the confirmed fields; confirming is idempotent
// and there is no un-confirm operation.
type Service struct {
	dir Directory
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		dir: do.MustInvoke[*directory.Client](di),
	}, nil
}

// NewWithDirectory wires an explicit directory, used by tests.
func NewWithDirectory(dir Directory) *Service {
	return &Service{dir: dir}
}

// Confirm records a confirmation for name. An unknown name is a reported
// condition, not an error: Success=false with a polite message.
func (s *Service) Confirm(ctx context.Context, name, confirmedBy string) (ConfirmResult, error) {
	profile, err := s.resolve(ctx, name)
	if err != nil {
		return ConfirmResult{}, err
	}

	if profile == nil {
		return ConfirmResult{
			Success:         false,
			Message:         fmt.Sprintf("Hmm, não encontro %q na lista de convidados. 🤔", name),
			SuggestedFamily: []string{},
		}, nil
	}

	now := time.Now()
	profile.Confirmed = true
	profile.ConfirmedBy = confirmedBy
	profile.ConfirmedAt = &now

	if err := s.dir.Update(ctx, *profile); err != nil {
		return ConfirmResult{}, oops.Code("upstream").Wrapf(err, "failed to update profile %q", profile.Name)
	}

	suggested, err := s.unconfirmedFamily(ctx, profile.FamilyID, profile.Name)
	if err != nil {
		// The confirmation itself already succeeded.
		slog.Warn("Failed to compute family suggestion", "guest", profile.Name, "error", err)
		suggested = []string{}
	}

	slog.Info("Guest confirmed",
		"guest", profile.Name,
		"confirmed_by", confirmedBy,
		"suggested_family", suggested)

	return ConfirmResult{
		Success:         true,
		Message:         fmt.Sprintf("Boa, %s! Presença confirmada. 🎉", profile.Name),
		SuggestedFamily: suggested,
	}, nil
}

// ConfirmFamily confirms every unconfirmed member of a family, computed
// from a single directory read.
func (s *Service) ConfirmFamily(ctx context.Context, familyID string) (int, error) {
	profiles, err := s.dir.ListAll(ctx)
	if err != nil {
		return 0, oops.Code("upstream").Wrapf(err, "failed to list guests")
	}

	pending := pie.Filter(profiles, func(p directory.Profile) bool {
		return p.FamilyID == familyID && !p.Confirmed
	})

	now := time.Now()
	for _, profile := range pending {
		profile.Confirmed = true
		profile.ConfirmedAt = &now

		if err := s.dir.Update(ctx, profile); err != nil {
			return 0, oops.Code("upstream").Wrapf(err, "failed to confirm %q", profile.Name)
		}
	}

	slog.Info("Family confirmed", "family_id", familyID, "count", len(pending))

	return len(pending), nil
}

// Statistics scans the whole directory and aggregates per-family state.
func (s *Service) Statistics(ctx context.Context) (Stats, error) {
	profiles, err := s.dir.ListAll(ctx)
	if err != nil {
		return Stats{}, oops.Code("upstream").Wrapf(err, "failed to list guests")
	}

	type familyState struct {
		total     int
		confirmed int
	}

	var stats Stats
	families := make(map[string]*familyState)

	for _, profile := range profiles {
		state, ok := families[profile.FamilyID]
		if !ok {
			state = &familyState{}
			families[profile.FamilyID] = state
		}

		state.total++
		if profile.Confirmed {
			state.confirmed++
			stats.TotalConfirmed++
		}
	}

	for _, state := range families {
		switch {
		case state.confirmed == state.total:
			stats.FamiliesComplete++
		case state.confirmed > 0:
			stats.FamiliesPartial++
		}
	}

	return stats, nil
}

// ImportGuests loads the static guest list into the directory. Existing
// profiles are left untouched so a re-run never clobbers confirmations.
func (s *Service) ImportGuests(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, oops.Wrapf(err, "failed to read guest list")
	}

	var list guestListFile
	if err := yaml.Unmarshal(data, &list); err != nil {
		return 0, oops.Wrapf(err, "failed to parse guest list")
	}

	imported := 0
	for _, entry := range list.Guests {
		if entry.Name == "" {
			continue
		}

		existing, err := s.dir.Lookup(ctx, entry.Name)
		if err != nil {
			return imported, oops.Code("upstream").Wrapf(err, "failed to look up %q", entry.Name)
		}
		if existing != nil {
			continue
		}

		profile := directory.Profile{Name: entry.Name, FamilyID: entry.FamilyID}
		if err := s.dir.Update(ctx, profile); err != nil {
			return imported, oops.Code("upstream").Wrapf(err, "failed to import %q", entry.Name)
		}

		imported++
	}

	slog.Info("Guest list imported", "path", path, "imported", imported)

	return imported, nil
}

// resolve tries the keyed lookup first, then falls back to scanning all
// profiles and comparing normalized names. Exact-after-normalization
// only, no edit distance.
func (s *Service) resolve(ctx context.Context, name string) (*directory.Profile, error) {
	profile, err := s.dir.Lookup(ctx, name)
	if err != nil {
		return nil, oops.Code("upstream").Wrapf(err, "failed to look up %q", name)
	}
	if profile != nil {
		return profile, nil
	}

	folded := textnorm.Normalize(name)
	if folded == "" {
		return nil, nil
	}

	profiles, err := s.dir.ListAll(ctx)
	if err != nil {
		return nil, oops.Code("upstream").Wrapf(err, "failed to list guests")
	}

	for i := range profiles {
		if textnorm.Normalize(profiles[i].Name) == folded {
			return &profiles[i], nil
		}
	}

	return nil, nil
}

func (s *Service) unconfirmedFamily(ctx context.Context, familyID, except string) ([]string, error) {
	if familyID == "" {
		return []string{}, nil
	}

	profiles, err := s.dir.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	members := pie.Filter(profiles, func(p directory.Profile) bool {
		return p.FamilyID == familyID && !p.Confirmed && p.Name != except
	})

	names := pie.Map(members, func(p directory.Profile) string { return p.Name })
	if names == nil {
		names = []string{}
	}

	return names, nil
}
