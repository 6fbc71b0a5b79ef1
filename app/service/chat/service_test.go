package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"festbot/app/client/directory"
	"festbot/app/client/venues"
	"festbot/app/config"
	"festbot/app/service/chatlog"
	"festbot/app/service/guests"
	"festbot/app/service/intent"
	"festbot/app/service/refs"
	"festbot/app/service/session"
	"festbot/app/util/textnorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply      string
	err        error
	lastPrompt string
	calls      int
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.lastPrompt = prompt

	return g.reply, g.err
}

type fakeSearch struct {
	facts []venues.VenueFact
	names []string
	err   error
}

func (s *fakeSearch) Query(_ context.Context, _ string, _ int) ([]venues.VenueFact, error) {
	return s.facts, s.err
}

func (s *fakeSearch) ListVenues(_ context.Context) ([]string, error) {
	return s.names, s.err
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []chatlog.Entry
}

func (r *fakeRecorder) Append(entry chatlog.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
}

type fakeDirectory struct {
	mu       sync.Mutex
	profiles map[string]directory.Profile
}

func newFakeDirectory(profiles ...directory.Profile) *fakeDirectory {
	dir := &fakeDirectory{profiles: make(map[string]directory.Profile)}
	for _, p := range profiles {
		dir.profiles[textnorm.Normalize(p.Name)] = p
	}

	return dir
}

func (d *fakeDirectory) Lookup(_ context.Context, name string) (*directory.Profile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.profiles[textnorm.Normalize(name)]; ok {
		return &p, nil
	}

	return nil, nil
}

func (d *fakeDirectory) ListAll(_ context.Context) ([]directory.Profile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]directory.Profile, 0, len(d.profiles))
	for _, p := range d.profiles {
		out = append(out, p)
	}

	return out, nil
}

func (d *fakeDirectory) Update(_ context.Context, profile directory.Profile) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.profiles[textnorm.Normalize(profile.Name)] = profile

	return nil
}

type fixture struct {
	svc       *Service
	dir       *fakeDirectory
	generator *fakeGenerator
	search    *fakeSearch
	recorder  *fakeRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{
		Party: config.Party{Host: "Miguel", EventDate: "31/12/2026"},
	}

	intentSvc, err := intent.New(nil)
	require.NoError(t, err)
	refsSvc, err := refs.New(nil)
	require.NoError(t, err)

	dir := newFakeDirectory(
		directory.Profile{Name: "Jorge", FamilyID: "silva"},
		directory.Profile{Name: "Ana", FamilyID: "silva"},
	)

	generator := &fakeGenerator{reply: "A Casa X fica perto de Lisboa."}
	search := &fakeSearch{
		names: []string{"Monte da Galega", "Casa X", "Quinta Y"},
		facts: []venues.VenueFact{
			{Name: "Casa X", Text: "Casa X, zona de Sintra, capacidade 20, tem piscina."},
		},
	}
	recorder := &fakeRecorder{}

	return &fixture{
		svc: NewWithCollaborators(cfg, intentSvc, refsSvc,
			guests.NewWithDirectory(dir), generator, search, recorder),
		dir:       dir,
		generator: generator,
		search:    search,
		recorder:  recorder,
	}
}

func newSession(guest string) *session.Context {
	return &session.Context{ID: "test", Guest: guest}
}

func TestRespondConfirmation(t *testing.T) {
	fx := newFixture(t)
	sess := newSession("Jorge")

	reply := fx.svc.Respond(context.Background(), sess, "Confirmo!")

	assert.Contains(t, reply, "Jorge")
	assert.Contains(t, reply, "confirmada")
	assert.Contains(t, reply, "Ana")

	profile, err := fx.dir.Lookup(context.Background(), "Jorge")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.True(t, profile.Confirmed)

	transcript := sess.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, session.RoleUser, transcript[0].Role)
	assert.Equal(t, session.RoleAssistant, transcript[1].Role)
}

func TestRespondConfirmationUnknownGuest(t *testing.T) {
	fx := newFixture(t)

	reply := fx.svc.Respond(context.Background(), newSession("Zzyx"), "confirmo")

	assert.Contains(t, reply, "Zzyx")
	assert.Contains(t, reply, "lista de convidados")
}

func TestRespondGreeting(t *testing.T) {
	fx := newFixture(t)

	reply := fx.svc.Respond(context.Background(), newSession("Jorge"), "Olá!")

	assert.Contains(t, reply, "Jorge")
	assert.Contains(t, reply, "Miguel")
	assert.Zero(t, fx.generator.calls)
}

func TestRespondConfirmedList(t *testing.T) {
	fx := newFixture(t)

	reply := fx.svc.Respond(context.Background(), newSession("Jorge"), "quem já confirmou?")

	assert.Equal(t, confirmedListTemplate, reply)
	assert.Zero(t, fx.generator.calls)
}

func TestRespondVenueOptions(t *testing.T) {
	fx := newFixture(t)
	sess := newSession("Jorge")

	reply := fx.svc.Respond(context.Background(), sess, "quais são as quintas?")

	assert.Contains(t, reply, "1. Monte da Galega")
	assert.Contains(t, reply, "2. Casa X")
	assert.Equal(t, []string{"Monte da Galega", "Casa X", "Quinta Y"}, sess.LastShown())
}

func TestRespondOrdinalFollowUp(t *testing.T) {
	fx := newFixture(t)
	sess := newSession("Jorge")
	sess.SetLastShown([]string{"Monte da Galega", "Casa X", "Quinta Y"})

	reply := fx.svc.Respond(context.Background(), sess, "e a 2ª?")

	assert.Equal(t, "A Casa X fica perto de Lisboa.", reply)
	assert.Contains(t, fx.generator.lastPrompt, "informações sobre Casa X")

	require.Len(t, fx.recorder.entries, 1)
	assert.Equal(t, "informações sobre Casa X", fx.recorder.entries[0].Query)
	assert.Equal(t, "Jorge", fx.recorder.entries[0].Guest)
}

func TestRespondAmenityShortCircuit(t *testing.T) {
	fx := newFixture(t)

	reply := fx.svc.Respond(context.Background(), newSession("Jorge"), "qual tem piscina?")

	assert.Contains(t, reply, "piscina")
	assert.Zero(t, fx.generator.calls)
	assert.Empty(t, fx.recorder.entries)
}

func TestRespondVenueDecidedShortCircuit(t *testing.T) {
	fx := newFixture(t)

	reply := fx.svc.Respond(context.Background(), newSession("Jorge"), "já está decidido onde vai ser?")

	assert.Equal(t, undecidedTemplate, reply)
	assert.Zero(t, fx.generator.calls)
}

func TestRespondLLMFailure(t *testing.T) {
	fx := newFixture(t)
	fx.generator.err = errors.New("rate limited")

	reply := fx.svc.Respond(context.Background(), newSession("Jorge"), "qual é o preço da Monte da Galega?")

	assert.Equal(t, apologyTemplate, reply)
	assert.Empty(t, fx.recorder.entries)
}

func TestRespondSearchFailureDegrades(t *testing.T) {
	fx := newFixture(t)
	fx.search.err = errors.New("qdrant unreachable")

	reply := fx.svc.Respond(context.Background(), newSession("Jorge"), "qual é o preço da Monte da Galega?")

	assert.Equal(t, fx.generator.reply, reply)
	assert.True(t, strings.Contains(fx.generator.lastPrompt, "sem resultados"))
}
