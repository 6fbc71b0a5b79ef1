package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()

	svc, err := New(nil)
	require.NoError(t, err)

	return svc
}

func TestClassify(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		utterance string
		expected  Tag
	}{
		{"Olá!", TagGreeting},
		{"boa noite", TagGreeting},
		{"Confirmo!", TagConfirmation},
		{"queria confirmar a presença", TagConfirmation},
		{"contém comigo", TagConfirmation},
		{"quem já confirmou?", TagConfirmedList},
		{"quantos vão à festa?", TagConfirmedList},
		{"quais são as quintas?", TagVenueOptions},
		{"mostra as quintas disponíveis", TagVenueOptions},
		{"qual o preço da Monte da Galega?", TagGeneric},
		{"", TagGeneric},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, svc.Classify(tc.utterance), "utterance: %q", tc.utterance)
	}
}

func TestClassifyShortGreetingOnly(t *testing.T) {
	svc := newService(t)

	// Short form is a greeting.
	assert.Equal(t, TagGreeting, svc.Classify("olá, tudo bem?"))

	// A greeting word inside a longer sentence falls through.
	assert.Equal(t, TagVenueOptions, svc.Classify("olá, podes mostrar-me quais são as quintas disponíveis?"))
	assert.Equal(t, TagGeneric, svc.Classify("olá, gostava de saber se a quinta tem estacionamento para todos"))
}

func TestClassifyBaseTierWins(t *testing.T) {
	svc := newService(t)

	// "confirmo" is in the base tier and beats any later table entry.
	assert.Equal(t, TagConfirmation, svc.Classify("confirmo, e quantos vão?"))
}

func TestClassifyTotal(t *testing.T) {
	svc := newService(t)

	inputs := []string{"", "   ", "!!!", "xyzzy plugh", "1234", "ção ção ção"}

	for _, in := range inputs {
		tag := svc.Classify(in)
		assert.Contains(t, []Tag{
			TagGreeting, TagConfirmation, TagConfirmedList, TagVenueOptions, TagGeneric,
		}, tag)
	}
}
