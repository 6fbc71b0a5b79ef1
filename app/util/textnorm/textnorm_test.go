package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		expected string
	}{
		{"lowercase", "OLÁ", "ola"},
		{"accents", "confirmação não", "confirmacao nao"},
		{"punctuation", "quinta, com piscina!?", "quinta com piscina"},
		{"whitespace", "  muito    espaço \t aqui ", "muito espaco aqui"},
		{"empty", "", ""},
		{"only punctuation", "!!! ???", ""},
		{"digits kept", "a 2ª opção", "a 2a opcao"},
		{"ordinal indicators", "1ª e 2º", "1a e 2o"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"É Ó", "Monte da Galega!", "   olá,   tudo bem?   ", "a 2ª", ""}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestNormalizeAccentCaseInsensitive(t *testing.T) {
	assert.Equal(t, Normalize("e o"), Normalize("É Ó"))
	assert.Equal(t, Normalize("joao"), Normalize("João"))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"ola", "boa", "noite"}, Tokens("Olá, boa noite!"))
	assert.Empty(t, Tokens("  "))
}
