package intent

// Tag is the coarse category assigned to a user utterance. It drives
// which reply path the composer takes.
type Tag string

const (
	TagGreeting      Tag = "greeting"
	TagConfirmation  Tag = "confirmation"
	TagConfirmedList Tag = "confirmed_list"
	TagVenueOptions  Tag = "venue_options"
	TagGeneric       Tag = "generic"
)

// Rule binds an ordered keyword set to a tag. Rules are evaluated in
// declaration order, first matching keyword wins.
type Rule struct {
	Tag      Tag
	Keywords []string

	// MaxTokens limits the rule to short utterances. Zero means no limit.
	MaxTokens int
}

const shortGreetingTokens = 4

// baseRules is the coarse first-tier table. A non-generic result here
// takes precedence over the full table.
func baseRules() []Rule {
	return []Rule{
		{
			Tag:       TagGreeting,
			MaxTokens: shortGreetingTokens,
			Keywords:  []string{"ola", "oi", "hello", "hey"},
		},
		{
			Tag:      TagConfirmation,
			Keywords: []string{"confirmo"},
		},
	}
}

func defaultRules() []Rule {
	return []Rule{
		{
			Tag:       TagGreeting,
			MaxTokens: shortGreetingTokens,
			Keywords: []string{
				"bom dia", "boa tarde", "boa noite",
				"tudo bem", "viva",
			},
		},
		{
			Tag: TagConfirmation,
			Keywords: []string{
				"confirmar presenca", "confirmar a presenca", "confirmar",
				"vou a festa", "conta comigo", "contem comigo",
				"estarei la", "alinho", "eu vou",
			},
		},
		{
			Tag: TagConfirmedList,
			Keywords: []string{
				"quem vai", "quem vem", "quem confirmou", "quem ja confirmou",
				"lista de confirmados", "confirmados", "quantos vao",
				"quantas pessoas vao",
			},
		},
		{
			Tag: TagVenueOptions,
			Keywords: []string{
				"que quintas", "quais quintas", "quais sao as quintas",
				"que casas", "quais casas", "que espacos",
				"opcoes", "alternativas", "mostra as quintas",
				"lista de quintas",
			},
		},
	}
}
