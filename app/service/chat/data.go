package chat

import (
	"context"

	"festbot/app/client/venues"
	"festbot/app/service/chatlog"
)

// Generator is the LLM collaborator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// VenueSearch is the hosted venue-search collaborator.
type VenueSearch interface {
	Query(ctx context.Context, text string, k int) ([]venues.VenueFact, error)
	ListVenues(ctx context.Context) ([]string, error)
}

// Recorder is the fire-and-forget conversation log.
type Recorder interface {
	Append(entry chatlog.Entry)
}

const (
	welcomeTemplate = "Olá %s! 🎉 Sou o assistente da festa de passagem de ano do %s. " +
		"Pergunta-me pelas quintas candidatas ou diz \"confirmo\" para confirmares a tua presença."

	confirmedListTemplate = "A lista de confirmados está na barra lateral. 👈"

	familySuggestionTemplate = "Queres que confirme também %s? É só dizeres."

	noVenuesTemplate = "Ainda não tenho quintas registadas para te mostrar."

	undecidedTemplate = "Ainda não está decidido onde vai ser a festa — estamos a avaliar as quintas candidatas. " +
		"Assim que houver escolha, conto-te logo! 🎆"

	apologyTemplate = "Desculpa, estou com dificuldades em responder agora. Tenta outra vez daqui a pouco. 🙏"
)

// shortCircuit is a keyword-triggered fixed reply, checked after the
// intent-based canned replies and before the LLM path. These exist so
// the bot never invents a venue decision before one is made.
type shortCircuit struct {
	keywords []string
	reply    string
}

func shortCircuits() []shortCircuit {
	return []shortCircuit{
		{
			keywords: []string{
				"onde vai ser", "onde e a festa", "ja esta decidido",
				"ja esta decidida", "ja escolheram", "quinta escolhida",
				"qual vai ser a quinta",
			},
			reply: undecidedTemplate,
		},
		{
			keywords: []string{"piscina"},
			reply: "Várias quintas candidatas têm piscina, mas ainda não há decisão final — " +
				"por isso não te consigo garantir já. 🏊",
		},
		{
			keywords: []string{"churrasqueira", "churrasco", "grelhados"},
			reply: "Churrasqueira é um dos critérios na escolha, mas a quinta ainda não está decidida. " +
				"Mal esteja, digo-te se há grelhados. 🍖",
		},
		{
			keywords: []string{"sala de jogos", "jogos", "matraquilhos", "bilhar"},
			reply: "Algumas candidatas têm sala de jogos, mas a decisão ainda não está tomada — " +
				"não te quero prometer matraquilhos em vão. 🎱",
		},
		{
			keywords: []string{"animais", "animais de estimacao", "caes", "cao", "gato", "gatos"},
			reply: "Sobre animais ainda não te sei dizer: depende da quinta escolhida, e essa decisão " +
				"ainda não está tomada. 🐶",
		},
	}
}
