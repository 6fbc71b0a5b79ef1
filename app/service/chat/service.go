package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"festbot/app/client/llm"
	"festbot/app/client/venues"
	"festbot/app/config"
	"festbot/app/service/chatlog"
	"festbot/app/service/guests"
	"festbot/app/service/intent"
	"festbot/app/service/refs"
	"festbot/app/service/session"
	"festbot/app/util/textnorm"

	_ "embed"

	"github.com/samber/do"
)

//go:embed reply_prompt_template.txt
var replyPromptTemplate string

const searchTopK = 4

// Service composes replies: canned templates for recognized intents,
// short-circuit answers for amenity/decision questions, and the
// search-plus-LLM path for everything else. A turn never fails — every
// collaborator error degrades to a templated reply.
type Service struct {
	cfg *config.Config

	intentSvc *intent.Service
	refsSvc   *refs.Service
	guestsSvc *guests.Service

	generator Generator
	search    VenueSearch
	recorder  Recorder

	circuits []shortCircuit
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:       do.MustInvoke[*config.Config](di),
		intentSvc: do.MustInvoke[*intent.Service](di),
		refsSvc:   do.MustInvoke[*refs.Service](di),
		guestsSvc: do.MustInvoke[*guests.Service](di),
		generator: do.MustInvoke[*llm.Client](di),
		search:    do.MustInvoke[*venues.Client](di),
		recorder:  do.MustInvoke[*chatlog.Service](di),
		circuits:  shortCircuits(),
	}, nil
}

// NewWithCollaborators wires explicit collaborators, used by tests.
func NewWithCollaborators(
	cfg *config.Config,
	intentSvc *intent.Service,
	refsSvc *refs.Service,
	guestsSvc *guests.Service,
	generator Generator,
	search VenueSearch,
	recorder Recorder,
) *Service {
	return &Service{
		cfg:       cfg,
		intentSvc: intentSvc,
		refsSvc:   refsSvc,
		guestsSvc: guestsSvc,
		generator: generator,
		search:    search,
		recorder:  recorder,
		circuits:  shortCircuits(),
	}
}

// Respond processes one utterance within a session and returns the
// reply. The transcript is updated with both turns.
func (s *Service) Respond(ctx context.Context, sess *session.Context, utterance string) string {
	sess.AppendTurn(session.RoleUser, utterance)

	reply := s.compose(ctx, sess, utterance)

	sess.AppendTurn(session.RoleAssistant, reply)

	return reply
}

func (s *Service) compose(ctx context.Context, sess *session.Context, utterance string) string {
	tag := s.intentSvc.Classify(utterance)

	switch tag {
	case intent.TagGreeting:
		return fmt.Sprintf(welcomeTemplate, sess.Guest, s.cfg.Party.Host)

	case intent.TagConfirmation:
		return s.confirmGuest(ctx, sess)

	case intent.TagConfirmedList:
		return confirmedListTemplate

	case intent.TagVenueOptions:
		return s.listVenues(ctx, sess)
	}

	folded := textnorm.Normalize(utterance)
	for _, circuit := range s.circuits {
		for _, keyword := range circuit.keywords {
			if strings.Contains(" "+folded+" ", " "+keyword+" ") {
				return circuit.reply
			}
		}
	}

	return s.generate(ctx, sess, utterance, tag)
}

func (s *Service) confirmGuest(ctx context.Context, sess *session.Context) string {
	result, err := s.guestsSvc.Confirm(ctx, sess.Guest, "")
	if err != nil {
		slog.Error("Confirmation failed", "guest", sess.Guest, "error", err)
		return apologyTemplate
	}

	if !result.Success {
		return result.Message
	}

	reply := result.Message
	if len(result.SuggestedFamily) > 0 {
		reply += "\n" + fmt.Sprintf(familySuggestionTemplate, joinNames(result.SuggestedFamily))
	}

	return reply
}

func (s *Service) listVenues(ctx context.Context, sess *session.Context) string {
	names, err := s.search.ListVenues(ctx)
	if err != nil {
		slog.Error("Venue listing failed", "error", err)
		return apologyTemplate
	}

	if len(names) == 0 {
		return noVenuesTemplate
	}

	sess.SetLastShown(names)

	var builder strings.Builder
	builder.WriteString("Estas são as quintas candidatas:\n")
	for i, name := range names {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
	}
	builder.WriteString("Pergunta-me por qualquer uma delas, por exemplo \"e a 2ª?\".")

	return builder.String()
}

func (s *Service) generate(ctx context.Context, sess *session.Context, utterance string, tag intent.Tag) string {
	effectiveQuery := s.refsSvc.Resolve(utterance, sess.LastShown())

	var factsText string

	facts, err := s.search.Query(ctx, effectiveQuery, searchTopK)
	if err != nil {
		// Degrade to the party context only; the LLM can still answer.
		slog.Warn("Venue search failed", "query", effectiveQuery, "error", err)
	} else {
		factsText = formatFacts(facts)
	}

	if factsText == "" {
		factsText = "(sem resultados de pesquisa)"
	}

	templateValues := map[string]any{
		"host":       s.cfg.Party.Host,
		"event_date": s.cfg.Party.EventDate,
		"guest":      sess.Guest,
		"question":   effectiveQuery,
		"facts":      factsText,
	}

	prompt := replyPromptTemplate
	for key, value := range templateValues {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", fmt.Sprint(value))
	}

	reply, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		slog.Error("Reply generation failed",
			"guest", sess.Guest,
			"query", effectiveQuery,
			"error", err,
			"telegram", true)

		return apologyTemplate
	}

	s.recorder.Append(chatlog.Entry{
		Guest: sess.Guest,
		Query: effectiveQuery,
		Reply: reply,
		Topic: string(tag),
	})

	return reply
}

func formatFacts(facts []venues.VenueFact) string {
	var builder strings.Builder

	for _, fact := range facts {
		builder.WriteString("- ")
		if fact.Name != "" {
			builder.WriteString(fact.Name)
			builder.WriteString(": ")
		}
		builder.WriteString(fact.Text)
		builder.WriteString("\n")
	}

	return strings.TrimSpace(builder.String())
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " e " + names[len(names)-1]
	}
}
