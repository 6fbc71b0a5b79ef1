package venues

import (
	"context"
	"net/url"
	"time"

	"festbot/app/config"

	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/tmc/langchaingo/embeddings"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/vectorstores/qdrant"
)

const (
	searchTimeout = 15 * time.Second

	// listQuery is the broad probe used to enumerate candidate venues.
	listQuery     = "quinta para festa de passagem de ano"
	listVenueSize = 10
)

// VenueFact is one retrieved venue record. Facts are ranked best-effort
// by relevance and read-only from the bot's perspective.
type VenueFact struct {
	Name     string
	Zone     string
	Capacity string
	Price    string
	Contact  string
	Status   string
	Text     string
	Score    float32
	Metadata map[string]any
}

// Client searches the hosted venue collection through the qdrant
// vector store, embedding queries with the OpenAI embedding model.
type Client struct {
	store qdrant.Store
}

func New(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	embedLLM, err := lcopenai.New(
		lcopenai.WithToken(cfg.OpenAI.Embedding.Token),
		lcopenai.WithBaseURL(cfg.OpenAI.Embedding.BaseURL),
		lcopenai.WithEmbeddingModel(cfg.OpenAI.Embedding.Model),
	)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to create embedding client")
	}

	embedder, err := embeddings.NewEmbedder(embedLLM)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to create embedder")
	}

	qdrantURL, err := url.Parse(cfg.Qdrant.URL)
	if err != nil {
		return nil, oops.Wrapf(err, "invalid qdrant url %q", cfg.Qdrant.URL)
	}

	store, err := qdrant.New(
		qdrant.WithURL(*qdrantURL),
		qdrant.WithAPIKey(cfg.Qdrant.APIKey),
		qdrant.WithCollectionName(cfg.Qdrant.Collection),
		qdrant.WithEmbedder(embedder),
	)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to create qdrant store")
	}

	return &Client{store: store}, nil
}

// Query runs a semantic search over the venue collection.
func (c *Client) Query(ctx context.Context, text string, k int) ([]VenueFact, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	docs, err := c.store.SimilaritySearch(ctx, text, k)
	if err != nil {
		return nil, oops.Code("upstream").Wrapf(err, "venue search failed")
	}

	facts := make([]VenueFact, 0, len(docs))
	for _, doc := range docs {
		facts = append(facts, VenueFact{
			Name:     metaString(doc.Metadata, "name"),
			Zone:     metaString(doc.Metadata, "zone"),
			Capacity: metaString(doc.Metadata, "capacity"),
			Price:    metaString(doc.Metadata, "price"),
			Contact:  metaString(doc.Metadata, "contact"),
			Status:   metaString(doc.Metadata, "status"),
			Text:     doc.PageContent,
			Score:    doc.Score,
			Metadata: doc.Metadata,
		})
	}

	return facts, nil
}

// ListVenues returns the distinct venue names of the best-matching
// records for a broad probe query, in relevance order.
func (c *Client) ListVenues(ctx context.Context) ([]string, error) {
	facts, err := c.Query(ctx, listQuery, listVenueSize)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	names := make([]string, 0, len(facts))

	for _, fact := range facts {
		if fact.Name == "" || seen[fact.Name] {
			continue
		}

		seen[fact.Name] = true
		names = append(names, fact.Name)
	}

	return names, nil
}

func metaString(metadata map[string]any, key string) string {
	if value, ok := metadata[key].(string); ok {
		return value
	}

	return ""
}
