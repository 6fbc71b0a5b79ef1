package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"festbot/app/config"

	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/sashabaranov/go-openai"
)

const (
	requestTimeout      = 30 * time.Second
	maxCompletionTokens = 500
)

// Client wraps the hosted LLM API behind a plain generate call. It is
// stateless; retry policy, if any, belongs to the caller.
type Client struct {
	client *openai.Client
	model  string
}

func New(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	clientConfig := openai.DefaultConfig(cfg.OpenAI.Reply.Token)
	clientConfig.BaseURL = cfg.OpenAI.Reply.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: requestTimeout,
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.OpenAI.Reply.Model,
	}, nil
}

// Generate runs one stateless text completion for the prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	response, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxCompletionTokens: maxCompletionTokens,
			Temperature:         0.7,
		},
	)
	if err != nil {
		return "", oops.Code("upstream").Wrapf(err, "failed to create chat completion")
	}

	if len(response.Choices) == 0 {
		return "", oops.Code("upstream").Errorf("no chat completion found")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
