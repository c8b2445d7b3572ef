// Package anthropic implements the chat completion client on the Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/twin-backend/internal/config"
	"github.com/heartmarshall/twin-backend/internal/domain"
)

// Client sends conversations to the Messages API.
type Client struct {
	api         sdk.Client
	model       sdk.Model
	maxTokens   int64
	temperature float64
	timeout     time.Duration
	log         *slog.Logger
}

// NewClient creates a Client from the chat configuration.
func NewClient(cfg config.ChatConfig, logger *slog.Logger, opts ...option.RequestOption) *Client {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(1),
	}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		api:         sdk.NewClient(append(base, opts...)...),
		model:       sdk.Model(cfg.Model),
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		log:         logger.With("adapter", "anthropic"),
	}
}

// Complete returns the assistant reply to msgs. System messages in msgs are
// not sent; the system prompt goes in its own field. An empty reply is
// returned as "".
func (c *Client) Complete(ctx context.Context, system string, msgs []domain.ChatMessage) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	params := sdk.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: sdk.Float(c.temperature),
		Messages:    toParams(msgs),
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}

	start := time.Now()
	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		c.log.ErrorContext(ctx, "messages request failed",
			slog.String("model", string(c.model)),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("anthropic: messages request: %w", err)
	}

	var reply strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			reply.WriteString(block.Text)
		}
	}

	c.log.DebugContext(ctx, "messages request done",
		slog.String("model", string(c.model)),
		slog.Duration("elapsed", time.Since(start)),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)

	return strings.TrimSpace(reply.String()), nil
}

func toParams(msgs []domain.ChatMessage) []sdk.MessageParam {
	out := make([]sdk.MessageParam, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case domain.ChatRoleUser:
			out = append(out, sdk.NewUserMessage(sdk.NewTextBlock(m.Content)))
		case domain.ChatRoleAssistant:
			out = append(out, sdk.NewAssistantMessage(sdk.NewTextBlock(m.Content)))
		}
	}
	return out
}
