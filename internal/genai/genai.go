// Package genai wraps the hosted model behind a narrow Generator interface.
// The planner and executor treat it as an opaque, fallible text capability and
// never let its errors cross the run boundary.
package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Format hints at the shape of the response the caller will parse.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Generator produces text for a prompt. Implementations may fail with an
// opaque error; callers must substitute fallbacks rather than propagate.
type Generator interface {
	Generate(ctx context.Context, prompt string, format Format) (string, error)
}

// Client is the Anthropic-backed Generator.
type Client struct {
	api       *anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewClient creates a generator with the given API key and model.
func NewClient(apiKey, model string) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		api:       &client,
		model:     anthropic.Model(model),
		maxTokens: 4096,
	}
}

// Generate sends the prompt and returns the first text block of the response.
func (c *Client) Generate(ctx context.Context, prompt string, format Format) (string, error) {
	system := "You are an autonomous software construction engine."
	if format == FormatJSON {
		system += " Return valid JSON only, no markdown fencing or explanation."
	}

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return "", fmt.Errorf("no text content in API response")
	}
	return strings.TrimSpace(text), nil
}
