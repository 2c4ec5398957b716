package ai

import (
	"context"
	"fmt"

	"readit/internal/models"
)

const moderationSystemPrompt = "You are a content moderation AI. Analyze text for harmful " +
	"content, spam, hate speech, or inappropriate material. " +
	"Return JSON: {safe: boolean, reason: string, categories: string[]}"

// ModerationGate classifies content as safe or unsafe before it is persisted.
type ModerationGate interface {
	Moderate(ctx context.Context, title, content string) (models.ModerationVerdict, error)
}

type moderationGate struct {
	client      *Client
	temperature float64
}

func NewModerationGate(client *Client, temperature float64) ModerationGate {
	return &moderationGate{client: client, temperature: temperature}
}

// Moderate returns the model's verdict for a title+body pair. The error is
// returned explicitly rather than folded into a default verdict; the caller
// owns the fail-open/fail-closed decision.
func (m *moderationGate) Moderate(ctx context.Context, title, content string) (models.ModerationVerdict, error) {
	if title == "" {
		title = "N/A"
	}
	userPrompt := fmt.Sprintf("Title: %s\n\nContent: %s", title, content)

	raw, err := m.client.Complete(ctx, moderationSystemPrompt, userPrompt, m.temperature)
	if err != nil {
		return models.ModerationVerdict{}, err
	}

	var verdict models.ModerationVerdict
	if err := ExtractJSON(raw, &verdict); err != nil {
		return models.ModerationVerdict{}, err
	}

	// An unsafe verdict must always explain itself.
	if !verdict.Safe && verdict.Reason == "" {
		verdict.Reason = "content flagged by moderation"
	}
	if verdict.Categories == nil {
		verdict.Categories = []string{}
	}

	return verdict, nil
}
