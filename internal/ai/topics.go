package ai

import (
	"context"
	"fmt"
	"strings"

	"readit/internal/models"
)

const trendsSystemPrompt = "You are a trending topics analyzer. Given hashtags and post titles, " +
	"identify emerging trends and topics. " +
	"Return JSON: {trends: [{topic: string, description: string, relevance: number}]}"

// TopicSummarizer condenses trending hashtags and post titles into
// human-readable trend descriptions.
type TopicSummarizer interface {
	SummarizeTopics(ctx context.Context, tags, titles []string) ([]models.TrendingTopic, error)
}

type topicSummarizer struct {
	client      *Client
	temperature float64
}

func NewTopicSummarizer(client *Client, temperature float64) TopicSummarizer {
	return &topicSummarizer{client: client, temperature: temperature}
}

func (t *topicSummarizer) SummarizeTopics(ctx context.Context, tags, titles []string) ([]models.TrendingTopic, error) {
	userPrompt := fmt.Sprintf("Hashtags: %s\n\nTop Posts: %s",
		strings.Join(tags, ", "), strings.Join(titles, "\n"))

	raw, err := t.client.Complete(ctx, trendsSystemPrompt, userPrompt, t.temperature)
	if err != nil {
		return nil, err
	}

	var analysis struct {
		Trends []models.TrendingTopic `json:"trends"`
	}
	if err := ExtractJSON(raw, &analysis); err != nil {
		return nil, err
	}

	return analysis.Trends, nil
}
