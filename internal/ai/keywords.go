package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const keywordSystemPrompt = "You are a content recommendation AI. Analyze user post history " +
	"and suggest relevant topics, keywords, and hashtags they might be interested in. " +
	"Return only a JSON array of keyword strings, no prose."

// KeywordExtractor derives a ranked keyword list from a corpus of text.
type KeywordExtractor interface {
	ExtractKeywords(ctx context.Context, corpus []string, maxKeywords int) ([]string, error)
}

type keywordExtractor struct {
	client      *Client
	temperature float64
}

func NewKeywordExtractor(client *Client, temperature float64) KeywordExtractor {
	return &keywordExtractor{client: client, temperature: temperature}
}

// ExtractKeywords asks the model for up to maxKeywords keywords describing
// the corpus. The returned order is the model's relevance order; we do not
// re-sort. On any upstream or parse failure the caller gets the error and is
// expected to degrade to non-personalized behavior.
func (k *keywordExtractor) ExtractKeywords(ctx context.Context, corpus []string, maxKeywords int) ([]string, error) {
	if maxKeywords <= 0 {
		maxKeywords = 10
	}

	history, err := json.Marshal(corpus)
	if err != nil {
		return nil, fmt.Errorf("failed to encode corpus: %w", err)
	}

	userPrompt := fmt.Sprintf(
		"User post history: %s. Suggest %d relevant keywords for content recommendations.",
		history, maxKeywords)

	content, err := k.client.Complete(ctx, keywordSystemPrompt, userPrompt, k.temperature)
	if err != nil {
		return nil, err
	}

	var keywords []string
	if err := ExtractJSON(content, &keywords); err != nil {
		return nil, err
	}

	cleaned := make([]string, 0, maxKeywords)
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		cleaned = append(cleaned, kw)
		if len(cleaned) == maxKeywords {
			break
		}
	}
	return cleaned, nil
}
