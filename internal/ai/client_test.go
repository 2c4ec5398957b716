package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readit/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.AI{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "google/gemini-3-flash-preview",
		Timeout: 5 * time.Second,
	})
	return client, srv
}

// completionReply wraps content the way the completion endpoint does: the
// model output is a string inside choices[0].message.content.
func completionReply(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(body)
}

func TestCompleteSendsAuthAndPayload(t *testing.T) {
	var gotAuth string
	var gotReq completionRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, completionReply("ok"))
	})

	content, err := client.Complete(context.Background(), "system", "user", 0.7)

	require.NoError(t, err)
	assert.Equal(t, "ok", content)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "google/gemini-3-flash-preview", gotReq.Model)
	assert.Equal(t, 0.7, gotReq.Temperature)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
}

func TestCompleteNon2xxIsUpstreamUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Complete(context.Background(), "s", "u", 0.3)

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestCompleteUnparseableBodyIsMalformed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json at all")
	})

	_, err := client.Complete(context.Background(), "s", "u", 0.3)

	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestCompleteEmptyChoicesIsMalformed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	})

	_, err := client.Complete(context.Background(), "s", "u", 0.3)

	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestCompleteRespectsContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server can notice the client going away,
		// and bound the wait so a missed cancellation cannot wedge Close.
		io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Complete(ctx, "s", "u", 0.3)

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestExtractKeywordsBoundsAndOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionReply(`["golang", "databases", "ai", " ", "networking"]`))
	})
	extractor := NewKeywordExtractor(client, 0.7)

	keywords, err := extractor.ExtractKeywords(context.Background(), []string{"post one", "post two"}, 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "databases", "ai"}, keywords)
}

func TestExtractKeywordsUpstreamFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	extractor := NewKeywordExtractor(client, 0.7)

	_, err := extractor.ExtractKeywords(context.Background(), []string{"post"}, 10)

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestModerateUnsafeVerdictPassedThrough(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionReply(`{"safe":false,"reason":"hate speech","categories":["hate"]}`))
	})
	gate := NewModerationGate(client, 0.3)

	verdict, err := gate.Moderate(context.Background(), "title", "some content")

	require.NoError(t, err)
	assert.False(t, verdict.Safe)
	assert.Equal(t, "hate speech", verdict.Reason)
	assert.Equal(t, []string{"hate"}, verdict.Categories)
}

func TestModerateUnsafeWithoutReasonGetsBackfilled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionReply(`{"safe":false,"reason":"","categories":[]}`))
	})
	gate := NewModerationGate(client, 0.3)

	verdict, err := gate.Moderate(context.Background(), "", "content")

	require.NoError(t, err)
	assert.False(t, verdict.Safe)
	assert.NotEmpty(t, verdict.Reason)
}

func TestModerateStableForIdenticalInput(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionReply(`{"safe":true,"reason":"","categories":[]}`))
	})
	gate := NewModerationGate(client, 0.3)

	first, err := gate.Moderate(context.Background(), "t", "same bytes")
	require.NoError(t, err)
	second, err := gate.Moderate(context.Background(), "t", "same bytes")
	require.NoError(t, err)

	assert.Equal(t, first.Safe, second.Safe)
}

func TestSummarizeTopicsParsesTrends(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionReply("```json\n{\"trends\":[{\"topic\":\"ai\",\"description\":\"model releases\",\"relevance\":0.9}]}\n```"))
	})
	summarizer := NewTopicSummarizer(client, 0.7)

	topics, err := summarizer.SummarizeTopics(context.Background(),
		[]string{"ai", "news"}, []string{"New model released"})

	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "ai", topics[0].Topic)
	assert.InDelta(t, 0.9, topics[0].Relevance, 0.0001)
}
