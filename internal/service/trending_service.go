package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"readit/internal/ai"
	"readit/internal/cache"
	"readit/internal/config"
	"readit/internal/logger"
	"readit/internal/models"
	"readit/internal/repository"
)

const (
	topHashtagCount      = 20
	topTrendingPostCount = 10
)

type TrendingService interface {
	ComputeTrendingSnapshot(ctx context.Context) (*models.TrendingSnapshot, error)
}

type trendingService struct {
	postRepo    repository.PostRepository
	hashtagRepo repository.HashtagRepository
	summarizer  ai.TopicSummarizer
	cache       cache.Cache
	window      time.Duration
}

func NewTrendingService(
	postRepo repository.PostRepository,
	hashtagRepo repository.HashtagRepository,
	summarizer ai.TopicSummarizer,
	c cache.Cache,
	cfg config.Trending,
) TrendingService {
	return &trendingService{
		postRepo:    postRepo,
		hashtagRepo: hashtagRepo,
		summarizer:  summarizer,
		cache:       c,
		window:      time.Duration(cfg.WindowHours) * time.Hour,
	}
}

// ComputeTrendingSnapshot refreshes scores for the recent window, then
// assembles top hashtags, top posts and AI trend commentary. A recompute
// failure aborts the snapshot; a summarization failure does not, because
// ranked posts and hashtags are worth more than commentary.
func (s *trendingService) ComputeTrendingSnapshot(ctx context.Context) (*models.TrendingSnapshot, error) {
	if snapshot, ok := s.cache.GetTrendingSnapshot(); ok {
		return snapshot, nil
	}

	// The recompute writes scores back to the store, so it is allowed to
	// finish even when the caller goes away mid-request.
	recomputeCtx := context.WithoutCancel(ctx)
	if err := s.postRepo.RecomputeTrendingScores(recomputeCtx, s.window, time.Now()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoreRecompute, err)
	}

	var (
		wg         sync.WaitGroup
		hashtags   []models.Hashtag
		posts      []models.Post
		hashtagErr error
		postErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		hashtags, hashtagErr = s.hashtagRepo.GetTop(ctx, topHashtagCount)
	}()
	go func() {
		defer wg.Done()
		posts, postErr = s.postRepo.GetTopTrending(ctx, topTrendingPostCount)
	}()
	wg.Wait()

	if hashtagErr != nil {
		return nil, fmt.Errorf("failed to load top hashtags: %w", hashtagErr)
	}
	if postErr != nil {
		return nil, fmt.Errorf("failed to load trending posts: %w", postErr)
	}

	snapshot := &models.TrendingSnapshot{
		Hashtags: hashtags,
		Posts:    posts,
		Topics:   s.summarize(ctx, hashtags, posts),
	}

	s.cache.SetTrendingSnapshot(snapshot)
	return snapshot, nil
}

func (s *trendingService) summarize(ctx context.Context, hashtags []models.Hashtag, posts []models.Post) []models.TrendingTopic {
	tags := make([]string, 0, len(hashtags))
	for _, h := range hashtags {
		tags = append(tags, h.Tag)
	}
	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}

	topics, err := s.summarizer.SummarizeTopics(ctx, tags, titles)
	if err != nil {
		logger.Warn.Printf("topic summarization failed, returning snapshot without topics: %v", err)
		return []models.TrendingTopic{}
	}
	if topics == nil {
		topics = []models.TrendingTopic{}
	}
	return topics
}
