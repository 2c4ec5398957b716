package service

import (
	"errors"

	"readit/internal/ai"
	"readit/internal/cache"
	"readit/internal/config"
	"readit/internal/repository"
)

// ErrScoreRecompute aborts a trending snapshot: posts and hashtags without
// fresh scores are not safe to rank.
var ErrScoreRecompute = errors.New("trending score recompute failed")

type Service struct {
	Trending       TrendingService
	Recommendation RecommendationService
	Post           PostService
	Moderation     ai.ModerationGate
}

func NewService(repo *repository.Repository, cfg *config.Config, aiClient *ai.Client, c cache.Cache) *Service {
	keywords := ai.NewKeywordExtractor(aiClient, cfg.AI.KeywordTemperature)
	moderation := ai.NewModerationGate(aiClient, cfg.AI.ModerationTemperature)
	topics := ai.NewTopicSummarizer(aiClient, cfg.AI.TrendsTemperature)

	return &Service{
		Trending:       NewTrendingService(repo.Post, repo.Hashtag, topics, c, cfg.Trending),
		Recommendation: NewRecommendationService(repo.Post, repo.Engagement, repo.Profile, keywords, c),
		Post:           NewPostService(repo.Post, repo.Hashtag, moderation),
		Moderation:     moderation,
	}
}
