package service

import (
	"context"
	"errors"
	"fmt"

	"readit/internal/ai"
	"readit/internal/cache"
	"readit/internal/logger"
	"readit/internal/models"
	"readit/internal/repository"
)

const (
	ContextHome         = "home"
	ContextTrending     = "trending"
	ContextPersonalized = "personalized"

	DefaultLimit = 20

	corpusPostCount = 10
	maxKeywords     = 10
)

type RecommendationService interface {
	Recommend(ctx context.Context, userID, feedContext string, limit int) ([]models.Post, error)
}

type recommendationService struct {
	postRepo       repository.PostRepository
	engagementRepo repository.EngagementRepository
	profileRepo    repository.ProfileRepository
	keywords       ai.KeywordExtractor
	cache          cache.Cache
}

func NewRecommendationService(
	postRepo repository.PostRepository,
	engagementRepo repository.EngagementRepository,
	profileRepo repository.ProfileRepository,
	keywords ai.KeywordExtractor,
	c cache.Cache,
) RecommendationService {
	return &recommendationService{
		postRepo:       postRepo,
		engagementRepo: engagementRepo,
		profileRepo:    profileRepo,
		keywords:       keywords,
		cache:          c,
	}
}

// Recommend returns an ordered post list for the requested feed context and
// annotates every post with the requesting user's vote/saved/joined state.
func (s *recommendationService) Recommend(ctx context.Context, userID, feedContext string, limit int) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = DefaultLimit
	}

	var posts []models.Post
	var err error

	switch feedContext {
	case ContextTrending:
		posts, err = s.postRepo.GetTopTrending(ctx, limit)
	case ContextPersonalized:
		if userID == "" {
			posts, err = s.postRepo.GetRecent(ctx, limit)
		} else {
			posts, err = s.personalized(ctx, userID, limit)
		}
	default:
		posts, err = s.postRepo.GetRecent(ctx, limit)
	}
	if err != nil {
		return nil, err
	}

	if err := s.annotate(ctx, userID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// personalized derives keywords from the user's own recent posts and text-
// searches everyone else's. Keyword extraction failing, yielding nothing, or
// yielding nothing searchable degrades to the home ordering; it never fails
// the request.
func (s *recommendationService) personalized(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	keywords := s.keywordsForUser(ctx, userID)
	if len(keywords) == 0 {
		return s.postRepo.GetRecent(ctx, limit)
	}

	posts, err := s.postRepo.SearchByKeywords(ctx, keywords, userID, limit)
	if errors.Is(err, repository.ErrEmptySearchQuery) {
		logger.Warn.Printf("keywords for %s produced no search terms, falling back to home feed", userID)
		return s.postRepo.GetRecent(ctx, limit)
	}
	return posts, err
}

func (s *recommendationService) keywordsForUser(ctx context.Context, userID string) []string {
	if cached, ok := s.cache.GetKeywords(userID); ok {
		return cached
	}

	recent, err := s.postRepo.GetRecentByAuthor(ctx, userID, corpusPostCount)
	if err != nil {
		logger.Warn.Printf("failed to load post history for %s: %v", userID, err)
		return nil
	}
	if len(recent) == 0 {
		return nil
	}

	corpus := make([]string, 0, len(recent))
	for _, p := range recent {
		corpus = append(corpus, p.Title+"\n"+p.Content)
	}

	keywords, err := s.keywords.ExtractKeywords(ctx, corpus, maxKeywords)
	if err != nil {
		logger.Warn.Printf("keyword extraction failed for %s, falling back to home feed: %v", userID, err)
		return nil
	}

	if len(keywords) > 0 {
		s.cache.SetKeywords(userID, keywords)
	}
	return keywords
}

// annotate joins denormalized author and community info onto every feed row,
// plus the requesting user's vote, saved and membership state when there is
// one. All lookups are batched, so the query count stays constant no matter
// how many posts come back.
func (s *recommendationService) annotate(ctx context.Context, userID string, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]string, 0, len(posts))
	var authorIDs, communityIDs []string
	seenAuthors := make(map[string]bool)
	seenCommunities := make(map[string]bool)
	for _, p := range posts {
		postIDs = append(postIDs, p.PostID)
		if p.AuthorID != "" && !seenAuthors[p.AuthorID] {
			seenAuthors[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
		if p.CommunityID != nil && !seenCommunities[*p.CommunityID] {
			seenCommunities[*p.CommunityID] = true
			communityIDs = append(communityIDs, *p.CommunityID)
		}
	}

	authors, err := s.profileRepo.ProfilesByIDs(ctx, authorIDs)
	if err != nil {
		return fmt.Errorf("failed to annotate authors: %w", err)
	}
	communities, err := s.profileRepo.CommunitiesByIDs(ctx, communityIDs)
	if err != nil {
		return fmt.Errorf("failed to annotate communities: %w", err)
	}
	for i := range posts {
		if author, ok := authors[posts[i].AuthorID]; ok {
			a := author
			posts[i].Author = &a
		}
		if posts[i].CommunityID != nil {
			if community, ok := communities[*posts[i].CommunityID]; ok {
				c := community
				posts[i].Community = &c
			}
		}
	}

	if userID == "" {
		return nil
	}

	votes, err := s.engagementRepo.VotesForPosts(ctx, userID, postIDs)
	if err != nil {
		return fmt.Errorf("failed to annotate votes: %w", err)
	}
	saved, err := s.engagementRepo.SavedForPosts(ctx, userID, postIDs)
	if err != nil {
		return fmt.Errorf("failed to annotate saves: %w", err)
	}
	joined, err := s.engagementRepo.JoinedCommunities(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to annotate memberships: %w", err)
	}

	for i := range posts {
		if vote, ok := votes[posts[i].PostID]; ok {
			v := vote
			posts[i].UserVote = &v
		}
		posts[i].IsSaved = saved[posts[i].PostID]
		if posts[i].CommunityID != nil {
			posts[i].IsJoined = joined[*posts[i].CommunityID]
		}
	}
	return nil
}
