package test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"readit/internal/models"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetRecent(ctx context.Context, limit int) ([]models.Post, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetTopTrending(ctx context.Context, limit int) ([]models.Post, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetRecentByAuthor(ctx context.Context, authorID string, limit int) ([]models.Post, error) {
	args := m.Called(ctx, authorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) SearchByKeywords(ctx context.Context, keywords []string, excludeAuthorID string, limit int) ([]models.Post, error) {
	args := m.Called(ctx, keywords, excludeAuthorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) RecomputeTrendingScores(ctx context.Context, window time.Duration, now time.Time) error {
	args := m.Called(ctx, window, now)
	return args.Error(0)
}

type MockHashtagRepository struct {
	mock.Mock
}

func (m *MockHashtagRepository) GetTop(ctx context.Context, limit int) ([]models.Hashtag, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Hashtag), args.Error(1)
}

func (m *MockHashtagRepository) Upsert(ctx context.Context, tag string) (*models.Hashtag, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hashtag), args.Error(1)
}

func (m *MockHashtagRepository) LinkToPost(ctx context.Context, postID, hashtagID string) error {
	args := m.Called(ctx, postID, hashtagID)
	return args.Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) ProfilesByIDs(ctx context.Context, userIDs []string) (map[string]models.UserProfile, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) CommunitiesByIDs(ctx context.Context, communityIDs []string) (map[string]models.Community, error) {
	args := m.Called(ctx, communityIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.Community), args.Error(1)
}

type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) VotesForPosts(ctx context.Context, userID string, postIDs []string) (map[string]string, error) {
	args := m.Called(ctx, userID, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockEngagementRepository) SavedForPosts(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, userID, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockEngagementRepository) JoinedCommunities(ctx context.Context, userID string) (map[string]bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockEngagementRepository) ToggleVote(ctx context.Context, userID, postID, voteType string) error {
	args := m.Called(ctx, userID, postID, voteType)
	return args.Error(0)
}

func (m *MockEngagementRepository) ToggleSave(ctx context.Context, userID, postID string) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) ToggleMembership(ctx context.Context, userID, communityID string) (bool, error) {
	args := m.Called(ctx, userID, communityID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) TrackView(ctx context.Context, postID string, userID *string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

type MockKeywordExtractor struct {
	mock.Mock
}

func (m *MockKeywordExtractor) ExtractKeywords(ctx context.Context, corpus []string, maxKeywords int) ([]string, error) {
	args := m.Called(ctx, corpus, maxKeywords)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockModerationGate struct {
	mock.Mock
}

func (m *MockModerationGate) Moderate(ctx context.Context, title, content string) (models.ModerationVerdict, error) {
	args := m.Called(ctx, title, content)
	return args.Get(0).(models.ModerationVerdict), args.Error(1)
}

type MockTopicSummarizer struct {
	mock.Mock
}

func (m *MockTopicSummarizer) SummarizeTopics(ctx context.Context, tags, titles []string) ([]models.TrendingTopic, error) {
	args := m.Called(ctx, tags, titles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrendingTopic), args.Error(1)
}

// fakeCache is an in-memory stand-in for the Redis cache.
type fakeCache struct {
	snapshot *models.TrendingSnapshot
	keywords map[string][]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{keywords: make(map[string][]string)}
}

func (c *fakeCache) GetTrendingSnapshot() (*models.TrendingSnapshot, bool) {
	if c.snapshot == nil {
		return nil, false
	}
	return c.snapshot, true
}

func (c *fakeCache) SetTrendingSnapshot(snapshot *models.TrendingSnapshot) {
	c.snapshot = snapshot
}

func (c *fakeCache) GetKeywords(userID string) ([]string, bool) {
	kw, ok := c.keywords[userID]
	return kw, ok
}

func (c *fakeCache) SetKeywords(userID string, keywords []string) {
	c.keywords[userID] = keywords
}
