package test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"readit/internal/models"
	"readit/internal/service"
)

type MockTrendingService struct {
	mock.Mock
}

func (m *MockTrendingService) ComputeTrendingSnapshot(ctx context.Context) (*models.TrendingSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrendingSnapshot), args.Error(1)
}

type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Recommend(ctx context.Context, userID, feedContext string, limit int) ([]models.Post, error) {
	args := m.Called(ctx, userID, feedContext, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

type MockModerationGate struct {
	mock.Mock
}

func (m *MockModerationGate) Moderate(ctx context.Context, title, content string) (models.ModerationVerdict, error) {
	args := m.Called(ctx, title, content)
	return args.Get(0).(models.ModerationVerdict), args.Error(1)
}

type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) VotesForPosts(ctx context.Context, userID string, postIDs []string) (map[string]string, error) {
	args := m.Called(ctx, userID, postIDs)
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockEngagementRepository) SavedForPosts(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, userID, postIDs)
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockEngagementRepository) JoinedCommunities(ctx context.Context, userID string) (map[string]bool, error) {
	args := m.Called(ctx, userID)
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

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadMedia(ctx context.Context, ownerID, fileName string, file io.Reader, size int64) (string, error) {
	args := m.Called(ctx, ownerID, fileName, file, size)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) DeleteMedia(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}
