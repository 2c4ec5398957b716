package test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"readit/internal/ai"
	"readit/internal/models"
	"readit/internal/service"
)

func TestCreatePostSafeContentIsPersisted(t *testing.T) {
	postRepo := new(MockPostRepository)
	hashtagRepo := new(MockHashtagRepository)
	gate := new(MockModerationGate)

	gate.On("Moderate", mock.Anything, "Hello", "a post about #golang").
		Return(models.ModerationVerdict{Safe: true, Categories: []string{}}, nil)
	postRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).Return(nil)
	hashtagRepo.On("Upsert", mock.Anything, "golang").
		Return(&models.Hashtag{HashtagID: "h1", Tag: "golang", UseCount: 1}, nil)
	hashtagRepo.On("LinkToPost", mock.Anything, mock.Anything, "h1").Return(nil)

	svc := service.NewPostService(postRepo, hashtagRepo, gate)

	post, err := svc.CreatePost(t.Context(), service.CreatePostRequest{
		AuthorID: "u1",
		Title:    "Hello",
		Content:  "a post about #golang",
	})

	require.NoError(t, err)
	assert.Equal(t, "u1", post.AuthorID)
	assert.Equal(t, "text", post.PostType)
	postRepo.AssertExpectations(t)
	hashtagRepo.AssertExpectations(t)
}

func TestCreatePostUnsafeContentIsBlocked(t *testing.T) {
	postRepo := new(MockPostRepository)
	hashtagRepo := new(MockHashtagRepository)
	gate := new(MockModerationGate)

	verdict := models.ModerationVerdict{
		Safe:       false,
		Reason:     "hate speech",
		Categories: []string{"hate"},
	}
	gate.On("Moderate", mock.Anything, mock.Anything, mock.Anything).Return(verdict, nil)

	svc := service.NewPostService(postRepo, hashtagRepo, gate)

	_, err := svc.CreatePost(t.Context(), service.CreatePostRequest{
		AuthorID: "u1",
		Title:    "title",
		Content:  "offensive content",
	})

	var rejected *service.ContentRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, verdict, rejected.Verdict)
	postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePostGateFailureFailsOpen(t *testing.T) {
	postRepo := new(MockPostRepository)
	hashtagRepo := new(MockHashtagRepository)
	gate := new(MockModerationGate)

	gate.On("Moderate", mock.Anything, mock.Anything, mock.Anything).
		Return(models.ModerationVerdict{}, ai.ErrUpstreamUnavailable)
	postRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).Return(nil)

	svc := service.NewPostService(postRepo, hashtagRepo, gate)

	post, err := svc.CreatePost(t.Context(), service.CreatePostRequest{
		AuthorID: "u1",
		Title:    "title",
		Content:  "plain content",
	})

	require.NoError(t, err)
	assert.NotNil(t, post)
	postRepo.AssertExpectations(t)
}

func TestCreatePostHashtagFailureDoesNotFailRequest(t *testing.T) {
	postRepo := new(MockPostRepository)
	hashtagRepo := new(MockHashtagRepository)
	gate := new(MockModerationGate)

	gate.On("Moderate", mock.Anything, mock.Anything, mock.Anything).
		Return(models.ModerationVerdict{Safe: true}, nil)
	postRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).Return(nil)
	hashtagRepo.On("Upsert", mock.Anything, "tag").Return(nil, errors.New("db error"))

	svc := service.NewPostService(postRepo, hashtagRepo, gate)

	_, err := svc.CreatePost(t.Context(), service.CreatePostRequest{
		AuthorID: "u1",
		Title:    "title",
		Content:  "content with #tag",
	})

	assert.NoError(t, err)
}

func TestCreatePostDeduplicatesHashtags(t *testing.T) {
	postRepo := new(MockPostRepository)
	hashtagRepo := new(MockHashtagRepository)
	gate := new(MockModerationGate)

	gate.On("Moderate", mock.Anything, mock.Anything, mock.Anything).
		Return(models.ModerationVerdict{Safe: true}, nil)
	postRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).Return(nil)
	hashtagRepo.On("Upsert", mock.Anything, "go").
		Return(&models.Hashtag{HashtagID: "h1", Tag: "go"}, nil).Once()
	hashtagRepo.On("LinkToPost", mock.Anything, mock.Anything, "h1").Return(nil).Once()

	svc := service.NewPostService(postRepo, hashtagRepo, gate)

	_, err := svc.CreatePost(t.Context(), service.CreatePostRequest{
		AuthorID: "u1",
		Title:    "title",
		Content:  "#go and #GO again",
	})

	require.NoError(t, err)
	hashtagRepo.AssertExpectations(t)
}
