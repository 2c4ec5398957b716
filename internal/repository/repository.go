package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"readit/internal/models"
	"readit/internal/ranking"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetRecent(ctx context.Context, limit int) ([]models.Post, error)
	GetTopTrending(ctx context.Context, limit int) ([]models.Post, error)
	GetRecentByAuthor(ctx context.Context, authorID string, limit int) ([]models.Post, error)
	SearchByKeywords(ctx context.Context, keywords []string, excludeAuthorID string, limit int) ([]models.Post, error)
	RecomputeTrendingScores(ctx context.Context, window time.Duration, now time.Time) error
}

type HashtagRepository interface {
	GetTop(ctx context.Context, limit int) ([]models.Hashtag, error)
	Upsert(ctx context.Context, tag string) (*models.Hashtag, error)
	LinkToPost(ctx context.Context, postID, hashtagID string) error
}

type ProfileRepository interface {
	ProfilesByIDs(ctx context.Context, userIDs []string) (map[string]models.UserProfile, error)
	CommunitiesByIDs(ctx context.Context, communityIDs []string) (map[string]models.Community, error)
}

type EngagementRepository interface {
	VotesForPosts(ctx context.Context, userID string, postIDs []string) (map[string]string, error)
	SavedForPosts(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)
	JoinedCommunities(ctx context.Context, userID string) (map[string]bool, error)
	ToggleVote(ctx context.Context, userID, postID, voteType string) error
	ToggleSave(ctx context.Context, userID, postID string) (bool, error)
	ToggleMembership(ctx context.Context, userID, communityID string) (bool, error)
	ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	TrackView(ctx context.Context, postID string, userID *string) error
}

type Repository struct {
	Post       PostRepository
	Hashtag    HashtagRepository
	Profile    ProfileRepository
	Engagement EngagementRepository
}

func NewRepository(db *sqlx.DB, weights ranking.Weights) *Repository {
	return &Repository{
		Post:       NewPostRepository(db, weights),
		Hashtag:    NewHashtagRepository(db),
		Profile:    NewProfileRepository(db),
		Engagement: NewEngagementRepository(db),
	}
}
