package models

import (
	"time"

	"github.com/lib/pq"
)

type UserProfile struct {
	UserID    string    `json:"userId" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	AvatarURL *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Community struct {
	CommunityID string    `json:"communityId" db:"community_id"`
	Name        string    `json:"name" db:"name"`
	DisplayName string    `json:"displayName" db:"display_name"`
	Description *string   `json:"description,omitempty" db:"description"`
	IconURL     *string   `json:"iconUrl,omitempty" db:"icon_url"`
	MemberCount int       `json:"memberCount" db:"member_count"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID        string         `json:"postId" db:"post_id"`
	AuthorID      string         `json:"authorId" db:"author_id"`
	CommunityID   *string        `json:"communityId,omitempty" db:"community_id"`
	Title         string         `json:"title" db:"title"`
	Content       string         `json:"content" db:"content"`
	PostType      string         `json:"postType" db:"post_type"`
	MediaURLs     pq.StringArray `json:"mediaUrls,omitempty" db:"media_urls"`
	LinkURL       *string        `json:"linkUrl,omitempty" db:"link_url"`
	Upvotes       int            `json:"upvotes" db:"upvotes"`
	Downvotes     int            `json:"downvotes" db:"downvotes"`
	CommentCount  int            `json:"commentCount" db:"comment_count"`
	ShareCount    int            `json:"shareCount" db:"share_count"`
	ViewCount     int            `json:"viewCount" db:"view_count"`
	TrendingScore float64        `json:"trendingScore" db:"trending_score"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`

	// Per-requesting-user annotations, filled in by the recommendation
	// service, never stored.
	UserVote *string `json:"userVote,omitempty" db:"-"`
	IsSaved  bool    `json:"isSaved" db:"-"`
	IsJoined bool    `json:"isJoined" db:"-"`

	// Denormalized author and community info, joined onto feed rows for
	// rendering. Never stored on the post row itself.
	Author    *UserProfile `json:"author,omitempty" db:"-"`
	Community *Community   `json:"community,omitempty" db:"-"`
}

type Hashtag struct {
	HashtagID     string    `json:"hashtagId" db:"hashtag_id"`
	Tag           string    `json:"tag" db:"tag"`
	UseCount      int       `json:"useCount" db:"use_count"`
	TrendingScore float64   `json:"trendingScore" db:"trending_score"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// TrendingTopic is produced by the AI summarization step only. It is never
// persisted and never created by users.
type TrendingTopic struct {
	Topic       string  `json:"topic"`
	Description string  `json:"description"`
	Relevance   float64 `json:"relevance"`
}

// ModerationVerdict is the admission decision for a piece of content.
// Safe=false always carries a non-empty Reason.
type ModerationVerdict struct {
	Safe       bool     `json:"safe"`
	Reason     string   `json:"reason"`
	Categories []string `json:"categories"`
}

type PostVote struct {
	VoteID    string    `json:"voteId" db:"vote_id"`
	UserID    string    `json:"userId" db:"user_id"`
	PostID    string    `json:"postId" db:"post_id"`
	VoteType  string    `json:"voteType" db:"vote_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type TrendingSnapshot struct {
	Hashtags []Hashtag       `json:"hashtags"`
	Posts    []Post          `json:"posts"`
	Topics   []TrendingTopic `json:"topics"`
}
