package service

import (
	"context"
	"regexp"
	"strings"

	"readit/internal/ai"
	"readit/internal/logger"
	"readit/internal/models"
	"readit/internal/repository"
)

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// ContentRejectedError is returned when the moderation gate refuses a post.
// The reason is meant to be shown to the end user verbatim.
type ContentRejectedError struct {
	Verdict models.ModerationVerdict
}

func (e *ContentRejectedError) Error() string {
	return "content rejected: " + e.Verdict.Reason
}

type CreatePostRequest struct {
	AuthorID    string
	CommunityID *string
	Title       string
	Content     string
	PostType    string
	MediaURLs   []string
	LinkURL     *string
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
}

type postService struct {
	postRepo    repository.PostRepository
	hashtagRepo repository.HashtagRepository
	moderation  ai.ModerationGate
}

func NewPostService(
	postRepo repository.PostRepository,
	hashtagRepo repository.HashtagRepository,
	moderation ai.ModerationGate,
) PostService {
	return &postService{
		postRepo:    postRepo,
		hashtagRepo: hashtagRepo,
		moderation:  moderation,
	}
}

// CreatePost runs the moderation gate before anything touches the store: an
// unsafe post is never persisted. When the gate itself is down we fail open
// and admit the post, logging the miss.
func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	verdict, err := p.moderation.Moderate(ctx, req.Title, req.Content)
	if err != nil {
		logger.Error.Printf("moderation unavailable, admitting post by author %s unchecked: %v", req.AuthorID, err)
	} else if !verdict.Safe {
		return nil, &ContentRejectedError{Verdict: verdict}
	}

	postType := req.PostType
	if postType == "" {
		postType = "text"
	}

	post := &models.Post{
		AuthorID:    req.AuthorID,
		CommunityID: req.CommunityID,
		Title:       req.Title,
		Content:     req.Content,
		PostType:    postType,
		MediaURLs:   req.MediaURLs,
		LinkURL:     req.LinkURL,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	p.recordHashtags(ctx, post)

	return post, nil
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

// recordHashtags extracts #tags from the content, bumps their use counts and
// links them to the post. Hashtag bookkeeping failing should not undo an
// already-created post, so failures are logged and dropped.
func (p *postService) recordHashtags(ctx context.Context, post *models.Post) {
	matches := hashtagPattern.FindAllStringSubmatch(post.Content, -1)
	seen := make(map[string]bool)

	for _, match := range matches {
		tag := strings.ToLower(match[1])
		if seen[tag] {
			continue
		}
		seen[tag] = true

		hashtag, err := p.hashtagRepo.Upsert(ctx, tag)
		if err != nil {
			logger.Warn.Printf("failed to upsert hashtag %q: %v", tag, err)
			continue
		}
		if err := p.hashtagRepo.LinkToPost(ctx, post.PostID, hashtag.HashtagID); err != nil {
			logger.Warn.Printf("failed to link hashtag %q: %v", tag, err)
		}
	}
}
