package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"readit/internal/models"
	"readit/internal/ranking"
)

var (
	ErrPostNotFound = errors.New("post not found")

	// ErrEmptySearchQuery means none of the supplied keywords survived
	// sanitization; there is nothing to search for.
	ErrEmptySearchQuery = errors.New("no searchable keywords")
)

const postColumns = `post_id, author_id, community_id, title, content, post_type,
	media_urls, link_url, upvotes, downvotes, comment_count, share_count,
	view_count, trending_score, created_at, updated_at`

type PostRepositoryImpl struct {
	db      *sqlx.DB
	weights ranking.Weights
}

func NewPostRepository(db *sqlx.DB, weights ranking.Weights) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db, weights: weights}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `
        INSERT INTO posts
        (post_id, author_id, community_id, title, content, post_type, media_urls, link_url, created_at, updated_at)
        VALUES
        (:post_id, :author_id, :community_id, :title, :content, :post_type, :media_urls, :link_url, :created_at, :updated_at)
    `

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetRecent(ctx context.Context, limit int) ([]models.Post, error) {
	query := `
        SELECT ` + postColumns + ` FROM posts
        ORDER BY created_at DESC
        LIMIT $1
    `

	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent posts: %w", err)
	}

	return posts, nil
}

// GetTopTrending orders by trending_score descending; ties go to the newer
// post so the ordering is deterministic.
func (r *PostRepositoryImpl) GetTopTrending(ctx context.Context, limit int) ([]models.Post, error) {
	query := `
        SELECT ` + postColumns + ` FROM posts
        ORDER BY trending_score DESC, created_at DESC
        LIMIT $1
    `

	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get trending posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetRecentByAuthor(ctx context.Context, authorID string, limit int) ([]models.Post, error) {
	query := `
        SELECT ` + postColumns + ` FROM posts
        WHERE author_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `

	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, query, authorID, limit); err != nil {
		return nil, fmt.Errorf("failed to get posts by author: %w", err)
	}

	return posts, nil
}

// SearchByKeywords runs an OR-joined full-text search over post titles,
// excluding the requesting user's own posts. Keywords are sanitized down to
// letters and digits before being handed to to_tsquery, since they come from
// a language model and may contain anything. When nothing survives
// sanitization, ErrEmptySearchQuery tells the caller to degrade instead of
// serving an empty feed.
func (r *PostRepositoryImpl) SearchByKeywords(ctx context.Context, keywords []string, excludeAuthorID string, limit int) ([]models.Post, error) {
	tsquery := buildTSQuery(keywords)
	if tsquery == "" {
		return nil, ErrEmptySearchQuery
	}

	query := `
        SELECT ` + postColumns + ` FROM posts
        WHERE to_tsvector('english', title) @@ to_tsquery('english', $1)
          AND author_id <> $2
        ORDER BY trending_score DESC, created_at DESC
        LIMIT $3
    `

	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, query, tsquery, excludeAuthorID, limit); err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}

	return posts, nil
}

func buildTSQuery(keywords []string) string {
	terms := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		term := sanitizeTerm(kw)
		if term != "" {
			terms = append(terms, term)
		}
	}
	return strings.Join(terms, " | ")
}

// sanitizeTerm keeps letters and digits in any script and joins multi-word
// keywords with the AND operator, so "machine learning" matches titles
// containing both.
func sanitizeTerm(keyword string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(keyword) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	words := strings.Fields(b.String())
	return strings.Join(words, " & ")
}

type scoreRow struct {
	PostID       string    `db:"post_id"`
	Upvotes      int       `db:"upvotes"`
	Downvotes    int       `db:"downvotes"`
	CommentCount int       `db:"comment_count"`
	ShareCount   int       `db:"share_count"`
	CreatedAt    time.Time `db:"created_at"`
}

// RecomputeTrendingScores refreshes trending_score for every post created
// inside the window. Recomputing is idempotent, so a retried or overlapping
// run just overwrites with the same values.
func (r *PostRepositoryImpl) RecomputeTrendingScores(ctx context.Context, window time.Duration, now time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin score recompute: %w", err)
	}
	defer tx.Rollback()

	var rows []scoreRow
	selectQuery := `
        SELECT post_id, upvotes, downvotes, comment_count, share_count, created_at
        FROM posts
        WHERE created_at >= $1
    `
	if err := tx.SelectContext(ctx, &rows, selectQuery, now.Add(-window)); err != nil {
		return fmt.Errorf("failed to load posts for score recompute: %w", err)
	}

	updateQuery := `UPDATE posts SET trending_score = $1 WHERE post_id = $2`
	for _, row := range rows {
		score := ranking.Score(ranking.Counters{
			Upvotes:      row.Upvotes,
			Downvotes:    row.Downvotes,
			CommentCount: row.CommentCount,
			ShareCount:   row.ShareCount,
		}, row.CreatedAt, now, r.weights)

		if _, err := tx.ExecContext(ctx, updateQuery, score, row.PostID); err != nil {
			return fmt.Errorf("failed to update score for post %s: %w", row.PostID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit score recompute: %w", err)
	}

	return nil
}
