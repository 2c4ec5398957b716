package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"readit/internal/models"
)

type HashtagRepositoryImpl struct {
	db *sqlx.DB
}

func NewHashtagRepository(db *sqlx.DB) *HashtagRepositoryImpl {
	return &HashtagRepositoryImpl{db: db}
}

// GetTop returns hashtags by use_count descending. Ties are broken by tag
// ascending so the ordering is deterministic.
func (r *HashtagRepositoryImpl) GetTop(ctx context.Context, limit int) ([]models.Hashtag, error) {
	query := `
        SELECT hashtag_id, tag, use_count, trending_score, created_at
        FROM hashtags
        ORDER BY use_count DESC, tag ASC
        LIMIT $1
    `

	var hashtags []models.Hashtag
	if err := r.db.SelectContext(ctx, &hashtags, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get top hashtags: %w", err)
	}

	return hashtags, nil
}

// Upsert creates the hashtag on first use and bumps use_count on every
// subsequent one. Tags are stored lowercased with no leading '#'.
func (r *HashtagRepositoryImpl) Upsert(ctx context.Context, tag string) (*models.Hashtag, error) {
	tag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
	if tag == "" {
		return nil, fmt.Errorf("empty hashtag")
	}

	query := `
        INSERT INTO hashtags (hashtag_id, tag, use_count)
        VALUES ($1, $2, 1)
        ON CONFLICT (tag) DO UPDATE SET use_count = hashtags.use_count + 1
        RETURNING hashtag_id, tag, use_count, trending_score, created_at
    `

	var hashtag models.Hashtag
	if err := r.db.GetContext(ctx, &hashtag, query, uuid.New().String(), tag); err != nil {
		return nil, fmt.Errorf("failed to upsert hashtag %q: %w", tag, err)
	}

	return &hashtag, nil
}

func (r *HashtagRepositoryImpl) LinkToPost(ctx context.Context, postID, hashtagID string) error {
	query := `
        INSERT INTO post_hashtags (post_id, hashtag_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `

	if _, err := r.db.ExecContext(ctx, query, postID, hashtagID); err != nil {
		return fmt.Errorf("failed to link hashtag to post: %w", err)
	}

	return nil
}
