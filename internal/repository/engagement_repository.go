package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"readit/internal/models"
)

type EngagementRepositoryImpl struct {
	db *sqlx.DB
}

func NewEngagementRepository(db *sqlx.DB) *EngagementRepositoryImpl {
	return &EngagementRepositoryImpl{db: db}
}

// VotesForPosts returns the user's vote per post for the given id set in a
// single query.
func (r *EngagementRepositoryImpl) VotesForPosts(ctx context.Context, userID string, postIDs []string) (map[string]string, error) {
	votes := make(map[string]string)
	if len(postIDs) == 0 {
		return votes, nil
	}

	query, args, err := sqlx.In(
		`SELECT post_id, vote_type FROM post_votes WHERE user_id = ? AND post_id IN (?)`,
		userID, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build votes query: %w", err)
	}

	rows := []struct {
		PostID   string `db:"post_id"`
		VoteType string `db:"vote_type"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}

	for _, row := range rows {
		votes[row.PostID] = row.VoteType
	}
	return votes, nil
}

func (r *EngagementRepositoryImpl) SavedForPosts(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	saved := make(map[string]bool)
	if len(postIDs) == 0 {
		return saved, nil
	}

	query, args, err := sqlx.In(
		`SELECT post_id FROM saved_posts WHERE user_id = ? AND post_id IN (?)`,
		userID, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build saved query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get saved posts: %w", err)
	}

	for _, id := range ids {
		saved[id] = true
	}
	return saved, nil
}

func (r *EngagementRepositoryImpl) JoinedCommunities(ctx context.Context, userID string) (map[string]bool, error) {
	var ids []string
	query := `SELECT community_id FROM community_members WHERE user_id = $1`
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get memberships: %w", err)
	}

	joined := make(map[string]bool, len(ids))
	for _, id := range ids {
		joined[id] = true
	}
	return joined, nil
}

// ToggleVote keeps the one-vote-per-(user,post) invariant: voting the same
// way twice removes the vote, voting the other way flips it. Post counters
// are adjusted in the same transaction.
func (r *EngagementRepositoryImpl) ToggleVote(ctx context.Context, userID, postID, voteType string) error {
	if voteType != "up" && voteType != "down" {
		return fmt.Errorf("invalid vote type: %s", voteType)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer tx.Rollback()

	var existing models.PostVote
	err = tx.GetContext(ctx, &existing,
		`SELECT vote_id, vote_type FROM post_votes WHERE user_id = $1 AND post_id = $2`,
		userID, postID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_votes (vote_id, user_id, post_id, vote_type) VALUES ($1, $2, $3, $4)`,
			uuid.New().String(), userID, postID, voteType); err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}
		if err := adjustCounter(ctx, tx, postID, voteType, +1); err != nil {
			return err
		}
	case err != nil:
		return fmt.Errorf("failed to check existing vote: %w", err)
	case existing.VoteType == voteType:
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM post_votes WHERE vote_id = $1`, existing.VoteID); err != nil {
			return fmt.Errorf("failed to remove vote: %w", err)
		}
		if err := adjustCounter(ctx, tx, postID, voteType, -1); err != nil {
			return err
		}
	default:
		if _, err := tx.ExecContext(ctx,
			`UPDATE post_votes SET vote_type = $1 WHERE vote_id = $2`,
			voteType, existing.VoteID); err != nil {
			return fmt.Errorf("failed to change vote: %w", err)
		}
		if err := adjustCounter(ctx, tx, postID, existing.VoteType, -1); err != nil {
			return err
		}
		if err := adjustCounter(ctx, tx, postID, voteType, +1); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

func adjustCounter(ctx context.Context, tx *sqlx.Tx, postID, voteType string, delta int) error {
	column := "upvotes"
	if voteType == "down" {
		column = "downvotes"
	}

	// GREATEST keeps the counter non-negative even if rows drift.
	query := fmt.Sprintf(
		`UPDATE posts SET %s = GREATEST(%s + $1, 0) WHERE post_id = $2`, column, column)
	if _, err := tx.ExecContext(ctx, query, delta, postID); err != nil {
		return fmt.Errorf("failed to adjust %s: %w", column, err)
	}
	return nil
}

func (r *EngagementRepositoryImpl) ToggleSave(ctx context.Context, userID, postID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_posts WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to unsave post: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check unsave result: %w", err)
	}
	if deleted > 0 {
		return false, nil
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO saved_posts (save_id, user_id, post_id) VALUES ($1, $2, $3)`,
		uuid.New().String(), userID, postID); err != nil {
		return false, fmt.Errorf("failed to save post: %w", err)
	}
	return true, nil
}

func (r *EngagementRepositoryImpl) ToggleMembership(ctx context.Context, userID, communityID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM community_members WHERE user_id = $1 AND community_id = $2`,
		userID, communityID)
	if err != nil {
		return false, fmt.Errorf("failed to leave community: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check membership result: %w", err)
	}
	if deleted > 0 {
		if _, err := r.db.ExecContext(ctx,
			`UPDATE communities SET member_count = GREATEST(member_count - 1, 0) WHERE community_id = $1`,
			communityID); err != nil {
			return false, fmt.Errorf("failed to decrement member count: %w", err)
		}
		return false, nil
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO community_members (membership_id, user_id, community_id) VALUES ($1, $2, $3)`,
		uuid.New().String(), userID, communityID); err != nil {
		return false, fmt.Errorf("failed to join community: %w", err)
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE communities SET member_count = member_count + 1 WHERE community_id = $1`,
		communityID); err != nil {
		return false, fmt.Errorf("failed to increment member count: %w", err)
	}
	return true, nil
}

func (r *EngagementRepositoryImpl) ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM user_follows WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("failed to unfollow: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check follow result: %w", err)
	}
	if deleted > 0 {
		return false, nil
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO user_follows (follow_id, follower_id, following_id) VALUES ($1, $2, $3)`,
		uuid.New().String(), followerID, followingID); err != nil {
		return false, fmt.Errorf("failed to follow: %w", err)
	}
	return true, nil
}

func (r *EngagementRepositoryImpl) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM user_follows WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow status: %w", err)
	}
	return count > 0, nil
}

// TrackView records the view event and bumps the denormalized counter.
func (r *EngagementRepositoryImpl) TrackView(ctx context.Context, postID string, userID *string) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO post_analytics (event_id, post_id, user_id, event_type) VALUES ($1, $2, $3, 'view')`,
		uuid.New().String(), postID, userID); err != nil {
		return fmt.Errorf("failed to record view event: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE posts SET view_count = view_count + 1 WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to bump view count: %w", err)
	}
	return nil
}
