package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"readit/internal/models"
)

type ProfileRepositoryImpl struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepositoryImpl {
	return &ProfileRepositoryImpl{db: db}
}

// ProfilesByIDs returns the profiles for the given user id set in a single
// query. Missing ids are simply absent from the map.
func (r *ProfileRepositoryImpl) ProfilesByIDs(ctx context.Context, userIDs []string) (map[string]models.UserProfile, error) {
	profiles := make(map[string]models.UserProfile)
	if len(userIDs) == 0 {
		return profiles, nil
	}

	query, args, err := sqlx.In(
		`SELECT user_id, username, email, avatar_url, bio, created_at
		 FROM user_profiles WHERE user_id IN (?)`,
		userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build profiles query: %w", err)
	}

	var rows []models.UserProfile
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	for _, row := range rows {
		profiles[row.UserID] = row
	}
	return profiles, nil
}

func (r *ProfileRepositoryImpl) CommunitiesByIDs(ctx context.Context, communityIDs []string) (map[string]models.Community, error) {
	communities := make(map[string]models.Community)
	if len(communityIDs) == 0 {
		return communities, nil
	}

	query, args, err := sqlx.In(
		`SELECT community_id, name, display_name, description, icon_url, member_count, created_at
		 FROM communities WHERE community_id IN (?)`,
		communityIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build communities query: %w", err)
	}

	var rows []models.Community
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get communities: %w", err)
	}

	for _, row := range rows {
		communities[row.CommunityID] = row
	}
	return communities, nil
}
