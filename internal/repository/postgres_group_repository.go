package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emanuelbartolo/BoardGameApp/internal/domain"
	"github.com/emanuelbartolo/BoardGameApp/pkg/database"
)

// PostgresGroupRepository implements GroupRepository using PostgreSQL
type PostgresGroupRepository struct {
	db *database.PostgresDB
}

// NewPostgresGroupRepository creates a new PostgreSQL group repository
func NewPostgresGroupRepository(db *database.PostgresDB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

// Create creates a new group
func (r *PostgresGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	query := `
		INSERT INTO groups (id, name, join_code, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Pool().Exec(ctx, query,
		group.ID, group.Name, group.JoinCode, group.CreatedBy, group.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: group %s", domain.ErrAlreadyExists, group.ID)
		}
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// GetByID retrieves a group by ID
func (r *PostgresGroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	query := `
		SELECT id, name, join_code, created_by, created_at
		FROM groups
		WHERE id = $1
	`
	group := &domain.Group{}
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&group.ID, &group.Name, &group.JoinCode, &group.CreatedBy, &group.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// GetByJoinCode retrieves a group by its join code
func (r *PostgresGroupRepository) GetByJoinCode(ctx context.Context, code string) (*domain.Group, error) {
	query := `
		SELECT id, name, join_code, created_by, created_at
		FROM groups
		WHERE join_code = $1
	`
	group := &domain.Group{}
	err := r.db.Pool().QueryRow(ctx, query, code).Scan(
		&group.ID, &group.Name, &group.JoinCode, &group.CreatedBy, &group.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group by join code: %w", err)
	}
	return group, nil
}

// List retrieves all groups ordered by name
func (r *PostgresGroupRepository) List(ctx context.Context) ([]*domain.Group, error) {
	query := `
		SELECT id, name, join_code, created_by, created_at
		FROM groups
		ORDER BY name
	`
	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*domain.Group
	for rows.Next() {
		group := &domain.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.JoinCode, &group.CreatedBy, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// Delete removes a group. Memberships, shortlist entries, events and polls
// cascade at the schema level.
func (r *PostgresGroupRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: group %s", domain.ErrNotFound, id)
	}
	return nil
}

// AddMember adds a membership record, ignoring duplicates
func (r *PostgresGroupRepository) AddMember(ctx context.Context, member *domain.Member) error {
	query := `
		INSERT INTO group_members (group_id, username, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, username) DO NOTHING
	`
	_, err := r.db.Pool().Exec(ctx, query, member.GroupID, member.Username, member.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember deletes a membership record if present
func (r *PostgresGroupRepository) RemoveMember(ctx context.Context, groupID, username string) error {
	query := `DELETE FROM group_members WHERE group_id = $1 AND username = $2`
	_, err := r.db.Pool().Exec(ctx, query, groupID, username)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// ListMembers retrieves all members of a group ordered by username
func (r *PostgresGroupRepository) ListMembers(ctx context.Context, groupID string) ([]*domain.Member, error) {
	query := `
		SELECT group_id, username, joined_at
		FROM group_members
		WHERE group_id = $1
		ORDER BY username
	`
	rows, err := r.db.Pool().Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		member := &domain.Member{}
		if err := rows.Scan(&member.GroupID, &member.Username, &member.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

// ListGroupsByUsername retrieves every group the user belongs to
func (r *PostgresGroupRepository) ListGroupsByUsername(ctx context.Context, username string) ([]domain.GroupRef, error) {
	query := `
		SELECT g.id, g.name
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.username = $1
		ORDER BY g.name
	`
	rows, err := r.db.Pool().Query(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for user: %w", err)
	}
	defer rows.Close()

	var refs []domain.GroupRef
	for rows.Next() {
		var ref domain.GroupRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan group ref: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// IsMember reports whether the user is a member of the group
func (r *PostgresGroupRepository) IsMember(ctx context.Context, groupID, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND username = $2)`
	var exists bool
	if err := r.db.Pool().QueryRow(ctx, query, groupID, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}
