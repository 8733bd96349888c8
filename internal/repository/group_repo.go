package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudha-chandrann/settleupbackend/internal/domain"
)

// GroupRepository is the persistence contract for groups.
type GroupRepository interface {
	Create(ctx context.Context, group domain.Group) error
	GetByID(ctx context.Context, id string) (domain.Group, error)
	GetByNameAndMember(ctx context.Context, name, memberID string) (domain.Group, error)
	ListByMember(ctx context.Context, memberID string) ([]domain.Group, error)
}

// PgGroupRepository implements GroupRepository on pgxpool.
type PgGroupRepository struct {
	pool *pgxpool.Pool
}

func NewPgGroupRepository(pool *pgxpool.Pool) *PgGroupRepository {
	return &PgGroupRepository{pool: pool}
}

func (r *PgGroupRepository) Create(ctx context.Context, group domain.Group) error {
	const query = `
		INSERT INTO groups (id, name, description, icon, creator_id, member_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		group.ID,
		group.Name,
		group.Description,
		group.Icon,
		group.CreatorID,
		group.MemberIDs,
		group.CreatedAt,
	)
	return err
}

func (r *PgGroupRepository) GetByID(ctx context.Context, id string) (domain.Group, error) {
	const query = groupSelect + ` WHERE id = $1`
	return scanGroup(r.pool.QueryRow(ctx, query, id))
}

func (r *PgGroupRepository) GetByNameAndMember(ctx context.Context, name, memberID string) (domain.Group, error) {
	const query = groupSelect + ` WHERE name = $1 AND $2 = ANY(member_ids)`
	return scanGroup(r.pool.QueryRow(ctx, query, name, memberID))
}

func (r *PgGroupRepository) ListByMember(ctx context.Context, memberID string) ([]domain.Group, error) {
	const query = groupSelect + ` WHERE $1 = ANY(member_ids) ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

const groupSelect = `
	SELECT id, name, COALESCE(description, ''), icon, creator_id, member_ids, created_at, updated_at
	FROM groups`

func scanGroup(row pgx.Row) (domain.Group, error) {
	var g domain.Group
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.Icon,
		&g.CreatorID,
		&g.MemberIDs,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return domain.Group{}, err
	}
	return g, nil
}
