package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudha-chandrann/settleupbackend/internal/domain"
)

// TransactionRepository is the persistence contract for settlements.
type TransactionRepository interface {
	Create(ctx context.Context, tx domain.Transaction) error
	GetByID(ctx context.Context, id string) (domain.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error)
	MarkSettled(ctx context.Context, id string) error
}

// PgTransactionRepository implements TransactionRepository on pgxpool.
type PgTransactionRepository struct {
	pool *pgxpool.Pool
}

func NewPgTransactionRepository(pool *pgxpool.Pool) *PgTransactionRepository {
	return &PgTransactionRepository{pool: pool}
}

func (r *PgTransactionRepository) Create(ctx context.Context, tx domain.Transaction) error {
	const query = `
		INSERT INTO transactions (id, from_id, to_id, amount, group_id, status, method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		tx.ID,
		tx.FromID,
		tx.ToID,
		tx.Amount,
		tx.GroupID,
		tx.Status,
		tx.Method,
		tx.CreatedAt,
	)
	return err
}

func (r *PgTransactionRepository) GetByID(ctx context.Context, id string) (domain.Transaction, error) {
	const query = transactionSelect + ` WHERE id = $1`
	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

func (r *PgTransactionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	const query = transactionSelect + ` WHERE from_id = $1 OR to_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (r *PgTransactionRepository) MarkSettled(ctx context.Context, id string) error {
	const query = `
		UPDATE transactions
		SET status = 'settled', updated_at = now()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const transactionSelect = `
	SELECT id, from_id, to_id, amount, group_id, status, method, created_at, updated_at
	FROM transactions`

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.ID,
		&t.FromID,
		&t.ToID,
		&t.Amount,
		&t.GroupID,
		&t.Status,
		&t.Method,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return t, nil
}
