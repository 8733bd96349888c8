package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sudha-chandrann/settleupbackend/internal/domain"
)

// ExpenseRepository is the persistence contract for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense domain.Expense) error
	ListByGroup(ctx context.Context, groupID string) ([]domain.Expense, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Expense, error)
}

// PgExpenseRepository implements ExpenseRepository on pgxpool.
type PgExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewPgExpenseRepository(pool *pgxpool.Pool) *PgExpenseRepository {
	return &PgExpenseRepository{pool: pool}
}

func (r *PgExpenseRepository) Create(ctx context.Context, expense domain.Expense) error {
	const query = `
		INSERT INTO expenses (id, title, amount, paid_by_id, shared_with, group_id, split_type, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.Title,
		expense.Amount,
		expense.PaidByID,
		expense.SharedWith,
		expense.GroupID,
		expense.SplitType,
		expense.Notes,
		expense.CreatedAt,
	)
	return err
}

func (r *PgExpenseRepository) ListByGroup(ctx context.Context, groupID string) ([]domain.Expense, error) {
	const query = expenseSelect + ` WHERE group_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, groupID)
}

func (r *PgExpenseRepository) ListByUser(ctx context.Context, userID string) ([]domain.Expense, error) {
	const query = expenseSelect + ` WHERE paid_by_id = $1 OR $1 = ANY(shared_with) ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *PgExpenseRepository) list(ctx context.Context, query string, arg any) ([]domain.Expense, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

const expenseSelect = `
	SELECT id, title, amount, paid_by_id, shared_with, group_id, split_type, COALESCE(notes, ''), created_at, updated_at
	FROM expenses`

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Amount,
		&e.PaidByID,
		&e.SharedWith,
		&e.GroupID,
		&e.SplitType,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return domain.Expense{}, err
	}
	return e, nil
}
