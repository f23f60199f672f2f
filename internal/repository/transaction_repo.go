package repository

import (
	"context"

	"pixel_plaza/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create appends an audit transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, amount, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		tx.UserID, tx.Type, tx.Amount, tx.Description,
	).Scan(&tx.ID, &tx.CreatedAt)
}

// CreateWithTx appends an audit transaction inside an existing db transaction.
func (r *TransactionRepository) CreateWithTx(ctx context.Context, dbTx pgx.Tx, tx *domain.Transaction) error {
	return dbTx.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, amount, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		tx.UserID, tx.Type, tx.Amount, tx.Description,
	).Scan(&tx.ID, &tx.CreatedAt)
}

// GetByUserID returns recent transactions for a user, newest first.
func (r *TransactionRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, amount, description, created_at
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Description, &tx.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &tx)
	}
	return result, rows.Err()
}
