package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"offline-voucher-sync/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, sender_wallet_id, receiver_public_key, amount, currency, signature, nonce,
	receipt_hash, receipt_payload, status, device_timestamp, device_fingerprint, synced_at, confirmed_at, created_at`

// TransactionRepo implements ports.TransactionRepository. The nonce
// column carries a UNIQUE constraint; it is the durable replay arbiter.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts an accepted voucher record within a database
// transaction. A duplicate nonce fails here with a unique violation.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.TransactionRecord) error {
	query := `INSERT INTO transactions (id, sender_wallet_id, receiver_public_key, amount, currency, signature, nonce,
		receipt_hash, receipt_payload, status, device_timestamp, device_fingerprint, synced_at, confirmed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.SenderWalletID, t.ReceiverPublicKey, t.Amount, t.Currency,
		t.Signature, t.Nonce, t.ReceiptHash, t.ReceiptPayload, t.Status,
		t.DeviceTimestamp, t.DeviceFingerprint, t.SyncedAt, t.ConfirmedAt, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction record by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TransactionRecord, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByNonce fetches a transaction record by voucher nonce.
func (r *TransactionRepo) GetByNonce(ctx context.Context, nonce string) (*domain.TransactionRecord, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE nonce = $1`
	return scanTransaction(r.pool.QueryRow(ctx, query, nonce))
}

// ListBySenderWallets fetches records sent from any of the given wallets,
// newest first, optionally filtered by status.
func (r *TransactionRepo) ListBySenderWallets(ctx context.Context, walletIDs []uuid.UUID, status *domain.TransactionStatus, limit int) ([]domain.TransactionRecord, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE sender_wallet_id = ANY($1)`
	args := []any{walletIDs}
	argIdx := 2

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *status)
		argIdx++
	}
	query += fmt.Sprintf(" ORDER BY synced_at DESC LIMIT $%d", argIdx)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var records []domain.TransactionRecord
	for rows.Next() {
		var t domain.TransactionRecord
		if err := rows.Scan(
			&t.ID, &t.SenderWalletID, &t.ReceiverPublicKey, &t.Amount, &t.Currency,
			&t.Signature, &t.Nonce, &t.ReceiptHash, &t.ReceiptPayload, &t.Status,
			&t.DeviceTimestamp, &t.DeviceFingerprint, &t.SyncedAt, &t.ConfirmedAt, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		records = append(records, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return records, nil
}

// ConfirmFromSynced transitions a record from synced to confirmed inside
// a database transaction. The status predicate makes the update
// conditional: zero affected rows means the record was not in synced
// state, so a second confirm can never apply twice.
func (r *TransactionRepo) ConfirmFromSynced(ctx context.Context, tx pgx.Tx, id uuid.UUID, confirmedAt time.Time) (bool, error) {
	query := `UPDATE transactions SET status = $1, confirmed_at = $2 WHERE id = $3 AND status = $4`

	tag, err := tx.Exec(ctx, query,
		domain.TransactionStatusConfirmed, confirmedAt, id, domain.TransactionStatusSynced,
	)
	if err != nil {
		return false, fmt.Errorf("confirm transaction: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanTransaction is a helper to scan a single row into a TransactionRecord.
func scanTransaction(row pgx.Row) (*domain.TransactionRecord, error) {
	t := &domain.TransactionRecord{}
	err := row.Scan(
		&t.ID, &t.SenderWalletID, &t.ReceiverPublicKey, &t.Amount, &t.Currency,
		&t.Signature, &t.Nonce, &t.ReceiptHash, &t.ReceiptPayload, &t.Status,
		&t.DeviceTimestamp, &t.DeviceFingerprint, &t.SyncedAt, &t.ConfirmedAt, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
