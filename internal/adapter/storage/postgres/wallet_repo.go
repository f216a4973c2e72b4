package postgres

import (
	"context"
	"errors"
	"fmt"

	"offline-voucher-sync/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const walletColumns = `id, owner_id, wallet_type, currency, balance, public_key, max_balance, active, created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet into the database.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, owner_id, wallet_type, currency, balance, public_key, max_balance, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.OwnerID, w.Type, w.Currency, w.Balance,
		w.PublicKey, w.MaxBalance, w.Active, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// CreateTx inserts a new wallet within an existing database transaction.
func (r *WalletRepo) CreateTx(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, owner_id, wallet_type, currency, balance, public_key, max_balance, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		w.ID, w.OwnerID, w.Type, w.Currency, w.Balance,
		w.PublicKey, w.MaxBalance, w.Active, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet in tx: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`
	return scanWallet(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate fetches a wallet by ID with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`
	return scanWallet(tx.QueryRow(ctx, query, id))
}

// GetByOwner fetches every wallet belonging to an owner.
func (r *WalletRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE owner_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list wallets by owner: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		var w domain.Wallet
		if err := rows.Scan(
			&w.ID, &w.OwnerID, &w.Type, &w.Currency, &w.Balance,
			&w.PublicKey, &w.MaxBalance, &w.Active, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet rows: %w", err)
	}
	return wallets, nil
}

// GetByOwnerAndType fetches the owner's wallet of the given type and
// currency (non-locking read).
func (r *WalletRepo) GetByOwnerAndType(ctx context.Context, ownerID uuid.UUID, walletType domain.WalletType, currency string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE owner_id = $1 AND wallet_type = $2 AND currency = $3`
	return scanWallet(r.pool.QueryRow(ctx, query, ownerID, walletType, currency))
}

// GetByOwnerAndTypeForUpdate fetches the owner's wallet of the given type
// and currency with pessimistic locking. This MUST be called within a
// transaction.
func (r *WalletRepo) GetByOwnerAndTypeForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, walletType domain.WalletType, currency string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE owner_id = $1 AND wallet_type = $2 AND currency = $3 FOR UPDATE`
	return scanWallet(tx.QueryRow(ctx, query, ownerID, walletType, currency))
}

// GetByPublicKey fetches the wallet registered under a signing public key
// (non-locking read).
func (r *WalletRepo) GetByPublicKey(ctx context.Context, publicKey string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE public_key = $1`
	return scanWallet(r.pool.QueryRow(ctx, query, publicKey))
}

// GetByPublicKeyForUpdate fetches the wallet registered under a signing
// public key with pessimistic locking. This MUST be called within a
// transaction.
func (r *WalletRepo) GetByPublicKeyForUpdate(ctx context.Context, tx pgx.Tx, publicKey string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE public_key = $1 FOR UPDATE`
	return scanWallet(tx.QueryRow(ctx, query, publicKey))
}

// UpdateBalance updates a wallet's balance within a transaction.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE wallets SET balance = $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, balance, walletID)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

// scanWallet is a helper to scan a single row into a Wallet.
func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.OwnerID, &w.Type, &w.Currency, &w.Balance,
		&w.PublicKey, &w.MaxBalance, &w.Active, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return w, nil
}
