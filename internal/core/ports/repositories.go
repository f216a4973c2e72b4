package ports

import (
	"context"
	"time"

	"offline-voucher-sync/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside transaction blocks; the ForUpdate
// variants take the row lock that serializes concurrent balance checks.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	CreateTx(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Wallet, error)
	GetByOwnerAndType(ctx context.Context, ownerID uuid.UUID, walletType domain.WalletType, currency string) (*domain.Wallet, error)
	GetByOwnerAndTypeForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, walletType domain.WalletType, currency string) (*domain.Wallet, error)
	GetByPublicKey(ctx context.Context, publicKey string) (*domain.Wallet, error)
	GetByPublicKeyForUpdate(ctx context.Context, tx pgx.Tx, publicKey string) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error
}

// TransactionRepository defines persistence operations for voucher
// transaction records. The nonce column carries a unique constraint that
// is the durable replay-defense arbiter; inserting a duplicate nonce must
// fail at the database level.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, record *domain.TransactionRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TransactionRecord, error)
	GetByNonce(ctx context.Context, nonce string) (*domain.TransactionRecord, error)
	ListBySenderWallets(ctx context.Context, walletIDs []uuid.UUID, status *domain.TransactionStatus, limit int) ([]domain.TransactionRecord, error)
	// ConfirmFromSynced transitions a record from synced to confirmed,
	// returning false when the record was not in synced state. The
	// conditional update makes double confirmation impossible.
	ConfirmFromSynced(ctx context.Context, tx pgx.Tx, id uuid.UUID, confirmedAt time.Time) (bool, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
