package ports

import (
	"context"
	"time"

	"offline-voucher-sync/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CryptoService handles the voucher signing contract: RSA-2048 key pairs,
// key-sorted canonical serialization, RSA-PSS/SHA-256 signatures, secure
// nonces, and canonical object hashing.
type CryptoService interface {
	GenerateKeyPair() (publicPEM string, privatePEM string, err error)
	Canonicalize(fields map[string]any) ([]byte, error)
	SignDraft(draft domain.VoucherDraft, privatePEM string) (string, error)
	// VerifyDraft is total: malformed keys, malformed signatures, or any
	// internal error resolve to false, never an error or panic.
	VerifyDraft(draft domain.VoucherDraft, signatureB64 string, publicPEM string) bool
	Nonce() (string, error)
	HashObject(fields map[string]any) (string, error)
}

// NonceCache is the bounded fast-path replay filter. It is never the
// source of truth: entries expire and do not survive restarts; the
// durable nonce uniqueness constraint is authoritative.
type NonceCache interface {
	Seen(ctx context.Context, nonce string) (bool, error)
	MarkSeen(ctx context.Context, nonce string, ttl time.Duration) error
}

// ReplayGuard validates a voucher against replay before any mutation.
// Checks run in fixed order for deterministic error codes: field
// completeness, signature presence, durable nonce uniqueness, timestamp
// freshness within [-1m, +maxAge].
type ReplayGuard interface {
	Validate(ctx context.Context, draft domain.VoucherDraft, signature string, maxAge time.Duration) error
	// MarkAccepted records an accepted nonce in the fast-path cache.
	MarkAccepted(ctx context.Context, nonce string, maxAge time.Duration)
}

// LedgerService performs double-spend-safe balance mutation. Deduct and
// the credit variants run inside a caller-owned database transaction and
// take the wallet row lock across the balance check and the mutation.
type LedgerService interface {
	Deduct(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, amount decimal.Decimal) (*domain.Wallet, error)
	CreditWallet(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, amount decimal.Decimal) (*domain.Wallet, error)
	// CreditByPublicKey credits the offline wallet matching the claimed
	// receiver public key if one exists. found=false is not an error.
	CreditByPublicKey(ctx context.Context, tx pgx.Tx, publicKey string, amount decimal.Decimal) (found bool, err error)
	// CreditCustodial credits the owner's custodial wallet for the given
	// currency, auto-provisioning a zero-balance wallet when absent.
	CreditCustodial(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, currency string, amount decimal.Decimal) (*domain.Wallet, error)
	RequestTopUp(ctx context.Context, req TopUpRequest) (*TopUpIntent, error)
	ConfirmTopUp(ctx context.Context, callerID uuid.UUID, reference uuid.UUID) (*TopUpResult, error)
}

// TopUpRequest asks to move funds from the caller's custodial wallet into
// their offline wallet.
type TopUpRequest struct {
	CallerID uuid.UUID
	Amount   decimal.Decimal
	Currency string
}

// TopUpIntent is the validated first phase of a top-up. The offline
// maximum resting balance was checked; it is checked again at confirm
// time because the balance may have moved in between.
type TopUpIntent struct {
	Reference uuid.UUID
	Amount    decimal.Decimal
	Currency  string
	ExpiresAt time.Time
}

// TopUpResult is the applied second phase of a top-up.
type TopUpResult struct {
	OfflineWalletID uuid.UUID
	NewBalance      decimal.Decimal
}

// SyncItem is one submitted voucher in a sync batch.
type SyncItem struct {
	Draft             domain.VoucherDraft
	Signature         string
	Receipt           *domain.Receipt
	DeviceFingerprint *string
}

// ItemOutcome is the per-voucher result state. RolledBack is distinct
// from Failed so clients can tell "never attempted" from "attempted then
// rolled back by a commit failure".
type ItemOutcome string

const (
	ItemSynced     ItemOutcome = "synced"
	ItemFailed     ItemOutcome = "failed"
	ItemRolledBack ItemOutcome = "rolled_back"
)

// ItemResult reports the outcome for one batch item, in submission order.
type ItemResult struct {
	Reference     string      `json:"reference"`
	Result        ItemOutcome `json:"result"`
	ErrorReason   *string     `json:"error_reason"`
	TransactionID *uuid.UUID  `json:"transaction_id"`
}

// BatchResult is the itemized outcome of one sync batch.
type BatchResult struct {
	Results         []ItemResult `json:"results"`
	TotalSynced     int          `json:"total_synced"`
	TotalFailed     int          `json:"total_failed"`
	TotalRolledBack int          `json:"total_rolled_back"`
}

// ConfirmResult reports a completed settlement.
type ConfirmResult struct {
	TransactionID   uuid.UUID       `json:"transaction_id"`
	Amount          decimal.Decimal `json:"amount"`
	ReceiverBalance decimal.Decimal `json:"receiver_balance"`
	Status          string          `json:"status"`
}

// PrepareDraftRequest is the server-assisted draft-building input for
// thin clients: the server validates ownership and local balance and
// returns a draft with a fresh nonce for the device to sign.
type PrepareDraftRequest struct {
	CallerID          uuid.UUID
	SenderWalletID    uuid.UUID
	ReceiverPublicKey string
	Amount            decimal.Decimal
	Currency          string
}

// SyncService drives submitted vouchers through validation, replay
// defense, ledger mutation, and persistence, independently per item.
type SyncService interface {
	ProcessSyncBatch(ctx context.Context, callerID uuid.UUID, items []SyncItem) (*BatchResult, error)
	// SubmitVoucher handles a single direct submission under the strict
	// freshness window.
	SubmitVoucher(ctx context.Context, callerID uuid.UUID, item SyncItem) (*ItemResult, error)
	Confirm(ctx context.Context, callerID uuid.UUID, transactionID uuid.UUID) (*ConfirmResult, error)
	PrepareDraft(ctx context.Context, req PrepareDraftRequest) (*domain.VoucherDraft, error)
	ListTransactions(ctx context.Context, callerID uuid.UUID, status *domain.TransactionStatus, limit int) ([]domain.TransactionRecord, error)
}

// ReceiptVerification reports the two independent offline checks and
// their conjunction.
type ReceiptVerification struct {
	Valid          bool `json:"valid"`
	SignatureValid bool `json:"signature_valid"`
	HashValid      bool `json:"hash_valid"`
}

// ReceiptService builds and verifies tamper-evident receipts.
type ReceiptService interface {
	Build(draft domain.VoucherDraft, signature string) (*domain.Receipt, error)
	// Verify is usable fully offline by a receiver: it recomputes the
	// receipt hash and verifies the embedded signature against the
	// claimed sender public key.
	Verify(receipt domain.Receipt, signature string, senderPublicKey string) ReceiptVerification
}

// TokenService handles JWT operations for caller identity.
type TokenService interface {
	Generate(userID uuid.UUID) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID uuid.UUID
}
