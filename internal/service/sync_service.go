package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"offline-voucher-sync/internal/core/domain"
	"offline-voucher-sync/internal/core/ports"
	"offline-voucher-sync/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const pgUniqueViolation = "23505"

// SyncServiceImpl implements ports.SyncService: it reconciles batches of
// offline-signed vouchers against the ledger of record. Each voucher is
// processed independently in its own database transaction; one bad item
// never poisons its siblings.
type SyncServiceImpl struct {
	txRepo      ports.TransactionRepository
	walletRepo  ports.WalletRepository
	transactor  ports.DBTransactor
	replayGuard ports.ReplayGuard
	ledger      ports.LedgerService
	crypto      ports.CryptoService
	receipts    ports.ReceiptService
	log         zerolog.Logger

	maxAge       time.Duration
	syncMaxAge   time.Duration
	maxBatchSize int
}

// NewSyncService creates a new SyncServiceImpl. maxAge bounds voucher
// freshness on direct submissions; syncMaxAge on batch sync, where
// vouchers created offline can legitimately be much older.
func NewSyncService(
	txRepo ports.TransactionRepository,
	walletRepo ports.WalletRepository,
	transactor ports.DBTransactor,
	replayGuard ports.ReplayGuard,
	ledger ports.LedgerService,
	crypto ports.CryptoService,
	receipts ports.ReceiptService,
	maxAge time.Duration,
	syncMaxAge time.Duration,
	maxBatchSize int,
	log zerolog.Logger,
) *SyncServiceImpl {
	return &SyncServiceImpl{
		txRepo:       txRepo,
		walletRepo:   walletRepo,
		transactor:   transactor,
		replayGuard:  replayGuard,
		ledger:       ledger,
		crypto:       crypto,
		receipts:     receipts,
		log:          log,
		maxAge:       maxAge,
		syncMaxAge:   syncMaxAge,
		maxBatchSize: maxBatchSize,
	}
}

// ProcessSyncBatch runs every item through the reconciliation pipeline
// in submission order and returns one result per item. Only an oversized
// batch is rejected wholesale; item failures are itemized, never fatal.
func (s *SyncServiceImpl) ProcessSyncBatch(ctx context.Context, callerID uuid.UUID, items []ports.SyncItem) (*ports.BatchResult, error) {
	if len(items) > s.maxBatchSize {
		return nil, apperror.ErrBatchTooLarge(s.maxBatchSize)
	}

	result := &ports.BatchResult{Results: make([]ports.ItemResult, 0, len(items))}
	for i, item := range items {
		r := s.processItem(ctx, callerID, i, item, s.syncMaxAge)
		switch r.Result {
		case ports.ItemSynced:
			result.TotalSynced++
		case ports.ItemRolledBack:
			result.TotalRolledBack++
		default:
			result.TotalFailed++
		}
		result.Results = append(result.Results, r)
	}

	s.log.Info().
		Str("caller_id", callerID.String()).
		Int("total", len(items)).
		Int("synced", result.TotalSynced).
		Int("failed", result.TotalFailed).
		Int("rolled_back", result.TotalRolledBack).
		Msg("sync batch processed")
	return result, nil
}

// SubmitVoucher reconciles a single voucher outside a batch. Direct
// submissions are expected promptly after signing, so the tighter
// freshness window applies; the outcome keeps the itemized shape.
func (s *SyncServiceImpl) SubmitVoucher(ctx context.Context, callerID uuid.UUID, item ports.SyncItem) (*ports.ItemResult, error) {
	r := s.processItem(ctx, callerID, 0, item, s.maxAge)

	s.log.Info().
		Str("caller_id", callerID.String()).
		Str("reference", r.Reference).
		Str("result", string(r.Result)).
		Msg("voucher submitted")
	return &r, nil
}

// processItem drives one voucher through the pipeline. A panic anywhere
// inside becomes a failed item so the rest of the batch still runs.
func (s *SyncServiceImpl) processItem(ctx context.Context, callerID uuid.UUID, index int, item ports.SyncItem, maxAge time.Duration) (result ports.ItemResult) {
	result.Reference = itemReference(index, item)

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Str("reference", result.Reference).
				Interface("panic", r).
				Msg("voucher processing panicked")
			result = failedResult(result.Reference, "INTERNAL_ERROR")
		}
	}()

	// Replay defense: fields, signature presence, nonce, freshness.
	if err := s.replayGuard.Validate(ctx, item.Draft, item.Signature, maxAge); err != nil {
		return failedResult(result.Reference, apperror.CodeOf(err))
	}

	// Sender wallet must exist, belong to the caller, and be an offline
	// wallet. Ownership mismatches read as not-found on purpose.
	wallet, err := s.walletRepo.GetByID(ctx, item.Draft.SenderWalletID)
	if err != nil {
		return failedResult(result.Reference, apperror.CodeOf(apperror.ErrPersistence(err)))
	}
	if wallet == nil || wallet.OwnerID != callerID || !wallet.IsOffline() {
		return failedResult(result.Reference, apperror.CodeOf(apperror.ErrWalletNotFound()))
	}

	// The voucher must carry a valid signature from the wallet's key
	// before any balance moves.
	if wallet.PublicKey == nil || !s.crypto.VerifyDraft(item.Draft, item.Signature, *wallet.PublicKey) {
		return failedResult(result.Reference, apperror.CodeOf(apperror.ErrInvalidSignature()))
	}

	amount, err := decimal.NewFromString(item.Draft.Amount)
	if err != nil {
		return failedResult(result.Reference, apperror.CodeOf(apperror.ErrInvalidAmount()))
	}
	if !amount.IsPositive() {
		return failedResult(result.Reference, apperror.CodeOf(apperror.ErrAmountNotPositive()))
	}

	record, failCode, rolledBack := s.commitVoucher(ctx, item, wallet, amount)
	if rolledBack {
		reason := "COMMIT_FAILED"
		return ports.ItemResult{Reference: result.Reference, Result: ports.ItemRolledBack, ErrorReason: &reason}
	}
	if failCode != "" {
		return failedResult(result.Reference, failCode)
	}

	// Cache the nonce only after the durable commit: a failed voucher
	// must remain resubmittable.
	s.replayGuard.MarkAccepted(ctx, item.Draft.Nonce, maxAge)

	return ports.ItemResult{
		Reference:     result.Reference,
		Result:        ports.ItemSynced,
		TransactionID: &record.ID,
	}
}

// commitVoucher applies one voucher atomically: deduct the sender,
// persist the record, credit the receiver's offline wallet when one is
// registered here. On success failCode is empty; rolledBack marks the
// one case where the work was attempted and then undone by the commit.
func (s *SyncServiceImpl) commitVoucher(ctx context.Context, item ports.SyncItem, wallet *domain.Wallet, amount decimal.Decimal) (record *domain.TransactionRecord, failCode string, rolledBack bool) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.CodeOf(apperror.ErrPersistence(err)), false
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if _, err := s.ledger.Deduct(ctx, dbTx, wallet.ID, amount); err != nil {
		return nil, apperror.CodeOf(err), false
	}

	record, err = s.buildRecord(item, amount)
	if err != nil {
		return nil, apperror.CodeOf(apperror.InternalError(err)), false
	}
	if err := s.txRepo.Create(ctx, dbTx, record); err != nil {
		// The unique index on nonce is the durable replay arbiter; a
		// concurrent duplicate surfaces here even after the guard passed.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.CodeOf(apperror.ErrDuplicateNonce()), false
		}
		return nil, apperror.CodeOf(apperror.ErrPersistence(err)), false
	}

	if _, err := s.ledger.CreditByPublicKey(ctx, dbTx, item.Draft.ReceiverPublicKey, amount); err != nil {
		return nil, apperror.CodeOf(err), false
	}

	if err := dbTx.Commit(ctx); err != nil {
		s.log.Error().Err(err).Str("nonce", item.Draft.Nonce).Msg("voucher commit failed")
		return nil, "", true
	}
	return record, "", false
}

// buildRecord constructs the persisted form of an accepted voucher. The
// client's receipt is kept when supplied; otherwise the canonical receipt
// is rebuilt server-side so every record carries a hash.
func (s *SyncServiceImpl) buildRecord(item ports.SyncItem, amount decimal.Decimal) (*domain.TransactionRecord, error) {
	receipt := item.Receipt
	if receipt == nil {
		built, err := s.receipts.Build(item.Draft, item.Signature)
		if err != nil {
			return nil, fmt.Errorf("build receipt: %w", err)
		}
		receipt = built
	}
	payload, err := json.Marshal(receipt)
	if err != nil {
		return nil, fmt.Errorf("marshal receipt: %w", err)
	}

	deviceTime, err := item.Draft.DeviceTime()
	if err != nil {
		return nil, fmt.Errorf("parse device time: %w", err)
	}

	now := time.Now().UTC()
	return &domain.TransactionRecord{
		ID:                uuid.New(),
		SenderWalletID:    item.Draft.SenderWalletID,
		ReceiverPublicKey: item.Draft.ReceiverPublicKey,
		Amount:            amount,
		Currency:          item.Draft.Currency,
		Signature:         item.Signature,
		Nonce:             item.Draft.Nonce,
		ReceiptHash:       receipt.ReceiptHash,
		ReceiptPayload:    payload,
		Status:            domain.TransactionStatusSynced,
		DeviceTimestamp:   deviceTime,
		DeviceFingerprint: item.DeviceFingerprint,
		SyncedAt:          now,
		CreatedAt:         now,
	}, nil
}

// Confirm settles a synced voucher: only the original sender may confirm,
// only once, and settlement credits the receiver's custodial wallet in
// the same transaction that flips the status.
func (s *SyncServiceImpl) Confirm(ctx context.Context, callerID uuid.UUID, transactionID uuid.UUID) (*ports.ConfirmResult, error) {
	record, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	if record == nil {
		return nil, apperror.ErrNotFound("transaction")
	}

	senderWallet, err := s.walletRepo.GetByID(ctx, record.SenderWalletID)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	if senderWallet == nil || senderWallet.OwnerID != callerID {
		return nil, apperror.ErrUnauthorized()
	}
	if !record.CanConfirm() {
		return nil, apperror.ErrCannotConfirm(string(record.Status))
	}

	// Settlement needs a registered receiver. An unknown public key is
	// not a terminal state for the record: it stays synced so the
	// confirm can be retried once the receiver registers.
	receiverWallet, err := s.walletRepo.GetByPublicKey(ctx, record.ReceiverPublicKey)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	if receiverWallet == nil {
		return nil, apperror.ErrNotFound("receiver wallet")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	confirmedAt := time.Now().UTC()
	flipped, err := s.txRepo.ConfirmFromSynced(ctx, dbTx, record.ID, confirmedAt)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	if !flipped {
		// Lost the race with a concurrent confirm.
		return nil, apperror.ErrCannotConfirm(string(domain.TransactionStatusConfirmed))
	}

	// Settlement: the receiver wallet's owner gets custodial funds in
	// the same transaction that flips the status.
	credited, err := s.ledger.CreditCustodial(ctx, dbTx, receiverWallet.OwnerID, record.Currency, record.Amount)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrPersistence(err)
	}

	s.log.Info().
		Str("transaction_id", record.ID.String()).
		Str("amount", record.Amount.StringFixed(2)).
		Msg("voucher confirmed")

	return &ports.ConfirmResult{
		TransactionID:   record.ID,
		Amount:          record.Amount,
		ReceiverBalance: credited.Balance,
		Status:          string(domain.TransactionStatusConfirmed),
	}, nil
}

// PrepareDraft builds an unsigned voucher draft server-side for thin
// clients: ownership and balance are validated and a fresh nonce issued.
// The device still signs locally; the private key never reaches us.
func (s *SyncServiceImpl) PrepareDraft(ctx context.Context, req ports.PrepareDraftRequest) (*domain.VoucherDraft, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrAmountNotPositive()
	}
	if req.ReceiverPublicKey == "" {
		return nil, apperror.ErrMissingFields([]string{"receiver_public_key"})
	}

	wallet, err := s.walletRepo.GetByID(ctx, req.SenderWalletID)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	if wallet == nil || wallet.OwnerID != req.CallerID || !wallet.IsOffline() {
		return nil, apperror.ErrWalletNotFound()
	}
	if !wallet.Active {
		return nil, apperror.ErrWalletInactive()
	}
	if wallet.Balance.LessThan(req.Amount) {
		return nil, apperror.ErrInsufficientBalance(req.Amount.Sub(wallet.Balance))
	}

	nonce, err := s.crypto.Nonce()
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	return &domain.VoucherDraft{
		SenderWalletID:    wallet.ID,
		ReceiverPublicKey: req.ReceiverPublicKey,
		Amount:            req.Amount.StringFixed(2),
		Currency:          req.Currency,
		Nonce:             nonce,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ListTransactions returns the caller's voucher history, newest first.
func (s *SyncServiceImpl) ListTransactions(ctx context.Context, callerID uuid.UUID, status *domain.TransactionStatus, limit int) ([]domain.TransactionRecord, error) {
	wallets, err := s.walletRepo.GetByOwner(ctx, callerID)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	ids := make([]uuid.UUID, 0, len(wallets))
	for _, w := range wallets {
		ids = append(ids, w.ID)
	}
	if len(ids) == 0 {
		return []domain.TransactionRecord{}, nil
	}

	records, err := s.txRepo.ListBySenderWallets(ctx, ids, status, limit)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	return records, nil
}

func itemReference(index int, item ports.SyncItem) string {
	if item.Draft.Nonce != "" {
		return item.Draft.Nonce
	}
	return fmt.Sprintf("item-%d", index)
}

func failedResult(reference, code string) ports.ItemResult {
	return ports.ItemResult{
		Reference:   reference,
		Result:      ports.ItemFailed,
		ErrorReason: &code,
	}
}
