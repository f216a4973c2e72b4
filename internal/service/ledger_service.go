package service

import (
	"context"
	"sync"
	"time"

	"offline-voucher-sync/internal/core/domain"
	"offline-voucher-sync/internal/core/ports"
	"offline-voucher-sync/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// topUpIntentTTL bounds how long a requested top-up stays confirmable.
const topUpIntentTTL = 10 * time.Minute

type topUpIntent struct {
	callerID  uuid.UUID
	amount    decimal.Decimal
	currency  string
	expiresAt time.Time
}

// LedgerServiceImpl implements ports.LedgerService. All balance mutation
// runs inside a caller-owned database transaction and takes the wallet
// row lock across the check and the write, so two concurrent spends of
// the same balance serialize instead of both passing the check.
type LedgerServiceImpl struct {
	walletRepo ports.WalletRepository
	transactor ports.DBTransactor
	logger     zerolog.Logger

	maxOfflineBalance decimal.Decimal

	mu      sync.Mutex
	intents map[uuid.UUID]topUpIntent
	now     func() time.Time
}

// NewLedgerService creates the ledger service. maxOfflineBalance is the
// default maximum resting balance for offline wallets without a
// per-wallet override.
func NewLedgerService(
	walletRepo ports.WalletRepository,
	transactor ports.DBTransactor,
	maxOfflineBalance decimal.Decimal,
	logger zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		walletRepo:        walletRepo,
		transactor:        transactor,
		logger:            logger.With().Str("component", "ledger_service").Logger(),
		maxOfflineBalance: maxOfflineBalance,
		intents:           make(map[uuid.UUID]topUpIntent),
		now:               time.Now,
	}
}

// Deduct subtracts amount from the wallet's balance under the row lock.
// The wallet must exist, be active, and hold at least amount.
func (s *LedgerServiceImpl) Deduct(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, amount decimal.Decimal) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, tx, walletID)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	if !wallet.Active {
		return nil, apperror.ErrWalletInactive()
	}
	if wallet.Balance.LessThan(amount) {
		return nil, apperror.ErrInsufficientBalance(amount.Sub(wallet.Balance))
	}

	wallet.Balance = wallet.Balance.Sub(amount)
	if err := s.walletRepo.UpdateBalance(ctx, tx, wallet.ID, wallet.Balance); err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	return wallet, nil
}

// CreditWallet adds amount to the wallet's balance under the row lock.
func (s *LedgerServiceImpl) CreditWallet(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, amount decimal.Decimal) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, tx, walletID)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	wallet.Balance = wallet.Balance.Add(amount)
	if err := s.walletRepo.UpdateBalance(ctx, tx, wallet.ID, wallet.Balance); err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	return wallet, nil
}

// CreditByPublicKey credits the offline wallet registered under the
// claimed receiver public key, if any. A voucher's receiver may never
// have registered a wallet here; that is not an error.
func (s *LedgerServiceImpl) CreditByPublicKey(ctx context.Context, tx pgx.Tx, publicKey string, amount decimal.Decimal) (bool, error) {
	wallet, err := s.walletRepo.GetByPublicKeyForUpdate(ctx, tx, publicKey)
	if err != nil {
		return false, apperror.ErrPersistence(err)
	}
	if wallet == nil {
		return false, nil
	}

	wallet.Balance = wallet.Balance.Add(amount)
	if err := s.walletRepo.UpdateBalance(ctx, tx, wallet.ID, wallet.Balance); err != nil {
		return false, apperror.ErrPersistence(err)
	}
	return true, nil
}

// CreditCustodial credits the owner's custodial wallet for the currency,
// creating a zero-balance wallet inside the same transaction when the
// owner has none yet.
func (s *LedgerServiceImpl) CreditCustodial(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, currency string, amount decimal.Decimal) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByOwnerAndTypeForUpdate(ctx, tx, ownerID, domain.WalletTypeCustodial, currency)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	if wallet == nil {
		now := s.now().UTC()
		wallet = &domain.Wallet{
			ID:        uuid.New(),
			OwnerID:   ownerID,
			Type:      domain.WalletTypeCustodial,
			Currency:  currency,
			Balance:   decimal.Zero,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.walletRepo.CreateTx(ctx, tx, wallet); err != nil {
			return nil, apperror.ErrPersistence(err)
		}
		s.logger.Info().
			Str("owner_id", ownerID.String()).
			Str("currency", currency).
			Msg("auto-provisioned custodial wallet")
	}

	wallet.Balance = wallet.Balance.Add(amount)
	if err := s.walletRepo.UpdateBalance(ctx, tx, wallet.ID, wallet.Balance); err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	return wallet, nil
}

// RequestTopUp validates a custodial-to-offline transfer and records a
// confirmable intent. Nothing moves until ConfirmTopUp; the resting
// limit is re-checked there because balances can change in between.
func (s *LedgerServiceImpl) RequestTopUp(ctx context.Context, req ports.TopUpRequest) (*ports.TopUpIntent, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrAmountNotPositive()
	}

	custodial, err := s.walletRepo.GetByOwnerAndType(ctx, req.CallerID, domain.WalletTypeCustodial, req.Currency)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	if custodial == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	if custodial.Balance.LessThan(req.Amount) {
		return nil, apperror.ErrInsufficientBalance(req.Amount.Sub(custodial.Balance))
	}

	offline, err := s.walletRepo.GetByOwnerAndType(ctx, req.CallerID, domain.WalletTypeOffline, req.Currency)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	if offline == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	limit := offline.RestingLimit(s.maxOfflineBalance)
	if offline.Balance.Add(req.Amount).GreaterThan(limit) {
		return nil, apperror.ErrMaxBalanceExceeded(limit)
	}

	intent := topUpIntent{
		callerID:  req.CallerID,
		amount:    req.Amount,
		currency:  req.Currency,
		expiresAt: s.now().Add(topUpIntentTTL),
	}
	ref := uuid.New()

	s.mu.Lock()
	s.pruneExpiredLocked()
	s.intents[ref] = intent
	s.mu.Unlock()

	return &ports.TopUpIntent{
		Reference: ref,
		Amount:    intent.amount,
		Currency:  intent.currency,
		ExpiresAt: intent.expiresAt,
	}, nil
}

// ConfirmTopUp applies a previously requested top-up: both wallet rows
// locked, custodial balance and resting limit re-checked, both mutations
// in one transaction.
func (s *LedgerServiceImpl) ConfirmTopUp(ctx context.Context, callerID uuid.UUID, reference uuid.UUID) (*ports.TopUpResult, error) {
	s.mu.Lock()
	intent, ok := s.intents[reference]
	if ok && (intent.callerID != callerID || s.now().After(intent.expiresAt)) {
		ok = false
	}
	if ok {
		delete(s.intents, reference)
	}
	s.mu.Unlock()
	if !ok {
		return nil, apperror.ErrNotFound("top-up request")
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	custodial, err := s.walletRepo.GetByOwnerAndTypeForUpdate(ctx, tx, callerID, domain.WalletTypeCustodial, intent.currency)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	if custodial == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	if custodial.Balance.LessThan(intent.amount) {
		return nil, apperror.ErrInsufficientBalance(intent.amount.Sub(custodial.Balance))
	}

	offline, err := s.walletRepo.GetByOwnerAndTypeForUpdate(ctx, tx, callerID, domain.WalletTypeOffline, intent.currency)
	if err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	if offline == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	limit := offline.RestingLimit(s.maxOfflineBalance)
	newBalance := offline.Balance.Add(intent.amount)
	if newBalance.GreaterThan(limit) {
		return nil, apperror.ErrMaxBalanceExceeded(limit)
	}

	if err := s.walletRepo.UpdateBalance(ctx, tx, custodial.ID, custodial.Balance.Sub(intent.amount)); err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	if err := s.walletRepo.UpdateBalance(ctx, tx, offline.ID, newBalance); err != nil {
		return nil, apperror.ErrPersistence(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.ErrPersistence(err)
	}

	s.logger.Info().
		Str("owner_id", callerID.String()).
		Str("amount", intent.amount.StringFixed(2)).
		Str("currency", intent.currency).
		Msg("offline wallet topped up")

	return &ports.TopUpResult{
		OfflineWalletID: offline.ID,
		NewBalance:      newBalance,
	}, nil
}

// pruneExpiredLocked drops expired intents. Caller holds s.mu.
func (s *LedgerServiceImpl) pruneExpiredLocked() {
	now := s.now()
	for ref, intent := range s.intents {
		if now.After(intent.expiresAt) {
			delete(s.intents, ref)
		}
	}
}
