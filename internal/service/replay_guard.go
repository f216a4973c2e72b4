package service

import (
	"context"
	"time"

	"offline-voucher-sync/internal/core/domain"
	"offline-voucher-sync/internal/core/ports"
	"offline-voucher-sync/pkg/apperror"

	"github.com/rs/zerolog"
)

// maxFutureSkew is how far ahead of server time a device timestamp may
// legitimately sit (clock drift allowance).
const maxFutureSkew = time.Minute

// ReplayGuardService validates vouchers against replay before any
// mutation. The redis cache is a bounded fast-path filter only; the
// durable nonce uniqueness in the transaction store is authoritative and
// always consulted.
type ReplayGuardService struct {
	txRepo ports.TransactionRepository
	cache  ports.NonceCache
	logger zerolog.Logger
	now    func() time.Time
}

// NewReplayGuardService creates a replay guard backed by the durable
// transaction store and the fast-path nonce cache.
func NewReplayGuardService(txRepo ports.TransactionRepository, cache ports.NonceCache, logger zerolog.Logger) *ReplayGuardService {
	return &ReplayGuardService{
		txRepo: txRepo,
		cache:  cache,
		logger: logger.With().Str("component", "replay_guard").Logger(),
		now:    time.Now,
	}
}

// Validate runs the replay checks in fixed order, first failure wins:
// field completeness, signature presence, nonce uniqueness, then device
// timestamp within [-maxFutureSkew, +maxAge] of server time.
func (s *ReplayGuardService) Validate(ctx context.Context, draft domain.VoucherDraft, signature string, maxAge time.Duration) error {
	if missing := draft.MissingFields(); len(missing) > 0 {
		return apperror.ErrMissingFields(missing)
	}
	if signature == "" {
		return apperror.ErrMissingSignature()
	}

	if err := s.checkNonce(ctx, draft.Nonce); err != nil {
		return err
	}

	deviceTime, err := draft.DeviceTime()
	if err != nil {
		return apperror.ErrInvalidTimestamp()
	}
	age := s.now().Sub(deviceTime)
	if age < -maxFutureSkew {
		return apperror.ErrFutureTimestamp()
	}
	if age > maxAge {
		return apperror.ErrTooOld(maxAge)
	}
	return nil
}

// checkNonce consults the cache first, then always the durable store.
// A cache hit short-circuits the lookup but never replaces it: cache
// entries expire and do not survive restarts.
func (s *ReplayGuardService) checkNonce(ctx context.Context, nonce string) error {
	seen, err := s.cache.Seen(ctx, nonce)
	if err != nil {
		// Cache trouble degrades to the durable path.
		s.logger.Warn().Err(err).Msg("nonce cache unavailable, using durable store only")
	} else if seen {
		return apperror.ErrDuplicateNonce()
	}

	record, err := s.txRepo.GetByNonce(ctx, nonce)
	if err != nil {
		return apperror.ErrPersistence(err)
	}
	if record != nil {
		return apperror.ErrDuplicateNonce()
	}
	return nil
}

// MarkAccepted records an accepted nonce in the fast-path cache with a
// TTL of twice the freshness window. Called only after a successful
// commit so a failed voucher can be resubmitted.
func (s *ReplayGuardService) MarkAccepted(ctx context.Context, nonce string, maxAge time.Duration) {
	if err := s.cache.MarkSeen(ctx, nonce, 2*maxAge); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache accepted nonce")
	}
}
