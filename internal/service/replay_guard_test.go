package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"offline-voucher-sync/internal/core/domain"
	"offline-voucher-sync/internal/core/ports/mocks"
	"offline-voucher-sync/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type replayGuardDeps struct {
	guard  *ReplayGuardService
	txRepo *mocks.MockTransactionRepository
	cache  *mocks.MockNonceCache
	ctrl   *gomock.Controller
}

func setupReplayGuard(t *testing.T) *replayGuardDeps {
	ctrl := gomock.NewController(t)
	d := &replayGuardDeps{
		txRepo: mocks.NewMockTransactionRepository(ctrl),
		cache:  mocks.NewMockNonceCache(ctrl),
		ctrl:   ctrl,
	}
	d.guard = NewReplayGuardService(d.txRepo, d.cache, zerolog.Nop())
	return d
}

func freshDraft(ageFromNow time.Duration) domain.VoucherDraft {
	d := testDraft()
	d.Timestamp = time.Now().UTC().Add(-ageFromNow).Format(time.RFC3339)
	return d
}

func TestReplayGuard_Valid(t *testing.T) {
	d := setupReplayGuard(t)
	ctx := context.Background()
	draft := freshDraft(time.Minute)

	d.cache.EXPECT().Seen(ctx, draft.Nonce).Return(false, nil)
	d.txRepo.EXPECT().GetByNonce(ctx, draft.Nonce).Return(nil, nil)

	err := d.guard.Validate(ctx, draft, "sig", 5*time.Minute)
	assert.NoError(t, err)
}

func TestReplayGuard_MissingFields(t *testing.T) {
	d := setupReplayGuard(t)
	draft := freshDraft(time.Minute)
	draft.Amount = ""
	draft.Nonce = ""

	err := d.guard.Validate(context.Background(), draft, "sig", 5*time.Minute)
	assert.Equal(t, "MISSING_FIELDS", apperror.CodeOf(err))
	assert.Contains(t, err.Error(), "amount")
	assert.Contains(t, err.Error(), "nonce")
}

func TestReplayGuard_MissingSignature(t *testing.T) {
	d := setupReplayGuard(t)

	err := d.guard.Validate(context.Background(), freshDraft(time.Minute), "", 5*time.Minute)
	assert.Equal(t, "MISSING_SIGNATURE", apperror.CodeOf(err))
}

func TestReplayGuard_DuplicateNonce_CacheHit(t *testing.T) {
	d := setupReplayGuard(t)
	ctx := context.Background()
	draft := freshDraft(time.Minute)

	d.cache.EXPECT().Seen(ctx, draft.Nonce).Return(true, nil)
	// Durable store is never reached: the cache only ever holds nonces
	// that were durably committed.

	err := d.guard.Validate(ctx, draft, "sig", 5*time.Minute)
	assert.Equal(t, "DUPLICATE_NONCE", apperror.CodeOf(err))
}

func TestReplayGuard_DuplicateNonce_DurableOnly(t *testing.T) {
	d := setupReplayGuard(t)
	ctx := context.Background()
	draft := freshDraft(time.Minute)

	// Cache miss (entry expired) still catches the replay durably.
	d.cache.EXPECT().Seen(ctx, draft.Nonce).Return(false, nil)
	d.txRepo.EXPECT().GetByNonce(ctx, draft.Nonce).
		Return(&domain.TransactionRecord{Nonce: draft.Nonce}, nil)

	err := d.guard.Validate(ctx, draft, "sig", 5*time.Minute)
	assert.Equal(t, "DUPLICATE_NONCE", apperror.CodeOf(err))
}

func TestReplayGuard_CacheDownFallsBackToDurable(t *testing.T) {
	d := setupReplayGuard(t)
	ctx := context.Background()
	draft := freshDraft(time.Minute)

	d.cache.EXPECT().Seen(ctx, draft.Nonce).Return(false, errors.New("redis down"))
	d.txRepo.EXPECT().GetByNonce(ctx, draft.Nonce).Return(nil, nil)

	err := d.guard.Validate(ctx, draft, "sig", 5*time.Minute)
	assert.NoError(t, err)
}

func TestReplayGuard_TooOld(t *testing.T) {
	d := setupReplayGuard(t)
	ctx := context.Background()
	draft := freshDraft(10 * time.Minute)

	d.cache.EXPECT().Seen(ctx, draft.Nonce).Return(false, nil)
	d.txRepo.EXPECT().GetByNonce(ctx, draft.Nonce).Return(nil, nil)

	err := d.guard.Validate(ctx, draft, "sig", 5*time.Minute)
	assert.Equal(t, "TOO_OLD", apperror.CodeOf(err))
}

func TestReplayGuard_OldVoucherValidUnderSyncWindow(t *testing.T) {
	d := setupReplayGuard(t)
	ctx := context.Background()
	draft := freshDraft(48 * time.Hour)

	d.cache.EXPECT().Seen(ctx, draft.Nonce).Return(false, nil)
	d.txRepo.EXPECT().GetByNonce(ctx, draft.Nonce).Return(nil, nil)

	err := d.guard.Validate(ctx, draft, "sig", 72*time.Hour)
	assert.NoError(t, err)
}

func TestReplayGuard_FutureTimestamp(t *testing.T) {
	d := setupReplayGuard(t)
	ctx := context.Background()
	draft := freshDraft(-5 * time.Minute)

	d.cache.EXPECT().Seen(ctx, draft.Nonce).Return(false, nil)
	d.txRepo.EXPECT().GetByNonce(ctx, draft.Nonce).Return(nil, nil)

	err := d.guard.Validate(ctx, draft, "sig", 5*time.Minute)
	assert.Equal(t, "FUTURE_TIMESTAMP", apperror.CodeOf(err))
}

func TestReplayGuard_SmallFutureSkewAllowed(t *testing.T) {
	d := setupReplayGuard(t)
	ctx := context.Background()
	draft := freshDraft(-30 * time.Second)

	d.cache.EXPECT().Seen(ctx, draft.Nonce).Return(false, nil)
	d.txRepo.EXPECT().GetByNonce(ctx, draft.Nonce).Return(nil, nil)

	err := d.guard.Validate(ctx, draft, "sig", 5*time.Minute)
	assert.NoError(t, err)
}

func TestReplayGuard_InvalidTimestamp(t *testing.T) {
	d := setupReplayGuard(t)
	ctx := context.Background()
	draft := freshDraft(time.Minute)
	draft.Timestamp = "yesterday"

	d.cache.EXPECT().Seen(ctx, draft.Nonce).Return(false, nil)
	d.txRepo.EXPECT().GetByNonce(ctx, draft.Nonce).Return(nil, nil)

	err := d.guard.Validate(ctx, draft, "sig", 5*time.Minute)
	assert.Equal(t, "INVALID_TIMESTAMP", apperror.CodeOf(err))
}

func TestReplayGuard_MarkAccepted(t *testing.T) {
	d := setupReplayGuard(t)
	ctx := context.Background()

	// TTL is twice the freshness window.
	d.cache.EXPECT().MarkSeen(ctx, "abc", 10*time.Minute).Return(nil)
	d.guard.MarkAccepted(ctx, "abc", 5*time.Minute)

	// Cache failures are logged, not surfaced.
	d.cache.EXPECT().MarkSeen(ctx, "def", 10*time.Minute).Return(errors.New("redis down"))
	d.guard.MarkAccepted(ctx, "def", 5*time.Minute)
}
