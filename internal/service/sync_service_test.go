package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"offline-voucher-sync/internal/core/domain"
	"offline-voucher-sync/internal/core/ports"
	"offline-voucher-sync/internal/core/ports/mocks"
	"offline-voucher-sync/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type syncTestDeps struct {
	svc         *SyncServiceImpl
	txRepo      *mocks.MockTransactionRepository
	walletRepo  *mocks.MockWalletRepository
	transactor  *mocks.MockDBTransactor
	replayGuard *mocks.MockReplayGuard
	ledger      *mocks.MockLedgerService
	crypto      *RSACryptoService
	ctrl        *gomock.Controller
}

func setupSyncService(t *testing.T) *syncTestDeps {
	ctrl := gomock.NewController(t)
	d := &syncTestDeps{
		txRepo:      mocks.NewMockTransactionRepository(ctrl),
		walletRepo:  mocks.NewMockWalletRepository(ctrl),
		transactor:  mocks.NewMockDBTransactor(ctrl),
		replayGuard: mocks.NewMockReplayGuard(ctrl),
		ledger:      mocks.NewMockLedgerService(ctrl),
		crypto:      NewRSACryptoService(),
		ctrl:        ctrl,
	}
	d.svc = NewSyncService(
		d.txRepo, d.walletRepo, d.transactor, d.replayGuard, d.ledger,
		d.crypto, NewReceiptService(d.crypto, zerolog.Nop()),
		5*time.Minute, 72*time.Hour, 100, zerolog.Nop(),
	)
	return d
}

// failingCommitTx implements pgx.Tx whose Commit always fails.
type failingCommitTx struct{ pgx.Tx }

func (t *failingCommitTx) Rollback(_ context.Context) error { return nil }
func (t *failingCommitTx) Commit(_ context.Context) error   { return errors.New("connection reset") }

// signedItem builds a voucher signed by a freshly generated key and the
// matching sender wallet.
func signedItem(t *testing.T, crypto *RSACryptoService, callerID uuid.UUID, amount string) (ports.SyncItem, *domain.Wallet) {
	t.Helper()
	pub, priv, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	nonce, err := crypto.Nonce()
	require.NoError(t, err)

	draft := domain.VoucherDraft{
		SenderWalletID:    uuid.New(),
		ReceiverPublicKey: "receiver-public-key-pem",
		Amount:            amount,
		Currency:          "PKR",
		Nonce:             nonce,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}
	sig, err := crypto.SignDraft(draft, priv)
	require.NoError(t, err)

	wallet := &domain.Wallet{
		ID:        draft.SenderWalletID,
		OwnerID:   callerID,
		Type:      domain.WalletTypeOffline,
		Currency:  "PKR",
		Balance:   dec("500.00"),
		PublicKey: &pub,
		Active:    true,
	}
	return ports.SyncItem{Draft: draft, Signature: sig}, wallet
}

func TestSync_ProcessBatch_SingleSuccess(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()
	tx := &mockTx{}

	item, wallet := signedItem(t, d.crypto, callerID, "150.00")

	d.replayGuard.EXPECT().Validate(ctx, item.Draft, item.Signature, 72*time.Hour).Return(nil)
	d.walletRepo.EXPECT().GetByID(ctx, wallet.ID).Return(wallet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.ledger.EXPECT().Deduct(ctx, tx, wallet.ID, dec("150.00")).Return(wallet, nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, rec *domain.TransactionRecord) error {
			assert.Equal(t, item.Draft.Nonce, rec.Nonce)
			assert.Equal(t, domain.TransactionStatusSynced, rec.Status)
			assert.NotEmpty(t, rec.ReceiptHash)
			assert.NotEmpty(t, rec.ReceiptPayload)
			return nil
		})
	d.ledger.EXPECT().CreditByPublicKey(ctx, tx, item.Draft.ReceiverPublicKey, dec("150.00")).Return(false, nil)
	d.replayGuard.EXPECT().MarkAccepted(ctx, item.Draft.Nonce, 72*time.Hour)

	res, err := d.svc.ProcessSyncBatch(ctx, callerID, []ports.SyncItem{item})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalSynced)
	assert.Equal(t, 0, res.TotalFailed)
	require.Len(t, res.Results, 1)
	assert.Equal(t, ports.ItemSynced, res.Results[0].Result)
	assert.Equal(t, item.Draft.Nonce, res.Results[0].Reference)
	assert.NotNil(t, res.Results[0].TransactionID)
}

func TestSync_ProcessBatch_MixedOutcomes(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()
	tx := &mockTx{}

	good, goodWallet := signedItem(t, d.crypto, callerID, "100.00")
	tampered, tamperedWallet := signedItem(t, d.crypto, callerID, "100.00")
	tampered.Draft.Amount = "9999.00" // breaks the signature
	replayed, _ := signedItem(t, d.crypto, callerID, "100.00")

	// good: full pipeline
	d.replayGuard.EXPECT().Validate(ctx, good.Draft, good.Signature, 72*time.Hour).Return(nil)
	d.walletRepo.EXPECT().GetByID(ctx, goodWallet.ID).Return(goodWallet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.ledger.EXPECT().Deduct(ctx, tx, goodWallet.ID, dec("100.00")).Return(goodWallet, nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.ledger.EXPECT().CreditByPublicKey(ctx, tx, good.Draft.ReceiverPublicKey, dec("100.00")).Return(true, nil)
	d.replayGuard.EXPECT().MarkAccepted(ctx, good.Draft.Nonce, 72*time.Hour)

	// tampered: stops at signature verification, nothing mutates
	d.replayGuard.EXPECT().Validate(ctx, tampered.Draft, tampered.Signature, 72*time.Hour).Return(nil)
	d.walletRepo.EXPECT().GetByID(ctx, tamperedWallet.ID).Return(tamperedWallet, nil)

	// replayed: stops at the replay guard
	d.replayGuard.EXPECT().Validate(ctx, replayed.Draft, replayed.Signature, 72*time.Hour).
		Return(apperror.ErrDuplicateNonce())

	res, err := d.svc.ProcessSyncBatch(ctx, callerID, []ports.SyncItem{good, tampered, replayed})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalSynced)
	assert.Equal(t, 2, res.TotalFailed)
	require.Len(t, res.Results, 3)
	assert.Equal(t, ports.ItemSynced, res.Results[0].Result)
	assert.Equal(t, "INVALID_SIGNATURE", *res.Results[1].ErrorReason)
	assert.Equal(t, "DUPLICATE_NONCE", *res.Results[2].ErrorReason)
}

func TestSync_ProcessBatch_TooLarge(t *testing.T) {
	d := setupSyncService(t)

	items := make([]ports.SyncItem, 101)
	_, err := d.svc.ProcessSyncBatch(context.Background(), uuid.New(), items)
	assert.Equal(t, "BATCH_TOO_LARGE", apperror.CodeOf(err))
}

func TestSync_ProcessBatch_WalletOwnershipMismatch(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()

	item, wallet := signedItem(t, d.crypto, uuid.New(), "50.00") // someone else's wallet

	d.replayGuard.EXPECT().Validate(ctx, item.Draft, item.Signature, 72*time.Hour).Return(nil)
	d.walletRepo.EXPECT().GetByID(ctx, wallet.ID).Return(wallet, nil)

	res, err := d.svc.ProcessSyncBatch(ctx, callerID, []ports.SyncItem{item})
	require.NoError(t, err)
	assert.Equal(t, "WALLET_NOT_FOUND", *res.Results[0].ErrorReason)
}

func TestSync_ProcessBatch_DurableDuplicateOnInsert(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()
	tx := &mockTx{}

	item, wallet := signedItem(t, d.crypto, callerID, "50.00")

	d.replayGuard.EXPECT().Validate(ctx, item.Draft, item.Signature, 72*time.Hour).Return(nil)
	d.walletRepo.EXPECT().GetByID(ctx, wallet.ID).Return(wallet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.ledger.EXPECT().Deduct(ctx, tx, wallet.ID, dec("50.00")).Return(wallet, nil)
	// A concurrent submitter won the nonce between the guard check and
	// this insert; the unique index is the final arbiter.
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "transactions_nonce_key"})

	res, err := d.svc.ProcessSyncBatch(ctx, callerID, []ports.SyncItem{item})
	require.NoError(t, err)
	assert.Equal(t, ports.ItemFailed, res.Results[0].Result)
	assert.Equal(t, "DUPLICATE_NONCE", *res.Results[0].ErrorReason)
}

func TestSync_ProcessBatch_CommitFailureRollsBack(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()
	tx := &failingCommitTx{}

	item, wallet := signedItem(t, d.crypto, callerID, "50.00")

	d.replayGuard.EXPECT().Validate(ctx, item.Draft, item.Signature, 72*time.Hour).Return(nil)
	d.walletRepo.EXPECT().GetByID(ctx, wallet.ID).Return(wallet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.ledger.EXPECT().Deduct(ctx, tx, wallet.ID, dec("50.00")).Return(wallet, nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.ledger.EXPECT().CreditByPublicKey(ctx, tx, item.Draft.ReceiverPublicKey, dec("50.00")).Return(false, nil)
	// No MarkAccepted: the nonce stays resubmittable.

	res, err := d.svc.ProcessSyncBatch(ctx, callerID, []ports.SyncItem{item})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalRolledBack)
	assert.Equal(t, ports.ItemRolledBack, res.Results[0].Result)
	assert.Equal(t, "COMMIT_FAILED", *res.Results[0].ErrorReason)
}

func TestSync_ProcessBatch_PanicBecomesFailedItem(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()
	tx := &mockTx{}

	bad, badWallet := signedItem(t, d.crypto, callerID, "10.00")
	good, goodWallet := signedItem(t, d.crypto, callerID, "20.00")

	d.replayGuard.EXPECT().Validate(ctx, bad.Draft, bad.Signature, 72*time.Hour).Return(nil)
	d.walletRepo.EXPECT().GetByID(ctx, badWallet.ID).
		DoAndReturn(func(context.Context, uuid.UUID) (*domain.Wallet, error) {
			panic("boom")
		})

	d.replayGuard.EXPECT().Validate(ctx, good.Draft, good.Signature, 72*time.Hour).Return(nil)
	d.walletRepo.EXPECT().GetByID(ctx, goodWallet.ID).Return(goodWallet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.ledger.EXPECT().Deduct(ctx, tx, goodWallet.ID, dec("20.00")).Return(goodWallet, nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.ledger.EXPECT().CreditByPublicKey(ctx, tx, good.Draft.ReceiverPublicKey, dec("20.00")).Return(false, nil)
	d.replayGuard.EXPECT().MarkAccepted(ctx, good.Draft.Nonce, 72*time.Hour)

	res, err := d.svc.ProcessSyncBatch(ctx, callerID, []ports.SyncItem{bad, good})
	require.NoError(t, err)
	assert.Equal(t, "INTERNAL_ERROR", *res.Results[0].ErrorReason)
	assert.Equal(t, ports.ItemSynced, res.Results[1].Result)
}

// ==================== Confirm ====================

func syncedRecord(senderWalletID uuid.UUID) *domain.TransactionRecord {
	return &domain.TransactionRecord{
		ID:                uuid.New(),
		SenderWalletID:    senderWalletID,
		ReceiverPublicKey: "receiver-public-key-pem",
		Amount:            dec("150.00"),
		Currency:          "PKR",
		Nonce:             "nonce-1",
		Status:            domain.TransactionStatusSynced,
		SyncedAt:          time.Now().UTC(),
	}
}

func TestSync_Confirm_Success(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()
	tx := &mockTx{}

	sender := activeWallet("100.00", domain.WalletTypeOffline)
	sender.OwnerID = callerID
	record := syncedRecord(sender.ID)

	receiverOffline := activeWallet("0.00", domain.WalletTypeOffline)
	receiverCustodial := activeWallet("350.00", domain.WalletTypeCustodial)
	receiverCustodial.OwnerID = receiverOffline.OwnerID

	d.txRepo.EXPECT().GetByID(ctx, record.ID).Return(record, nil)
	d.walletRepo.EXPECT().GetByID(ctx, sender.ID).Return(sender, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txRepo.EXPECT().ConfirmFromSynced(ctx, tx, record.ID, gomock.Any()).Return(true, nil)
	d.walletRepo.EXPECT().GetByPublicKey(ctx, record.ReceiverPublicKey).Return(receiverOffline, nil)
	d.ledger.EXPECT().
		CreditCustodial(ctx, tx, receiverOffline.OwnerID, "PKR", dec("150.00")).
		Return(receiverCustodial, nil)

	res, err := d.svc.Confirm(ctx, callerID, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, res.TransactionID)
	assert.Equal(t, "confirmed", res.Status)
	assert.True(t, res.ReceiverBalance.Equal(dec("350.00")))
}

func TestSync_Confirm_OnlySender(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()

	sender := activeWallet("100.00", domain.WalletTypeOffline)
	record := syncedRecord(sender.ID)

	d.txRepo.EXPECT().GetByID(ctx, record.ID).Return(record, nil)
	d.walletRepo.EXPECT().GetByID(ctx, sender.ID).Return(sender, nil)

	_, err := d.svc.Confirm(ctx, uuid.New(), record.ID)
	assert.Equal(t, "UNAUTHORIZED", apperror.CodeOf(err))
}

func TestSync_Confirm_AlreadyConfirmed(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()

	sender := activeWallet("100.00", domain.WalletTypeOffline)
	sender.OwnerID = callerID
	record := syncedRecord(sender.ID)
	record.Status = domain.TransactionStatusConfirmed

	d.txRepo.EXPECT().GetByID(ctx, record.ID).Return(record, nil)
	d.walletRepo.EXPECT().GetByID(ctx, sender.ID).Return(sender, nil)

	_, err := d.svc.Confirm(ctx, callerID, record.ID)
	assert.Equal(t, "CANNOT_CONFIRM", apperror.CodeOf(err))
}

func TestSync_Confirm_LostRace(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()
	tx := &mockTx{}

	sender := activeWallet("100.00", domain.WalletTypeOffline)
	sender.OwnerID = callerID
	record := syncedRecord(sender.ID)

	d.txRepo.EXPECT().GetByID(ctx, record.ID).Return(record, nil)
	d.walletRepo.EXPECT().GetByID(ctx, sender.ID).Return(sender, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	// Another confirm flipped the row first; the conditional update
	// matches zero rows.
	d.txRepo.EXPECT().ConfirmFromSynced(ctx, tx, record.ID, gomock.Any()).Return(false, nil)

	_, err := d.svc.Confirm(ctx, callerID, record.ID)
	assert.Equal(t, "CANNOT_CONFIRM", apperror.CodeOf(err))
}

func TestSync_Confirm_UnregisteredReceiver(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()

	sender := activeWallet("100.00", domain.WalletTypeOffline)
	sender.OwnerID = callerID
	record := syncedRecord(sender.ID)

	d.txRepo.EXPECT().GetByID(ctx, record.ID).Return(record, nil)
	d.walletRepo.EXPECT().GetByID(ctx, sender.ID).Return(sender, nil)
	// No transaction is opened and the status never flips: the record
	// must stay synced so confirm can retry after the receiver registers.
	d.walletRepo.EXPECT().GetByPublicKey(ctx, record.ReceiverPublicKey).Return(nil, nil)

	_, err := d.svc.Confirm(ctx, callerID, record.ID)
	assert.Equal(t, "NOT_FOUND", apperror.CodeOf(err))
}

func TestSync_Confirm_NotFound(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	id := uuid.New()

	d.txRepo.EXPECT().GetByID(ctx, id).Return(nil, nil)

	_, err := d.svc.Confirm(ctx, uuid.New(), id)
	assert.Equal(t, "NOT_FOUND", apperror.CodeOf(err))
}

// ==================== SubmitVoucher ====================

func TestSync_SubmitVoucher_UsesDirectWindow(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()
	tx := &mockTx{}

	item, wallet := signedItem(t, d.crypto, callerID, "40.00")

	// The strict window reaches the guard and the nonce cache, not the
	// 72h batch window.
	d.replayGuard.EXPECT().Validate(ctx, item.Draft, item.Signature, 5*time.Minute).Return(nil)
	d.walletRepo.EXPECT().GetByID(ctx, wallet.ID).Return(wallet, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.ledger.EXPECT().Deduct(ctx, tx, wallet.ID, dec("40.00")).Return(wallet, nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.ledger.EXPECT().CreditByPublicKey(ctx, tx, item.Draft.ReceiverPublicKey, dec("40.00")).Return(false, nil)
	d.replayGuard.EXPECT().MarkAccepted(ctx, item.Draft.Nonce, 5*time.Minute)

	res, err := d.svc.SubmitVoucher(ctx, callerID, item)
	require.NoError(t, err)
	assert.Equal(t, ports.ItemSynced, res.Result)
	require.NotNil(t, res.TransactionID)
}

func TestSync_SubmitVoucher_StaleFailsItemized(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()

	item, _ := signedItem(t, d.crypto, callerID, "40.00")

	d.replayGuard.EXPECT().
		Validate(ctx, item.Draft, item.Signature, 5*time.Minute).
		Return(apperror.ErrTooOld(5 * time.Minute))

	res, err := d.svc.SubmitVoucher(ctx, callerID, item)
	require.NoError(t, err)
	assert.Equal(t, ports.ItemFailed, res.Result)
	require.NotNil(t, res.ErrorReason)
	assert.Equal(t, "TOO_OLD", *res.ErrorReason)
}

// ==================== PrepareDraft ====================

func TestSync_PrepareDraft_Success(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()

	wallet := activeWallet("500.00", domain.WalletTypeOffline)
	wallet.OwnerID = callerID

	d.walletRepo.EXPECT().GetByID(ctx, wallet.ID).Return(wallet, nil)

	draft, err := d.svc.PrepareDraft(ctx, ports.PrepareDraftRequest{
		CallerID:          callerID,
		SenderWalletID:    wallet.ID,
		ReceiverPublicKey: "receiver-public-key-pem",
		Amount:            dec("99.90"),
		Currency:          "PKR",
	})
	require.NoError(t, err)
	assert.Equal(t, wallet.ID, draft.SenderWalletID)
	assert.Equal(t, "99.90", draft.Amount)
	assert.Len(t, draft.Nonce, 64)

	_, err = time.Parse(time.RFC3339, draft.Timestamp)
	assert.NoError(t, err)
}

func TestSync_PrepareDraft_InsufficientBalance(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()

	wallet := activeWallet("10.00", domain.WalletTypeOffline)
	wallet.OwnerID = callerID

	d.walletRepo.EXPECT().GetByID(ctx, wallet.ID).Return(wallet, nil)

	_, err := d.svc.PrepareDraft(ctx, ports.PrepareDraftRequest{
		CallerID:          callerID,
		SenderWalletID:    wallet.ID,
		ReceiverPublicKey: "receiver-public-key-pem",
		Amount:            dec("99.90"),
		Currency:          "PKR",
	})
	assert.Equal(t, "INSUFFICIENT_BALANCE", apperror.CodeOf(err))
}

func TestSync_PrepareDraft_CustodialWalletRejected(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()

	wallet := activeWallet("500.00", domain.WalletTypeCustodial)
	wallet.OwnerID = callerID

	d.walletRepo.EXPECT().GetByID(ctx, wallet.ID).Return(wallet, nil)

	_, err := d.svc.PrepareDraft(ctx, ports.PrepareDraftRequest{
		CallerID:          callerID,
		SenderWalletID:    wallet.ID,
		ReceiverPublicKey: "receiver-public-key-pem",
		Amount:            dec("10.00"),
		Currency:          "PKR",
	})
	assert.Equal(t, "WALLET_NOT_FOUND", apperror.CodeOf(err))
}

// ==================== ListTransactions ====================

func TestSync_ListTransactions(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()

	w1 := activeWallet("0.00", domain.WalletTypeOffline)
	w2 := activeWallet("0.00", domain.WalletTypeCustodial)
	status := domain.TransactionStatusSynced

	d.walletRepo.EXPECT().GetByOwner(ctx, callerID).Return([]domain.Wallet{*w1, *w2}, nil)
	d.txRepo.EXPECT().
		ListBySenderWallets(ctx, []uuid.UUID{w1.ID, w2.ID}, &status, 50).
		Return([]domain.TransactionRecord{*syncedRecord(w1.ID)}, nil)

	records, err := d.svc.ListTransactions(ctx, callerID, &status, 50)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSync_ListTransactions_NoWallets(t *testing.T) {
	d := setupSyncService(t)
	ctx := context.Background()
	callerID := uuid.New()

	d.walletRepo.EXPECT().GetByOwner(ctx, callerID).Return(nil, nil)

	records, err := d.svc.ListTransactions(ctx, callerID, nil, 50)
	require.NoError(t, err)
	assert.Empty(t, records)
}
