package integration

import (
	"context"
	"sort"
	"sync"
	"time"

	"offline-voucher-sync/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// memStore is a transactional in-memory stand-in for PostgreSQL. A
// single mutex serializes transactions, which emulates the row locks
// the real repos take with FOR UPDATE; Begin snapshots both tables so
// Rollback restores the pre-transaction state.
type memStore struct {
	txMu sync.Mutex // held for the duration of a transaction
	mu   sync.RWMutex

	wallets map[uuid.UUID]domain.Wallet
	txs     map[uuid.UUID]domain.TransactionRecord
	byNonce map[string]uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		wallets: make(map[uuid.UUID]domain.Wallet),
		txs:     make(map[uuid.UUID]domain.TransactionRecord),
		byNonce: make(map[string]uuid.UUID),
	}
}

// Begin starts a serialized transaction.
func (s *memStore) Begin(_ context.Context) (pgx.Tx, error) {
	s.txMu.Lock()
	s.mu.RLock()
	snap := &memSnapshot{
		wallets: make(map[uuid.UUID]domain.Wallet, len(s.wallets)),
		txs:     make(map[uuid.UUID]domain.TransactionRecord, len(s.txs)),
		byNonce: make(map[string]uuid.UUID, len(s.byNonce)),
	}
	for k, v := range s.wallets {
		snap.wallets[k] = v
	}
	for k, v := range s.txs {
		snap.txs[k] = v
	}
	for k, v := range s.byNonce {
		snap.byNonce[k] = v
	}
	s.mu.RUnlock()
	return &memTx{store: s, snap: snap}, nil
}

type memSnapshot struct {
	wallets map[uuid.UUID]domain.Wallet
	txs     map[uuid.UUID]domain.TransactionRecord
	byNonce map[string]uuid.UUID
}

// memTx satisfies pgx.Tx for the methods the services call. The
// embedded interface covers the rest; those methods are never invoked.
type memTx struct {
	pgx.Tx
	store *memStore
	snap  *memSnapshot
	done  bool
}

func (t *memTx) Commit(_ context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.store.txMu.Unlock()
	return nil
}

func (t *memTx) Rollback(_ context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.store.mu.Lock()
	t.store.wallets = t.snap.wallets
	t.store.txs = t.snap.txs
	t.store.byNonce = t.snap.byNonce
	t.store.mu.Unlock()
	t.done = true
	t.store.txMu.Unlock()
	return nil
}

// inMemoryWalletRepo implements ports.WalletRepository on a memStore.
type inMemoryWalletRepo struct {
	store *memStore
}

func newInMemoryWalletRepo(store *memStore) *inMemoryWalletRepo {
	return &inMemoryWalletRepo{store: store}
}

func (r *inMemoryWalletRepo) put(w *domain.Wallet) {
	r.store.mu.Lock()
	r.store.wallets[w.ID] = *w
	r.store.mu.Unlock()
}

func (r *inMemoryWalletRepo) Create(_ context.Context, w *domain.Wallet) error {
	r.put(w)
	return nil
}

func (r *inMemoryWalletRepo) CreateTx(_ context.Context, _ pgx.Tx, w *domain.Wallet) error {
	r.put(w)
	return nil
}

func (r *inMemoryWalletRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if w, ok := r.store.wallets[id]; ok {
		cp := w
		return &cp, nil
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) GetByIDForUpdate(ctx context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryWalletRepo) GetByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.Wallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []domain.Wallet
	for _, w := range r.store.wallets {
		if w.OwnerID == ownerID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *inMemoryWalletRepo) GetByOwnerAndType(_ context.Context, ownerID uuid.UUID, walletType domain.WalletType, currency string) (*domain.Wallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, w := range r.store.wallets {
		if w.OwnerID == ownerID && w.Type == walletType && w.Currency == currency {
			cp := w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) GetByOwnerAndTypeForUpdate(ctx context.Context, _ pgx.Tx, ownerID uuid.UUID, walletType domain.WalletType, currency string) (*domain.Wallet, error) {
	return r.GetByOwnerAndType(ctx, ownerID, walletType, currency)
}

func (r *inMemoryWalletRepo) GetByPublicKey(_ context.Context, publicKey string) (*domain.Wallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, w := range r.store.wallets {
		if w.PublicKey != nil && *w.PublicKey == publicKey {
			cp := w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWalletRepo) GetByPublicKeyForUpdate(ctx context.Context, _ pgx.Tx, publicKey string) (*domain.Wallet, error) {
	return r.GetByPublicKey(ctx, publicKey)
}

func (r *inMemoryWalletRepo) UpdateBalance(_ context.Context, _ pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	w, ok := r.store.wallets[walletID]
	if !ok {
		return pgx.ErrNoRows
	}
	w.Balance = balance
	r.store.wallets[walletID] = w
	return nil
}

// inMemoryTransactionRepo implements ports.TransactionRepository on a
// memStore. Create enforces nonce uniqueness with the same error shape
// PostgreSQL produces, so the duplicate-nonce path behaves like
// production.
type inMemoryTransactionRepo struct {
	store *memStore
}

func newInMemoryTransactionRepo(store *memStore) *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{store: store}
}

func (r *inMemoryTransactionRepo) Create(_ context.Context, _ pgx.Tx, record *domain.TransactionRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.byNonce[record.Nonce]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "transactions_nonce_key"}
	}
	r.store.txs[record.ID] = *record
	r.store.byNonce[record.Nonce] = record.ID
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.TransactionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if rec, ok := r.store.txs[id]; ok {
		cp := rec
		return &cp, nil
	}
	return nil, nil
}

func (r *inMemoryTransactionRepo) GetByNonce(_ context.Context, nonce string) (*domain.TransactionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if id, ok := r.store.byNonce[nonce]; ok {
		rec := r.store.txs[id]
		return &rec, nil
	}
	return nil, nil
}

func (r *inMemoryTransactionRepo) ListBySenderWallets(_ context.Context, walletIDs []uuid.UUID, status *domain.TransactionStatus, limit int) ([]domain.TransactionRecord, error) {
	members := make(map[uuid.UUID]bool, len(walletIDs))
	for _, id := range walletIDs {
		members[id] = true
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []domain.TransactionRecord
	for _, rec := range r.store.txs {
		if !members[rec.SenderWalletID] {
			continue
		}
		if status != nil && rec.Status != *status {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SyncedAt.After(out[j].SyncedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *inMemoryTransactionRepo) ConfirmFromSynced(_ context.Context, _ pgx.Tx, id uuid.UUID, confirmedAt time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.store.txs[id]
	if !ok || rec.Status != domain.TransactionStatusSynced {
		return false, nil
	}
	rec.Status = domain.TransactionStatusConfirmed
	rec.ConfirmedAt = &confirmedAt
	r.store.txs[id] = rec
	return true, nil
}
