package memory

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/plinko-labs/token-burner/pkg/burner/ledger"
)

type store struct {
	mu       sync.Mutex
	accounts map[string]*ledger.Account
}

type tx struct {
	base    map[string]*ledger.Account
	staged  map[string]*ledger.Account
	deleted map[string]struct{}
}

// New returns an in-memory ledger.Store.
func New() ledger.Store {
	return &store{
		accounts: make(map[string]*ledger.Account),
	}
}

func (s *store) reset() {
	s.mu.Lock()
	s.accounts = make(map[string]*ledger.Account)
	s.mu.Unlock()
}

func (s *store) Update(ctx context.Context, fn func(tx ledger.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn := newTx(s.accounts)
	if err := fn(txn); err != nil {
		return err
	}

	for address := range txn.deleted {
		delete(s.accounts, address)
	}
	for address, account := range txn.staged {
		s.accounts[address] = account
	}

	return nil
}

func (s *store) View(ctx context.Context, fn func(tx ledger.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(newTx(s.accounts))
}

func newTx(base map[string]*ledger.Account) *tx {
	return &tx{
		base:    base,
		staged:  make(map[string]*ledger.Account),
		deleted: make(map[string]struct{}),
	}
}

func (t *tx) Get(address ed25519.PublicKey) (*ledger.Account, error) {
	key := string(address)

	if _, ok := t.deleted[key]; ok {
		return nil, ledger.ErrAccountNotFound
	}
	if account, ok := t.staged[key]; ok {
		return account.Clone(), nil
	}
	if account, ok := t.base[key]; ok {
		return account.Clone(), nil
	}
	return nil, ledger.ErrAccountNotFound
}

func (t *tx) Put(address ed25519.PublicKey, account *ledger.Account) error {
	key := string(address)

	delete(t.deleted, key)
	t.staged[key] = account.Clone()

	return nil
}

func (t *tx) Delete(address ed25519.PublicKey) error {
	key := string(address)

	delete(t.staged, key)
	t.deleted[key] = struct{}{}

	return nil
}
