// Package badger provides the BadgerDB-backed ledger store.
package badger

import (
	"context"
	"crypto/ed25519"
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"github.com/plinko-labs/token-burner/pkg/burner/ledger"
)

// prefixAccount is the key prefix for account records.
// Key format: prefixAccount + address (32 bytes)
var prefixAccount = []byte{0x01}

// Config contains configuration for the underlying BadgerDB.
type Config struct {
	// Path is the directory path for the database. Ignored when InMemory
	// is set.
	Path string

	// InMemory runs the database in memory (for testing).
	InMemory bool

	// SyncWrites ensures writes are synced to disk before commit is
	// acknowledged.
	SyncWrites bool
}

type store struct {
	db *badger.DB
}

// New opens a BadgerDB-backed ledger.Store.
func New(cfg Config) (ledger.Store, func() error, error) {
	opts := badger.DefaultOptions(cfg.Path)

	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}

	opts = opts.
		WithSyncWrites(cfg.SyncWrites).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open badger")
	}

	return &store{db: db}, db.Close, nil
}

func (s *store) Update(ctx context.Context, fn func(tx ledger.Tx) error) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return fn(&tx{txn: txn})
	})
}

func (s *store) View(ctx context.Context, fn func(tx ledger.Tx) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		return fn(&tx{txn: txn})
	})
}

type tx struct {
	txn *badger.Txn
}

func (t *tx) Get(address ed25519.PublicKey) (*ledger.Account, error) {
	item, err := t.txn.Get(accountKey(address))
	if err == badger.ErrKeyNotFound {
		return nil, ledger.ErrAccountNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}

	var account *ledger.Account
	err = item.Value(func(val []byte) error {
		account, err = unmarshalAccount(val)
		return err
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (t *tx) Put(address ed25519.PublicKey, account *ledger.Account) error {
	return t.txn.Set(accountKey(address), marshalAccount(account))
}

func (t *tx) Delete(address ed25519.PublicKey) error {
	return t.txn.Delete(accountKey(address))
}

func accountKey(address ed25519.PublicKey) []byte {
	return append(prefixAccount, address...)
}

// Record format: lamports (8) + owner (32) + data_len (4) + data
func marshalAccount(account *ledger.Account) []byte {
	b := make([]byte, 8+32+4+len(account.Data))
	binary.LittleEndian.PutUint64(b, account.Lamports)
	copy(b[8:], account.Owner)
	binary.LittleEndian.PutUint32(b[40:], uint32(len(account.Data)))
	copy(b[44:], account.Data)
	return b
}

func unmarshalAccount(b []byte) (*ledger.Account, error) {
	if len(b) < 44 {
		return nil, errors.New("invalid account record")
	}

	account := &ledger.Account{
		Lamports: binary.LittleEndian.Uint64(b),
		Owner:    make(ed25519.PublicKey, ed25519.PublicKeySize),
	}
	copy(account.Owner, b[8:40])

	dataLen := binary.LittleEndian.Uint32(b[40:])
	if len(b) != 44+int(dataLen) {
		return nil, errors.New("invalid account record")
	}
	account.Data = make([]byte, dataLen)
	copy(account.Data, b[44:])

	return account, nil
}
