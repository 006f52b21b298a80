package history

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

// OpenBadger opens (or creates) a BadgerDB-backed Store in dir.
func OpenBadger(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("history: badger dir is required")
	}
	return openBadger(badger.DefaultOptions(dir))
}

// OpenBadgerInMemory opens a Store on a memory-only BadgerDB.
func OpenBadgerInMemory() (*Store, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true))
}

func openBadger(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts.WithLogger(slogLogger{}))
	if err != nil {
		return nil, err
	}
	return newStore(&badgerBackend{db: db}), nil
}

type badgerBackend struct {
	db *badger.DB
}

func (b *badgerBackend) get(key []byte) ([]byte, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

func (b *badgerBackend) set(key, val []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
}

func (b *badgerBackend) delete(keys ...[]byte) error {
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			return err
		}
	}
	return wb.Flush()
}

func (b *badgerBackend) scan(prefix []byte, fn func(key, val []byte) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = prefix
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(item.KeyCopy(nil), val); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *badgerBackend) close() error {
	return b.db.Close()
}

// slogLogger routes badger warnings and errors to slog, dropping the
// chatty info and debug output.
type slogLogger struct{}

func (slogLogger) Errorf(f string, v ...any)   { slog.Error("badger: " + sprintf(f, v...)) }
func (slogLogger) Warningf(f string, v ...any) { slog.Warn("badger: " + sprintf(f, v...)) }
func (slogLogger) Infof(string, ...any)        {}
func (slogLogger) Debugf(string, ...any)       {}

func sprintf(format string, args ...any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
