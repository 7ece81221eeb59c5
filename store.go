// Store: the log + index component.
//
// A Store does not hold long-lived file handles. Each mutation opens the
// log, appends, flushes, and closes; each read opens the log, seeks,
// decodes, and closes. The only long-lived state is the in-memory index
// and the two counters.
package kvs

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// logName is the single log file every Store operates on.
const logName = "db.bson"

// compactTmpName is the transient file used while rewriting the log.
const compactTmpName = "bath.bson"

// Store is an open, single-caller handle onto a durable key-value log.
// It is not safe for concurrent use from multiple goroutines, and not
// safe to open twice against the same directory.
type Store struct {
	dir    string
	config Config
	index  map[string]int64
	total  int
	actual int
	closed bool
}

// Open constructs a Store rooted at dir. If dir/db.bson does not exist,
// Open returns an empty store — the log is created lazily on first
// write. If it exists, Open replays it in full to rebuild the index.
func Open(dir string, config Config) (*Store, error) {
	s := &Store{
		dir:    dir,
		config: config.withDefaults(),
		index:  make(map[string]int64),
	}

	path := s.logPath()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, ioError("open", path, err)
	}
	defer f.Close()

	if err := s.replay(f); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) logPath() string {
	return filepath.Join(s.dir, logName)
}

// replay reads every record from the start of f, rebuilding the index
// and counters. A short or invalid trailing record stops replay cleanly
// rather than erroring.
func (s *Store) replay(f *os.File) error {
	r := bufio.NewReaderSize(f, s.config.ReadBufferSize)
	var pos int64

	for {
		rec, n, err := decodeRecord(r, s.config.MaxRecordSize)
		if err != nil {
			break
		}
		s.total++
		if rec.Remove {
			delete(s.index, rec.Key)
		} else {
			s.index[rec.Key] = pos
		}
		pos += int64(n)
	}

	s.actual = len(s.index)
	return nil
}

// append opens the log in append mode, learns the pre-write length via
// Stat — never Seek, which in append mode does not reliably report the
// position a subsequent Write will land at — writes data at that
// offset, flushes, and closes. Returns the offset the record now
// occupies.
func (s *Store) append(data []byte) (int64, error) {
	path := s.logPath()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return 0, ioError("open", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, ioError("stat", path, err)
	}
	offset := info.Size()

	if _, err := f.Write(data); err != nil {
		return 0, ioError("write", path, err)
	}
	if s.config.SyncWrites {
		if err := f.Sync(); err != nil {
			return 0, ioError("sync", path, err)
		}
	}
	return offset, nil
}

// Set creates or updates a key's value.
func (s *Store) Set(key, value string) error {
	if s.closed {
		return ErrClosed
	}

	data, err := encodeSet(key, value)
	if err != nil {
		return err
	}

	offset, err := s.append(data)
	if err != nil {
		return err
	}

	if _, existed := s.index[key]; !existed {
		s.actual++
	}
	s.index[key] = offset
	s.total++

	return s.maybeCompact()
}

// Get returns the current value bound to key, or ("", false, nil) if
// key is not bound. Get of an unbound key is not an error.
func (s *Store) Get(key string) (string, bool, error) {
	if s.closed {
		return "", false, ErrClosed
	}

	offset, ok := s.index[key]
	if !ok {
		return "", false, nil
	}

	path := s.logPath()
	f, err := os.Open(path)
	if err != nil {
		return "", false, ioError("open", path, err)
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return "", false, ioError("seek", path, err)
	}

	rec, _, err := decodeRecord(f, s.config.MaxRecordSize)
	if err != nil || rec.Remove || rec.Key != key {
		return "", false, ErrCorrupt
	}
	return rec.Value, true, nil
}

// Remove unbinds key. Returns ErrKeyNotFound if key was not bound, and
// performs no write in that case.
func (s *Store) Remove(key string) error {
	if s.closed {
		return ErrClosed
	}

	if _, ok := s.index[key]; !ok {
		return ErrKeyNotFound
	}

	data, err := encodeRemove(key)
	if err != nil {
		return err
	}

	if _, err := s.append(data); err != nil {
		return err
	}

	delete(s.index, key)
	s.actual--
	s.total += 2

	return s.maybeCompact()
}

// Len returns the number of live keys (the actual counter).
func (s *Store) Len() int {
	return s.actual
}

// Close releases the store. The log file itself is not touched — there
// is no long-lived handle to release; every operation already closes
// its file on return.
func (s *Store) Close() error {
	s.closed = true
	return nil
}
