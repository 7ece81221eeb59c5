// Compactor: rewrites the log to contain only live records.
package kvs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// maybeCompact evaluates the trigger after every Set/Remove and
// compacts if it fires. total/(actual+1) > 2 means at least two-thirds
// of the log is garbage.
func (s *Store) maybeCompact() error {
	if s.total/(s.actual+1) <= 2 {
		return nil
	}
	return s.compact()
}

// compact writes every live key's current value to a temp file in the
// same directory, atomically swaps it in for the log, then rebuilds the
// index and counters by replaying the new file exactly as Open does.
// The swap is a single atomic replace rather than a separate
// remove-then-rename, so a crash mid-compaction can never leave the log
// path missing.
func (s *Store) compact() error {
	var buf bytes.Buffer
	for key, offset := range s.index {
		value, err := s.readAt(offset, key)
		if err != nil {
			return err
		}
		data, err := encodeSet(key, value)
		if err != nil {
			return err
		}
		buf.Write(data)
	}

	tmpPath := filepath.Join(s.dir, compactTmpName)
	if err := atomic.WriteFile(tmpPath, &buf); err != nil {
		return ioError("write", tmpPath, err)
	}

	logPath := s.logPath()
	if err := atomic.ReplaceFile(tmpPath, logPath); err != nil {
		return ioError("rename", logPath, err)
	}

	return s.reload()
}

// readAt decodes the Set record at offset and checks its key matches,
// the same verification Get performs.
func (s *Store) readAt(offset int64, key string) (string, error) {
	path := s.logPath()
	f, err := os.Open(path)
	if err != nil {
		return "", ioError("open", path, err)
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return "", ioError("seek", path, err)
	}

	rec, _, err := decodeRecord(f, s.config.MaxRecordSize)
	if err != nil || rec.Remove || rec.Key != key {
		return "", ErrCorrupt
	}
	return rec.Value, nil
}

// reload rebuilds the index and counters from the current log file. It
// is the post-compaction step, and doubles as the recovery path if a
// later step in compact fails after the swap has already happened:
// in-memory state is made consistent with whatever file is now at the
// log path.
func (s *Store) reload() error {
	s.index = make(map[string]int64)
	s.total = 0
	s.actual = 0

	path := s.logPath()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return ioError("open", path, err)
	}
	defer f.Close()

	return s.replay(f)
}
