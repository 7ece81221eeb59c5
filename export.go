// Compressed snapshot backup: dumps the live key/value set as
// newline-delimited JSON, zstd-compressed, into a single portable file,
// and reloads it through SetMany. This is a backup feature, not a
// second storage engine — it never reads or writes db.bson directly,
// and Import goes through the same Set path (and therefore the same
// compaction trigger) as any other write.
package kvs

import (
	"bufio"
	"io"
	"os"
	"sort"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

// exportEntry is one line of the export format.
type exportEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Export writes every live key/value pair to path as zstd-compressed,
// newline-delimited JSON. Keys are sorted for a reproducible diff
// between snapshots.
func (s *Store) Export(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return ioError("create", path, err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return err
	}
	defer zw.Close()

	enc := json.NewEncoder(zw)

	keys := s.Keys()
	sort.Strings(keys)
	for _, k := range keys {
		value, ok, err := s.Get(k)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := enc.Encode(exportEntry{Key: k, Value: value}); err != nil {
			return err
		}
	}

	return nil
}

// Import reads an Export-produced file and applies every pair via
// SetMany, so the import participates in the normal compaction trigger.
func (s *Store) Import(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return ioError("open", path, err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return err
	}
	defer zr.Close()

	pairs := make(map[string]string)
	dec := json.NewDecoder(bufio.NewReader(zr))
	for {
		var entry exportEntry
		if err := dec.Decode(&entry); err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		pairs[entry.Key] = entry.Value
	}

	if len(pairs) == 0 {
		return nil
	}
	return s.SetMany(pairs)
}
