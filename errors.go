package kvs

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by store operations.
var (
	// ErrKeyNotFound is returned by Remove when the key is not bound,
	// and by Rename when the old label doesn't exist. Get never returns
	// it — an absent key is not an error there, see Get's doc comment.
	ErrKeyNotFound = errors.New("kvs: key not found")

	// ErrKeyExists is returned by Rename when the new label is already bound.
	ErrKeyExists = errors.New("kvs: key already exists")

	// ErrClosed is returned by any operation on a closed Store.
	ErrClosed = errors.New("kvs: store is closed")

	// ErrCorrupt is returned when an indexed offset does not decode to
	// the Set record the index expects — index/log divergence.
	ErrCorrupt = errors.New("kvs: index/log divergence")
)

// ioError wraps an underlying filesystem failure with the operation and
// path that produced it, using %w wrapping rather than a dedicated
// error type hierarchy.
func ioError(op, path string, err error) error {
	return fmt.Errorf("kvs: %s %s: %w", op, path, err)
}
