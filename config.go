package kvs

// Config holds store configuration options. The zero value applies the
// defaults below: a caller that passes Config{} gets a fully usable
// store.
type Config struct {
	// ReadBufferSize sets the size of the buffered reader used for log
	// replay. Point reads decode straight from the file and do not use
	// it. Default 64KiB.
	ReadBufferSize int

	// MaxRecordSize bounds the size of a single decoded record, guarding
	// against unbounded allocation from a corrupt length prefix. Default 16MiB.
	MaxRecordSize int

	// SyncWrites, when true, calls fsync on the log's file descriptor
	// after every append. Default false: a completed Write call is
	// durable enough for most callers — fsync is offered, not required.
	SyncWrites bool
}

const (
	defaultReadBufferSize = 64 * 1024
	defaultMaxRecordSize  = 16 * 1024 * 1024
)

// withDefaults fills zero-valued fields with the defaults above.
func (c Config) withDefaults() Config {
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = defaultReadBufferSize
	}
	if c.MaxRecordSize == 0 {
		c.MaxRecordSize = defaultMaxRecordSize
	}
	return c
}

// maxRecordSize bounds decodeRecord's allocation in the absence of a
// Store (e.g. during low-level codec tests).
const maxRecordSize = defaultMaxRecordSize
