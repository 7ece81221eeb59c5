// Command codec.
//
// Every mutation is recorded as a single self-delimiting BSON document:
// a Set carries its key and value, a Remove carries only its key. BSON
// documents are self-delimiting by construction — the first four bytes
// of any document are a little-endian int32 giving the document's total
// length, itself included — so decoding a sequence of records from a
// positioned stream needs no separate framing layer. A short or
// malformed length prefix, or a document that fails to unmarshal, ends
// replay at that position rather than erroring: see decodeRecord.
package kvs

import (
	"encoding/binary"
	"errors"
	"io"

	"go.mongodb.org/mongo-driver/bson"
)

// opSet and opRemove are the wire discriminators for the command union.
const (
	opSet    = "set"
	opRemove = "rm"
)

// command is the on-disk shape of a single logical mutation. Value is
// omitted from Remove records (bson "omitempty" leaves the field out of
// the encoded document rather than writing an empty string, keeping Rm
// records minimal).
type command struct {
	Op    string `bson:"op"`
	Key   string `bson:"key"`
	Value string `bson:"value,omitempty"`
}

// Record is the decoded, caller-facing form of a single log entry.
type Record struct {
	Key    string
	Value  string
	Remove bool
}

// minBSONSize is the smallest possible BSON document: a 4-byte length
// prefix and the trailing NUL terminator.
const minBSONSize = 5

// errEndOfLog signals a clean or torn end of the record stream: either
// genuine EOF, or a record that didn't fully decode at this position.
// Replay treats both identically — see store.go's replay loop.
var errEndOfLog = errors.New("kvs: end of log")

// encodeSet serializes a Set{key, value} command.
func encodeSet(key, value string) ([]byte, error) {
	return bson.Marshal(command{Op: opSet, Key: key, Value: value})
}

// encodeRemove serializes a Remove{key} command.
func encodeRemove(key string) ([]byte, error) {
	return bson.Marshal(command{Op: opRemove, Key: key})
}

// decodeRecord reads exactly one command from r's current position,
// rejecting any declared document length over maxSize. It returns
// errEndOfLog — never wrapped — on clean EOF or on any decode failure
// at the boundary: a short or invalid trailing record simply ends
// replay rather than erroring, which is how replay finds the log's end.
func decodeRecord(r io.Reader, maxSize int) (Record, int, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return Record{}, 0, errEndOfLog
	}

	docLen := int32(binary.LittleEndian.Uint32(lenBuf[:]))
	if docLen < minBSONSize || int(docLen) > maxSize {
		return Record{}, 0, errEndOfLog
	}

	doc := make([]byte, docLen)
	copy(doc, lenBuf[:])
	if _, err := io.ReadFull(r, doc[4:]); err != nil {
		return Record{}, 0, errEndOfLog
	}

	var cmd command
	if err := bson.Unmarshal(doc, &cmd); err != nil {
		return Record{}, 0, errEndOfLog
	}

	switch cmd.Op {
	case opSet:
		return Record{Key: cmd.Key, Value: cmd.Value}, len(doc), nil
	case opRemove:
		return Record{Key: cmd.Key, Remove: true}, len(doc), nil
	default:
		return Record{}, 0, errEndOfLog
	}
}
