// Package kvs is an embeddable, durable key-value store built on an
// append-only command log with an in-memory index.
//
// A caller opens a Store rooted at a directory; Set, Get, and Remove
// operate on arbitrary UTF-8 keys and values. Every mutation is recorded
// as a self-delimiting BSON document appended to a single log file
// (db.bson); an in-memory index maps live keys to the byte offset of
// their most recent Set. The engine periodically compacts the log to
// reclaim space from overwritten or removed records.
//
// A Store is not safe for concurrent use from multiple goroutines, and
// not safe to open twice against the same directory — it assumes a
// single, synchronous caller.
package kvs
