// Package history records the raw command lines executed in a REPL session.
//
// A Store is owned by a single goroutine. Every operation is a request
// message sent over a channel and answered synchronously, so concurrent
// callers are totally ordered and never observe a partial update.
//
// Entries are kept newest-first internally (constant-time push) and exposed
// oldest-first with dense indices starting at 0. Flush empties the store and
// restarts numbering, so an index obtained before a flush may no longer be
// valid afterwards.
package history
