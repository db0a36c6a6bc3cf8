// Package fetch guards view caches against superseded fetches. Every fetch a
// view triggers takes a token from the view's Tokens; the response may only
// be applied while its token is still the latest one issued. A stale response
// is dropped instead of overwriting the result of a newer request.
package fetch

import "sync/atomic"

// Tokens issues monotonically increasing request tokens for one view.
// The zero value is ready for use.
type Tokens struct {
	latest atomic.Uint64
}

// Next issues a new token, superseding all earlier ones.
func (t *Tokens) Next() uint64 {
	return t.latest.Add(1)
}

// Latest reports whether token is still the most recently issued one.
func (t *Tokens) Latest(token uint64) bool {
	return t.latest.Load() == token
}
