// Package chain models the host environment the ledger runs on: a block
// clock and a bank that moves value between accounts.
package chain

import "time"

// Clock returns the current block timestamp in Unix milliseconds.
type Clock interface {
	Now() int64
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() int64

func (f ClockFunc) Now() int64 { return f() }

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() int64 { return time.Now().UnixMilli() }
