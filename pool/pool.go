// Package pool holds the underlying lending pool collaborator: the
// adapter surface the core calls into, and a deterministic in-memory
// simulator of it for tests and the daemon's dev mode.
//
// The pool is authoritative for its own two indices; the core never
// computes them, it only reads them during index accrual.
package pool

import (
	"github.com/pkg/errors"
)

var (
	// ErrUnknownAsset is returned for an asset the pool was never told about.
	ErrUnknownAsset = errors.New("unknown asset in pool")
	// ErrInsufficientLiquidity is returned when a borrow exceeds the pool's
	// available liquidity.
	ErrInsufficientLiquidity = errors.New("insufficient pool liquidity")
)
