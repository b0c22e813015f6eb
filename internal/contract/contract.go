// Package contract provides interfaces and shared utilities for lineheat's
// internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/lineheat/lineheat/schema"
)

// ErrUnsupportedOperation is returned by a VCS client for a history
// capability the underlying system does not provide (e.g. line-range
// logs on Perforce).
var ErrUnsupportedOperation = errors.New("operation not supported by this VCS")

// VCSClient defines the history operations the extraction engine needs.
// This allows the core logic to be tested without a real git/p4 binary.
// All operations run with dir as the working directory and treat a
// non-zero subprocess exit as an error.
type VCSClient interface {
	// Kind identifies the backing VCS.
	Kind() schema.VCSKind

	// Blame attributes each current line of file to the change that last
	// touched it, including that change's timestamp. The result has one
	// entry per line, in order.
	Blame(ctx context.Context, dir, file string) ([]schema.BlameLine, error)

	// CountLineCommits returns the number of history entries touching the
	// given 1-based line of file.
	CountLineCommits(ctx context.Context, dir, file string, line int) (int, error)

	// PatchLog returns the raw full history of file with patches, oldest
	// semantics left to the caller's parser. follow requests rename
	// following where the VCS supports it.
	PatchLog(ctx context.Context, dir, file string, follow bool) ([]byte, error)

	// HeadRef returns an identity for the current tip of history, used to
	// key cached extraction results.
	HeadRef(ctx context.Context, dir string) (string, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetSignalStore() CacheStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}
