// Package kv is the string-keyed blob store the rest of poolup persists
// through. Values are whole JSON documents; a write fully replaces the value
// under its key, there is no partial-update API. Last write wins.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound marks a key that has never been written (or was deleted).
// Callers that store lists treat it as an empty list, not a failure.
var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}
