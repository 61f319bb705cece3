// Package storage defines the persistence contract for the wedding details
// record.
package storage

import (
	"context"
	"errors"

	"github.com/goldencity/invite/internal/wedding"
)

// ErrNotFound reports that no wedding details record has been saved yet.
var ErrNotFound = errors.New("wedding details not found")

// RecordStore persists the singleton wedding details record.
//
// Put is a whole-record upsert: it inserts when the record is absent and
// replaces every field otherwise. Concurrent Puts race last-write-wins; no
// conflict is detected or reported.
type RecordStore interface {
	Get(ctx context.Context) (wedding.Details, error)
	Put(ctx context.Context, details wedding.Details) error
}
