// Package persist stores finished battles as replay records: the setup, the
// accepted intent journal, and the final state. A record is enough to
// re-drive the battle deterministically and verify the stored log.
package persist

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

// ErrNotFound is returned when a replay record does not exist.
var ErrNotFound = errors.New("replay record not found")

// newRecordID generates compact, URL-safe record identifiers.
var newRecordID = func() func() string {
	gen, err := nanoid.Standard(21)
	if err != nil {
		panic("failed to create nanoid generator: " + err.Error())
	}
	return gen
}()

// ReplayRecord is one stored battle. Setup, Journal, FinalState, and Log
// are codec blobs owned by the battle package's serializable types.
type ReplayRecord struct {
	// ID is the record key.
	ID string

	// BattleID identifies the battle session the record was taken from.
	BattleID string

	Seed       uint64
	Setup      []byte
	Journal    []byte
	FinalState []byte
	Log        []byte

	Phase      string
	Rounds     int
	GoldEarned int

	CreatedAt time.Time
}

// NewReplayRecord stamps identity and creation time onto a record. The
// battle id is kept when the caller already has one.
func NewReplayRecord(battleID string) *ReplayRecord {
	if battleID == "" {
		battleID = uuid.NewString()
	}
	return &ReplayRecord{
		ID:        newRecordID(),
		BattleID:  battleID,
		CreatedAt: time.Now().UTC(),
	}
}

// ReplayRepository stores and retrieves replay records.
type ReplayRepository interface {
	// Save inserts a record.
	Save(ctx context.Context, record *ReplayRecord) error

	// Get retrieves a record by id.
	Get(ctx context.Context, id string) (*ReplayRecord, error)

	// List returns the newest records, most recent first.
	List(ctx context.Context, limit int) ([]*ReplayRecord, error)

	// Delete removes a record by id.
	Delete(ctx context.Context, id string) error

	// Close releases the underlying store.
	Close() error
}
