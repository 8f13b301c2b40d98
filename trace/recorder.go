package trace

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/tessera/internal/canon"
	"github.com/roach88/tessera/tree"
)

// RecorderTapID names the recorder in a tree's pipeline.
const RecorderTapID = "tessera.trace"

// RecorderOption configures a recorder tap.
type RecorderOption func(*recorder)

// WithClock supplies the logical clock, typically NewClockAt(store.MaxSeq)
// when appending to an existing trace. Default: a fresh clock at 0.
func WithClock(c *Clock) RecorderOption {
	return func(r *recorder) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithRecorderLogger sets the logger for write failures. The recorder never
// propagates errors into the mutation pipeline; a failed write is logged
// and dropped.
func WithRecorderLogger(l *slog.Logger) RecorderOption {
	return func(r *recorder) {
		if l != nil {
			r.log = l
		}
	}
}

type recorder struct {
	store *Store
	clock *Clock
	log   *slog.Logger
}

// Recorder builds a tap that records every committed mutation (UPDATE,
// UNDO and REDO alike) into the store. Register it with tree.AddTap.
//
// The tap's Before hook never vetoes; recording happens entirely in After,
// against committed snapshots.
func Recorder(store *Store, opts ...RecorderOption) tree.Tap {
	r := &recorder{
		store: store,
		clock: NewClock(),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return tree.Tap{
		ID:    RecorderTapID,
		After: r.record,
	}
}

func (r *recorder) record(action string, payload any, old, new tree.Snapshot) {
	entry := Entry{
		ID:     uuid.Must(uuid.NewV7()).String(),
		Seq:    r.clock.Next(),
		Action: action,
		At:     time.Now(),
	}

	var err error
	if entry.Payload, err = marshalPayload(payload); err != nil {
		r.log.Warn("trace: payload not representable, recording empty payload",
			"action", action, "error", err)
		entry.Payload = "{}"
	}
	if entry.Old, err = marshalSnapshot(old); err != nil {
		r.log.Warn("trace: dropping mutation, old snapshot not representable",
			"action", action, "error", err)
		return
	}
	if entry.New, err = marshalSnapshot(new); err != nil {
		r.log.Warn("trace: dropping mutation, new snapshot not representable",
			"action", action, "error", err)
		return
	}

	if err := r.store.Write(context.Background(), entry); err != nil {
		r.log.Warn("trace: write failed", "action", action, "seq", entry.Seq, "error", err)
	}
}

// marshalSnapshot converts a snapshot to canonical JSON text for storage.
func marshalSnapshot(s tree.Snapshot) (string, error) {
	data, err := canon.Marshal(map[string]any(s))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// marshalPayload handles the payload's two shapes: a partial snapshot for
// UPDATE, a full target snapshot for UNDO/REDO.
func marshalPayload(payload any) (string, error) {
	switch p := payload.(type) {
	case nil:
		return "{}", nil
	case tree.Snapshot:
		return marshalSnapshot(p)
	case map[string]any:
		return marshalSnapshot(tree.Snapshot(p))
	default:
		data, err := canon.Marshal(payload)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
