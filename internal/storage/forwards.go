package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/3cstudio/contentforge/internal/errors"
	"github.com/3cstudio/contentforge/internal/models"
)

// ForwardLog records templates handed off to the external dashboard. The log
// is append-only from the engine's side; the dashboard consumes and manages
// the records beyond that.
type ForwardLog struct {
	kv      KV
	records []models.ForwardRecord
}

// NewForwardLog loads the hand-off records from the backing store. Corrupt
// data falls back to an empty log with a warning.
func NewForwardLog(kv KV) *ForwardLog {
	l := &ForwardLog{kv: kv}

	raw, ok, err := kv.Get(KeyForwards)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", errors.LoadError("forward records", err))
		return l
	}
	if !ok {
		return l
	}
	if err := json.Unmarshal([]byte(raw), &l.records); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", errors.LoadError("forward records", err))
		l.records = nil
	}
	return l
}

// Append persists a new hand-off record.
func (l *ForwardLog) Append(record models.ForwardRecord) error {
	l.records = append(l.records, record)
	if err := l.persist(); err != nil {
		l.records = l.records[:len(l.records)-1]
		return err
	}
	return nil
}

// List returns the recorded hand-offs in append order.
func (l *ForwardLog) List() []models.ForwardRecord {
	out := make([]models.ForwardRecord, len(l.records))
	copy(out, l.records)
	return out
}

func (l *ForwardLog) persist() error {
	data, err := json.MarshalIndent(l.records, "", "  ")
	if err != nil {
		return errors.PersistenceError("serialize forward records", err)
	}
	if err := l.kv.Set(KeyForwards, string(data)); err != nil {
		return errors.PersistenceError("write forward records", err)
	}
	return nil
}
