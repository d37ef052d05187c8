package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/af-corp/model-catalog/internal/types"
)

// RecordSource produces a complete unified record set.
type RecordSource interface {
	Load(ctx context.Context) ([]types.ModelRecord, error)
}

// FileSource loads a JSON snapshot.
type FileSource struct {
	Path string
}

func (s FileSource) Load(_ context.Context) ([]types.ModelRecord, error) {
	return LoadSnapshot(s.Path)
}

type recordSet struct {
	records  []types.ModelRecord
	loadedAt time.Time
}

// Holder owns the current record set. Readers never see a partially
// loaded set; a reload swaps the whole slice.
type Holder struct {
	current atomic.Pointer[recordSet]
}

func NewHolder() *Holder {
	return &Holder{}
}

// Reload replaces the record set from src. On error the previous set stays.
func (h *Holder) Reload(ctx context.Context, src RecordSource) error {
	records, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload catalog: %w", err)
	}
	h.Set(records)
	return nil
}

// Set installs records as the current set. The caller must not mutate them
// afterwards.
func (h *Holder) Set(records []types.ModelRecord) {
	if records == nil {
		records = []types.ModelRecord{}
	}
	h.current.Store(&recordSet{records: records, loadedAt: time.Now()})
}

// Records returns the current set and whether one was ever loaded.
func (h *Holder) Records() ([]types.ModelRecord, bool) {
	s := h.current.Load()
	if s == nil {
		return nil, false
	}
	return s.records, true
}

// LoadedAt reports when the current set was installed.
func (h *Holder) LoadedAt() time.Time {
	if s := h.current.Load(); s != nil {
		return s.loadedAt
	}
	return time.Time{}
}
