package services

import (
	"context"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gympro/internal/client/repositories/metadata"
)

const keyLastSync = "last_sync"

// Preferences keeps user-facing settings in the metadata table.
type Preferences struct {
	meta metadata.Repository
	now  func() time.Time
}

func NewPreferences(meta metadata.Repository) *Preferences {
	return &Preferences{meta: meta, now: time.Now}
}

// UpdateLastSync stores the current time as unix milliseconds.
func (p *Preferences) UpdateLastSync(ctx context.Context) error {
	return p.meta.Set(ctx, keyLastSync, []byte(strconv.FormatInt(p.now().UnixMilli(), 10)))
}

// LastSync reports false when nothing has been recorded.
func (p *Preferences) LastSync(ctx context.Context) (time.Time, bool, error) {
	raw, err := p.meta.Get(ctx, keyLastSync)
	if err != nil || raw == nil {
		return time.Time{}, false, err
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(ms).UTC(), true, nil
}
