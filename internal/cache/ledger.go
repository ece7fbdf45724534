package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/quantmind-br/evp/internal/domain"
)

// Ledger remembers which packages were installed successfully so a build can
// skip the package manager until the record expires.
type Ledger struct {
	cache domain.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewLedger creates a ledger over c. A nil cache disables the ledger: nothing
// is ever reported as installed.
func NewLedger(c domain.Cache, ttl time.Duration) *Ledger {
	return &Ledger{cache: c, ttl: ttl, now: time.Now}
}

// Installed reports whether name has a live install record under root
func (l *Ledger) Installed(ctx context.Context, root, name string) bool {
	if l == nil || l.cache == nil {
		return false
	}
	data, err := l.cache.Get(ctx, PackageKey(root, name))
	if err != nil {
		return false
	}
	var rec InstallRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return false
	}
	return !rec.IsExpired()
}

// Record stores a successful install of name under root
func (l *Ledger) Record(ctx context.Context, root, name string) error {
	if l == nil || l.cache == nil {
		return nil
	}
	now := l.now()
	rec := InstallRecord{
		Package:     name,
		Root:        root,
		InstalledAt: now,
		ExpiresAt:   now.Add(l.ttl),
	}
	if l.ttl <= 0 {
		rec.ExpiresAt = now.AddDate(100, 0, 0)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return l.cache.Set(ctx, PackageKey(root, name), data, l.ttl)
}

// Forget drops the install record of name under root
func (l *Ledger) Forget(ctx context.Context, root, name string) error {
	if l == nil || l.cache == nil {
		return nil
	}
	return l.cache.Delete(ctx, PackageKey(root, name))
}
