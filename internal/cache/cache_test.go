package cache

import (
	"context"
	"testing"
	"time"

	"github.com/quantmind-br/evp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemCache(t *testing.T) *BadgerCache {
	t.Helper()
	c, err := NewBadgerCache(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// TestInstallRecord_IsExpired tests record expiration
func TestInstallRecord_IsExpired(t *testing.T) {
	tests := []struct {
		name     string
		record   *InstallRecord
		expected bool
	}{
		{
			name:     "not expired",
			record:   &InstallRecord{ExpiresAt: time.Now().Add(1 * time.Hour)},
			expected: false,
		},
		{
			name:     "expired",
			record:   &InstallRecord{ExpiresAt: time.Now().Add(-1 * time.Hour)},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.IsExpired())
		})
	}
}

func TestPackageKey(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T)
	}{
		{
			name: "consistent for same input",
			check: func(t *testing.T) {
				assert.Equal(t, PackageKey("/opt/vcpkg", "fmt"), PackageKey("/opt/vcpkg", "fmt"))
			},
		},
		{
			name: "case-insensitive package name",
			check: func(t *testing.T) {
				assert.Equal(t, PackageKey("/opt/vcpkg", "fmt"), PackageKey("/opt/vcpkg", "FMT"))
			},
		},
		{
			name: "root is cleaned",
			check: func(t *testing.T) {
				assert.Equal(t, PackageKey("/opt/vcpkg", "fmt"), PackageKey("/opt/vcpkg/", "fmt"))
			},
		},
		{
			name: "different roots differ",
			check: func(t *testing.T) {
				assert.NotEqual(t, PackageKey("/opt/vcpkg", "fmt"), PackageKey("/home/me/vcpkg", "fmt"))
			},
		},
		{
			name: "prefixed sha256",
			check: func(t *testing.T) {
				key := PackageKey("", "zlib")
				assert.Equal(t, len(PrefixPackage)+1+64, len(key))
				assert.Contains(t, key, PrefixPackage+":")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.check)
	}
}

func TestNewBadgerCache_OnDisk(t *testing.T) {
	dir := t.TempDir()

	c, err := NewBadgerCache(Options{Directory: dir})
	require.NoError(t, err)
	require.NoError(t, c.Close())
	// second Close must not panic on the GC stop channel
	assert.NotPanics(t, func() { _ = c.Close() })
}

func TestBadgerCache_GetSetHasDelete(t *testing.T) {
	ctx := context.Background()
	c := newMemCache(t)

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.False(t, c.Has(ctx, "missing"))

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	assert.True(t, c.Has(ctx, "k"))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, c.Has(ctx, "k"))
}

func TestBadgerCache_ClearAndSize(t *testing.T) {
	ctx := context.Background()
	c := newMemCache(t)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	assert.Equal(t, int64(2), c.Size())

	require.NoError(t, c.Clear())
	assert.Equal(t, int64(0), c.Size())
}

func TestLedger_RecordAndInstalled(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newMemCache(t), time.Hour)

	assert.False(t, l.Installed(ctx, "/opt/vcpkg", "fmt"))

	require.NoError(t, l.Record(ctx, "/opt/vcpkg", "fmt"))
	assert.True(t, l.Installed(ctx, "/opt/vcpkg", "fmt"))
	assert.False(t, l.Installed(ctx, "/other/vcpkg", "fmt"))

	require.NoError(t, l.Forget(ctx, "/opt/vcpkg", "fmt"))
	assert.False(t, l.Installed(ctx, "/opt/vcpkg", "fmt"))
}

func TestLedger_ExpiredRecord(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newMemCache(t), time.Hour)
	l.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	require.NoError(t, l.Record(ctx, "", "fmt"))
	assert.False(t, l.Installed(ctx, "", "fmt"))
}

func TestLedger_NilCache(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(nil, time.Hour)

	assert.NoError(t, l.Record(ctx, "", "fmt"))
	assert.False(t, l.Installed(ctx, "", "fmt"))
	assert.NoError(t, l.Forget(ctx, "", "fmt"))
}
