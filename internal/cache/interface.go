package cache

import (
	"time"

	"github.com/quantmind-br/evp/internal/domain"
)

// Ensure BadgerCache implements domain.Cache
var _ domain.Cache = (*BadgerCache)(nil)

// InstallRecord is the cached value for a package the package manager installed
type InstallRecord struct {
	Package     string    `json:"package"`
	Root        string    `json:"root"`
	InstalledAt time.Time `json:"installed_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsExpired returns true if the record has expired
func (r *InstallRecord) IsExpired() bool {
	return time.Now().After(r.ExpiresAt)
}

// Options contains cache configuration options
type Options struct {
	Directory string
	InMemory  bool
	Logger    bool
}
