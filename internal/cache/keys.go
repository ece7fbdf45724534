package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// PrefixPackage namespaces install records
const PrefixPackage = "pkg"

// PackageKey generates the cache key for a package installed under a package
// manager root. Package names are compared case-insensitively, matching vcpkg
// port names.
func PackageKey(root, name string) string {
	normalized := normalizeRoot(root) + "\x00" + strings.ToLower(strings.TrimSpace(name))
	hash := sha256.Sum256([]byte(normalized))
	return PrefixPackage + ":" + hex.EncodeToString(hash[:])
}

func normalizeRoot(root string) string {
	if root == "" {
		return ""
	}
	return filepath.Clean(root)
}
