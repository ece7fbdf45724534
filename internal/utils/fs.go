package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// MaxTargetNameLength is the maximum length for a target name
const MaxTargetNameLength = 200

// targetNameRegex matches names usable both as a CMake target and as a file name
var targetNameRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.+-]*$`)

// Windows reserved names
var windowsReserved = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsValidTargetName checks if a name can be used for a target and its
// scaffold source file
func IsValidTargetName(name string) bool {
	if name == "" || len(name) > MaxTargetNameLength {
		return false
	}
	if !targetNameRegex.MatchString(name) {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	return !windowsReserved[strings.ToUpper(name)]
}

// EnsureDir ensures the parent directory of path exists
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}
