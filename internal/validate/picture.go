package validate

import (
	"path/filepath"
	"strings"
)

// AllowedPicture reports whether the filename carries a supported profile
// picture extension. Matching is case-insensitive.
func AllowedPicture(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".png":
		return true
	default:
		return false
	}
}
