// internal/app/features/documents/storagekey.go
package documents

import (
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxKeyNameLen caps the filename segment of a storage key.
const maxKeyNameLen = 80

// storageKey builds the object key for an uploaded document. Keys are
// grouped by category and upload month so the backing store can be
// browsed directly, e.g. documents/permits/2026-08/1a2b3c4d_plan.pdf.
func storageKey(category, filename string, now time.Time) string {
	return path.Join(
		"documents",
		categoryDir(category),
		now.UTC().Format("2006-01"),
		uuid.New().String()[:8]+"_"+safeFileName(filename),
	)
}

// categoryDir maps a free-form category to a key segment.
// Uncategorized documents land under "general".
func categoryDir(category string) string {
	dir := strings.Map(keyRune, strings.ToLower(strings.TrimSpace(category)))
	dir = strings.Trim(dir, "_.")
	if dir == "" {
		return "general"
	}
	return dir
}

// safeFileName strips any path components from a client-supplied
// filename and truncates long names, keeping the extension.
func safeFileName(name string) string {
	name = strings.Map(keyRune, filepath.Base(name))
	if strings.Trim(name, "_.") == "" {
		return "file"
	}
	if len(name) > maxKeyNameLen {
		ext := filepath.Ext(name)
		if len(ext) > 12 {
			ext = ""
		}
		name = name[:maxKeyNameLen-len(ext)] + ext
	}
	return name
}

// keyRune keeps ASCII letters, digits, '.', '-', and '_'; anything
// else becomes an underscore.
func keyRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r
	case r == '.', r == '-', r == '_':
		return r
	default:
		return '_'
	}
}
