// Package classify infers the (period, entry) grouping key of a source file
// from where it sits under the source root.
package classify

import (
	"path/filepath"
	"regexp"
	"strings"

	"iocccorg/internal/slug"
)

var rePeriod = regexp.MustCompile(`^[0-9]{4}$`)

// Key groups files that belong to the same entry.
type Key struct {
	Period  string `json:"period"`
	EntryID string `json:"entry_id"`
}

// Classify scans the path of filePath relative to sourceRoot for the first
// four-digit segment. That segment is the period and the segment after it
// (normalized) is the entry. Layouts differ between years, so no fixed depth
// is assumed.
func Classify(filePath, sourceRoot string) Key {
	key := Key{Period: slug.Unknown, EntryID: slug.Unknown}

	rel, err := filepath.Rel(sourceRoot, filePath)
	if err != nil {
		rel = filePath
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for i, seg := range parts {
		if !rePeriod.MatchString(seg) {
			continue
		}
		key.Period = seg
		if i+1 < len(parts) {
			key.EntryID = slug.Normalize(parts[i+1])
		}
		break
	}
	return key
}
