package comicinfo

import (
	"slices"
	"sort"
	"strings"

	"github.com/mushishi06/nhentai-archivist/internal/gallery"
)

// CombineTags keeps the tags whose type is in types and joins them into a single
// comma separated, alphabetically sorted string. With displayType each entry is
// rendered as "type: name" instead of just the name.
//
// Equal entries are not merged, so two tags rendering to the same string both
// appear. Returns nil when nothing is left to join, never a pointer to "".
func CombineTags(tags []gallery.Tag, types []string, displayType bool) *string {
	filtered := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !slices.Contains(types, tag.Type) {
			continue
		}
		if displayType {
			filtered = append(filtered, tag.Type+": "+tag.Name)
		} else {
			filtered = append(filtered, tag.Name)
		}
	}

	sort.Strings(filtered)

	combined := strings.Join(filtered, ",")
	if combined == "" {
		return nil
	}
	return &combined
}
