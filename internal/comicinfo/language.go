package comicinfo

import (
	"slices"

	"github.com/mushishi06/nhentai-archivist/internal/gallery"
)

// languageCodes maps nhentai language tag names to ISO 639-1 codes.
// Pseudo languages such as "translated" or "rewrite" have no entry.
var languageCodes = map[string]string{
	"english":  "en",
	"chinese":  "zh",
	"japanese": "ja",
}

// LanguageISO returns the ISO code of the language tags among tags, or "" if none
// is recognised.
//
// ComicInfo holds a single language, so when a gallery carries several the last
// recognised one in tag order wins.
func LanguageISO(tags []gallery.Tag, types []string) string {
	code := ""
	for _, tag := range tags {
		if !slices.Contains(types, tag.Type) {
			continue
		}
		if c, ok := languageCodes[tag.Name]; ok {
			code = c
		}
	}
	return code
}
