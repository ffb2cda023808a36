// Package comicinfo maps scraped galleries onto the ComicInfo.xml schema.
//
// Schema: https://anansi-project.github.io/docs/comicinfo/documentation
// Komga import rules: https://komga.org/docs/guides/scan-analysis-refresh/#import-metadata-for-cbrcbz-containing-a-comicinfoxml-file
package comicinfo

import (
	"encoding/xml"
	"fmt"
	"math"
	"time"

	"github.com/mushishi06/nhentai-archivist/internal/gallery"
)

const (
	// AgeRating is the rating written for every gallery.
	AgeRating = "Adults Only 18+"
	// WebFormat builds the gallery page URL from its id.
	WebFormat = "https://nhentai.net/g/%d/"
)

// Tag types projected into each ComicInfo field.
var (
	WriterTypes     = []string{"artist"}
	PublisherTypes  = []string{"group"}
	GenreTypes      = []string{"category", "parody"}
	TagsTypes       = []string{"character", "language", "tag"}
	CharactersTypes = []string{"character"}
	LanguageTypes   = []string{"language"}
)

// ComicInfo is the ComicInfo.xml document. Element names and order are fixed by
// the schema; nil fields are omitted when encoding.
type ComicInfo struct {
	XMLName     xml.Name `xml:"ComicInfo" json:"-" yaml:"-"`
	Series      string   `xml:"Series" json:"Series" yaml:"series"`
	SeriesSort  string   `xml:"SeriesSort" json:"SeriesSort" yaml:"seriessort"`
	Title       string   `xml:"Title" json:"Title" yaml:"title"`
	Year        int16    `xml:"Year" json:"Year" yaml:"year"`
	Month       uint8    `xml:"Month" json:"Month" yaml:"month"`
	Day         uint8    `xml:"Day" json:"Day" yaml:"day"`
	Writer      *string  `xml:"Writer,omitempty" json:"Writer,omitempty" yaml:"writer,omitempty"`
	Translator  *string  `xml:"Translator,omitempty" json:"Translator,omitempty" yaml:"translator,omitempty"`
	Publisher   *string  `xml:"Publisher,omitempty" json:"Publisher,omitempty" yaml:"publisher,omitempty"`
	Characters  *string  `xml:"Characters,omitempty" json:"Characters,omitempty" yaml:"characters,omitempty"`
	Genre       *string  `xml:"Genre,omitempty" json:"Genre,omitempty" yaml:"genre,omitempty"`
	Tags        *string  `xml:"Tags,omitempty" json:"Tags,omitempty" yaml:"tags,omitempty"`
	Web         string   `xml:"Web" json:"Web" yaml:"web"`
	AgeRating   string   `xml:"AgeRating" json:"AgeRating" yaml:"agerating"`
	LanguageISO string   `xml:"LanguageISO" json:"LanguageISO" yaml:"languageiso"`
}

// FromGallery builds the ComicInfo document of g.
//
// The gallery id is part of every title field because Komga cannot search by
// the Number field. FromGallery panics if the upload date does not fit the
// schema's numeric date fields, which cannot happen for a real calendar date.
func FromGallery(g gallery.Gallery) ComicInfo {
	title := fmt.Sprintf("[%d] %s", g.ID, g.PrettyTitle())
	year, month, day := splitDate(g.UploadDate)

	return ComicInfo{
		Series:      title,
		SeriesSort:  title,
		Title:       title,
		Year:        year,
		Month:       month,
		Day:         day,
		Writer:      CombineTags(g.Tags, WriterTypes, false),
		Translator:  cloneString(g.Scanlator),
		Publisher:   CombineTags(g.Tags, PublisherTypes, false),
		Characters:  CombineTags(g.Tags, CharactersTypes, false),
		Genre:       CombineTags(g.Tags, GenreTypes, false),
		Tags:        CombineTags(g.Tags, TagsTypes, false),
		Web:         fmt.Sprintf(WebFormat, g.ID),
		AgeRating:   AgeRating,
		LanguageISO: LanguageISO(g.Tags, LanguageTypes),
	}
}

// splitDate decomposes t in its own location.
func splitDate(t time.Time) (int16, uint8, uint8) {
	y, m, d := t.Date()
	if y < math.MinInt16 || y > math.MaxInt16 {
		panic(fmt.Sprintf("comicinfo: upload year %d does not fit int16 although it comes from a valid time.Time", y))
	}
	if m < 1 || m > 12 {
		panic(fmt.Sprintf("comicinfo: upload month %d out of range although it comes from a valid time.Time", m))
	}
	if d < 1 || d > 31 {
		panic(fmt.Sprintf("comicinfo: upload day %d out of range although it comes from a valid time.Time", d))
	}
	return int16(y), uint8(m), uint8(d)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
