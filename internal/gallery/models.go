package gallery

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Tag is one typed facet of a gallery, e.g. {"artist", "alice"} or {"language", "english"}.
type Tag struct {
	Type string `json:"type" parquet:"type"`
	Name string `json:"name" parquet:"name"`
}

// Gallery is the scraped metadata of a single nhentai gallery.
// Optional fields are nil when the source did not provide them.
type Gallery struct {
	ID          int64
	TitlePretty *string
	UploadDate  time.Time
	Scanlator   *string
	Tags        []Tag
}

// galleryJSON mirrors the nhentai API gallery response
type galleryJSON struct {
	ID    int64 `json:"id"`
	Title struct {
		English  string `json:"english,omitempty"`
		Japanese string `json:"japanese,omitempty"`
		Pretty   string `json:"pretty,omitempty"`
	} `json:"title"`
	UploadDate int64  `json:"upload_date"` // unix seconds
	Scanlator  string `json:"scanlator"`
	Tags       []Tag  `json:"tags"`
}

// UnmarshalJSON decodes the API representation. Empty strings for the pretty
// title and scanlator are treated as absent.
func (g *Gallery) UnmarshalJSON(data []byte) error {
	var raw galleryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ID <= 0 {
		return fmt.Errorf("invalid gallery id %d", raw.ID)
	}

	*g = Gallery{
		ID:          raw.ID,
		TitlePretty: optional(raw.Title.Pretty),
		UploadDate:  time.Unix(raw.UploadDate, 0).UTC(),
		Scanlator:   optional(raw.Scanlator),
		Tags:        raw.Tags,
	}
	return nil
}

// MarshalJSON encodes the gallery back into the API representation.
func (g Gallery) MarshalJSON() ([]byte, error) {
	var raw galleryJSON
	raw.ID = g.ID
	if g.TitlePretty != nil {
		raw.Title.Pretty = *g.TitlePretty
	}
	raw.UploadDate = g.UploadDate.Unix()
	if g.Scanlator != nil {
		raw.Scanlator = *g.Scanlator
	}
	raw.Tags = g.Tags
	return json.Marshal(raw)
}

// galleryRow is the flat Parquet layout of a gallery
type galleryRow struct {
	ID          int64   `parquet:"id"`
	TitlePretty *string `parquet:"title_pretty,optional"`
	UploadDate  int64   `parquet:"upload_date"` // unix seconds
	Scanlator   *string `parquet:"scanlator,optional"`
	Tags        []Tag   `parquet:"tags,list"`
}

// toGallery copies the row out of the reader's buffer, which parquet-go reuses
// for the next batch, and applies the same rules as UnmarshalJSON.
func (r galleryRow) toGallery() (Gallery, error) {
	if r.ID <= 0 {
		return Gallery{}, fmt.Errorf("invalid gallery id %d", r.ID)
	}
	return Gallery{
		ID:          r.ID,
		TitlePretty: optionalPtr(r.TitlePretty),
		UploadDate:  time.Unix(r.UploadDate, 0).UTC(),
		Scanlator:   optionalPtr(r.Scanlator),
		Tags:        slices.Clone(r.Tags),
	}, nil
}

// PrettyTitle returns the pretty title or "" if the gallery has none
func (g *Gallery) PrettyTitle() string {
	if g.TitlePretty == nil {
		return ""
	}
	return *g.TitlePretty
}

func optionalPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return optional(*s)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
