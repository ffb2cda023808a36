package comicinfo

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mushishi06/nhentai-archivist/internal/gallery"
)

// FileName is the name comic library software looks for inside an archive.
const FileName = "ComicInfo.xml"

// ErrMapping wraps a panic recovered from FromGallery.
var ErrMapping = errors.New("comicinfo mapping failed")

// SafeFromGallery runs FromGallery and turns a panic into an error, so a batch
// can drop a single broken gallery and keep going.
func SafeFromGallery(g gallery.Gallery) (ci ComicInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: gallery %d: %v", ErrMapping, g.ID, r)
		}
	}()
	return FromGallery(g), nil
}

// Marshal encodes ci as an indented XML document including the XML header.
func Marshal(ci ComicInfo) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(ci); err != nil {
		return nil, fmt.Errorf("failed to encode ComicInfo: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush ComicInfo: %w", err)
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// Unmarshal decodes a ComicInfo.xml document.
func Unmarshal(data []byte) (ComicInfo, error) {
	var ci ComicInfo
	if err := xml.Unmarshal(data, &ci); err != nil {
		return ComicInfo{}, fmt.Errorf("failed to decode ComicInfo: %w", err)
	}
	return ci, nil
}

// WriteFile writes ci to dir/ComicInfo.xml, creating dir if needed, and returns the path.
func WriteFile(dir string, ci ComicInfo) (string, error) {
	data, err := Marshal(ci)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	return path, nil
}
