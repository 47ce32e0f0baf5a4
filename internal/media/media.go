// Package media manages the media library: files imported for use on
// slides, deduplicated by content digest, with type and dimension
// metadata. Image dimensions come from decoding headers only; pixel data
// is never loaded here.
package media

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	// Header decoders for dimension probing via image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Kind is the broad media category, derived from the MIME type.
type Kind string

const (
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
	KindAudio   Kind = "audio"
	KindUnknown Kind = "unknown"
)

// Info describes one library entry. Width and Height are set for images
// whose headers could be read, zero otherwise.
type Info struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Path   string `json:"path"`
	MIME   string `json:"mime"`
	SHA256 string `json:"sha256"`
	Kind   Kind   `json:"kind"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Size   int64  `json:"size"`
}

// mimeByExt maps lowercase file extensions to MIME types.
var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".svg":  "image/svg+xml",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
}

// MIMEForPath returns the MIME type for a file path by extension, or
// "application/octet-stream" when unknown.
func MIMEForPath(path string) string {
	if m, ok := mimeByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return m
	}
	return "application/octet-stream"
}

// KindForMIME maps a MIME type to its broad category.
func KindForMIME(mime string) Kind {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return KindImage
	case strings.HasPrefix(mime, "video/"):
		return KindVideo
	case strings.HasPrefix(mime, "audio/"):
		return KindAudio
	default:
		return KindUnknown
	}
}

// probeImageSize reads an image file's header for its pixel dimensions.
func probeImageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
