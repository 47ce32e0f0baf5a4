package media

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Library is the on-disk media store under the user content directory.
// Imported files are copied to media/<digest><ext>, so importing the same
// file twice yields a single stored copy.
type Library struct {
	mu      sync.RWMutex
	dir     string
	entries map[string]*Info
}

// Open prepares a library rooted at dir, creating its media directory.
func Open(dir string) (*Library, error) {
	mediaDir := filepath.Join(dir, "media")
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Library{
		dir:     mediaDir,
		entries: make(map[string]*Info),
	}, nil
}

// Dir returns the library's media directory.
func (l *Library) Dir() string {
	return l.dir
}

// Import copies a file into the library and records its metadata. A file
// whose content already exists in the library reuses the stored copy but
// still gets its own entry (names may differ).
func (l *Library) Import(path string) (*Info, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()

	h := sha256.New()
	size, err := io.Copy(h, src)
	if err != nil {
		return nil, fmt.Errorf("digest %s: %w", path, err)
	}
	digest := hex.EncodeToString(h.Sum(nil))

	ext := strings.ToLower(filepath.Ext(path))
	stored := filepath.Join(l.dir, digest[:16]+ext)
	if _, err := os.Stat(stored); err != nil {
		if err := copyFile(path, stored); err != nil {
			return nil, err
		}
	}

	mime := MIMEForPath(path)
	info := &Info{
		ID:     uuid.NewString(),
		Name:   filepath.Base(path),
		Path:   stored,
		MIME:   mime,
		SHA256: digest,
		Kind:   KindForMIME(mime),
		Size:   size,
	}
	if info.Kind == KindImage {
		// SVG and unreadable headers leave the dimensions at zero.
		if w, h, err := probeImageSize(stored); err == nil {
			info.Width, info.Height = w, h
		}
	}

	l.mu.Lock()
	l.entries[info.ID] = info
	l.mu.Unlock()
	return info, nil
}

// Get returns the entry with the given id, or nil.
func (l *Library) Get(id string) *Info {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entries[id]
}

// List returns all entries sorted by name.
func (l *Library) List() []*Info {
	l.mu.RLock()
	out := make([]*Info, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Remove drops an entry from the library. The stored file stays on disk;
// other entries may share it.
func (l *Library) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[id]; !ok {
		return false
	}
	delete(l.entries, id)
	return true
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return out.Close()
}
