package imagecache

import (
	"encoding/base64"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const cacheDirName = "ImageCache"

// KeyDeriver maps a locator to its cache file. It does no I/O.
type KeyDeriver struct {
	Root  string
	AppID string
}

// Dir is the directory holding every cache entry.
func (k KeyDeriver) Dir() string {
	return filepath.Join(k.Root, k.AppID, cacheDirName)
}

// Path returns the cache file for locator. The last path component is
// appended twice; existing caches on disk are laid out that way.
func (k KeyDeriver) Path(locator *url.URL) string {
	return filepath.Join(k.Dir(), Filename(locator)+"-"+lastPathComponent(locator))
}

// Filename returns "<tail of base64(url)>-<last path component>".
// A locator whose string form is not valid UTF-8 gets a random name, so it
// never hits the same entry twice.
func Filename(locator *url.URL) string {
	raw := locator.String()

	var base string
	if utf8.ValidString(raw) {
		base = base64.StdEncoding.EncodeToString([]byte(raw))
	} else {
		base = uuid.NewString()
	}

	tail := base[len(base)-len(base)/2:]
	tail = strings.ReplaceAll(tail, "==", "")
	// The standard alphabet contains '/', which is not allowed in a filename.
	tail = strings.ReplaceAll(tail, "/", "_")

	return tail + "-" + lastPathComponent(locator)
}

func lastPathComponent(locator *url.URL) string {
	p := strings.TrimRight(locator.Path, "/")
	if p == "" {
		return ""
	}
	last := path.Base(p)
	if last == "." || last == ".." {
		return ""
	}
	return strings.NewReplacer("/", "_", `\`, "_").Replace(last)
}
