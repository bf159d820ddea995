package imagecache

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	defaultDirPerm  = 0o755
	defaultFilePerm = 0o644
)

// Entry describes one file in the cache directory.
type Entry struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// persist writes img to path unless a file is already there. The write goes
// through a temp file in the same directory so readers never see a partial
// thumbnail.
func persist(path string, img image.Image) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, defaultDirPerm); err != nil {
		return fmt.Errorf("%w: create cache directory: %v", ErrPersist, err)
	}
	if exists(path) {
		return nil
	}

	tmp, err := os.CreateTemp(dir, ".thumb-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	tmpPath := tmp.Name()

	if err := encodeThumbnail(tmp, img); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: encode: %v", ErrPersist, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := os.Chmod(tmpPath, defaultFilePerm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		if exists(path) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// ListEntries returns the thumbnails under keys.Dir(), newest first. A
// missing directory is an empty cache.
func ListEntries(keys KeyDeriver) ([]Entry, error) {
	dir := keys.Dir()
	des, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache directory: %w", err)
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		if !de.Type().IsRegular() || de.Name()[0] == '.' {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:    de.Name(),
			Path:    filepath.Join(dir, de.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.After(entries[j].ModTime)
	})
	return entries, nil
}
