package imagecache

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrTransport    = errors.New("transport failure")
	ErrEmptyPayload = errors.New("empty payload")
	ErrNotImage     = errors.New("payload is not an image")
	ErrDecode       = errors.New("decode failure")
	ErrPersist      = errors.New("persist failure")
)

// DefaultThumbnailSize is the fixed size every fetched image is redrawn to.
var DefaultThumbnailSize = image.Pt(44, 44)

// maxSourcePixels bounds the pixel count a header may declare before the
// image is decoded.
const maxSourcePixels = 64 << 20

func validateImage(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyPayload
	}
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return fmt.Errorf("%w: %s", ErrNotImage, kind.MIME.Value)
	}
	return nil
}

func decodeImage(data []byte) (image.Image, error) {
	if err := validateImage(data); err != nil {
		return nil, err
	}
	if err := checkBounds(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// checkBounds reads only the image header and rejects images too large to
// decode into memory.
func checkBounds(r io.Reader) error {
	conf, _, err := image.DecodeConfig(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if conf.Width <= 0 || conf.Height <= 0 || int64(conf.Width)*int64(conf.Height) > maxSourcePixels {
		return fmt.Errorf("%w: %dx%d exceeds the pixel limit", ErrDecode, conf.Width, conf.Height)
	}
	return nil
}

// resize draws src onto a canvas of exactly size. The source is stretched,
// not cropped.
func resize(src image.Image, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func encodeThumbnail(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

func readThumbnail(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path is derived from the locator
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := checkBounds(f); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}
