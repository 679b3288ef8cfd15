// Package picture stores profile pictures on disk: uploads are validated,
// renamed to a random hex token and resized into a 250x250 bounding box
// before anything is written.
package picture

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"blog/internal/validate"
)

// maxDimension bounds both sides of a stored picture.
const maxDimension = 250

// ErrUnsupportedType rejects uploads outside the jpg/png allow-list.
var ErrUnsupportedType = errors.New("unsupported file type")

// Store writes pictures under a single directory.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create picture dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory pictures are served from.
func (s *Store) Dir() string { return s.dir }

// Save decodes the upload, scales it down to fit maxDimension on both
// sides (aspect preserved, never upscaled) and writes it under a random
// hex filename with the original extension. Returns the stored filename.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !validate.AllowedPicture(originalName) {
		return "", ErrUnsupportedType
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode picture: %w", err)
	}
	thumb := shrink(src)

	name, err := randomName(ext)
	if err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create picture file: %w", err)
	}
	defer f.Close()

	switch ext {
	case ".jpg":
		err = jpeg.Encode(f, thumb, nil)
	case ".png":
		err = png.Encode(f, thumb)
	}
	if err != nil {
		return "", fmt.Errorf("encode picture: %w", err)
	}
	return name, nil
}

// shrink scales the image to fit within maxDimension x maxDimension.
// Images already inside the box pass through untouched.
func shrink(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDimension && h <= maxDimension {
		return src
	}

	if w > h {
		h = h * maxDimension / w
		w = maxDimension
	} else {
		w = w * maxDimension / h
		h = maxDimension
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func randomName(ext string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate picture name: %w", err)
	}
	return hex.EncodeToString(buf) + ext, nil
}
