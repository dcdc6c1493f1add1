package assets

import (
	"fmt"
	"image"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"vgaserial/adapter/palette"

	"golang.org/x/image/bmp"
)

// LoadDir adds every "<id>.bmp" or "<id>_<name>.bmp" file at the top of
// fsys to the atlas, converted to RGB332. Files without a numeric prefix
// are skipped. It returns the number of bitmaps added.
func (s *Set) LoadDir(fsys fs.FS) (int, error) {
	names, err := fs.Glob(fsys, "*.bmp")
	if err != nil {
		return 0, err
	}
	n := 0
	for _, name := range names {
		id, ok := bitmapID(name)
		if !ok {
			continue
		}
		if id >= GlyphIDBase {
			return n, fmt.Errorf("%s: id %d collides with glyph ids", name, id)
		}
		img, err := decodeBMP(fsys, name)
		if err != nil {
			return n, fmt.Errorf("%s: %w", name, err)
		}
		w, h, pix := toRGB332(img)
		if err := s.Atlas.Add(id, w, h, pix); err != nil {
			return n, fmt.Errorf("%s: %w", name, err)
		}
		n++
	}
	return n, nil
}

func bitmapID(name string) (uint16, bool) {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	if i := strings.IndexByte(base, '_'); i >= 0 {
		base = base[:i]
	}
	v, err := strconv.ParseUint(base, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

func decodeBMP(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return bmp.Decode(f)
}

func toRGB332(img image.Image) (w, h int, pix []byte) {
	b := img.Bounds()
	w, h = b.Dx(), b.Dy()
	pix = make([]byte, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pix = append(pix, byte(palette.FromColor(img.At(x, y))))
		}
	}
	return w, h, pix
}
