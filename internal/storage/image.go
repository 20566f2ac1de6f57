package storage

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const maxImageWidth = 1280

// ReencodeWebP decodes an uploaded image, scales it down to the storage
// width when it is wider, and re-encodes it as lossy webp. Proof captures
// come straight off phone cameras, so this usually cuts uploads by an
// order of magnitude.
func ReencodeWebP(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxImageWidth {
		scale := float64(maxImageWidth) / float64(bounds.Dx())
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, int(float64(bounds.Dy())*scale)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: 82}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
