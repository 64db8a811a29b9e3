package storage

import (
	"bytes"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	// Imagens de galeria são reduzidas a no máximo essa largura antes
	// de subir para o bucket.
	maxImageWidth = 1280

	webpQuality = 80
)

// EncodeWebP decodifica JPEG/PNG, reduz se preciso e re-encoda em
// webp. Todas as imagens armazenadas ficam no mesmo formato.
func EncodeWebP(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxImageWidth {
		ratio := float64(maxImageWidth) / float64(bounds.Dx())
		h := int(float64(bounds.Dy()) * ratio)

		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	return buf.Bytes(), nil
}
