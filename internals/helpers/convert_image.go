package helper

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// WebPOptions controls the re-encode pipeline for uploaded pictures.
type WebPOptions struct {
	MaxW    int
	MaxH    int
	Quality float32
	Square  int // >0: center-crop to Square x Square before encoding
}

func DefaultWebPOptions() WebPOptions {
	return WebPOptions{MaxW: 1600, MaxH: 1600, Quality: 80}
}

// DecodeImage sniffs the MIME from the first bytes and decodes jpeg/png/webp.
func DecodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(data))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(data))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(data))
	}
	return nil, fmt.Errorf("unsupported image format: %s", ct)
}

// ConvertToWebP decodes, resizes (keep-aspect, capped at MaxW x MaxH,
// optionally center-cropped to a square) and re-encodes to lossy WebP.
func ConvertToWebP(data []byte, opt WebPOptions) ([]byte, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}

	if opt.Square > 0 {
		img = imaging.Fill(img, opt.Square, opt.Square, imaging.Center, imaging.Lanczos)
	} else {
		img = scaleDown(img, opt.MaxW, opt.MaxH)
	}

	q := opt.Quality
	if q <= 0 {
		q = 80
	}
	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Quality: q}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return out.Bytes(), nil
}

func scaleDown(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxW <= 0 || maxH <= 0 || (w <= maxW && h <= maxH) {
		return img
	}
	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
