package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	"boothly/internal/domain"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 256

type pngEncoder struct {
	size int
}

// NewPNGEncoder returns a LinkEncoder that renders links as QR code PNGs.
func NewPNGEncoder(size int) domain.LinkEncoder {
	if size <= 0 {
		size = DefaultSize
	}
	return &pngEncoder{size: size}
}

func (p *pngEncoder) ContentType() string { return "image/png" }

func (p *pngEncoder) Encode(link string) ([]byte, error) {
	if link == "" {
		return nil, fmt.Errorf("link is empty")
	}
	png, err := qrcode.Encode(link, qrcode.Medium, p.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
