package services

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRRenderer turns a payment URL into an image the POS can display.
type QRRenderer interface {
	// RenderBase64PNG returns the QR code as a base64-encoded PNG.
	RenderBase64PNG(content string) (string, error)
}

type qrCodeRenderer struct {
	size int
}

// NewQRCodeRenderer renders square PNGs of size pixels at medium error correction.
func NewQRCodeRenderer(size int) QRRenderer {
	if size <= 0 {
		size = 256
	}
	return &qrCodeRenderer{size: size}
}

func (r *qrCodeRenderer) RenderBase64PNG(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, r.size)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
