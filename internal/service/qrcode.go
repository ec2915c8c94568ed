package service

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// BadgeQR encodes the badge payload as a PNG QR image. The payload mirrors
// what the physical readers transmit so a phone screen can stand in for a
// lost card.
func BadgeQR(employeeID, cardID string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}

	payload := fmt.Sprintf("badge:%s:%s", employeeID, cardID)

	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding badge qr: %w", err)
	}
	return png, nil
}
