// internal/handlers/qr.go
package handlers

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// sessionQRCode builds the join URL for a session and renders it as a
// base64-encoded PNG so clients can show it directly in an <img> tag.
func sessionQRCode(baseURL, gameID string) (sessionURL, qrBase64 string, err error) {
	sessionURL = fmt.Sprintf("%s?game_id=%s", baseURL, gameID)
	png, err := qrcode.Encode(sessionURL, qrcode.Medium, 256)
	if err != nil {
		return "", "", fmt.Errorf("encode session QR code: %w", err)
	}
	return sessionURL, base64.StdEncoding.EncodeToString(png), nil
}
