package confirmation

import (
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// CodePayload is the JSON payload encoded into the scannable code.
type CodePayload struct {
	ConfirmationCode string `json:"confirmationCode"`
	FlightNumber     string `json:"flightNumber"`
	PassengerName    string `json:"passengerName"`
	Date             string `json:"date"`
}

// CodeImageSize is the side length in pixels of the generated image.
const CodeImageSize = 256

// CodeImage renders the payload as a QR code PNG. Callers fall back to
// FallbackText when generation fails.
func CodeImage(payload CodePayload) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, CodeImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate code image: %w", err)
	}
	return png, nil
}

// FallbackText is the textual stand-in shown when the image generator
// is unavailable.
func FallbackText(code string) string {
	return "Confirmation: " + code
}
