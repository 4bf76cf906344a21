package render

import (
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// GenerateQRCodeImage returns a QR code image for the given payload drawn in
// fg on a transparent background. If payload is empty, it returns (nil, nil).
func GenerateQRCodeImage(payload string, sizePx int, fg color.Color) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}

	qrCode, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return nil, err
	}
	qrCode.DisableBorder = true
	qrCode.BackgroundColor = color.Transparent
	if fg != nil {
		qrCode.ForegroundColor = fg
	}

	return qrCode.Image(sizePx), nil
}
