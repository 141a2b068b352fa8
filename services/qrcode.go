package services

import "github.com/skip2/go-qrcode"

type QRGenerator interface {
	PNG(content string, size int) ([]byte, error)
}

type GoQRCode struct {
	Level qrcode.RecoveryLevel
}

func (g GoQRCode) PNG(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, g.Level, size)
}

var DefaultQRGenerator QRGenerator = GoQRCode{Level: qrcode.Medium}
