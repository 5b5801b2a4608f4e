package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type ReceiptGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// QRReceiptGenerator encodes a link to the order's receipt page as a PNG QR
// code.
type QRReceiptGenerator struct {
	BaseURL string
}

func (g QRReceiptGenerator) Generate(orderID int) ([]byte, error) {
	data := fmt.Sprintf("%s/receipt.html?order_id=%d", g.BaseURL, orderID)
	return qrcode.Encode(data, qrcode.Medium, 256)
}
