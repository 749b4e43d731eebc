package service

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/vms-next/internal/constants"

	"github.com/skip2/go-qrcode"
)

const (
	qrCodeImageSize   = 256
	qrCodeDataURIHead = "data:image/png;base64,"
)

// QRCodeEncoder 将访客载荷渲染为二维码图片
type QRCodeEncoder interface {
	Encode(payload string) (string, error)
}

// PNGQRCodeEncoder 输出 PNG data URI
type PNGQRCodeEncoder struct {
	Size int
}

// NewQRCodeEncoder 创建二维码编码器
func NewQRCodeEncoder() *PNGQRCodeEncoder {
	return &PNGQRCodeEncoder{Size: qrCodeImageSize}
}

// Encode 渲染二维码
func (e *PNGQRCodeEncoder) Encode(payload string) (string, error) {
	size := qrCodeImageSize
	if e != nil && e.Size > 0 {
		size = e.Size
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return "", fmt.Errorf("encode qr code failed: %w", err)
	}
	return qrCodeDataURIHead + base64.StdEncoding.EncodeToString(png), nil
}

// QRPayload 访客二维码载荷，格式 visitor-<id>
func QRPayload(visitorID uint) string {
	return constants.QRPayloadPrefix + "-" + strconv.FormatUint(uint64(visitorID), 10)
}

// ParseQRPayload 解析扫码内容，兼容纯数字 ID，多余的分段视为格式错误
func ParseQRPayload(raw string) (uint, error) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return 0, ErrQRCodeRequired
	}
	parts := strings.Split(code, "-")
	if len(parts) == 2 && strings.EqualFold(parts[0], constants.QRPayloadPrefix) {
		return parseVisitorID(parts[1])
	}
	return parseVisitorID(code)
}

func parseVisitorID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrQRFormatInvalid
	}
	return uint(id), nil
}
