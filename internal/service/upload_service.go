package service

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/vms-next/internal/config"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

// 上传场景，决定存储子目录
const (
	UploadSceneVisitor  = "visitor"
	UploadSceneEmployee = "employee"
	UploadSceneCommon   = "common"
)

var allowedUploadScenes = map[string]struct{}{
	UploadSceneVisitor:  {},
	UploadSceneEmployee: {},
	UploadSceneCommon:   {},
}

// UploadService 访客照片等图片上传
type UploadService struct {
	cfg  *config.UploadConfig
	root string
	now  func() time.Time
}

// NewUploadService 创建上传服务，文件落在 uploads/<scene>/yyyy/mm 下
func NewUploadService(cfg *config.UploadConfig) *UploadService {
	return &UploadService{cfg: cfg, root: "uploads", now: time.Now}
}

// SaveFile 校验并保存上传文件，返回相对路径
// 返回值原样写入访客记录，展示时再拼接 base_url。
func (s *UploadService) SaveFile(file *multipart.FileHeader, scene string) (string, error) {
	if file == nil {
		return "", ErrUploadImageInvalid
	}
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return "", fmt.Errorf("%w: max %d MB", ErrUploadTooLarge, s.cfg.MaxSize/1024/1024)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 && (ext == "" || !isAllowedExtension(ext, s.cfg.AllowedExtensions)) {
		return "", fmt.Errorf("%w: extension %q", ErrUploadTypeInvalid, ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := s.validateContent(src); err != nil {
		return "", err
	}

	normalizedScene := normalizeUploadScene(scene)
	now := s.now()
	relDir := filepath.ToSlash(filepath.Join(normalizedScene, now.Format("2006"), now.Format("01")))
	filename := uuid.New().String() + ext
	savePath := filepath.Join(s.root, filepath.FromSlash(relDir), filename)
	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return "", err
	}
	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path.Join(filepath.ToSlash(s.root), relDir, filename), nil
}

func (s *UploadService) validateContent(src io.ReadSeeker) error {
	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return err
	}
	contentType := http.DetectContentType(head[:n])
	if len(s.cfg.AllowedTypes) > 0 && !containsFold(s.cfg.AllowedTypes, contentType) {
		return fmt.Errorf("%w: %s", ErrUploadTypeInvalid, contentType)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: %s", ErrUploadTypeInvalid, contentType)
	}
	width, height, err := decodeImageDimensions(src, contentType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUploadImageInvalid, err)
	}
	if s.cfg.MaxWidth > 0 && width > s.cfg.MaxWidth {
		return fmt.Errorf("%w: width %d > %d", ErrUploadImageInvalid, width, s.cfg.MaxWidth)
	}
	if s.cfg.MaxHeight > 0 && height > s.cfg.MaxHeight {
		return fmt.Errorf("%w: height %d > %d", ErrUploadImageInvalid, height, s.cfg.MaxHeight)
	}
	return nil
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), target) {
			return true
		}
	}
	return false
}

func normalizeUploadScene(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := allowedUploadScenes[value]; ok {
		return value
	}
	return UploadSceneCommon
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}

func decodeImageDimensions(src io.ReadSeeker, contentType string) (int, int, error) {
	if strings.EqualFold(contentType, "image/webp") {
		width, height, err := decodeWebPDimensions(src)
		if err != nil {
			return 0, 0, fmt.Errorf("decode webp: %w", err)
		}
		return width, height, nil
	}

	if _, err := src.Seek(0, 0); err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

func decodeWebPDimensions(src io.ReadSeeker) (int, int, error) {
	if _, err := src.Seek(0, 0); err != nil {
		return 0, 0, err
	}

	header := make([]byte, 12)
	if _, err := io.ReadFull(src, header); err != nil {
		return 0, 0, err
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WEBP" {
		return 0, 0, errors.New("invalid webp header")
	}

	for {
		chunkHeader := make([]byte, 8)
		if _, err := io.ReadFull(src, chunkHeader); err != nil {
			return 0, 0, err
		}
		chunkType := string(chunkHeader[0:4])
		chunkSize := int(binary.LittleEndian.Uint32(chunkHeader[4:8]))
		if chunkSize < 0 {
			return 0, 0, errors.New("invalid webp chunk")
		}

		data := make([]byte, chunkSize)
		if _, err := io.ReadFull(src, data); err != nil {
			return 0, 0, err
		}

		if chunkType == "VP8X" {
			if len(data) < 10 {
				return 0, 0, errors.New("short VP8X chunk")
			}
			width := 1 + int(data[4]) + int(data[5])<<8 + int(data[6])<<16
			height := 1 + int(data[7]) + int(data[8])<<8 + int(data[9])<<16
			return width, height, nil
		}
		if chunkType == "VP8 " {
			if len(data) < 10 {
				return 0, 0, errors.New("short VP8 chunk")
			}
			width := int(binary.LittleEndian.Uint16(data[6:8]) & 0x3FFF)
			height := int(binary.LittleEndian.Uint16(data[8:10]) & 0x3FFF)
			return width, height, nil
		}
		if chunkType == "VP8L" {
			if len(data) < 5 {
				return 0, 0, errors.New("short VP8L chunk")
			}
			if data[0] != 0x2f {
				return 0, 0, errors.New("invalid VP8L signature")
			}
			bits := binary.LittleEndian.Uint32(data[1:5])
			width := int(bits&0x3FFF) + 1
			height := int((bits>>14)&0x3FFF) + 1
			return width, height, nil
		}

		if chunkSize%2 == 1 {
			if _, err := src.Seek(1, io.SeekCurrent); err != nil {
				return 0, 0, err
			}
		}
	}
}
