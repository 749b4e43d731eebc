package service

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vms-next/internal/config"
)

func buildUploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}
	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form failed: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png failed: %v", err)
	}
	return buf.Bytes()
}

func newTestUploadService(t *testing.T, cfg config.UploadConfig) *UploadService {
	t.Helper()
	svc := NewUploadService(&cfg)
	svc.root = filepath.Join(t.TempDir(), "uploads")
	svc.now = func() time.Time { return time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestUploadSaveVisitorPhoto(t *testing.T) {
	svc := newTestUploadService(t, config.UploadConfig{
		MaxSize:           1 << 20,
		AllowedExtensions: []string{"png", ".jpg"},
		AllowedTypes:      []string{"image/png", "image/jpeg"},
		MaxWidth:          64,
		MaxHeight:         64,
	})

	saved, err := svc.SaveFile(buildUploadHeader(t, "photo.PNG", encodeTestPNG(t, 16, 16)), "Visitor")
	if err != nil {
		t.Fatalf("save file failed: %v", err)
	}
	if !strings.Contains(saved, "/visitor/2026/07/") || !strings.HasSuffix(saved, ".png") {
		t.Fatalf("unexpected saved path: %s", saved)
	}
	if _, err := os.Stat(filepath.FromSlash(saved)); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
}

func TestUploadRejectsInvalidFiles(t *testing.T) {
	svc := newTestUploadService(t, config.UploadConfig{
		MaxSize:           1 << 20,
		AllowedExtensions: []string{"png"},
		MaxWidth:          32,
		MaxHeight:         32,
	})

	if _, err := svc.SaveFile(buildUploadHeader(t, "notes.txt", []byte("hello")), "visitor"); !errors.Is(err, ErrUploadTypeInvalid) {
		t.Fatalf("expected extension rejection, got: %v", err)
	}
	if _, err := svc.SaveFile(buildUploadHeader(t, "fake.png", []byte("plain text body")), "visitor"); !errors.Is(err, ErrUploadTypeInvalid) {
		t.Fatalf("expected mime rejection, got: %v", err)
	}
	if _, err := svc.SaveFile(buildUploadHeader(t, "big.png", encodeTestPNG(t, 48, 8)), "visitor"); !errors.Is(err, ErrUploadImageInvalid) {
		t.Fatalf("expected dimension rejection, got: %v", err)
	}

	svc.cfg.MaxSize = 10
	if _, err := svc.SaveFile(buildUploadHeader(t, "small.png", encodeTestPNG(t, 4, 4)), "visitor"); !errors.Is(err, ErrUploadTooLarge) {
		t.Fatalf("expected size rejection, got: %v", err)
	}
}

func TestNormalizeUploadScene(t *testing.T) {
	cases := map[string]string{"visitor": "visitor", " Employee ": "employee", "product": "common", "": "common"}
	for raw, want := range cases {
		if got := normalizeUploadScene(raw); got != want {
			t.Fatalf("scene %q want %s got %s", raw, want, got)
		}
	}
}
