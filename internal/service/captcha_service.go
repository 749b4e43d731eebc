package service

import (
	"strings"
	"sync"
	"time"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/constants"

	"github.com/mojocn/base64Captcha"
)

const captchaCharset = "0123456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ"

// CaptchaVerifyPayload 验证码校验请求载荷
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 图片验证码
// 按场景开关决定是否校验，外部只调用 Verify 与 GenerateImageChallenge。
type CaptchaService struct {
	mu     sync.RWMutex
	cfg    config.CaptchaConfig
	store  base64Captcha.Store
	driver base64Captcha.Driver
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	s := &CaptchaService{}
	s.SetConfig(cfg)
	return s
}

// SetConfig 替换配置并重建验证码存储
func (s *CaptchaService) SetConfig(cfg config.CaptchaConfig) {
	if s == nil {
		return
	}
	cfg = normalizeCaptchaConfig(cfg)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.store = base64Captcha.NewMemoryStore(cfg.Image.MaxStore, time.Duration(cfg.Image.ExpireSeconds)*time.Second)
	s.driver = base64Captcha.NewDriverString(
		cfg.Image.Height,
		cfg.Image.Width,
		cfg.Image.NoiseCount,
		cfg.Image.ShowLine,
		cfg.Image.Length,
		captchaCharset,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
}

// SceneEnabled 场景是否需要验证码
func (s *CaptchaService) SceneEnabled(scene string) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg.Provider != constants.CaptchaProviderImage {
		return false
	}
	switch strings.TrimSpace(scene) {
	case constants.CaptchaSceneLogin:
		return s.cfg.Scenes.Login
	case constants.CaptchaSceneSendOtp:
		return s.cfg.Scenes.SendOtp
	default:
		return false
	}
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if s == nil {
		return nil, ErrCaptchaConfigInvalid
	}
	s.mu.RLock()
	provider := s.cfg.Provider
	captcha := base64Captcha.NewCaptcha(s.driver, s.store)
	s.mu.RUnlock()
	if provider != constants.CaptchaProviderImage {
		return nil, ErrCaptchaConfigInvalid
	}

	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 按场景校验验证码，场景未启用时直接放行
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	if !s.SceneEnabled(scene) {
		return nil
	}
	captchaID := strings.TrimSpace(payload.CaptchaID)
	captchaCode := strings.TrimSpace(payload.CaptchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	if !store.Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func normalizeCaptchaConfig(cfg config.CaptchaConfig) config.CaptchaConfig {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider != constants.CaptchaProviderImage {
		cfg.Provider = constants.CaptchaProviderNone
	}
	cfg.Image.Length = clampCaptchaInt(cfg.Image.Length, 4, 8, 5)
	cfg.Image.Width = clampCaptchaInt(cfg.Image.Width, 80, 400, 160)
	cfg.Image.Height = clampCaptchaInt(cfg.Image.Height, 30, 160, 60)
	cfg.Image.NoiseCount = clampCaptchaInt(cfg.Image.NoiseCount, 0, 20, 2)
	cfg.Image.ShowLine = clampCaptchaInt(cfg.Image.ShowLine, 0, 16, 2)
	cfg.Image.ExpireSeconds = clampCaptchaInt(cfg.Image.ExpireSeconds, 30, 3600, 300)
	cfg.Image.MaxStore = clampCaptchaInt(cfg.Image.MaxStore, 100, 100000, 10240)
	return cfg
}

func clampCaptchaInt(value, min, max, fallback int) int {
	if value < min || value > max {
		return fallback
	}
	return value
}
