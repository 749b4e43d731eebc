package service

import (
	"errors"
	"testing"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/constants"
)

func TestCaptchaSceneDisabledPassesThrough(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Provider: constants.CaptchaProviderNone, Scenes: config.CaptchaSceneConfig{SendOtp: true}})
	if err := svc.Verify(constants.CaptchaSceneSendOtp, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled provider should pass, got: %v", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("expected config invalid, got: %v", err)
	}
}

func TestCaptchaImageChallengeVerify(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{
		Provider: "Image",
		Scenes:   config.CaptchaSceneConfig{SendOtp: true},
	})
	if svc.SceneEnabled(constants.CaptchaSceneLogin) {
		t.Fatalf("login scene should stay disabled")
	}
	if err := svc.Verify(constants.CaptchaSceneSendOtp, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected captcha required, got: %v", err)
	}

	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("unexpected challenge: %+v", challenge)
	}
	if err := svc.Verify(constants.CaptchaSceneSendOtp, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: "zzzzzz"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("expected captcha invalid, got: %v", err)
	}

	second, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	answer := svc.store.Get(second.CaptchaID, false)
	if err := svc.Verify(constants.CaptchaSceneSendOtp, CaptchaVerifyPayload{CaptchaID: second.CaptchaID, CaptchaCode: answer}); err != nil {
		t.Fatalf("verify correct answer failed: %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneSendOtp, CaptchaVerifyPayload{CaptchaID: second.CaptchaID, CaptchaCode: answer}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("captcha answers must be single use, got: %v", err)
	}
}

func TestNormalizeCaptchaConfigDefaults(t *testing.T) {
	cfg := normalizeCaptchaConfig(config.CaptchaConfig{Provider: "turnstile"})
	if cfg.Provider != constants.CaptchaProviderNone {
		t.Fatalf("unsupported provider should fall back to none, got %s", cfg.Provider)
	}
	if cfg.Image.Length != 5 || cfg.Image.Width != 160 || cfg.Image.Height != 60 {
		t.Fatalf("unexpected image defaults: %+v", cfg.Image)
	}
}
