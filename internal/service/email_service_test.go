package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/i18n"
)

func TestBuildVisitorEmailContent(t *testing.T) {
	tests := []struct {
		name                string
		build               func() EmailMessage
		wantSubjectContains []string
		wantHTMLContains    []string
	}{
		{
			name: "review_en",
			build: func() EmailMessage {
				return buildVisitorReviewContent(VisitorReviewEmailInput{
					VisitorID:   42,
					VisitorName: "Asha Rao",
					Email:       "asha@example.com",
					Phone:       "9876543210",
					ReviewURL:   "http://desk.local/verify.html?id=42",
				}, i18n.LocaleEN)
			},
			wantSubjectContains: []string{"New Visitor: Asha Rao", "Pending Verification"},
			wantHTMLContains:    []string{"Visitor ID: 42", "verify.html?id=42", "Review &amp; Verify Visitor"},
		},
		{
			name: "approved_zh",
			build: func() EmailMessage {
				return buildVisitorApprovedContent(VisitorPassEmailInput{
					VisitorID:   7,
					VisitorName: "张三",
					QRCode:      "data:image/png;base64,AAAA",
				}, i18n.LocaleZH)
			},
			wantSubjectContains: []string{"审核已通过"},
			wantHTMLContains:    []string{`src="data:image/png;base64,AAAA"`, "张三"},
		},
		{
			name: "rejected_tw",
			build: func() EmailMessage {
				return buildVisitorRejectedContent("李四", i18n.LocaleTW)
			},
			wantSubjectContains: []string{"來訪申請"},
			wantHTMLContains:    []string{"李四"},
		},
		{
			name: "otp_unknown_locale_falls_back",
			build: func() EmailMessage {
				return buildVerifyCodeContent("4821", "", "fr-FR")
			},
			wantSubjectContains: []string{"Your OTP Code"},
			wantHTMLContains:    []string{"4821"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.build()
			for _, expected := range tt.wantSubjectContains {
				if !strings.Contains(msg.Subject, expected) {
					t.Fatalf("subject missing %q: %s", expected, msg.Subject)
				}
			}
			for _, expected := range tt.wantHTMLContains {
				if !strings.Contains(msg.HTML, expected) {
					t.Fatalf("html missing %q: %s", expected, msg.HTML)
				}
			}
			if strings.TrimSpace(msg.Text) == "" {
				t.Fatalf("plain text part should not be empty")
			}
		})
	}
}

func TestBuildEmailMessageMultipart(t *testing.T) {
	raw := buildEmailMessage("Desk <desk@example.com>", []string{"a@example.com", "b@example.com"}, "Hello", "plain body", "<p>html body</p>")
	for _, expected := range []string{
		"To: a@example.com, b@example.com",
		"multipart/alternative; boundary=",
		"text/plain; charset=UTF-8",
		"text/html; charset=UTF-8",
		"<p>html body</p>",
	} {
		if !strings.Contains(raw, expected) {
			t.Fatalf("raw message missing %q:\n%s", expected, raw)
		}
	}
	plain := buildEmailMessage("desk@example.com", []string{"a@example.com"}, "Hello", "only text", "")
	if strings.Contains(plain, "multipart") || !strings.Contains(plain, "only text") {
		t.Fatalf("text only message should not be multipart:\n%s", plain)
	}
}

func TestSendRequiresEnabledService(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := svc.Send(EmailMessage{To: []string{"a@example.com"}}); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected disabled, got %v", err)
	}
	svc = NewEmailService(&config.EmailConfig{Enabled: true, Provider: "smtp"})
	if err := svc.Send(EmailMessage{To: []string{"not-an-email"}}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected invalid email, got %v", err)
	}
	if err := svc.Send(EmailMessage{To: []string{"a@example.com"}}); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
	svc = NewEmailService(&config.EmailConfig{Enabled: true, Provider: "sendgrid", From: "desk@example.com"})
	if err := svc.Send(EmailMessage{To: []string{"a@example.com"}}); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("sendgrid without api key should be not configured, got %v", err)
	}
}

func TestResolveEmailProvider(t *testing.T) {
	cases := map[string]string{
		"":            "smtp",
		"SendGrid":    "sendgrid",
		" mailersend": "mailersend",
		"postmark":    "smtp",
	}
	for raw, want := range cases {
		if got := resolveEmailProvider(&config.EmailConfig{Provider: raw}); got != want {
			t.Fatalf("provider %q want %s got %s", raw, want, got)
		}
	}

	svc := NewEmailService(&config.EmailConfig{Enabled: true, Provider: "mailersend", From: "desk@example.com"})
	if svc.mailersend != nil {
		t.Fatalf("mailersend client should not be built without api key")
	}
	if err := svc.Send(EmailMessage{To: []string{"a@example.com"}}); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
	svc.SetConfig(&config.EmailConfig{Enabled: true, Provider: "mailersend", From: "desk@example.com", MailerSend: config.MailerSendConfig{APIKey: "mlsn.test"}})
	if svc.mailersend == nil || svc.sendgrid != nil {
		t.Fatalf("switching provider should rebuild clients")
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "smtp_550_no_such_recipient",
			err:  errors.New("550 No such recipient here"),
			want: true,
		},
		{
			name: "smtp_user_unknown",
			err:  errors.New("SMTP 5.1.1 user unknown"),
			want: true,
		},
		{
			name: "smtp_550_mailbox_unavailable",
			err:  errors.New("550 mailbox unavailable"),
			want: true,
		},
		{
			name: "network_timeout",
			err:  errors.New("dial tcp timeout"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tt.err); got != tt.want {
				t.Fatalf("isEmailRecipientRejected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	rejected := errors.New("550 No such recipient here")
	if got := normalizeEmailSendError(rejected); !errors.Is(got, ErrEmailRecipientRejected) {
		t.Fatalf("normalizeEmailSendError() expected ErrEmailRecipientRejected, got %v", got)
	}

	networkErr := errors.New("dial tcp timeout")
	if got := normalizeEmailSendError(networkErr); !errors.Is(got, networkErr) {
		t.Fatalf("normalizeEmailSendError() should keep original error, got %v", got)
	}

	if got := normalizeEmailSendError(nil); got != nil {
		t.Fatalf("normalizeEmailSendError(nil) should be nil, got %v", got)
	}
}
