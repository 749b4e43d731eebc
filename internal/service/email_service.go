package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"html/template"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/i18n"

	"github.com/mailersend/mailersend-go"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const mailerSendTimeout = 10 * time.Second

// EmailService 邮件发送服务，支持 SMTP、SendGrid 与 MailerSend
type EmailService struct {
	cfg        *config.EmailConfig
	sendgrid   *sendgrid.Client
	mailersend *mailersend.Mailersend
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	s := &EmailService{}
	s.SetConfig(cfg)
	return s
}

// SetConfig 更新运行时邮件配置
func (s *EmailService) SetConfig(cfg *config.EmailConfig) {
	if cfg == nil {
		return
	}
	s.cfg = cfg
	s.sendgrid = nil
	s.mailersend = nil
	switch resolveEmailProvider(cfg) {
	case constants.EmailProviderSendGrid:
		if key := strings.TrimSpace(cfg.SendGrid.APIKey); key != "" {
			s.sendgrid = sendgrid.NewSendClient(key)
		}
	case constants.EmailProviderMailerSend:
		if key := strings.TrimSpace(cfg.MailerSend.APIKey); key != "" {
			s.mailersend = mailersend.NewMailersend(key)
		}
	}
}

// Enabled 邮件服务是否可用
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// EmailMessage 待发送邮件
type EmailMessage struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// SendVerifyCode 发送验证码邮件
func (s *EmailService) SendVerifyCode(toEmail, code, purpose, locale string) error {
	msg := buildVerifyCodeContent(code, purpose, locale)
	msg.To = []string{toEmail}
	return s.Send(msg)
}

// VisitorReviewEmailInput 访客待审核通知
type VisitorReviewEmailInput struct {
	VisitorID   uint
	VisitorName string
	Email       string
	Phone       string
	ReviewURL   string
}

// SendVisitorReviewEmail 通知公司管理员审核访客
func (s *EmailService) SendVisitorReviewEmail(to []string, input VisitorReviewEmailInput, locale string) error {
	msg := buildVisitorReviewContent(input, locale)
	msg.To = to
	return s.Send(msg)
}

// VisitorPassEmailInput 访客通行二维码邮件
type VisitorPassEmailInput struct {
	VisitorID       uint
	VisitorName     string
	QRCode          string
	AppointmentDate string
	AppointmentTime string
}

// SendVisitorApprovedEmail 发送审核通过及二维码
func (s *EmailService) SendVisitorApprovedEmail(toEmail string, input VisitorPassEmailInput, locale string) error {
	msg := buildVisitorApprovedContent(input, locale)
	msg.To = []string{toEmail}
	return s.Send(msg)
}

// SendAppointmentEmail 发送预约确认及二维码
func (s *EmailService) SendAppointmentEmail(toEmail string, input VisitorPassEmailInput, locale string) error {
	msg := buildAppointmentContent(input, locale)
	msg.To = []string{toEmail}
	return s.Send(msg)
}

// SendVisitorRejectedEmail 发送审核未通过通知
func (s *EmailService) SendVisitorRejectedEmail(toEmail, visitorName, locale string) error {
	msg := buildVisitorRejectedContent(visitorName, locale)
	msg.To = []string{toEmail}
	return s.Send(msg)
}

// Send 按配置的提供方发送邮件
func (s *EmailService) Send(msg EmailMessage) error {
	if s == nil || s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	recipients := make([]string, 0, len(msg.To))
	for _, to := range msg.To {
		to = strings.TrimSpace(to)
		if to == "" {
			continue
		}
		if _, err := mail.ParseAddress(to); err != nil {
			return ErrInvalidEmail
		}
		recipients = append(recipients, to)
	}
	if len(recipients) == 0 {
		return ErrInvalidEmail
	}
	msg.To = recipients

	switch resolveEmailProvider(s.cfg) {
	case constants.EmailProviderSendGrid:
		return s.sendWithSendGrid(msg)
	case constants.EmailProviderMailerSend:
		return s.sendWithMailerSend(msg)
	default:
		return s.sendWithSMTP(msg)
	}
}

func (s *EmailService) sendWithSendGrid(msg EmailMessage) error {
	if s.sendgrid == nil || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	from := sgmail.NewEmail(s.cfg.FromName, s.cfg.From)
	message := sgmail.NewSingleEmail(from, msg.Subject, sgmail.NewEmail("", msg.To[0]), msg.Text, msg.HTML)
	if len(msg.To) > 1 {
		personalization := message.Personalizations[0]
		for _, to := range msg.To[1:] {
			personalization.AddTos(sgmail.NewEmail("", to))
		}
	}
	resp, err := s.sendgrid.Send(message)
	if err != nil {
		return err
	}
	if resp != nil && resp.StatusCode >= 300 {
		return normalizeEmailSendError(fmt.Errorf("sendgrid send failed: status %d %s", resp.StatusCode, resp.Body))
	}
	return nil
}

func (s *EmailService) sendWithMailerSend(msg EmailMessage) error {
	if s.mailersend == nil || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	ctx, cancel := context.WithTimeout(context.Background(), mailerSendTimeout)
	defer cancel()

	recipients := make([]mailersend.Recipient, 0, len(msg.To))
	for _, to := range msg.To {
		recipients = append(recipients, mailersend.Recipient{Email: to})
	}
	message := s.mailersend.Email.NewMessage()
	message.SetFrom(mailersend.From{Name: s.cfg.FromName, Email: s.cfg.From})
	message.SetRecipients(recipients)
	message.SetSubject(msg.Subject)
	if strings.TrimSpace(msg.Text) != "" {
		message.SetText(msg.Text)
	}
	if strings.TrimSpace(msg.HTML) != "" {
		message.SetHTML(msg.HTML)
	}

	resp, err := s.mailersend.Email.Send(ctx, message)
	if err != nil {
		return normalizeEmailSendError(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return normalizeEmailSendError(fmt.Errorf("mailersend send failed: status %d %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
	return nil
}

func (s *EmailService) sendWithSMTP(msg EmailMessage) error {
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	raw := []byte(buildEmailMessage(from, msg.To, msg.Subject, msg.Text, msg.HTML))

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return normalizeEmailSendError(sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, msg.To, raw))
	}
	if s.cfg.UseTLS {
		return normalizeEmailSendError(sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, msg.To, raw))
	}
	return normalizeEmailSendError(sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, msg.To, raw))
}

func resolveEmailProvider(cfg *config.EmailConfig) string {
	if cfg == nil {
		return constants.EmailProviderSMTP
	}
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch provider {
	case constants.EmailProviderSendGrid, constants.EmailProviderMailerSend:
		return provider
	}
	return constants.EmailProviderSMTP
}

func buildVerifyCodeContent(code, purpose, locale string) EmailMessage {
	locale = normalizeLocale(locale)
	key := "email.otp"
	if strings.EqualFold(strings.TrimSpace(purpose), constants.VerifyPurposeAppointmentLookup) {
		key = "email.lookup_code"
	}
	text := i18n.Sprintf(locale, key+".body", code)
	return EmailMessage{
		Subject: i18n.T(locale, key+".subject"),
		Text:    text,
		HTML:    renderEmailHTML(i18n.T(locale, "email.brand"), []string{text}, "", "", ""),
	}
}

func buildVisitorReviewContent(input VisitorReviewEmailInput, locale string) EmailMessage {
	locale = normalizeLocale(locale)
	lines := []string{
		i18n.Sprintf(locale, "email.visitor_review.body", input.VisitorName),
		i18n.Sprintf(locale, "email.visitor_review.visitor_id", input.VisitorID),
		i18n.Sprintf(locale, "email.visitor_review.email", input.Email),
		i18n.Sprintf(locale, "email.visitor_review.phone", input.Phone),
	}
	action := i18n.T(locale, "email.visitor_review.action")
	return EmailMessage{
		Subject: i18n.Sprintf(locale, "email.visitor_review.subject", input.VisitorName),
		Text:    strings.Join(append(lines, action+": "+input.ReviewURL), "\n"),
		HTML:    renderEmailHTML(i18n.Sprintf(locale, "email.visitor_review.heading", input.VisitorName), lines, "", input.ReviewURL, action),
	}
}

func buildVisitorApprovedContent(input VisitorPassEmailInput, locale string) EmailMessage {
	locale = normalizeLocale(locale)
	lines := []string{
		i18n.T(locale, "email.visitor_approved.body"),
		i18n.Sprintf(locale, "email.visitor_review.visitor_id", input.VisitorID),
	}
	return EmailMessage{
		Subject: i18n.T(locale, "email.visitor_approved.subject"),
		Text:    strings.Join(lines, "\n"),
		HTML:    renderEmailHTML(i18n.Sprintf(locale, "email.welcome", input.VisitorName), lines, input.QRCode, "", ""),
	}
}

func buildAppointmentContent(input VisitorPassEmailInput, locale string) EmailMessage {
	locale = normalizeLocale(locale)
	lines := []string{
		i18n.Sprintf(locale, "email.appointment.body", input.AppointmentDate, input.AppointmentTime),
		i18n.Sprintf(locale, "email.visitor_review.visitor_id", input.VisitorID),
	}
	return EmailMessage{
		Subject: i18n.T(locale, "email.appointment.subject"),
		Text:    strings.Join(lines, "\n"),
		HTML:    renderEmailHTML(i18n.Sprintf(locale, "email.welcome", input.VisitorName), lines, input.QRCode, "", ""),
	}
}

func buildVisitorRejectedContent(visitorName, locale string) EmailMessage {
	locale = normalizeLocale(locale)
	lines := []string{
		i18n.T(locale, "email.visitor_rejected.body"),
		i18n.T(locale, "email.visitor_rejected.contact"),
	}
	return EmailMessage{
		Subject: i18n.T(locale, "email.visitor_rejected.subject"),
		Text:    strings.Join(lines, "\n"),
		HTML:    renderEmailHTML(i18n.Sprintf(locale, "email.hello", visitorName), lines, "", "", ""),
	}
}

var emailHTMLTemplate = template.Must(template.New("email").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #333;">{{.Heading}}</h2>
{{range .Lines}}<p>{{.}}</p>
{{end}}{{if .QRCode}}<img src="{{.QRCode}}" alt="QR Code" style="width:200px;height:200px;" />
{{end}}{{if .ActionURL}}<a href="{{.ActionURL}}" style="display:inline-block;padding:12px 24px;background-color:#4f46e5;color:#ffffff;text-decoration:none;border-radius:8px;font-weight:bold;">{{.ActionText}}</a>
{{end}}</div>`))

func renderEmailHTML(heading string, lines []string, qrCode, actionURL, actionText string) string {
	var buf bytes.Buffer
	data := struct {
		Heading    string
		Lines      []string
		QRCode     template.URL
		ActionURL  string
		ActionText string
	}{
		Heading:    heading,
		Lines:      lines,
		QRCode:     template.URL(qrCode),
		ActionURL:  actionURL,
		ActionText: actionText,
	}
	if err := emailHTMLTemplate.Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}

func normalizeLocale(locale string) string {
	if normalized := i18n.NormalizeLocale(locale); normalized != "" {
		return normalized
	}
	return i18n.DefaultLocale
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from string, to []string, subject, text, html string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	if strings.TrimSpace(html) == "" {
		buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		buf.WriteString("\r\n")
		buf.WriteString(text)
		return buf.String()
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	buf.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%s\r\n", writer.Boundary()))
	buf.WriteString("\r\n")
	writeEmailPart(writer, "text/plain; charset=UTF-8", text)
	writeEmailPart(writer, "text/html; charset=UTF-8", html)
	_ = writer.Close()
	buf.Write(body.Bytes())
	return buf.String()
}

func writeEmailPart(writer *multipart.Writer, contentType, content string) {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return
	}
	_, _ = part.Write([]byte(content))
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	_, err = w.Write(msg)
	if err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	directKeywords := []string{
		"no such recipient",
		"no such user",
		"recipient not found",
		"recipient address rejected",
		"invalid recipient",
		"user unknown",
		"unknown user",
		"unknown mailbox",
		"mailbox unavailable",
	}
	for _, keyword := range directKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		hints := []string{"recipient", "user", "mailbox", "address", "rcpt"}
		for _, hint := range hints {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
