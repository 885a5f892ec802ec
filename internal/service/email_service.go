package service

import (
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/petmart-next/internal/config"
	"github.com/petmart-next/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// OrderConfirmEmailInput 下单确认邮件输入
type OrderConfirmEmailInput struct {
	OrderNo     string
	TotalAmount models.Money
	ItemCount   int
	Address     string
}

// SendOrderConfirmEmail 发送下单确认邮件
func (s *EmailService) SendOrderConfirmEmail(toEmail string, input OrderConfirmEmailInput) error {
	subject := fmt.Sprintf("订单确认 %s", input.OrderNo)
	body := fmt.Sprintf(
		"您的订单 %s 已创建。\n\n共 %d 件商品，应付金额 %s。\n收货地址：%s\n\n我们会尽快为您发货。",
		input.OrderNo, input.ItemCount, input.TotalAmount.Decimal().StringFixed(2), input.Address,
	)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendLowStockAlert 发送低库存提醒（发往商家自身邮箱）
func (s *EmailService) SendLowStockAlert(toEmail, productName string, stock int) error {
	subject := "库存不足提醒"
	body := fmt.Sprintf("商品「%s」当前库存仅剩 %d，请及时补货。", productName, stock)
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	return smtp.SendMail(addr, auth, s.cfg.From, []string{toEmail}, []byte(msg))
}

func buildFromAddress(from, fromName string) string {
	fromName = strings.TrimSpace(fromName)
	if fromName == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", fromName)
	return fmt.Sprintf("%s <%s>", encoded, from)
}

func buildEmailMessage(from, to, subject, body string) string {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("UTF-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
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
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write(msg); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}
