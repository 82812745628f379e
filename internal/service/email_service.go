package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/honeyfoods-shop/internal/config"
	"github.com/honeyfoods-shop/internal/constants"
	"github.com/honeyfoods-shop/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SetConfig 更新运行时邮件配置
func (s *EmailService) SetConfig(cfg *config.EmailConfig) {
	if cfg == nil {
		return
	}
	s.cfg = cfg
}

// OrderStatusEmailInput 订单状态邮件输入
type OrderStatusEmailInput struct {
	OrderNo        string
	CustomerName   string
	Status         string
	DeliveryMethod string
	Amount         models.Money
	Currency       string
}

// SendOrderStatusEmail 发送订单状态通知
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput) error {
	subject, body := buildOrderStatusContent(input)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendPickupReadyEmail 发送自提备好通知
func (s *EmailService) SendPickupReadyEmail(toEmail string, input OrderStatusEmailInput, storeAddress string) error {
	subject := fmt.Sprintf("Your order %s is ready for collection", input.OrderNo)
	body := fmt.Sprintf("Hi %s,\n\nGood news! Your order %s is ready for collection.",
		input.CustomerName, input.OrderNo)
	if strings.TrimSpace(storeAddress) != "" {
		body += fmt.Sprintf("\n\nCollect from: %s", strings.TrimSpace(storeAddress))
	}
	body += "\n\nSee you soon,\nHoney Foods"
	return s.sendTextEmail(toEmail, subject, body)
}

// SendCustomEmail 发送测试邮件或自定义邮件
func (s *EmailService) SendCustomEmail(toEmail, subject, body string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "SMTP configuration test"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		body = "This is a test email from Honey Foods. Your SMTP configuration works."
	}
	return s.sendTextEmail(toEmail, subject, body)
}

func buildOrderStatusContent(input OrderStatusEmailInput) (string, string) {
	statusLabel := orderStatusLabel(input.Status)
	subject := fmt.Sprintf("Order %s: %s", input.OrderNo, statusLabel)
	body := fmt.Sprintf("Hi %s,\n\nYour order %s is now %s.\n\nOrder total: %s %s",
		input.CustomerName, input.OrderNo, strings.ToLower(statusLabel), input.Amount.String(), strings.TrimSpace(input.Currency))
	switch strings.ToLower(strings.TrimSpace(input.Status)) {
	case constants.OrderStatusOutForDelivery:
		body += "\n\nOur driver is on the way."
	case constants.OrderStatusReadyForPickup:
		body += "\n\nYour order is ready to collect."
	case constants.OrderStatusCancelled:
		body += "\n\nIf you did not expect this, please get in touch."
	}
	body += "\n\nThank you for shopping with Honey Foods."
	return subject, body
}

func orderStatusLabel(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case constants.OrderStatusPending:
		return "Received"
	case constants.OrderStatusConfirmed:
		return "Confirmed"
	case constants.OrderStatusPreparing:
		return "Being prepared"
	case constants.OrderStatusOutForDelivery:
		return "Out for delivery"
	case constants.OrderStatusReadyForPickup:
		return "Ready for collection"
	case constants.OrderStatusDelivered:
		return "Delivered"
	case constants.OrderStatusPickedUp:
		return "Collected"
	case constants.OrderStatusCancelled:
		return "Cancelled"
	default:
		return status
	}
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

	if s.cfg.UseSSL {
		return sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	return sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
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

	return sendSMTPData(client, from, to, msg)
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
