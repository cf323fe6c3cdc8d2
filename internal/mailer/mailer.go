package mailer

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// FromEnv reads SMTP_* configuration. Host left empty disables the mailer.
func FromEnv() SMTPConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func (cfg SMTPConfig) Enabled() bool {
	return cfg.Host != ""
}

func Send(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return d.DialAndSend(m)
}

// SendVerificationCode delivers a registration code.
func SendVerificationCode(cfg SMTPConfig, to, code string) error {
	body := fmt.Sprintf(
		`<p>Welcome to the community.</p><p>Your verification code is <b style="font-size:18px;">%s</b>. It expires in 10 minutes.</p>`,
		code,
	)
	return Send(cfg, to, "Verify your email", body)
}
