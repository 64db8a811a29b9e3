package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/BelezaApps/salon-agenda/internal/config"
)

// Mailer envia o e-mail de confirmação do cadastro. Falha aqui nunca
// desfaz a escrita principal: o cadastro vale mesmo sem o e-mail, e a
// resposta carrega um flag dizendo se ele saiu.
type Mailer interface {
	SendConfirmation(to, name, salonName string) error
}

// NewFromConfig escolhe SMTP quando configurado, console caso
// contrário.
func NewFromConfig(cfg *config.Config) Mailer {
	if cfg.SMTPHost != "" {
		return &SMTPMailer{cfg: cfg}
	}
	return &ConsoleMailer{}
}

// ===============================
// Console (dev)
// ===============================

type ConsoleMailer struct{}

func (m *ConsoleMailer) SendConfirmation(to, name, salonName string) error {
	log.Printf("[mail] confirmation to %s (%s, salão %s)", to, name, salonName)
	return nil
}

// ===============================
// SMTP
// ===============================

type SMTPMailer struct {
	cfg *config.Config
}

func (m *SMTPMailer) SendConfirmation(to, name, salonName string) error {
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Cadastro confirmado\r\n\r\nOlá %s,\r\n\r\nO salão %s foi cadastrado com sucesso.\r\n",
		m.cfg.MailFrom, to, name, salonName,
	)

	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}

	return smtp.SendMail(addr, auth, m.cfg.MailFrom, []string{to}, []byte(msg))
}
