package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/ManuelReschke/LeadFox/internal/pkg/env"
)

// SendMail sends an email via SMTP
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

// SendTeamInvite sends the roster invitation mail with the accept link.
func SendTeamInvite(to string, inviterName string, token string) error {
	appURL := env.GetEnv("APP_URL", "http://localhost:4000")
	link := fmt.Sprintf("%s/team/accept?token=%s", appURL, token)

	subject := fmt.Sprintf("%s invited you to their LeadFox team", inviterName)
	body := fmt.Sprintf(
		"<p>%s invited you to join their team on LeadFox.</p>"+
			"<p><a href=\"%s\">Accept the invitation</a></p>"+
			"<p>If you did not expect this invitation you can ignore this email.</p>",
		inviterName, link,
	)
	return SendMail(to, subject, body)
}

// SendLeadAlert notifies the account owner about a freshly captured lead.
func SendLeadAlert(to string, leadName string, leadSource string) error {
	subject := fmt.Sprintf("New lead: %s", leadName)
	body := fmt.Sprintf(
		"<p>A new lead just came in via %s:</p>"+
			"<p><strong>%s</strong></p>"+
			"<p>Open your LeadFox dashboard to follow up.</p>",
		leadSource, leadName,
	)
	return SendMail(to, subject, body)
}
