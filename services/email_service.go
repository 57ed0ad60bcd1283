package services

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// htmlToText flattens an HTML notification body into the plain-text
// alternative part. On parse failure the original content is used as-is.
func htmlToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var text strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3":
				text.WriteString("\n")
			case "li":
				text.WriteString("- ")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	result := strings.ReplaceAll(text.String(), "\n\n\n", "\n\n")
	return strings.TrimSpace(result)
}

// SendPlanEmail sends a weekly-plan notification (submission, acceptance,
// rejection) to the plan's responsible. SMTP settings come from the
// environment; a missing host disables email silently so dev setups work.
func SendPlanEmail(to, subject, htmlBody string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("SMTP_FROM")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	if from == "" {
		from = username
	}

	headers := map[string]string{
		"From":         from,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": `text/plain; charset="UTF-8"`,
	}

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(htmlToText(htmlBody))

	auth := smtp.PlainAuth("", username, password, host)
	if err := smtp.SendMail(host+":"+port, auth, from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send plan email to %s: %v", to, err)
	}
	return nil
}
