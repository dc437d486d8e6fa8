package services

import (
	"fmt"
	"log"

	"printrelay/internal/models"

	"gopkg.in/gomail.v2"
)

// EmailService notifies the admin address when an order is recorded. Without
// SMTP configuration it degrades to log-only.
type EmailService struct {
	dialer  *gomail.Dialer
	from    string
	adminTo string
}

// NewEmailService builds the service; pass empty credentials to disable
// sending.
func NewEmailService(host string, port int, user, pass, adminTo string) *EmailService {
	if user == "" || pass == "" || adminTo == "" {
		log.Println("EmailService - SMTP not configured, notifications disabled")
		return &EmailService{adminTo: adminTo}
	}

	return &EmailService{
		dialer:  gomail.NewDialer(host, port, user, pass),
		from:    user,
		adminTo: adminTo,
	}
}

// SendOrderNotification mails the admin a summary of a recorded order.
func (es *EmailService) SendOrderNotification(order *models.Order) error {
	if es.dialer == nil {
		log.Printf("EmailService - notification skipped for order %d", order.ID)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", es.from)
	m.SetHeader("To", es.adminTo)
	m.SetHeader("Subject", fmt.Sprintf("New order #%d", order.ID))
	m.SetBody("text/html", fmt.Sprintf(`
		<h2>New order #%d</h2>
		<p>%s<br>%s<br>%s, %s %s<br>%s</p>
		<p>Variant %s &times; %d</p>
		<p>Status: %s</p>`,
		order.ID,
		order.Name, order.Address1, order.City, order.StateCode, order.Zip, order.CountryCode,
		order.VariantID, order.Quantity,
		order.Status))

	return es.dialer.DialAndSend(m)
}
