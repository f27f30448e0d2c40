package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

func sendMail(toEmail, subject, body string) error {
	from := os.Getenv("EMAIL_FROM")
	pass := os.Getenv("EMAIL_PASS")
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}

	if from == "" || pass == "" {
		log.Println("EMAIL_FROM/EMAIL_PASS not set, skipping email to", toEmail)
		return nil
	}

	msg := fmt.Sprintf("Subject: %s\r\n\r\n%s", subject, body)
	return smtp.SendMail(
		host+":587",
		smtp.PlainAuth("", from, pass, host),
		from,
		[]string{toEmail},
		[]byte(msg),
	)
}

// SendOrderConfirmation mails the buyer after a successful payment.
func SendOrderConfirmation(toEmail, orderID string, total float64) error {
	body := fmt.Sprintf(`Dear customer,

Your payment for order %s was received. Total: %.2f.

We will let you know when your order ships.

Thank you,
Shopora Team
`, orderID, total)
	return sendMail(toEmail, "Shopora - Order confirmed", body)
}

// SendSellerDecision mails an applicant when their store is approved or
// rejected.
func SendSellerDecision(toEmail, storeName string, approved bool) error {
	decision := "approved"
	if !approved {
		decision = "rejected"
	}
	body := fmt.Sprintf(`Dear seller,

Your store application "%s" has been %s.

Thank you,
Shopora Team
`, storeName, decision)
	return sendMail(toEmail, "Shopora - Store application "+decision, body)
}
