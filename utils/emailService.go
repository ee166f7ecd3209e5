package utils

import (
	"certapp/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendCertificateEmail sends certificate notification email
func SendCertificateEmail(email, studentName, tradeName, certificateNumber string) error {
	cfg := config.AppConfig

	from := mail.NewEmail("Certification Team", cfg.EmailSender)
	to := mail.NewEmail(studentName, email)
	subject := "Your Course Completion Certificate"

	plainText := fmt.Sprintf(
		"Dear %s, your certificate for %s has been issued. Certificate number: %s.",
		studentName, tradeName, certificateNumber,
	)

	html := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Certificate of Completion</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Congratulations on completing:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
						<p style="font-size: 14px; color: #666666; margin-bottom: 10px;">Your Certificate Number:</p>
						<h2 style="color: #2196F3; margin: 0;">%s</h2>
					</div>
					<p style="font-size: 14px; color: #666666;">You can use this certificate number for verification purposes.</p>
				</div>
			</body>
		</html>
	`, studentName, tradeName, certificateNumber)

	message := mail.NewSingleEmail(from, subject, to, plainText, html)
	client := sendgrid.NewSendClient(cfg.SendGridAPIKey)

	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}

	log.Println("Certificate email sent successfully to", email)
	return nil
}
